package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garagego/api/server/response"
)

// listing photos land under a folder per listing kind; the returned URL is
// what clients put into image_url on create/update
var imageFolders = map[string]string{
	"garage":     "garages",
	"spare_part": "spare-parts",
}

func (s *Server) handleUploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		folder, ok := imageFolders[c.PostForm("kind")]
		if !ok {
			response.JSON(c, "kind must be garage or spare_part", http.StatusBadRequest, nil, nil)
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			response.JSON(c, "image file is required", http.StatusBadRequest, nil, err)
			return
		}

		imageURL, err := s.MediaService.UploadImage(fileHeader, folder)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		response.JSON(c, "image uploaded", http.StatusCreated, gin.H{"image_url": imageURL}, nil)
	}
}

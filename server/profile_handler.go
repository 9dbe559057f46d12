package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/garagego/api/errors"
	"github.com/garagego/api/models"
	"github.com/garagego/api/server/response"
)

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		user, apiErr := s.AuthService.GetUserProfile(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, user, nil)
	}
}

func (s *Server) handleEditProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var request models.EditProfileRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		profile, apiErr := s.AuthService.EditUserProfile(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "profile updated", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleUploadAvatar() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		fileHeader, err := c.FormFile("avatar")
		if err != nil {
			response.JSON(c, "avatar file is required", http.StatusBadRequest, nil, err)
			return
		}

		avatarURL, err := s.MediaService.UploadAvatar(fileHeader, userID)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.AuthRepository.UpdateAvatarURL(userID, avatarURL); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "avatar updated", http.StatusOK, gin.H{"avatar_url": avatarURL}, nil)
	}
}

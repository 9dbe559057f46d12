package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/garagego/api/errors"
	"github.com/garagego/api/models"
	"github.com/garagego/api/server/response"
)

func (s *Server) handleReviewGarage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		garageID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid garage id", http.StatusBadRequest, nil, err)
			return
		}

		var request models.ReviewRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		review, apiErr := s.ReviewService.ReviewGarage(userID, garageID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "review submitted", http.StatusCreated, review, nil)
	}
}

func (s *Server) handleReviewSparePart() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		sparePartID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid spare part id", http.StatusBadRequest, nil, err)
			return
		}

		var request models.ReviewRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		review, apiErr := s.ReviewService.ReviewSparePart(userID, sparePartID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "review submitted", http.StatusCreated, review, nil)
	}
}

func (s *Server) handleListGarageReviews() gin.HandlerFunc {
	return func(c *gin.Context) {
		garageID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid garage id", http.StatusBadRequest, nil, err)
			return
		}
		reviews, apiErr := s.ReviewService.ListGarageReviews(garageID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, reviews, nil)
	}
}

func (s *Server) handleListSparePartReviews() gin.HandlerFunc {
	return func(c *gin.Context) {
		sparePartID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid spare part id", http.StatusBadRequest, nil, err)
			return
		}
		reviews, apiErr := s.ReviewService.ListSparePartReviews(sparePartID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, reviews, nil)
	}
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/garagego/api/errors"
	"github.com/garagego/api/models"
	"github.com/garagego/api/server/response"
)

func (s *Server) handleListGarages() gin.HandlerFunc {
	return func(c *gin.Context) {
		garages, apiErr := s.GarageService.ListGarages(c.Query("search"))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, garages, nil)
	}
}

func (s *Server) handleGetGarage() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid garage id", http.StatusBadRequest, nil, err)
			return
		}
		garage, apiErr := s.GarageService.GetGarage(id)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, garage, nil)
	}
}

func (s *Server) handleCreateGarage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		if role, _ := c.Get("role"); role != models.RoleMechanic {
			response.JSON(c, "only mechanics can create garages", http.StatusForbidden, nil, errs.ErrForbidden)
			return
		}

		var request models.GarageRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		garage, apiErr := s.GarageService.CreateGarage(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "garage created", http.StatusCreated, garage, nil)
	}
}

func (s *Server) handleUpdateGarage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid garage id", http.StatusBadRequest, nil, err)
			return
		}

		var request models.GarageRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		garage, apiErr := s.GarageService.UpdateGarage(userID, id, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "garage updated", http.StatusOK, garage, nil)
	}
}

func (s *Server) handleDeleteGarage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid garage id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.GarageService.DeleteGarage(userID, id); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "garage deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleMyGarages() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		garages, apiErr := s.GarageService.ListGaragesByOwner(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, garages, nil)
	}
}

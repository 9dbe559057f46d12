package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/garagego/api/server/response"
)

func (s *Server) handleAdminListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, apiErr := s.AuthService.GetAllUsers()
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, users, nil)
	}
}

func (s *Server) handleAdminListGarages() gin.HandlerFunc {
	return func(c *gin.Context) {
		garages, apiErr := s.GarageService.ListGarages(c.Query("search"))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, garages, nil)
	}
}

func (s *Server) handleAdminListSpareParts() gin.HandlerFunc {
	return func(c *gin.Context) {
		parts, apiErr := s.SparePartService.ListSpareParts(partFilterFromQuery(c))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, parts, nil)
	}
}

func (s *Server) handleAdminToggleGarageVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid garage id", http.StatusBadRequest, nil, err)
			return
		}
		var request struct {
			Verified bool `json:"verified"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		garage, apiErr := s.GarageService.SetGarageVerified(id, request.Verified)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "garage verification updated", http.StatusOK, garage, nil)
	}
}

func (s *Server) handleAdminToggleSparePartAvailability() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid spare part id", http.StatusBadRequest, nil, err)
			return
		}
		var request struct {
			Available bool `json:"available"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		part, apiErr := s.SparePartService.SetSparePartAvailability(id, request.Available)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "spare part availability updated", http.StatusOK, part, nil)
	}
}

func (s *Server) handleAdminDeleteGarage() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid garage id", http.StatusBadRequest, nil, err)
			return
		}
		if apiErr := s.GarageService.AdminDeleteGarage(id); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "garage deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleAdminDeleteSparePart() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid spare part id", http.StatusBadRequest, nil, err)
			return
		}
		if apiErr := s.SparePartService.AdminDeleteSparePart(id); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "spare part deleted", http.StatusOK, nil, nil)
	}
}

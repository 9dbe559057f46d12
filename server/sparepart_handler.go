package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/garagego/api/errors"
	"github.com/garagego/api/models"
	"github.com/garagego/api/server/response"
)

func partFilterFromQuery(c *gin.Context) models.SparePartFilter {
	return models.SparePartFilter{
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		CarModel:  c.Query("car_model"),
		Search:    c.Query("search"),
	}
}

func (s *Server) handleListSpareParts() gin.HandlerFunc {
	return func(c *gin.Context) {
		parts, apiErr := s.SparePartService.ListSpareParts(partFilterFromQuery(c))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, parts, nil)
	}
}

func (s *Server) handleGetSparePart() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid spare part id", http.StatusBadRequest, nil, err)
			return
		}
		part, apiErr := s.SparePartService.GetSparePart(id)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, part, nil)
	}
}

func (s *Server) handleCreateSparePart() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		if role, _ := c.Get("role"); role != models.RoleSeller {
			response.JSON(c, "only sellers can list spare parts", http.StatusForbidden, nil, errs.ErrForbidden)
			return
		}

		var request models.SparePartRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		part, apiErr := s.SparePartService.CreateSparePart(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "spare part created", http.StatusCreated, part, nil)
	}
}

func (s *Server) handleUpdateSparePart() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid spare part id", http.StatusBadRequest, nil, err)
			return
		}

		var request models.SparePartRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		part, apiErr := s.SparePartService.UpdateSparePart(userID, id, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "spare part updated", http.StatusOK, part, nil)
	}
}

func (s *Server) handleDeleteSparePart() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid spare part id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.SparePartService.DeleteSparePart(userID, id); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "spare part deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleMySpareParts() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		parts, apiErr := s.SparePartService.ListSparePartsBySeller(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, parts, nil)
	}
}

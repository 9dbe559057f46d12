package services

import (
	"log"

	"github.com/garagego/api/config"
	"github.com/garagego/api/db"
	apiError "github.com/garagego/api/errors"
	"github.com/garagego/api/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SparePartService interface {
	CreateSparePart(sellerID uuid.UUID, request *models.SparePartRequest) (*models.SparePart, *apiError.Error)
	GetSparePart(id uuid.UUID) (*models.SparePart, *apiError.Error)
	ListSpareParts(filter models.SparePartFilter) ([]models.SparePart, *apiError.Error)
	ListSparePartsBySeller(sellerID uuid.UUID) ([]models.SparePart, *apiError.Error)
	UpdateSparePart(sellerID, id uuid.UUID, request *models.SparePartRequest) (*models.SparePart, *apiError.Error)
	DeleteSparePart(sellerID, id uuid.UUID) *apiError.Error
	SetSparePartAvailability(id uuid.UUID, available bool) (*models.SparePart, *apiError.Error)
	AdminDeleteSparePart(id uuid.UUID) *apiError.Error
}

type sparePartService struct {
	Config   *config.Config
	partRepo db.SparePartRepository
}

func NewSparePartService(partRepo db.SparePartRepository, conf *config.Config) SparePartService {
	return &sparePartService{
		Config:   conf,
		partRepo: partRepo,
	}
}

func (s *sparePartService) CreateSparePart(sellerID uuid.UUID, request *models.SparePartRequest) (*models.SparePart, *apiError.Error) {
	if err := models.ConformInput(request); err != nil {
		return nil, apiError.ErrBadRequest
	}

	condition := request.Condition
	if condition == "" {
		condition = "used"
	}
	part := &models.SparePart{
		SellerID:    sellerID,
		Name:        request.Name,
		Price:       request.Price,
		Condition:   condition,
		Category:    request.Category,
		CarModel:    request.CarModel,
		Location:    request.Location,
		Description: request.Description,
		ImageURL:    request.ImageURL,
		Available:   true,
	}
	part, err := s.partRepo.CreateSparePart(part)
	if err != nil {
		log.Printf("error creating spare part: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return part, nil
}

func (s *sparePartService) GetSparePart(id uuid.UUID) (*models.SparePart, *apiError.Error) {
	part, err := s.partRepo.GetSparePartByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("error fetching spare part %s: %v", id, err)
		return nil, apiError.ErrInternalServerError
	}
	return part, nil
}

func (s *sparePartService) ListSpareParts(filter models.SparePartFilter) ([]models.SparePart, *apiError.Error) {
	parts, err := s.partRepo.GetAllSpareParts(filter)
	if err != nil {
		log.Printf("error listing spare parts: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return parts, nil
}

func (s *sparePartService) ListSparePartsBySeller(sellerID uuid.UUID) ([]models.SparePart, *apiError.Error) {
	parts, err := s.partRepo.GetSparePartsBySeller(sellerID)
	if err != nil {
		log.Printf("error listing spare parts for seller %s: %v", sellerID, err)
		return nil, apiError.ErrInternalServerError
	}
	return parts, nil
}

func (s *sparePartService) UpdateSparePart(sellerID, id uuid.UUID, request *models.SparePartRequest) (*models.SparePart, *apiError.Error) {
	part, apiErr := s.GetSparePart(id)
	if apiErr != nil {
		return nil, apiErr
	}
	if part.SellerID != sellerID {
		return nil, apiError.ErrForbidden
	}
	if err := models.ConformInput(request); err != nil {
		return nil, apiError.ErrBadRequest
	}

	part.Name = request.Name
	part.Price = request.Price
	if request.Condition != "" {
		part.Condition = request.Condition
	}
	part.Category = request.Category
	part.CarModel = request.CarModel
	part.Location = request.Location
	part.Description = request.Description
	if request.ImageURL != "" {
		part.ImageURL = request.ImageURL
	}

	if err := s.partRepo.UpdateSparePart(part); err != nil {
		log.Printf("error updating spare part %s: %v", id, err)
		return nil, apiError.ErrInternalServerError
	}
	return part, nil
}

func (s *sparePartService) DeleteSparePart(sellerID, id uuid.UUID) *apiError.Error {
	part, apiErr := s.GetSparePart(id)
	if apiErr != nil {
		return apiErr
	}
	if part.SellerID != sellerID {
		return apiError.ErrForbidden
	}
	if err := s.partRepo.DeleteSparePart(id); err != nil {
		log.Printf("error deleting spare part %s: %v", id, err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *sparePartService) SetSparePartAvailability(id uuid.UUID, available bool) (*models.SparePart, *apiError.Error) {
	part, apiErr := s.GetSparePart(id)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := s.partRepo.SetAvailability(id, available); err != nil {
		log.Printf("error setting availability on spare part %s: %v", id, err)
		return nil, apiError.ErrInternalServerError
	}
	part.Available = available
	return part, nil
}

func (s *sparePartService) AdminDeleteSparePart(id uuid.UUID) *apiError.Error {
	if _, apiErr := s.GetSparePart(id); apiErr != nil {
		return apiErr
	}
	if err := s.partRepo.DeleteSparePart(id); err != nil {
		log.Printf("error deleting spare part %s: %v", id, err)
		return apiError.ErrInternalServerError
	}
	return nil
}

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

type GarageService interface {
	CreateGarage(ownerID uuid.UUID, request *models.GarageRequest) (*models.Garage, *apiError.Error)
	GetGarage(id uuid.UUID) (*models.Garage, *apiError.Error)
	ListGarages(search string) ([]models.Garage, *apiError.Error)
	ListGaragesByOwner(ownerID uuid.UUID) ([]models.Garage, *apiError.Error)
	UpdateGarage(ownerID, id uuid.UUID, request *models.GarageRequest) (*models.Garage, *apiError.Error)
	DeleteGarage(ownerID, id uuid.UUID) *apiError.Error
	SetGarageVerified(id uuid.UUID, verified bool) (*models.Garage, *apiError.Error)
	AdminDeleteGarage(id uuid.UUID) *apiError.Error
}

type garageService struct {
	Config     *config.Config
	garageRepo db.GarageRepository
}

func NewGarageService(garageRepo db.GarageRepository, conf *config.Config) GarageService {
	return &garageService{
		Config:     conf,
		garageRepo: garageRepo,
	}
}

func (s *garageService) CreateGarage(ownerID uuid.UUID, request *models.GarageRequest) (*models.Garage, *apiError.Error) {
	if err := models.ConformInput(request); err != nil {
		return nil, apiError.ErrBadRequest
	}

	garage := &models.Garage{
		OwnerID:     ownerID,
		Name:        request.Name,
		Address:     request.Address,
		Phone:       request.Phone,
		Description: request.Description,
		Services:    request.Services,
		ImageURL:    request.ImageURL,
		Latitude:    request.Latitude,
		Longitude:   request.Longitude,
	}
	garage, err := s.garageRepo.CreateGarage(garage)
	if err != nil {
		log.Printf("error creating garage: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return garage, nil
}

func (s *garageService) GetGarage(id uuid.UUID) (*models.Garage, *apiError.Error) {
	garage, err := s.garageRepo.GetGarageByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("error fetching garage %s: %v", id, err)
		return nil, apiError.ErrInternalServerError
	}
	return garage, nil
}

func (s *garageService) ListGarages(search string) ([]models.Garage, *apiError.Error) {
	garages, err := s.garageRepo.GetAllGarages(search)
	if err != nil {
		log.Printf("error listing garages: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return garages, nil
}

func (s *garageService) ListGaragesByOwner(ownerID uuid.UUID) ([]models.Garage, *apiError.Error) {
	garages, err := s.garageRepo.GetGaragesByOwner(ownerID)
	if err != nil {
		log.Printf("error listing garages for owner %s: %v", ownerID, err)
		return nil, apiError.ErrInternalServerError
	}
	return garages, nil
}

func (s *garageService) UpdateGarage(ownerID, id uuid.UUID, request *models.GarageRequest) (*models.Garage, *apiError.Error) {
	garage, apiErr := s.GetGarage(id)
	if apiErr != nil {
		return nil, apiErr
	}
	if garage.OwnerID != ownerID {
		return nil, apiError.ErrForbidden
	}
	if err := models.ConformInput(request); err != nil {
		return nil, apiError.ErrBadRequest
	}

	garage.Name = request.Name
	garage.Address = request.Address
	garage.Phone = request.Phone
	garage.Description = request.Description
	garage.Services = request.Services
	garage.Latitude = request.Latitude
	garage.Longitude = request.Longitude
	if request.ImageURL != "" {
		garage.ImageURL = request.ImageURL
	}

	if err := s.garageRepo.UpdateGarage(garage); err != nil {
		log.Printf("error updating garage %s: %v", id, err)
		return nil, apiError.ErrInternalServerError
	}
	return garage, nil
}

func (s *garageService) DeleteGarage(ownerID, id uuid.UUID) *apiError.Error {
	garage, apiErr := s.GetGarage(id)
	if apiErr != nil {
		return apiErr
	}
	if garage.OwnerID != ownerID {
		return apiError.ErrForbidden
	}
	if err := s.garageRepo.DeleteGarage(id); err != nil {
		log.Printf("error deleting garage %s: %v", id, err)
		return apiError.ErrInternalServerError
	}
	return nil
}

// SetGarageVerified flips the moderation badge on a garage. Only the admin
// routes reach this path.
func (s *garageService) SetGarageVerified(id uuid.UUID, verified bool) (*models.Garage, *apiError.Error) {
	garage, apiErr := s.GetGarage(id)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := s.garageRepo.SetVerified(id, verified); err != nil {
		log.Printf("error setting verified on garage %s: %v", id, err)
		return nil, apiError.ErrInternalServerError
	}
	garage.Verified = verified
	return garage, nil
}

func (s *garageService) AdminDeleteGarage(id uuid.UUID) *apiError.Error {
	if _, apiErr := s.GetGarage(id); apiErr != nil {
		return apiErr
	}
	if err := s.garageRepo.DeleteGarage(id); err != nil {
		log.Printf("error deleting garage %s: %v", id, err)
		return apiError.ErrInternalServerError
	}
	return nil
}

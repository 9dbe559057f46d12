package db

import (
	"github.com/garagego/api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GarageRepository interface {
	CreateGarage(garage *models.Garage) (*models.Garage, error)
	GetGarageByID(id uuid.UUID) (*models.Garage, error)
	GetAllGarages(search string) ([]models.Garage, error)
	GetGaragesByOwner(ownerID uuid.UUID) ([]models.Garage, error)
	UpdateGarage(garage *models.Garage) error
	DeleteGarage(id uuid.UUID) error
	SetVerified(id uuid.UUID, verified bool) error
	UpdateAggregates(id uuid.UUID, rating float64, reviewCount int) error
}

type garageRepo struct {
	DB *gorm.DB
}

func NewGarageRepo(db *GormDB) GarageRepository {
	return &garageRepo{db.DB}
}

func (g *garageRepo) CreateGarage(garage *models.Garage) (*models.Garage, error) {
	if err := g.DB.Create(garage).Error; err != nil {
		return nil, err
	}
	return garage, nil
}

func (g *garageRepo) GetGarageByID(id uuid.UUID) (*models.Garage, error) {
	var garage models.Garage
	if err := g.DB.Where("id = ?", id).First(&garage).Error; err != nil {
		return nil, err
	}
	return &garage, nil
}

func (g *garageRepo) GetAllGarages(search string) ([]models.Garage, error) {
	var garages []models.Garage
	query := g.DB.Order("created_at DESC")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", pattern, pattern)
	}
	if err := query.Find(&garages).Error; err != nil {
		return nil, err
	}
	return garages, nil
}

func (g *garageRepo) GetGaragesByOwner(ownerID uuid.UUID) ([]models.Garage, error) {
	var garages []models.Garage
	if err := g.DB.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&garages).Error; err != nil {
		return nil, err
	}
	return garages, nil
}

func (g *garageRepo) UpdateGarage(garage *models.Garage) error {
	return g.DB.Save(garage).Error
}

func (g *garageRepo) DeleteGarage(id uuid.UUID) error {
	return g.DB.Delete(&models.Garage{}, "id = ?", id).Error
}

func (g *garageRepo) SetVerified(id uuid.UUID, verified bool) error {
	result := g.DB.Model(&models.Garage{}).Where("id = ?", id).Update("verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (g *garageRepo) UpdateAggregates(id uuid.UUID, rating float64, reviewCount int) error {
	return g.DB.Model(&models.Garage{}).Where("id = ?", id).
		Updates(map[string]interface{}{"rating": rating, "review_count": reviewCount}).Error
}

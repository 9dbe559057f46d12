package db

import (
	"github.com/garagego/api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SparePartRepository interface {
	CreateSparePart(part *models.SparePart) (*models.SparePart, error)
	GetSparePartByID(id uuid.UUID) (*models.SparePart, error)
	GetAllSpareParts(filter models.SparePartFilter) ([]models.SparePart, error)
	GetSparePartsBySeller(sellerID uuid.UUID) ([]models.SparePart, error)
	UpdateSparePart(part *models.SparePart) error
	DeleteSparePart(id uuid.UUID) error
	SetAvailability(id uuid.UUID, available bool) error
	UpdateAggregates(id uuid.UUID, rating float64, reviewCount int) error
}

type sparePartRepo struct {
	DB *gorm.DB
}

func NewSparePartRepo(db *GormDB) SparePartRepository {
	return &sparePartRepo{db.DB}
}

func (s *sparePartRepo) CreateSparePart(part *models.SparePart) (*models.SparePart, error) {
	if err := s.DB.Create(part).Error; err != nil {
		return nil, err
	}
	return part, nil
}

func (s *sparePartRepo) GetSparePartByID(id uuid.UUID) (*models.SparePart, error) {
	var part models.SparePart
	if err := s.DB.Where("id = ?", id).First(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (s *sparePartRepo) GetAllSpareParts(filter models.SparePartFilter) ([]models.SparePart, error) {
	var parts []models.SparePart
	query := s.DB.Order("created_at DESC")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Condition != "" {
		query = query.Where("condition = ?", filter.Condition)
	}
	if filter.CarModel != "" {
		query = query.Where("car_model = ?", filter.CarModel)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if err := query.Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (s *sparePartRepo) GetSparePartsBySeller(sellerID uuid.UUID) ([]models.SparePart, error) {
	var parts []models.SparePart
	if err := s.DB.Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (s *sparePartRepo) UpdateSparePart(part *models.SparePart) error {
	return s.DB.Save(part).Error
}

func (s *sparePartRepo) DeleteSparePart(id uuid.UUID) error {
	return s.DB.Delete(&models.SparePart{}, "id = ?", id).Error
}

func (s *sparePartRepo) SetAvailability(id uuid.UUID, available bool) error {
	result := s.DB.Model(&models.SparePart{}).Where("id = ?", id).Update("available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *sparePartRepo) UpdateAggregates(id uuid.UUID, rating float64, reviewCount int) error {
	return s.DB.Model(&models.SparePart{}).Where("id = ?", id).
		Updates(map[string]interface{}{"rating": rating, "review_count": reviewCount}).Error
}

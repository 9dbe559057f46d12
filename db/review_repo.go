package db

import (
	"github.com/garagego/api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	CreateReview(review *models.Review) (*models.Review, error)
	GetReviewsByGarage(garageID uuid.UUID) ([]models.Review, error)
	GetReviewsBySparePart(sparePartID uuid.UUID) ([]models.Review, error)
}

type reviewRepo struct {
	DB *gorm.DB
}

func NewReviewRepo(db *GormDB) ReviewRepository {
	return &reviewRepo{db.DB}
}

func (r *reviewRepo) CreateReview(review *models.Review) (*models.Review, error) {
	if err := r.DB.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *reviewRepo) GetReviewsByGarage(garageID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.DB.Where("garage_id = ?", garageID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepo) GetReviewsBySparePart(sparePartID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.DB.Where("spare_part_id = ?", sparePartID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

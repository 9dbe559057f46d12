package services

import (
	"log"
	"math"

	"github.com/garagego/api/config"
	"github.com/garagego/api/db"
	apiError "github.com/garagego/api/errors"
	"github.com/garagego/api/models"
	"github.com/google/uuid"
)

type ReviewService interface {
	ReviewGarage(reviewerID, garageID uuid.UUID, request *models.ReviewRequest) (*models.Review, *apiError.Error)
	ReviewSparePart(reviewerID, sparePartID uuid.UUID, request *models.ReviewRequest) (*models.Review, *apiError.Error)
	ListGarageReviews(garageID uuid.UUID) ([]models.Review, *apiError.Error)
	ListSparePartReviews(sparePartID uuid.UUID) ([]models.Review, *apiError.Error)
}

type reviewService struct {
	Config     *config.Config
	reviewRepo db.ReviewRepository
	garageRepo db.GarageRepository
	partRepo   db.SparePartRepository
}

func NewReviewService(reviewRepo db.ReviewRepository, garageRepo db.GarageRepository, partRepo db.SparePartRepository, conf *config.Config) ReviewService {
	return &reviewService{
		Config:     conf,
		reviewRepo: reviewRepo,
		garageRepo: garageRepo,
		partRepo:   partRepo,
	}
}

// ReviewGarage stores the review and then recomputes the garage's rating and
// review count from the review rows in one authoritative pass. The stored
// aggregate is derived, never independently authored.
func (s *reviewService) ReviewGarage(reviewerID, garageID uuid.UUID, request *models.ReviewRequest) (*models.Review, *apiError.Error) {
	if _, err := s.garageRepo.GetGarageByID(garageID); err != nil {
		return nil, apiError.ErrNotFound
	}

	review, err := s.reviewRepo.CreateReview(&models.Review{
		ReviewerID: reviewerID,
		GarageID:   &garageID,
		Rating:     request.Rating,
		Comment:    request.Comment,
	})
	if err != nil {
		log.Printf("error creating garage review: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	reviews, err := s.reviewRepo.GetReviewsByGarage(garageID)
	if err != nil {
		log.Printf("error recomputing garage aggregates: %v", err)
		return review, nil
	}
	rating, count := Aggregate(reviews)
	if err := s.garageRepo.UpdateAggregates(garageID, rating, count); err != nil {
		log.Printf("error persisting garage aggregates: %v", err)
	}

	return review, nil
}

func (s *reviewService) ReviewSparePart(reviewerID, sparePartID uuid.UUID, request *models.ReviewRequest) (*models.Review, *apiError.Error) {
	if _, err := s.partRepo.GetSparePartByID(sparePartID); err != nil {
		return nil, apiError.ErrNotFound
	}

	review, err := s.reviewRepo.CreateReview(&models.Review{
		ReviewerID:  reviewerID,
		SparePartID: &sparePartID,
		Rating:      request.Rating,
		Comment:     request.Comment,
	})
	if err != nil {
		log.Printf("error creating spare part review: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	reviews, err := s.reviewRepo.GetReviewsBySparePart(sparePartID)
	if err != nil {
		log.Printf("error recomputing spare part aggregates: %v", err)
		return review, nil
	}
	rating, count := Aggregate(reviews)
	if err := s.partRepo.UpdateAggregates(sparePartID, rating, count); err != nil {
		log.Printf("error persisting spare part aggregates: %v", err)
	}

	return review, nil
}

func (s *reviewService) ListGarageReviews(garageID uuid.UUID) ([]models.Review, *apiError.Error) {
	reviews, err := s.reviewRepo.GetReviewsByGarage(garageID)
	if err != nil {
		log.Printf("error listing garage reviews: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return reviews, nil
}

func (s *reviewService) ListSparePartReviews(sparePartID uuid.UUID) ([]models.Review, *apiError.Error) {
	reviews, err := s.reviewRepo.GetReviewsBySparePart(sparePartID)
	if err != nil {
		log.Printf("error listing spare part reviews: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return reviews, nil
}

// Aggregate derives the average rating (rounded to one decimal) and the
// review count. No reviews means 0 and 0.
func Aggregate(reviews []models.Review) (float64, int) {
	count := len(reviews)
	if count == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(count)
	return math.Round(avg*10) / 10, count
}

package services

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagego/api/config"
	"github.com/garagego/api/models"
)

type fakeReviewRepo struct {
	reviews []models.Review
}

func (f *fakeReviewRepo) CreateReview(review *models.Review) (*models.Review, error) {
	review.ID = uuid.New()
	f.reviews = append(f.reviews, *review)
	return review, nil
}

func (f *fakeReviewRepo) GetReviewsByGarage(garageID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.GarageID != nil && *r.GarageID == garageID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) GetReviewsBySparePart(sparePartID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.SparePartID != nil && *r.SparePartID == sparePartID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeGarageRepo struct {
	garages map[uuid.UUID]*models.Garage

	lastRating float64
	lastCount  int
}

func (f *fakeGarageRepo) CreateGarage(garage *models.Garage) (*models.Garage, error) {
	garage.ID = uuid.New()
	f.garages[garage.ID] = garage
	return garage, nil
}

func (f *fakeGarageRepo) GetGarageByID(id uuid.UUID) (*models.Garage, error) {
	g, ok := f.garages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (f *fakeGarageRepo) GetAllGarages(search string) ([]models.Garage, error) { return nil, nil }
func (f *fakeGarageRepo) GetGaragesByOwner(ownerID uuid.UUID) ([]models.Garage, error) {
	return nil, nil
}
func (f *fakeGarageRepo) UpdateGarage(garage *models.Garage) error { return nil }
func (f *fakeGarageRepo) DeleteGarage(id uuid.UUID) error { return nil }
func (f *fakeGarageRepo) SetVerified(id uuid.UUID, verified bool) error { return nil }
func (f *fakeGarageRepo) UpdateAggregates(id uuid.UUID, rating float64, reviewCount int) error {
	if g, ok := f.garages[id]; ok {
		g.Rating = rating
		g.ReviewCount = reviewCount
	}
	f.lastRating = rating
	f.lastCount = reviewCount
	return nil
}

type fakeSparePartRepo struct {
	parts map[uuid.UUID]*models.SparePart

	lastRating float64
	lastCount  int
}

func (f *fakeSparePartRepo) CreateSparePart(part *models.SparePart) (*models.SparePart, error) {
	part.ID = uuid.New()
	f.parts[part.ID] = part
	return part, nil
}

func (f *fakeSparePartRepo) GetSparePartByID(id uuid.UUID) (*models.SparePart, error) {
	p, ok := f.parts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeSparePartRepo) GetAllSpareParts(filter models.SparePartFilter) ([]models.SparePart, error) {
	return nil, nil
}
func (f *fakeSparePartRepo) GetSparePartsBySeller(sellerID uuid.UUID) ([]models.SparePart, error) {
	return nil, nil
}
func (f *fakeSparePartRepo) UpdateSparePart(part *models.SparePart) error { return nil }
func (f *fakeSparePartRepo) DeleteSparePart(id uuid.UUID) error { return nil }
func (f *fakeSparePartRepo) SetAvailability(id uuid.UUID, available bool) error { return nil }
func (f *fakeSparePartRepo) UpdateAggregates(id uuid.UUID, rating float64, reviewCount int) error {
	f.lastRating = rating
	f.lastCount = reviewCount
	return nil
}

func newReviewFixture() (*fakeReviewRepo, *fakeGarageRepo, *fakeSparePartRepo, ReviewService) {
	reviews := &fakeReviewRepo{}
	garages := &fakeGarageRepo{garages: map[uuid.UUID]*models.Garage{}}
	parts := &fakeSparePartRepo{parts: map[uuid.UUID]*models.SparePart{}}
	return reviews, garages, parts, NewReviewService(reviews, garages, parts, &config.Config{})
}

func TestAggregate(t *testing.T) {
	if rating, count := Aggregate(nil); rating != 0 || count != 0 {
		t.Errorf("empty aggregate = (%v, %d), want (0, 0)", rating, count)
	}

	reviews := []models.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}
	rating, count := Aggregate(reviews)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	// 13/3 = 4.333..., one decimal
	if rating != 4.3 {
		t.Errorf("rating = %v, want 4.3", rating)
	}
}

func TestReviewGarageRecomputesAggregates(t *testing.T) {
	_, garages, _, svc := newReviewFixture()
	garage, _ := garages.CreateGarage(&models.Garage{Name: "Bole Auto"})

	review, apiErr := svc.ReviewGarage(uuid.New(), garage.ID, &models.ReviewRequest{Rating: 4, Comment: "solid work"})
	if apiErr != nil {
		t.Fatalf("ReviewGarage failed: %v", apiErr)
	}
	if review.GarageID == nil || *review.GarageID != garage.ID {
		t.Error("review not attached to the garage")
	}
	if garages.lastRating != 4.0 || garages.lastCount != 1 {
		t.Errorf("aggregates = (%v, %d), want (4.0, 1)", garages.lastRating, garages.lastCount)
	}

	if _, apiErr := svc.ReviewGarage(uuid.New(), garage.ID, &models.ReviewRequest{Rating: 5}); apiErr != nil {
		t.Fatalf("second review failed: %v", apiErr)
	}
	if garages.lastRating != 4.5 || garages.lastCount != 2 {
		t.Errorf("aggregates after second review = (%v, %d), want (4.5, 2)", garages.lastRating, garages.lastCount)
	}
}

func TestReviewGarageUnknownGarage(t *testing.T) {
	reviews, _, _, svc := newReviewFixture()

	if _, apiErr := svc.ReviewGarage(uuid.New(), uuid.New(), &models.ReviewRequest{Rating: 3}); apiErr == nil {
		t.Fatal("expected not-found error for unknown garage")
	}
	if len(reviews.reviews) != 0 {
		t.Error("review stored for a garage that does not exist")
	}
}

func TestReviewSparePartRecomputesAggregates(t *testing.T) {
	_, _, parts, svc := newReviewFixture()
	part, _ := parts.CreateSparePart(&models.SparePart{Name: "Corolla brake pads"})

	if _, apiErr := svc.ReviewSparePart(uuid.New(), part.ID, &models.ReviewRequest{Rating: 2}); apiErr != nil {
		t.Fatalf("ReviewSparePart failed: %v", apiErr)
	}
	if parts.lastRating != 2.0 || parts.lastCount != 1 {
		t.Errorf("aggregates = (%v, %d), want (2.0, 1)", parts.lastRating, parts.lastCount)
	}
}

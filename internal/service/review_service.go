package service

import (
	"math"
	"strings"

	"go-retail-store/internal/metrics"
	"go-retail-store/internal/model"
	"go-retail-store/internal/repository"
	"go-retail-store/pkg/apperr"

	"github.com/google/uuid"
)

// ReviewView is a review decorated with the reviewer's display name, the
// shape the review endpoints return.
type ReviewView struct {
	ReviewID     string `json:"review_id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
	CustomerName string `json:"customer_name"`
}

// ReviewService sits over the document store. Reviews are created once per
// (customer, product, store) triple and never updated.
type ReviewService interface {
	CreateReview(review *model.Review) error
	ReviewsForProduct(storeID, productID uuid.UUID) ([]ReviewView, error)
	ReviewsWithComments(storeID, productID uuid.UUID) ([]ReviewView, error)
	ReviewsByRating(storeID, productID uuid.UUID, minRating, maxRating int) ([]ReviewView, error)
	ReviewsByCustomer(customerID uuid.UUID) ([]model.Review, error)
	AverageRating(storeID, productID uuid.UUID) (*model.RatingSummary, error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	customerRepo repository.CustomerRepository
	metrics      *metrics.Registry
}

func NewReviewService(rRepo repository.ReviewRepository, cRepo repository.CustomerRepository, reg *metrics.Registry) ReviewService {
	return &reviewService{
		reviewRepo:   rRepo,
		customerRepo: cRepo,
		metrics:      reg,
	}
}

func (s *reviewService) CreateReview(review *model.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return apperr.New(apperr.KindValidation, "rating must be between 1 and 5")
	}
	if review.StoreID == uuid.Nil || review.ProductID == uuid.Nil {
		return apperr.New(apperr.KindValidation, "store and product references are required")
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.ReviewsCreated.Inc()
	}
	return nil
}

func (s *reviewService) ReviewsForProduct(storeID, productID uuid.UUID) ([]ReviewView, error) {
	reviews, err := s.reviewRepo.FindByStoreAndProduct(storeID, productID)
	if err != nil {
		return nil, err
	}
	return s.toViews(reviews), nil
}

func (s *reviewService) ReviewsWithComments(storeID, productID uuid.UUID) ([]ReviewView, error) {
	reviews, err := s.reviewRepo.FindByStoreAndProduct(storeID, productID)
	if err != nil {
		return nil, err
	}
	var commented []model.Review
	for _, rv := range reviews {
		if strings.TrimSpace(rv.Comment) != "" {
			commented = append(commented, rv)
		}
	}
	return s.toViews(commented), nil
}

func (s *reviewService) ReviewsByRating(storeID, productID uuid.UUID, minRating, maxRating int) ([]ReviewView, error) {
	if minRating > maxRating {
		return nil, apperr.New(apperr.KindValidation, "invalid rating range")
	}
	reviews, err := s.reviewRepo.FindByRatingBetween(storeID, productID, minRating, maxRating)
	if err != nil {
		return nil, err
	}
	return s.toViews(reviews), nil
}

func (s *reviewService) ReviewsByCustomer(customerID uuid.UUID) ([]model.Review, error) {
	if customerID == uuid.Nil {
		return nil, apperr.New(apperr.KindValidation, "customer id is required")
	}
	return s.reviewRepo.FindByCustomer(customerID)
}

// AverageRating rounds to two decimal places, matching the historical wire
// format.
func (s *reviewService) AverageRating(storeID, productID uuid.UUID) (*model.RatingSummary, error) {
	reviews, err := s.reviewRepo.FindByStoreAndProduct(storeID, productID)
	if err != nil {
		return nil, err
	}

	summary := &model.RatingSummary{ReviewCount: len(reviews)}
	if len(reviews) == 0 {
		return summary, nil
	}

	var total int
	for _, rv := range reviews {
		total += rv.Rating
	}
	avg := float64(total) / float64(len(reviews))
	summary.AverageRating = math.Round(avg*100) / 100
	return summary, nil
}

func (s *reviewService) toViews(reviews []model.Review) []ReviewView {
	views := make([]ReviewView, 0, len(reviews))
	for _, rv := range reviews {
		views = append(views, ReviewView{
			ReviewID:     rv.ID,
			Rating:       rv.Rating,
			Comment:      rv.Comment,
			CustomerName: s.customerName(rv.CustomerID),
		})
	}
	return views
}

func (s *reviewService) customerName(customerID *uuid.UUID) string {
	if customerID == nil {
		return "Anonymous"
	}
	customer, err := s.customerRepo.FindByID(*customerID)
	if err != nil {
		return "Unknown Customer"
	}
	return customer.Name
}

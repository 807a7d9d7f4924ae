package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

// ReviewRepository is the persistence surface for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListByProperty(ctx context.Context, propertyID int64, limit, offset int) ([]domain.Review, error)
	AverageForProperty(ctx context.Context, propertyID int64) (float64, error)
}

// BookingChecker answers the eligibility question for reviewing.
type BookingChecker interface {
	HasCompletedRentalForProperty(ctx context.Context, renterID, propertyID int64) (bool, error)
}

// PropertyReader verifies the review target exists.
type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

type Service struct {
	reviews    ReviewRepository
	bookings   BookingChecker
	properties PropertyReader
}

func NewService(reviews ReviewRepository, bookings BookingChecker, properties PropertyReader) *Service {
	return &Service{reviews: reviews, bookings: bookings, properties: properties}
}

type CreateReviewRequest struct {
	PropertyID int64  `json:"property" binding:"required"`
	BookingID  int64  `json:"booking"`
	Rating     int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment    string `json:"comment"`
}

// Create records a review. Only renters who completed a rental on the
// property may review it, and only once; the second attempt trips the
// unique index.
func (s *Service) Create(ctx context.Context, renterID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.properties.GetByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	eligible, err := s.bookings.HasCompletedRentalForProperty(ctx, renterID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNotEligible
	}

	rv := &domain.Review{
		PropertyID: req.PropertyID,
		RenterID:   renterID,
		BookingID:  req.BookingID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return rv, nil
}

type PropertyReviews struct {
	Reviews []domain.Review `json:"reviews"`
	Average float64         `json:"average_rating"`
}

func (s *Service) ListByProperty(ctx context.Context, propertyID int64, limit, offset int) (*PropertyReviews, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	reviews, err := s.reviews.ListByProperty(ctx, propertyID, limit, offset)
	if err != nil {
		return nil, err
	}
	avg, err := s.reviews.AverageForProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return &PropertyReviews{Reviews: reviews, Average: avg}, nil
}

// isUniqueViolation recognizes duplicate-key failures from both the
// postgres driver and gorm's sqlite translation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

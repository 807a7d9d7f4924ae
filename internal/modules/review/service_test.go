package review

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

type stubReviewRepo struct {
	created   []domain.Review
	createErr error
	reviews   []domain.Review
	average   float64
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) error {
	if r.createErr != nil {
		return r.createErr
	}
	rv.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *rv)
	return nil
}

func (r *stubReviewRepo) ListByProperty(_ context.Context, _ int64, _, _ int) ([]domain.Review, error) {
	return r.reviews, nil
}

func (r *stubReviewRepo) AverageForProperty(_ context.Context, _ int64) (float64, error) {
	return r.average, nil
}

type stubBookingChecker struct {
	completed bool
}

func (c *stubBookingChecker) HasCompletedRentalForProperty(_ context.Context, _, _ int64) (bool, error) {
	return c.completed, nil
}

type stubPropReader struct {
	exists bool
}

func (r *stubPropReader) GetByID(_ context.Context, id int64) (*domain.Property, error) {
	if !r.exists {
		return nil, gorm.ErrRecordNotFound
	}
	return &domain.Property{ID: id}, nil
}

func TestCreateReviewRequiresCompletedRental(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := NewService(repo, &stubBookingChecker{completed: false}, &stubPropReader{exists: true})

	_, err := svc.Create(context.Background(), 20, CreateReviewRequest{PropertyID: 1, Rating: 5})
	assert.ErrorIs(t, err, ErrNotEligible)
	assert.Empty(t, repo.created)
}

func TestCreateReview(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := NewService(repo, &stubBookingChecker{completed: true}, &stubPropReader{exists: true})

	rv, err := svc.Create(context.Background(), 20, CreateReviewRequest{
		PropertyID: 1, BookingID: 7, Rating: 4, Comment: "solid place",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, rv.Rating)
	assert.Equal(t, int64(20), rv.RenterID)
	require.Len(t, repo.created, 1)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc := NewService(&stubReviewRepo{}, &stubBookingChecker{completed: true}, &stubPropReader{exists: true})

	_, err := svc.Create(context.Background(), 20, CreateReviewRequest{PropertyID: 1, Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.Create(context.Background(), 20, CreateReviewRequest{PropertyID: 1, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestCreateReviewUnknownProperty(t *testing.T) {
	svc := NewService(&stubReviewRepo{}, &stubBookingChecker{completed: true}, &stubPropReader{exists: false})

	_, err := svc.Create(context.Background(), 20, CreateReviewRequest{PropertyID: 404, Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateReviewDuplicate(t *testing.T) {
	for _, dupErr := range []error{
		&pgconn.PgError{Code: "23505"},
		gorm.ErrDuplicatedKey,
	} {
		repo := &stubReviewRepo{createErr: dupErr}
		svc := NewService(repo, &stubBookingChecker{completed: true}, &stubPropReader{exists: true})

		_, err := svc.Create(context.Background(), 20, CreateReviewRequest{PropertyID: 1, Rating: 5})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	}
}

func TestListByPropertyIncludesAverage(t *testing.T) {
	repo := &stubReviewRepo{
		reviews: []domain.Review{{ID: 1, Rating: 5}, {ID: 2, Rating: 4}},
		average: 4.5,
	}
	svc := NewService(repo, &stubBookingChecker{}, &stubPropReader{exists: true})

	out, err := svc.ListByProperty(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, out.Reviews, 2)
	assert.Equal(t, 4.5, out.Average)
}

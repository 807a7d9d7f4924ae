package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

var (
	ErrInvalidStatus = errors.New("verification status must be verified or rejected")
	ErrNotFound      = errors.New("record not found")
)

// UserStore is the admin-side user surface.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateVerificationStatus(ctx context.Context, userID int64, status domain.VerificationStatus) error
}

// PropertyStore is the admin-side property surface.
type PropertyStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
}

type Service struct {
	users      UserStore
	properties PropertyStore
}

func NewService(users UserStore, properties PropertyStore) *Service {
	return &Service{users: users, properties: properties}
}

// SetUserVerification resolves a user's verification review. Only the
// terminal decisions are settable; accounts start as pending on their
// own.
func (s *Service) SetUserVerification(ctx context.Context, userID int64, status domain.VerificationStatus) error {
	if status != domain.VerificationVerified && status != domain.VerificationRejected {
		return ErrInvalidStatus
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.users.UpdateVerificationStatus(ctx, userID, status)
}

// SetPropertyVerification resolves a listing's verification review.
func (s *Service) SetPropertyVerification(ctx context.Context, propertyID int64, status domain.VerificationStatus) error {
	if status != domain.VerificationVerified && status != domain.VerificationRejected {
		return ErrInvalidStatus
	}

	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	p.VerificationStatus = status
	return s.properties.Update(ctx, p)
}

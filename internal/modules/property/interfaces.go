package property

import (
	"context"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
	"github.com/linsok/housing-analyzer-sub000/internal/repository"
)

// PropertyRepository is the persistence surface for listings.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	Update(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, f repository.PropertyFilters) ([]domain.Property, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus) error
	RecordView(ctx context.Context, v *domain.PropertyView) error
}

// UserReader resolves the owner for publish gating.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// FavoriteRepository toggles and lists a user's saved properties.
type FavoriteRepository interface {
	Toggle(ctx context.Context, userID, propertyID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
}

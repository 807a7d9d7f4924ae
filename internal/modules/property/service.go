package property

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
	"github.com/linsok/housing-analyzer-sub000/internal/repository"
)

type Service struct {
	properties PropertyRepository
	users      UserReader
	favorites  FavoriteRepository
}

func NewService(properties PropertyRepository, users UserReader, favorites FavoriteRepository) *Service {
	return &Service{properties: properties, users: users, favorites: favorites}
}

// List returns published, verified listings matching the filters.
func (s *Service) List(ctx context.Context, f repository.PropertyFilters) ([]domain.Property, error) {
	return s.properties.List(ctx, f)
}

// Get returns one property and, for a signed-in viewer, records the
// visit so search-based recommendations have something to work with.
// View recording is best effort.
func (s *Service) Get(ctx context.Context, id, viewerID int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if viewerID != 0 && viewerID != p.OwnerID {
		_ = s.properties.RecordView(ctx, &domain.PropertyView{
			UserID:     viewerID,
			PropertyID: p.ID,
			City:       p.City,
		})
	}

	return p, nil
}

// Create registers a new draft listing for the owner. Listings start as
// drafts and stay invisible until published.
func (s *Service) Create(ctx context.Context, ownerID int64, req CreatePropertyRequest) (*domain.Property, error) {
	p := &domain.Property{
		OwnerID:            ownerID,
		Title:              req.Title,
		Description:        req.Description,
		City:               req.City,
		Address:            req.Address,
		PropertyType:       req.PropertyType,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		AreaSqm:            req.AreaSqm,
		RentPrice:          req.RentPrice,
		DepositAmount:      req.DepositAmount,
		CoverImage:         req.CoverImage,
		BakongAccount:      req.BakongAccount,
		BakongMerchantName: req.BakongMerchantName,
		BakongPhone:        req.BakongPhone,
		Status:             domain.PropertyDraft,
		VerificationStatus: domain.VerificationPending,
	}
	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id, ownerID int64, req UpdatePropertyRequest) (*domain.Property, error) {
	p, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&p.Title, req.Title)
	applyString(&p.Description, req.Description)
	applyString(&p.City, req.City)
	applyString(&p.Address, req.Address)
	applyString(&p.PropertyType, req.PropertyType)
	applyString(&p.CoverImage, req.CoverImage)
	applyString(&p.BakongAccount, req.BakongAccount)
	applyString(&p.BakongMerchantName, req.BakongMerchantName)
	applyString(&p.BakongPhone, req.BakongPhone)
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}
	if req.AreaSqm != nil {
		p.AreaSqm = *req.AreaSqm
	}
	if req.RentPrice != nil {
		if *req.RentPrice <= 0 {
			return nil, ErrValidation
		}
		p.RentPrice = *req.RentPrice
	}
	if req.DepositAmount != nil {
		p.DepositAmount = *req.DepositAmount
	}

	if err := s.properties.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Publish moves a draft to available. Both the owner account and the
// listing must have passed verification.
func (s *Service) Publish(ctx context.Context, id, ownerID int64) (*domain.Property, error) {
	p, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !p.CanPublish(owner) {
		return nil, ErrNotPublishable
	}

	if err := s.properties.UpdateStatus(ctx, p.ID, domain.PropertyAvailable); err != nil {
		return nil, err
	}
	p.Status = domain.PropertyAvailable
	return p, nil
}

// Unpublish takes a listing off the market without deleting it.
func (s *Service) Unpublish(ctx context.Context, id, ownerID int64) (*domain.Property, error) {
	p, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.properties.UpdateStatus(ctx, p.ID, domain.PropertyUnavailable); err != nil {
		return nil, err
	}
	p.Status = domain.PropertyUnavailable
	return p, nil
}

func (s *Service) ListMine(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	return s.properties.ListByOwner(ctx, ownerID)
}

// ToggleFavorite flips the favorite state and reports the new one.
func (s *Service) ToggleFavorite(ctx context.Context, userID, propertyID int64) (bool, error) {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return s.favorites.Toggle(ctx, userID, propertyID)
}

func (s *Service) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}

func (s *Service) getOwned(ctx context.Context, id, ownerID int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return p, nil
}

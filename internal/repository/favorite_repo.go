package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Toggle adds the property to the user's favorites, or removes it when
// already present. Returns true when the property is now a favorite.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, propertyID int64) (bool, error) {
	var existing domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		First(&existing).Error

	if err == nil {
		if err := r.db.WithContext(ctx).Delete(&existing).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	fav := domain.Favorite{UserID: userID, PropertyID: propertyID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	var out []domain.Favorite
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) ListByProperty(ctx context.Context, propertyID int64, limit, offset int) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *ReviewRepository) AverageForProperty(ctx context.Context, propertyID int64) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("property_id = ?", propertyID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}

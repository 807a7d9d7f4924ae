package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// PropertyFilters are the supported /properties/ query params.
type PropertyFilters struct {
	City         string
	PropertyType string
	MinPrice     float64
	MaxPrice     float64
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns published, verified listings matching the filters.
func (r *PropertyRepository) List(ctx context.Context, f PropertyFilters) ([]domain.Property, error) {
	q := r.db.WithContext(ctx).
		Where("status = ? AND verification_status = ?", domain.PropertyAvailable, domain.VerificationVerified)

	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.MinPrice > 0 {
		q = q.Where("rent_price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("rent_price <= ?", f.MaxPrice)
	}

	var out []domain.Property
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	var out []domain.Property
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PropertyRepository) UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Property{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *PropertyRepository) RecordView(ctx context.Context, v *domain.PropertyView) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// visibleScope limits recommendation sources to listings a renter can
// actually book.
func (r *PropertyRepository) visibleScope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.Property{}).
		Where("properties.status = ? AND properties.verification_status = ?",
			domain.PropertyAvailable, domain.VerificationVerified)
}

// MostBooked orders visible properties by their booking count.
func (r *PropertyRepository) MostBooked(ctx context.Context, limit int) ([]domain.Property, error) {
	var out []domain.Property
	err := r.visibleScope(ctx).
		Joins("LEFT JOIN bookings ON bookings.property_id = properties.id").
		Group("properties.id").
		Order("COUNT(bookings.id) DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// HighestRated orders visible properties by their average review rating.
func (r *PropertyRepository) HighestRated(ctx context.Context, limit int) ([]domain.Property, error) {
	var out []domain.Property
	err := r.visibleScope(ctx).
		Joins("JOIN reviews ON reviews.property_id = properties.id").
		Group("properties.id").
		Order("AVG(reviews.rating) DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UserSearchBased returns visible properties in the cities the user
// viewed most recently.
func (r *PropertyRepository) UserSearchBased(ctx context.Context, userID int64, limit int) ([]domain.Property, error) {
	var cities []string
	if err := r.db.WithContext(ctx).Model(&domain.PropertyView{}).
		Where("user_id = ? AND city <> ''", userID).
		Order("created_at DESC").
		Limit(20).
		Distinct().
		Pluck("city", &cities).Error; err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return []domain.Property{}, nil
	}

	var out []domain.Property
	err := r.visibleScope(ctx).
		Where("properties.city IN ?", cities).
		Order("properties.created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// AveragePrice returns visible properties closest to the market-average
// rent.
func (r *PropertyRepository) AveragePrice(ctx context.Context, limit int) ([]domain.Property, error) {
	var avg float64
	if err := r.visibleScope(ctx).
		Select("COALESCE(AVG(rent_price), 0)").
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg == 0 {
		return []domain.Property{}, nil
	}

	var out []domain.Property
	err := r.visibleScope(ctx).
		Order(fmt.Sprintf("ABS(rent_price - %.2f) ASC", avg)).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// Recommended is the aggregate fallback: newest visible listings.
func (r *PropertyRepository) Recommended(ctx context.Context, limit int) ([]domain.Property, error) {
	var out []domain.Property
	err := r.visibleScope(ctx).
		Order("properties.created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                     int64      `gorm:"column:id;primaryKey"`
	PropertyID             int64      `gorm:"column:property_id"`
	RenterID               int64      `gorm:"column:renter_id"`
	BookingType            string     `gorm:"column:booking_type"`
	Status                 string     `gorm:"column:status"`
	StartDate              *time.Time `gorm:"column:start_date"`
	EndDate                *time.Time `gorm:"column:end_date"`
	VisitTime              *time.Time `gorm:"column:visit_time"`
	MonthlyRent            float64    `gorm:"column:monthly_rent"`
	DepositAmount          float64    `gorm:"column:deposit_amount"`
	TotalAmount            float64    `gorm:"column:total_amount"`
	Message                *string    `gorm:"column:message"`
	OwnerNotes             *string    `gorm:"column:owner_notes"`
	TransactionImage       *string    `gorm:"column:transaction_image"`
	TransactionSubmittedAt *time.Time `gorm:"column:transaction_submitted_at"`
	CreatedAt              time.Time  `gorm:"column:created_at"`
	UpdatedAt              time.Time  `gorm:"column:updated_at"`
	ConfirmedAt            *time.Time `gorm:"column:confirmed_at"`
	CompletedAt            *time.Time `gorm:"column:completed_at"`
	CancelledAt            *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	deref := func(p *string) string {
		if p != nil {
			return *p
		}
		return ""
	}

	return &domain.Booking{
		ID:                     m.ID,
		PropertyID:             m.PropertyID,
		RenterID:               m.RenterID,
		BookingType:            domain.BookingType(m.BookingType),
		Status:                 domain.BookingStatus(m.Status),
		StartDate:              m.StartDate,
		EndDate:                m.EndDate,
		VisitTime:              m.VisitTime,
		MonthlyRent:            m.MonthlyRent,
		DepositAmount:          m.DepositAmount,
		TotalAmount:            m.TotalAmount,
		Message:                deref(m.Message),
		OwnerNotes:             deref(m.OwnerNotes),
		TransactionImage:       deref(m.TransactionImage),
		TransactionSubmittedAt: m.TransactionSubmittedAt,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
		ConfirmedAt:            m.ConfirmedAt,
		CompletedAt:            m.CompletedAt,
		CancelledAt:            m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		v := s
		return &v
	}

	return bookingModel{
		ID:                     b.ID,
		PropertyID:             b.PropertyID,
		RenterID:               b.RenterID,
		BookingType:            string(b.BookingType),
		Status:                 string(b.Status),
		StartDate:              b.StartDate,
		EndDate:                b.EndDate,
		VisitTime:              b.VisitTime,
		MonthlyRent:            b.MonthlyRent,
		DepositAmount:          b.DepositAmount,
		TotalAmount:            b.TotalAmount,
		Message:                opt(b.Message),
		OwnerNotes:             opt(b.OwnerNotes),
		TransactionImage:       opt(b.TransactionImage),
		TransactionSubmittedAt: b.TransactionSubmittedAt,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
		ConfirmedAt:            b.ConfirmedAt,
		CompletedAt:            b.CompletedAt,
		CancelledAt:            b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	b.ID = m.ID
	b.CreatedAt = m.CreatedAt
	b.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	b := toDomainBooking(m)
	r.attachRelations(ctx, b)
	return b, nil
}

func (r *BookingRepository) attachRelations(ctx context.Context, b *domain.Booking) {
	var p domain.Property
	if err := r.db.WithContext(ctx).First(&p, b.PropertyID).Error; err == nil {
		b.Property = &p
	}
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, b.RenterID).Error; err == nil {
		u.PasswordHash = ""
		b.Renter = &u
	}
}

// UpdateFields applies a partial update to a booking row.
func (r *BookingRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(fields).Error
}

func (r *BookingRepository) ListByRenter(ctx context.Context, renterID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(ctx, rows), nil
}

// ListByOwner returns bookings against any property of the given owner.
func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("properties.owner_id = ?", ownerID).
		Order("bookings.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(ctx, rows), nil
}

func (r *BookingRepository) toDomainList(ctx context.Context, rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		b := toDomainBooking(m)
		r.attachRelations(ctx, b)
		out = append(out, *b)
	}
	return out
}

// HasCompletedRentalForProperty gates review creation.
func (r *BookingRepository) HasCompletedRentalForProperty(ctx context.Context, renterID, propertyID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("renter_id = ? AND property_id = ? AND booking_type = ? AND status = ?",
			renterID, propertyID, string(domain.BookingRental), string(domain.BookingCompleted)).
		Count(&count).Error
	return count > 0, err
}

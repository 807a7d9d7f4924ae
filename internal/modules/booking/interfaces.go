package booking

import (
	"context"
	"mime/multipart"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

// BookingRepository defines the persistence surface for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	ListByRenter(ctx context.Context, renterID int64) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error)
}

// PropertyReader resolves the property a booking targets.
type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// SessionReader looks up a payment session by its md5 correlation key.
type SessionReader interface {
	Get(ctx context.Context, md5Hash string) (*domain.PaymentSession, error)
	Delete(ctx context.Context, md5Hash string) error
}

// ReceiptUploader stores an uploaded receipt and returns its URL.
type ReceiptUploader interface {
	Upload(file *multipart.FileHeader, folder string) (string, error)
}

// Notifier delivers booking lifecycle notifications, best effort.
type Notifier interface {
	Notify(ctx context.Context, userID int64, t domain.NotificationType, bookingID int64, title, body string) error
}

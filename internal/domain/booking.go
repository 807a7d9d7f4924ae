package domain

import "time"

type BookingType string

const (
	BookingRental BookingType = "rental"
	BookingVisit  BookingType = "visit"
)

type BookingStatus string

const (
	BookingPending         BookingStatus = "pending"
	BookingPendingReview   BookingStatus = "pending_review"
	BookingReviewConfirmed BookingStatus = "review_confirmed"
	BookingConfirmed       BookingStatus = "confirmed"
	BookingCompleted       BookingStatus = "completed"
	BookingCancelled       BookingStatus = "cancelled"
	BookingRejected        BookingStatus = "rejected"
)

type Booking struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	PropertyID  int64         `json:"property_id" gorm:"not null;index" validate:"required"`
	RenterID    int64         `json:"renter_id" gorm:"not null;index" validate:"required"`
	BookingType BookingType   `json:"booking_type" gorm:"type:varchar(10);not null"`
	Status      BookingStatus `json:"status" gorm:"type:varchar(20);default:pending;index"`

	// Rental dates; VisitTime is set for visit bookings instead.
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	VisitTime *time.Time `json:"visit_time,omitempty"`

	// Pricing, rentals only.
	MonthlyRent   float64 `json:"monthly_rent"`
	DepositAmount float64 `json:"deposit_amount"`
	TotalAmount   float64 `json:"total_amount"`

	Message    string `json:"message,omitempty" gorm:"type:text"`
	OwnerNotes string `json:"owner_notes,omitempty" gorm:"type:text"`

	// Payment evidence uploaded by the renter.
	TransactionImage       string     `json:"transaction_image,omitempty"`
	TransactionSubmittedAt *time.Time `json:"transaction_submitted_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Renter   *User     `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
}

func (Booking) TableName() string { return "bookings" }

// HasReceipt reports whether payment evidence has been attached.
func (b *Booking) HasReceipt() bool { return b.TransactionImage != "" }

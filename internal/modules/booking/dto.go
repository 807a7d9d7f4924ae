package booking

import "time"

type CreateBookingRequest struct {
	PropertyID  int64  `json:"property" binding:"required"`
	BookingType string `json:"booking_type" binding:"required,oneof=rental visit"`

	// Rental fields; dates are "2006-01-02".
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	MonthlyRent   float64 `json:"monthly_rent"`
	DepositAmount float64 `json:"deposit_amount"`
	TotalAmount   float64 `json:"total_amount"`

	// Visit field, RFC 3339.
	VisitTime string `json:"visit_time"`

	Message string `json:"message"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// BookingView decorates a booking with its badge metadata and the
// actions the requesting actor may take, so views never keep their own
// status maps.
type BookingView struct {
	ID                     int64      `json:"id"`
	PropertyID             int64      `json:"property_id"`
	RenterID               int64      `json:"renter_id"`
	BookingType            string     `json:"booking_type"`
	Status                 string     `json:"status"`
	StatusLabel            string     `json:"status_label"`
	StatusSeverity         string     `json:"status_severity"`
	AllowedActions         []string   `json:"allowed_actions"`
	StartDate              *time.Time `json:"start_date,omitempty"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	VisitTime              *time.Time `json:"visit_time,omitempty"`
	MonthlyRent            float64    `json:"monthly_rent"`
	DepositAmount          float64    `json:"deposit_amount"`
	TotalAmount            float64    `json:"total_amount"`
	Message                string     `json:"message,omitempty"`
	OwnerNotes             string     `json:"owner_notes,omitempty"`
	TransactionImage       string     `json:"transaction_image,omitempty"`
	TransactionSubmittedAt *time.Time `json:"transaction_submitted_at,omitempty"`
	PropertyTitle          string     `json:"property_title,omitempty"`
	RenterName             string     `json:"renter_name,omitempty"`
	RenterEmail            string     `json:"renter_email,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
}

package domain

import "time"

// PaymentStatus is the status vocabulary observed from the KHQR gateway.
// "PAID" is uppercase on the wire; the rest are lowercase.
type PaymentStatus string

const (
	PaymentVerifying PaymentStatus = "verifying"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentTimeout   PaymentStatus = "timeout"
	PaymentError     PaymentStatus = "error"
)

// PaymentSession is the ephemeral state pairing a generated KHQR code
// with a pending booking. It lives in the session store under its
// MD5Hash and is discarded on receipt upload, timeout or abandonment.
type PaymentSession struct {
	MD5Hash      string        `json:"md5_hash"`
	BookingID    int64         `json:"booking_id,omitempty"`
	PropertyID   int64         `json:"property_id"`
	RenterID     int64         `json:"renter_id"`
	RenterName   string        `json:"renter_name"`
	Amount       float64       `json:"amount"`
	Currency     string        `json:"currency"`
	MerchantName string        `json:"merchant_name"`
	BillNumber   string        `json:"bill_number"`
	Status       PaymentStatus `json:"status"`
	Attempts     int           `json:"attempts"`
	CreatedAt    time.Time     `json:"created_at"`
}

package domain

import "time"

type NotificationType string

const (
	NotifyBookingCreated   NotificationType = "booking_created"
	NotifyBookingConfirmed NotificationType = "booking_confirmed"
	NotifyBookingRejected  NotificationType = "booking_rejected"
	NotifyBookingCompleted NotificationType = "booking_completed"
	NotifyBookingCancelled NotificationType = "booking_cancelled"
	NotifyReceiptSubmitted NotificationType = "receipt_submitted"
)

type Notification struct {
	ID        int64            `json:"id" gorm:"primaryKey"`
	UserID    int64            `json:"user_id" gorm:"not null;index"`
	Type      NotificationType `json:"type" gorm:"type:varchar(32)"`
	Title     string           `json:"title"`
	Body      string           `json:"body" gorm:"type:text"`
	BookingID *int64           `json:"booking_id,omitempty"`
	IsRead    bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
}

func (Notification) TableName() string { return "notifications" }

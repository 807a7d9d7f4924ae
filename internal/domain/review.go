package domain

import "time"

type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	PropertyID int64     `json:"property_id" gorm:"not null;index;uniqueIndex:idx_property_renter"`
	RenterID   int64     `json:"renter_id" gorm:"not null;uniqueIndex:idx_property_renter"`
	BookingID  int64     `json:"booking_id"`
	Rating     int       `json:"rating" validate:"gte=1,lte=5"`
	Comment    string    `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`

	Renter *User `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
}

func (Review) TableName() string { return "reviews" }

package domain

import "time"

type PropertyStatus string

const (
	PropertyDraft       PropertyStatus = "draft"
	PropertyAvailable   PropertyStatus = "available"
	PropertyRented      PropertyStatus = "rented"
	PropertyUnavailable PropertyStatus = "unavailable"
)

type Property struct {
	ID                 int64              `json:"id" gorm:"primaryKey"`
	OwnerID            int64              `json:"owner_id" gorm:"not null;index"`
	Title              string             `json:"title" gorm:"not null" validate:"required"`
	Description        string             `json:"description" gorm:"type:text"`
	City               string             `json:"city" gorm:"index"`
	Address            string             `json:"address"`
	PropertyType       string             `json:"property_type" gorm:"index"`
	Bedrooms           int                `json:"bedrooms"`
	Bathrooms          int                `json:"bathrooms"`
	AreaSqm            float64            `json:"area_sqm"`
	RentPrice          float64            `json:"rent_price" validate:"gte=0"`
	DepositAmount      float64            `json:"deposit_amount"`
	Status             PropertyStatus     `json:"status" gorm:"type:varchar(16);default:draft"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:varchar(16);default:pending"`
	CoverImage         string             `json:"cover_image"`

	// Per-property KHQR merchant override. Empty fields fall back to the
	// service-wide Bakong config.
	BakongAccount      string `json:"bakong_account,omitempty"`
	BakongMerchantName string `json:"bakong_merchant_name,omitempty"`
	BakongPhone        string `json:"bakong_phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

func (Property) TableName() string { return "properties" }

// CanPublish reports whether a draft may go available: both the owning
// user and the property itself must be verified.
func (p *Property) CanPublish(owner *User) bool {
	if p.Status != PropertyDraft {
		return false
	}
	return owner != nil &&
		owner.VerificationStatus == VerificationVerified &&
		p.VerificationStatus == VerificationVerified
}

// PropertyView records that a user opened a property detail page. Views
// feed the search-based recommendation source.
type PropertyView struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"index"`
	PropertyID int64     `json:"property_id" gorm:"index"`
	City       string    `json:"city"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (PropertyView) TableName() string { return "property_views" }

type Favorite struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_property"`
	PropertyID int64     `json:"property_id" gorm:"not null;index;uniqueIndex:idx_user_property"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

func (Favorite) TableName() string { return "favorites" }

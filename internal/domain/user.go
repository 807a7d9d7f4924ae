package domain

import "time"

type Role string

const (
	RoleRenter Role = "renter"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type User struct {
	ID                 int64              `json:"id" gorm:"primaryKey"`
	Email              string             `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash       string             `json:"-" gorm:"column:password_hash;not null"`
	FullName           string             `json:"full_name"`
	Phone              string             `json:"phone"`
	Role               Role               `json:"role" gorm:"type:varchar(16);default:renter"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:varchar(16);default:pending"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (User) TableName() string { return "users" }

package models

import (
	"time"
)

// User roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered customer or administrator.
type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex" json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Role         string     `gorm:"default:USER" json:"role"`
	IsVerified   bool       `json:"is_verified"`
	Addresses    []Address  `json:"addresses,omitempty"`
	Favorites    []Favorite `json:"favorites,omitempty"`
	Reviews      []Review   `json:"reviews,omitempty"`
	Orders       []Order    `json:"orders,omitempty"`
}

// OTP purposes.
const (
	OTPPurposeEmailVerification = "EMAIL_VERIFICATION"
	OTPPurposePasswordReset     = "PASSWORD_RESET"
)

// OTPCode is a short-lived, single-use code tied to an email address.
type OTPCode struct {
	BaseModel
	Email     string    `gorm:"index" json:"email"`
	Code      string    `json:"code"`
	Purpose   string    `json:"purpose"`
	IsUsed    bool      `json:"is_used"`
	ExpiresAt time.Time `json:"expires_at"`
}

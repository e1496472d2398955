package models

import (
	"github.com/google/uuid"
)

// Review is a product rating left by a user. A user may review a given
// product at most once, enforced by the composite unique index.
type Review struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_user_product" json:"user_id"`
	User       *User     `json:"user,omitempty"`
	ProductID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_user_product" json:"product_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	IsVerified bool      `json:"is_verified"`
}

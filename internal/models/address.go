package models

import (
	"github.com/google/uuid"
)

// Address is a user's saved postal address. At most one address per user
// carries IsDefault, enforced by the handlers rather than the schema.
type Address struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Type          string    `json:"type"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	StreetAddress string    `json:"street_address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	ZipCode       string    `json:"zip_code"`
	Country       string    `gorm:"default:India" json:"country"`
	Phone         string    `json:"phone"`
	IsDefault     bool      `json:"is_default"`
}

// Favorite is a wishlist entry joining a user and a product.
type Favorite struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_favorites_user_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_favorites_user_product" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
}

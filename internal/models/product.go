package models

import (
	"github.com/lib/pq"
)

// Product is a catalog item.
type Product struct {
	BaseModel
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `gorm:"index" json:"category"`
	Subcategory string         `gorm:"index" json:"subcategory"`
	Price       float64        `json:"price"`
	BasePrice   float64        `json:"base_price"`
	Stock       int            `json:"stock"`
	SKU         string         `gorm:"uniqueIndex" json:"sku"`
	Image       string         `json:"image"`
	Images      pq.StringArray `gorm:"type:text[]" json:"images"`
	Sizes       pq.StringArray `gorm:"type:text[]" json:"sizes"`
	Colors      pq.StringArray `gorm:"type:text[]" json:"colors"`
	InStock     bool           `json:"in_stock"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	Reviews     []Review       `json:"reviews,omitempty"`
	Favorites   []Favorite     `json:"favorites,omitempty"`
	OrderItems  []OrderItem    `json:"order_items,omitempty"`
}

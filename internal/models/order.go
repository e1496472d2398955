package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses.
const (
	OrderStatusPending        = "PENDING"
	OrderStatusConfirmed      = "CONFIRMED"
	OrderStatusProcessing     = "PROCESSING"
	OrderStatusShipped        = "SHIPPED"
	OrderStatusOutForDelivery = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      = "DELIVERED"
	OrderStatusCancelled      = "CANCELLED"
)

// Payment methods and statuses.
const (
	PaymentMethodCOD    = "COD"
	PaymentMethodCard   = "CARD"
	PaymentMethodUPI    = "UPI"
	PaymentMethodWallet = "WALLET"

	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
)

// Order is a placed purchase. UserID is nil for guest checkouts.
type Order struct {
	BaseModel
	OrderNumber     string         `gorm:"uniqueIndex" json:"order_number"`
	TrackingID      string         `gorm:"uniqueIndex" json:"tracking_id"`
	UserID          *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	User            *User          `json:"user,omitempty"`
	Status          string         `gorm:"default:PENDING" json:"status"`
	PaymentMethod   string         `gorm:"default:COD" json:"payment_method"`
	PaymentStatus   string         `gorm:"default:PENDING" json:"payment_status"`
	Subtotal        float64        `json:"subtotal"`
	Shipping        float64        `json:"shipping"`
	Tax             float64        `json:"tax"`
	Total           float64        `json:"total"`
	ShippingAddress string         `json:"shipping_address"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerEmail   string         `json:"customer_email"`
	Items           []OrderItem    `json:"items,omitempty"`
	Tracking        *OrderTracking `json:"tracking,omitempty"`
}

// OrderItem is a line item with a price snapshot taken at purchase time.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Size      string    `json:"size"`
}

// OrderTracking holds the delivery progress for one order.
type OrderTracking struct {
	BaseModel
	OrderID     uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"order_id"`
	Status      string         `gorm:"default:CREATED" json:"status"`
	CurrentStep int            `json:"current_step"`
	Steps       []TrackingStep `gorm:"foreignKey:TrackingID" json:"steps,omitempty"`
}

// TrackingStep is a single event on an order's tracking timeline.
type TrackingStep struct {
	BaseModel
	TrackingID  uuid.UUID `gorm:"type:uuid;index" json:"tracking_id"`
	Step        string    `json:"step"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	Timestamp   time.Time `json:"timestamp"`
}

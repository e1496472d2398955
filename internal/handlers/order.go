package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SahilGarg15/StyleHub/internal/middleware"
	"github.com/SahilGarg15/StyleHub/internal/models"
	"github.com/SahilGarg15/StyleHub/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	db *gorm.DB
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	ShippingAddress string             `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerEmail   string             `json:"customer_email"`
}

// CreateOrder places an order. Authenticated callers get the order attached
// to their account; everyone else checks out as a guest. The order, its
// items, the tracking record and the first tracking step commit in a single
// transaction.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "order must contain at least one item")
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCOD
	}

	paymentStatus := models.PaymentStatusPaid
	if paymentMethod == models.PaymentMethodCOD {
		paymentStatus = models.PaymentStatusPending
	}

	// Price snapshot: unit prices come from the product rows as they are
	// right now. Later price changes never touch placed orders.
	var subtotal float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product id "+item.ProductID)
		}

		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		var product models.Product
		if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound,
					fmt.Sprintf("product %s not found", item.ProductID))
			}
			return err
		}

		subtotal += product.Price * float64(quantity)
		items = append(items, models.OrderItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price,
			Size:      item.Size,
		})
	}

	totals := utils.ComputeTotals(subtotal)

	order := models.Order{
		OrderNumber:     utils.GenerateOrderNumber(),
		TrackingID:      utils.GenerateTrackingID(),
		Status:          models.OrderStatusPending,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   paymentStatus,
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		Total:           totals.Total,
		ShippingAddress: req.ShippingAddress,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		Items:           items,
	}

	if identity, ok := middleware.GetIdentity(c); ok {
		userID := identity.UserID
		order.UserID = &userID
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		tracking := models.OrderTracking{
			OrderID:     order.ID,
			Status:      "CREATED",
			CurrentStep: 0,
		}
		if err := tx.Create(&tracking).Error; err != nil {
			return err
		}

		step := models.TrackingStep{
			TrackingID:  tracking.ID,
			Step:        "Order Placed",
			Description: "Your order has been received",
			IsCompleted: true,
			Timestamp:   time.Now(),
		}
		return tx.Create(&step).Error
	}); err != nil {
		return err
	}

	full, err := h.loadOrder("id = ?", order.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "order": full})
}

// ListOrders returns the authenticated user's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var orders []models.Order
	if err := h.db.Where("user_id = ?", identity.UserID).
		Preload("Items").Preload("Items.Product").Preload("Tracking").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "results": len(orders), "orders": orders})
}

// GetOrder returns one order by internal id. Owned orders are visible to
// their owner and admins only; guest orders are open.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.loadOrder("id = ?", id)
	if err != nil {
		return err
	}

	if order.UserID != nil {
		identity, ok := middleware.GetIdentity(c)
		if ok && *order.UserID != identity.UserID && identity.Role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "you do not have permission to view this order")
		}
	}

	return c.JSON(fiber.Map{"success": true, "order": order})
}

// GetOrderByNumber returns one order by its human-readable number. The
// lookup is open so customers can check a purchase without logging in.
func (h *OrderHandler) GetOrderByNumber(c *fiber.Ctx) error {
	order, err := h.loadOrder("order_number = ?", c.Params("orderNumber"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "order": order})
}

// TrackOrder resolves the path parameter against all three identifier
// spaces in a fixed sequence: tracking id, then internal id, then order
// number. The first match wins.
func (h *OrderHandler) TrackOrder(c *fiber.Ctx) error {
	ref := c.Params("id")

	order, err := h.loadOrder("tracking_id = ?", ref)
	if err == nil {
		return c.JSON(fiber.Map{"success": true, "order": order})
	}
	if !isNotFound(err) {
		return err
	}

	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		order, err = h.loadOrder("id = ?", id)
		if err == nil {
			return c.JSON(fiber.Map{"success": true, "order": order})
		}
		if !isNotFound(err) {
			return err
		}
	}

	order, err = h.loadOrder("order_number = ?", ref)
	if err == nil {
		return c.JSON(fiber.Map{"success": true, "order": order})
	}
	if !isNotFound(err) {
		return err
	}

	return fiber.NewError(fiber.StatusNotFound,
		"order not found, please check your order ID or tracking ID")
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

var validStatuses = map[string]bool{
	models.OrderStatusPending:        true,
	models.OrderStatusConfirmed:      true,
	models.OrderStatusProcessing:     true,
	models.OrderStatusShipped:        true,
	models.OrderStatusOutForDelivery: true,
	models.OrderStatusDelivered:      true,
	models.OrderStatusCancelled:      true,
}

// UpdateOrderStatus moves an order through its lifecycle (admin only) and
// appends a tracking step recording the change.
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Status == "" {
		return fiber.NewError(fiber.StatusBadRequest, "status is required")
	}
	if !validStatuses[req.Status] {
		return fiber.NewError(fiber.StatusBadRequest, "unknown status "+req.Status)
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Order{}).Where("id = ?", id).Update("status", req.Status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}

		var tracking models.OrderTracking
		if err := tx.Where("order_id = ?", id).First(&tracking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		updates := map[string]interface{}{
			"status":       req.Status,
			"current_step": tracking.CurrentStep + 1,
		}
		if err := tx.Model(&tracking).Updates(updates).Error; err != nil {
			return err
		}

		step := models.TrackingStep{
			TrackingID:  tracking.ID,
			Step:        req.Status,
			Description: "Order status updated to " + req.Status,
			IsCompleted: true,
			Timestamp:   time.Now(),
		}
		return tx.Create(&step).Error
	}); err != nil {
		return err
	}

	order, err := h.loadOrder("id = ?", id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "order": order})
}

// loadOrder fetches a single order with items, products and the full
// tracking timeline.
func (h *OrderHandler) loadOrder(condition string, value interface{}) (*models.Order, error) {
	var order models.Order
	err := h.db.Preload("Items").Preload("Items.Product").
		Preload("Tracking").
		Preload("Tracking.Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp asc")
		}).
		First(&order, condition, value).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return nil, err
	}
	return &order, nil
}

func isNotFound(err error) bool {
	fiberErr, ok := err.(*fiber.Error)
	return ok && fiberErr.Code == fiber.StatusNotFound
}

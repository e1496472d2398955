package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SahilGarg15/StyleHub/internal/middleware"
	"github.com/SahilGarg15/StyleHub/internal/models"
)

// UserHandler manages profile, address and favorite endpoints.
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", identity.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "user": publicUser(user)})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfile updates the user's name and phone.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", identity.UserID).
		Updates(updates).Error; err != nil {
		return err
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", identity.UserID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "user": publicUser(user)})
}

// Address endpoints

// ListAddresses returns the user's addresses, default first.
func (h *UserHandler) ListAddresses(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var addresses []models.Address
	if err := h.db.Where("user_id = ?", identity.UserID).
		Order("is_default desc, created_at desc").
		Find(&addresses).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "results": len(addresses), "addresses": addresses})
}

type addressRequest struct {
	Type          string `json:"type"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	IsDefault     bool   `json:"is_default"`
}

// CreateAddress saves an address. A new default clears any previous one in
// the same transaction so a user never holds two defaults.
func (h *UserHandler) CreateAddress(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.FirstName == "" || req.StreetAddress == "" || req.City == "" ||
		req.State == "" || req.ZipCode == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required address fields")
	}

	country := req.Country
	if country == "" {
		country = "India"
	}

	address := models.Address{
		UserID:        identity.UserID,
		Type:          req.Type,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Country:       country,
		Phone:         req.Phone,
		IsDefault:     req.IsDefault,
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND is_default = true", identity.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	}); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "address": address})
}

// UpdateAddress edits one of the user's addresses.
func (h *UserHandler) UpdateAddress(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	addrID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var address models.Address
	if err := h.db.First(&address, "id = ? AND user_id = ?", addrID, identity.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "address not found")
		}
		return err
	}

	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	address.Type = req.Type
	address.FirstName = req.FirstName
	address.LastName = req.LastName
	address.StreetAddress = req.StreetAddress
	address.City = req.City
	address.State = req.State
	address.ZipCode = req.ZipCode
	if req.Country != "" {
		address.Country = req.Country
	}
	address.Phone = req.Phone
	address.IsDefault = req.IsDefault

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND is_default = true AND id != ?", identity.UserID, addrID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&address).Error
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "address": address})
}

// DeleteAddress removes one of the user's addresses.
func (h *UserHandler) DeleteAddress(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	addrID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Where("id = ? AND user_id = ?", addrID, identity.UserID).
		Delete(&models.Address{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "address not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Favorite endpoints

// ListFavorites returns the user's wishlist with product details.
func (h *UserHandler) ListFavorites(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var favorites []models.Favorite
	if err := h.db.Where("user_id = ?", identity.UserID).
		Preload("Product").
		Order("created_at desc").
		Find(&favorites).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "results": len(favorites), "favorites": favorites})
}

// AddFavorite puts a product on the user's wishlist.
func (h *UserHandler) AddFavorite(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	favorite := models.Favorite{
		UserID:    identity.UserID,
		ProductID: productID,
	}

	if err := h.db.Create(&favorite).Error; err != nil {
		if isUniqueViolation(err) {
			return fiber.NewError(fiber.StatusBadRequest, "product is already in favorites")
		}
		return err
	}
	favorite.Product = &product

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "favorite": favorite})
}

// RemoveFavorite takes a product off the user's wishlist.
func (h *UserHandler) RemoveFavorite(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	result := h.db.Where("user_id = ? AND product_id = ?", identity.UserID, productID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "favorite not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

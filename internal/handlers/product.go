package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SahilGarg15/StyleHub/internal/models"
	"github.com/SahilGarg15/StyleHub/internal/utils"
)

// ProductHandler manages catalog endpoints.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// reviewAggregate is the per-product rating summary computed at read time.
type reviewAggregate struct {
	ProductID     uuid.UUID `json:"product_id"`
	ReviewCount   int64     `json:"review_count"`
	AverageRating float64   `json:"average_rating"`
}

// ListProducts returns paginated active products with optional filters and
// read-time review aggregates.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{}).Where("is_active = true")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if subcategory := c.Query("subcategory"); subcategory != "" {
		query = query.Where("subcategory = ?", subcategory)
	}

	if minPrice := c.Query("min_price"); minPrice != "" {
		if val, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", val)
		}
	}

	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if val, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", val)
		}
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", q, q)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Order(utils.ParseSort(c)).
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}

	aggregates, err := h.reviewAggregates(products)
	if err != nil {
		return err
	}

	data := make([]fiber.Map, len(products))
	for i, p := range products {
		agg := aggregates[p.ID]
		data[i] = fiber.Map{
			"product":        p,
			"review_count":   agg.ReviewCount,
			"average_rating": agg.AverageRating,
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetProduct loads a product with its reviews and rating summary.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at desc")
	}).Preload("Reviews.User").
		First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	count := len(product.Reviews)
	var average float64
	if count > 0 {
		var sum int
		for _, r := range product.Reviews {
			sum += r.Rating
		}
		average = utils.Round1(float64(sum) / float64(count))
	}

	reviews := make([]fiber.Map, len(product.Reviews))
	for i, r := range product.Reviews {
		reviews[i] = publicReview(r)
	}
	product.Reviews = nil

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"product":        product,
			"reviews":        reviews,
			"review_count":   count,
			"average_rating": average,
		},
	})
}

// ListProductsByCategory returns the newest active products in a category.
func (h *ProductHandler) ListProductsByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var products []models.Product
	if err := h.db.Where("category = ? AND is_active = true", category).
		Order("created_at desc").
		Limit(limit).
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": products})
}

type productRequest struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Category    string                   `json:"category"`
	Subcategory string                   `json:"subcategory"`
	Price       float64                  `json:"price"`
	BasePrice   float64                  `json:"base_price"`
	Stock       int                      `json:"stock"`
	SKU         string                   `json:"sku"`
	Image       string                   `json:"image"`
	Images      utils.FlexibleStringList `json:"images"`
	Sizes       utils.FlexibleStringList `json:"sizes"`
	Colors      utils.FlexibleStringList `json:"colors"`
	IsActive    *bool                    `json:"is_active"`
}

// CreateProduct adds a catalog item (admin only).
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Price <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "name and a positive price are required")
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Price:       req.Price,
		BasePrice:   req.BasePrice,
		Stock:       req.Stock,
		SKU:         req.SKU,
		Image:       req.Image,
		Images:      []string(req.Images),
		Sizes:       []string(req.Sizes),
		Colors:      []string(req.Colors),
		InStock:     req.Stock > 0,
		IsActive:    true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct replaces a catalog item's fields (admin only).
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var existing models.Product
	if err := h.db.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Category = req.Category
	existing.Subcategory = req.Subcategory
	existing.Price = req.Price
	existing.BasePrice = req.BasePrice
	existing.Stock = req.Stock
	existing.SKU = req.SKU
	existing.Image = req.Image
	existing.Images = []string(req.Images)
	existing.Sizes = []string(req.Sizes)
	existing.Colors = []string(req.Colors)
	existing.InStock = req.Stock > 0
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := h.db.Save(&existing).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": existing})
}

// DeleteProduct removes a catalog item (admin only).
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// reviewAggregates computes count and average rating per product in one
// grouped query.
func (h *ProductHandler) reviewAggregates(products []models.Product) (map[uuid.UUID]reviewAggregate, error) {
	result := make(map[uuid.UUID]reviewAggregate, len(products))
	if len(products) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	var rows []reviewAggregate
	err := h.db.Model(&models.Review{}).
		Select("product_id, count(*) as review_count, COALESCE(AVG(rating), 0) as average_rating").
		Where("product_id IN ?", ids).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		row.AverageRating = utils.Round1(row.AverageRating)
		result[row.ProductID] = row
	}
	return result, nil
}

package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/SahilGarg15/StyleHub/internal/middleware"
	"github.com/SahilGarg15/StyleHub/internal/models"
	"github.com/SahilGarg15/StyleHub/internal/utils"
)

const pgUniqueViolation = "23505"

// ReviewHandler manages product review endpoints.
type ReviewHandler struct {
	db *gorm.DB
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type createReviewRequest struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// CreateReview adds a review. Authenticated users may review a product once;
// anonymous reviewers get a synthesized guest account so the foreign key
// holds, which makes the uniqueness constraint vacuous for guests.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Rating < 1 || req.Rating > 5 {
		return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
	}

	productID, err := uuid.Parse(req.ProductID)
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

	var userID uuid.UUID
	identity, authenticated := middleware.GetIdentity(c)
	if authenticated {
		userID = identity.UserID

		var existing models.Review
		err := h.db.Where("user_id = ? AND product_id = ?", userID, productID).
			First(&existing).Error
		if err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "you have already reviewed this product")
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
	} else {
		guest, err := h.createGuestUser()
		if err != nil {
			return err
		}
		userID = guest.ID
	}

	review := models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := h.db.Create(&review).Error; err != nil {
		// The composite unique index closes the window between the
		// duplicate check and the insert.
		if isUniqueViolation(err) {
			return fiber.NewError(fiber.StatusBadRequest, "you have already reviewed this product")
		}
		return err
	}

	if err := h.db.Preload("User").First(&review, "id = ?", review.ID).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"review":  publicReview(review),
	})
}

// ListProductReviews returns all reviews for a product, newest first.
func (h *ReviewHandler) ListProductReviews(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var reviews []models.Review
	if err := h.db.Where("product_id = ?", productID).
		Preload("User").
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return err
	}

	var average float64
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		average = utils.Round1(float64(sum) / float64(len(reviews)))
	}

	data := make([]fiber.Map, len(reviews))
	for i, r := range reviews {
		data[i] = publicReview(r)
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"results":        len(reviews),
		"average_rating": average,
		"reviews":        data,
	})
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// UpdateReview edits a review. Only the owner may update it.
func (h *ReviewHandler) UpdateReview(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "you must be logged in to update a review")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var review models.Review
	if err := h.db.First(&review, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "review not found")
		}
		return err
	}

	if review.UserID != identity.UserID {
		return fiber.NewError(fiber.StatusForbidden, "you can only update your own reviews")
	}

	var req updateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := h.db.Save(&review).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "review": publicReview(review)})
}

// DeleteReview removes a review. The owner or an admin may delete it.
func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "you must be logged in to delete a review")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var review models.Review
	if err := h.db.First(&review, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "review not found")
		}
		return err
	}

	if review.UserID != identity.UserID && identity.Role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "you can only delete your own reviews")
	}

	if err := h.db.Delete(&review).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// createGuestUser synthesizes a throwaway account for an anonymous
// reviewer. The email embeds a nanosecond timestamp plus random suffix so
// concurrent guests never collide.
func (h *ReviewHandler) createGuestUser() (*models.User, error) {
	otp, err := utils.GenerateOTP()
	if err != nil {
		return nil, err
	}

	guest := models.User{
		Email:        fmt.Sprintf("guest-%d-%s@stylehub.local", time.Now().UnixNano(), otp),
		PasswordHash: "guest",
		Name:         "Anonymous User",
		Role:         models.RoleUser,
	}

	if err := h.db.Create(&guest).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return false
}

func publicReview(r models.Review) fiber.Map {
	userName := "Anonymous"
	if r.User != nil && r.User.Name != "" {
		userName = r.User.Name
	}

	return fiber.Map{
		"id":         r.ID,
		"product_id": r.ProductID,
		"user_id":    r.UserID,
		"user_name":  userName,
		"rating":     r.Rating,
		"comment":    r.Comment,
		"verified":   r.IsVerified,
		"date":       r.CreatedAt,
	}
}

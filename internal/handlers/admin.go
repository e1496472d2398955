package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SahilGarg15/StyleHub/internal/services"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	apiKeys *services.APIKeyService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(apiKeys *services.APIKeyService) *AdminHandler {
	return &AdminHandler{apiKeys: apiKeys}
}

// ListAPIKeys returns all partner keys, including revoked ones.
func (h *AdminHandler) ListAPIKeys(c *fiber.Ctx) error {
	keys, err := h.apiKeys.List()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": keys})
}

type createAPIKeyRequest struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// CreateAPIKey stores a partner key. When the body omits the key a random
// one is generated and returned once in the response.
func (h *AdminHandler) CreateAPIKey(c *fiber.Ctx) error {
	var req createAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Label == "" {
		return fiber.NewError(fiber.StatusBadRequest, "label is required")
	}

	record, err := h.apiKeys.Create(req.Key, req.Label)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":      record.ID,
			"key":     record.Key,
			"label":   record.Label,
			"revoked": record.Revoked,
		},
	})
}

// RevokeAPIKey disables a partner key without deleting its audit trail.
func (h *AdminHandler) RevokeAPIKey(c *fiber.Ctx) error {
	if err := h.apiKeys.Revoke(c.Params("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "api key not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "api key revoked"})
}

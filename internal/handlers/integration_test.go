package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SahilGarg15/StyleHub/internal/config"
	"github.com/SahilGarg15/StyleHub/internal/database"
	"github.com/SahilGarg15/StyleHub/internal/middleware"
	"github.com/SahilGarg15/StyleHub/internal/models"
	"github.com/SahilGarg15/StyleHub/internal/routes"
	"github.com/SahilGarg15/StyleHub/internal/utils"
)

// setupIntegration builds the full app against a real database. Tests that
// use it skip unless TEST_DATABASE_URL is set:
//
//	TEST_DATABASE_URL=postgres://... go test ./internal/handlers/
func setupIntegration(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("integration test - set TEST_DATABASE_URL")
	}

	cfg := &config.Config{
		JWTSecret:    "integration-secret",
		TokenExpires: time.Hour,
		DatabaseURL:  dsn,
	}
	db := database.Connect(dsn)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(false)})
	routes.Register(app, db, cfg)

	return app, db, cfg
}

// createTestUser inserts a user with a unique email and returns it together
// with a signed token.
func createTestUser(t *testing.T, db *gorm.DB, cfg *config.Config, role string) (models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Email:        fmt.Sprintf("user-%d@example.com", time.Now().UnixNano()),
		PasswordHash: hash,
		Name:         "Test User",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(cfg.JWTSecret, user.ID, user.Email, user.Role, cfg.TokenExpires)
	require.NoError(t, err)

	return user, token
}

func createTestProduct(t *testing.T, db *gorm.DB, price float64) models.Product {
	t.Helper()

	product := models.Product{
		Name:     "Classic White Sneakers",
		Category: "Shoes",
		Price:    price,
		Stock:    50,
		SKU:      fmt.Sprintf("IT-%d", time.Now().UnixNano()),
		InStock:  true,
		IsActive: true,
	}
	require.NoError(t, db.Create(&product).Error)

	return product
}

// doJSON issues a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *httpResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return &httpResponse{StatusCode: resp.StatusCode, Body: raw}
}

type httpResponse struct {
	StatusCode int
	Body       []byte
}

func (r *httpResponse) decode(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, out))
}

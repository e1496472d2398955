package handlers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SahilGarg15/StyleHub/internal/models"
)

// A code that matches but has expired, and a code that was already consumed,
// must both be rejected with the uniform 400.
func TestVerifyEmailOTPLifecycleIntegration(t *testing.T) {
	app, db, cfg := setupIntegration(t)
	user, _ := createTestUser(t, db, cfg, models.RoleUser)

	expired := models.OTPCode{
		Email:     user.Email,
		Code:      "111111",
		Purpose:   models.OTPPurposeEmailVerification,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&expired).Error)

	resp := doJSON(t, app, "POST", "/api/auth/verify-email", "", map[string]string{
		"email": user.Email,
		"code":  expired.Code,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	live := models.OTPCode{
		Email:     user.Email,
		Code:      "222222",
		Purpose:   models.OTPPurposeEmailVerification,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, db.Create(&live).Error)

	payload := map[string]string{"email": user.Email, "code": live.Code}

	resp = doJSON(t, app, "POST", "/api/auth/verify-email", "", payload)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var verified models.User
	require.NoError(t, db.First(&verified, "id = ?", user.ID).Error)
	assert.True(t, verified.IsVerified)

	// Codes are single-use.
	resp = doJSON(t, app, "POST", "/api/auth/verify-email", "", payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// An OTP row can outlive its account; verification must not report success
// for an email with no user behind it.
func TestVerifyEmailWithoutAccountIntegration(t *testing.T) {
	app, db, _ := setupIntegration(t)

	email := fmt.Sprintf("ghost-%d@example.com", time.Now().UnixNano())
	otp := models.OTPCode{
		Email:     email,
		Code:      "333333",
		Purpose:   models.OTPPurposeEmailVerification,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, db.Create(&otp).Error)

	resp := doJSON(t, app, "POST", "/api/auth/verify-email", "", map[string]string{
		"email": email,
		"code":  otp.Code,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRegisterDuplicateEmailIntegration(t *testing.T) {
	app, _, _ := setupIntegration(t)

	payload := map[string]string{
		"email":    fmt.Sprintf("dup-%d@example.com", time.Now().UnixNano()),
		"password": "password123",
		"name":     "First Registrant",
	}

	resp := doJSON(t, app, "POST", "/api/auth/register", "", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/auth/register", "", payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

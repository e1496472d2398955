package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SahilGarg15/StyleHub/internal/config"
	"github.com/SahilGarg15/StyleHub/internal/middleware"
	"github.com/SahilGarg15/StyleHub/internal/models"
	"github.com/SahilGarg15/StyleHub/internal/utils"
)

const otpTTL = 10 * time.Minute

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// Register creates a new user account and issues a verification OTP.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email, password and name are required")
	}
	if len(req.Password) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "email already in use")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         models.RoleUser,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// The unique index closes the window between the duplicate check
		// and the insert when two registrations race.
		if isUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "email already in use")
		}
		return err
	}

	if err := h.issueOTP(user.Email, models.OTPPurposeEmailVerification); err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Email, user.Role, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "user registered successfully, please verify your email",
		"token":   token,
		"user":    publicUser(user),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an existing user. Unknown email and wrong password
// return the same message so accounts cannot be enumerated.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
		}
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Email, user.Role, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    publicUser(user),
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
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

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyEmail consumes an EMAIL_VERIFICATION OTP and marks the user verified.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req verifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	otp, err := h.consumableOTP(req.Email, req.Code, models.OTPPurposeEmailVerification)
	if err != nil {
		return err
	}

	result := h.db.Model(&models.User{}).Where("email = ?", req.Email).
		Update("is_verified", true)
	if result.Error != nil {
		return result.Error
	}
	// An OTP row can outlive its account; leave the code unconsumed.
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	if err := h.markOTPUsed(otp); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "email verified successfully"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a PASSWORD_RESET OTP for an existing account.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "no user found with that email")
		}
		return err
	}

	if err := h.issueOTP(user.Email, models.OTPPurposePasswordReset); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "password reset OTP sent to your email"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// ResetPassword consumes a PASSWORD_RESET OTP and replaces the password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.NewPassword) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	otp, err := h.consumableOTP(req.Email, req.Code, models.OTPPurposePasswordReset)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	if err := h.db.Model(&models.User{}).Where("email = ?", req.Email).
		Update("password_hash", hash).Error; err != nil {
		return err
	}

	if err := h.markOTPUsed(otp); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "password reset successfully"})
}

// issueOTP creates and stores a fresh code. Email delivery is handled by
// an external notifier; the code is logged for local development.
func (h *AuthHandler) issueOTP(email, purpose string) error {
	code, err := utils.GenerateOTP()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate code")
	}

	otp := models.OTPCode{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(otpTTL),
	}

	if err := h.db.Create(&otp).Error; err != nil {
		return err
	}

	log.Printf("OTP for %s (%s): %s", email, purpose, code)
	return nil
}

// consumableOTP loads a matching, unused, unexpired code or fails with a
// uniform 400 that does not reveal which condition was violated.
func (h *AuthHandler) consumableOTP(email, code, purpose string) (*models.OTPCode, error) {
	var otp models.OTPCode
	err := h.db.Where("email = ? AND code = ? AND purpose = ? AND is_used = false AND expires_at >= ?",
		email, code, purpose, time.Now()).
		Order("created_at desc").
		First(&otp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid or expired OTP")
		}
		return nil, err
	}
	return &otp, nil
}

func (h *AuthHandler) markOTPUsed(otp *models.OTPCode) error {
	return h.db.Model(otp).Update("is_used", true).Error
}

func publicUser(user models.User) fiber.Map {
	return fiber.Map{
		"id":          user.ID,
		"email":       user.Email,
		"name":        user.Name,
		"phone":       user.Phone,
		"role":        user.Role,
		"is_verified": user.IsVerified,
		"created_at":  user.CreatedAt,
	}
}

package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/SahilGarg15/StyleHub/internal/models"
)

// APIKeyService backs the partner credential store. Keys live in the
// database so they can be listed and revoked without a restart.
type APIKeyService struct {
	db *gorm.DB
}

// NewAPIKeyService constructs an APIKeyService.
func NewAPIKeyService(db *gorm.DB) *APIKeyService {
	return &APIKeyService{db: db}
}

// Validate reports whether the key exists and has not been revoked.
func (s *APIKeyService) Validate(key string) (bool, error) {
	var record models.APIKey
	err := s.db.Where("key = ? AND revoked = false", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Seed inserts the bootstrap keys from the environment, skipping any that
// already exist so restarts are idempotent.
func (s *APIKeyService) Seed(keys []string) {
	for _, key := range keys {
		var count int64
		if err := s.db.Model(&models.APIKey{}).Where("key = ?", key).Count(&count).Error; err != nil {
			log.Printf("api key seed lookup failed: %v", err)
			continue
		}
		if count > 0 {
			continue
		}

		record := models.APIKey{Key: key, Label: "bootstrap"}
		if err := s.db.Create(&record).Error; err != nil {
			log.Printf("api key seed insert failed: %v", err)
		}
	}
}

// Create stores a new key. When key is empty a random one is generated
// with the sk_live_ prefix partners expect.
func (s *APIKeyService) Create(key, label string) (*models.APIKey, error) {
	if key == "" {
		generated, err := generateKey()
		if err != nil {
			return nil, err
		}
		key = generated
	}

	record := models.APIKey{Key: key, Label: label}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns all keys, newest first.
func (s *APIKeyService) List() ([]models.APIKey, error) {
	var keys []models.APIKey
	if err := s.db.Order("created_at desc").Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// Revoke soft-disables a key by id.
func (s *APIKeyService) Revoke(id string) error {
	result := s.db.Model(&models.APIKey{}).Where("id = ?", id).Update("revoked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func generateKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "sk_live_stylehub_" + hex.EncodeToString(buf), nil
}

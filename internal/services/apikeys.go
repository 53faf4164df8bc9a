package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"risehub/internal/db"
	"risehub/internal/models"

	"gorm.io/gorm"
)

const apiKeyBytes = 32

// GenerateAPIKey returns "lb_" followed by 64 hex characters.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return models.ApiKeyPrefix + hex.EncodeToString(buf), nil
}

func ListAPIKeys() ([]models.ApiKey, error) {
	var keys []models.ApiKey
	if err := db.DB.Order("created_at DESC").Find(&keys).Error; err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	return keys, nil
}

func CreateAPIKey(name string) (*models.ApiKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	token, err := GenerateAPIKey()
	if err != nil {
		return nil, err
	}
	key := models.ApiKey{Key: token, Name: name, IsActive: true}
	if err := db.DB.Create(&key).Error; err != nil {
		return nil, fmt.Errorf("create api key: %w", err)
	}
	return &key, nil
}

// SetAPIKeyActive is the only revocation mechanism.
func SetAPIKeyActive(id string, active bool) (*models.ApiKey, error) {
	var key models.ApiKey
	if err := db.DB.Where("id = ?", id).First(&key).Error; err != nil {
		return nil, notFound(err, "api key")
	}
	if err := db.DB.Model(&key).Update("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("update api key: %w", err)
	}
	key.IsActive = active
	return &key, nil
}

func DeleteAPIKey(id string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// snapshots keep their data but lose the key reference
		if err := tx.Model(&models.LeaderboardSnapshot{}).Where("api_key_id = ?", id).
			Update("api_key_id", nil).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.ApiKey{}, id)
	})
	return wrapWrite(err, "delete api key")
}

// AuthenticateAPIKey looks the token up by equality and stamps lastUsedAt.
// Missing, unknown and inactive keys all return ErrUnauthorized.
func AuthenticateAPIKey(token string) (*models.ApiKey, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthorized
	}
	var key models.ApiKey
	if err := db.DB.Where("token = ?", token).First(&key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("load api key: %w", err)
	}
	if !key.IsActive {
		return nil, ErrUnauthorized
	}

	now := time.Now()
	if err := db.DB.Model(&key).Update("last_used_at", now).Error; err != nil {
		return nil, fmt.Errorf("touch api key: %w", err)
	}
	key.LastUsedAt = &now
	return &key, nil
}

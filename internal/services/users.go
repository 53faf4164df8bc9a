package services

import (
	"errors"
	"fmt"
	"strings"

	"risehub/internal/db"
	"risehub/internal/models"

	"gorm.io/gorm"
)

// ExternalIdentity is what the login provider tells us about a user.
type ExternalIdentity struct {
	DiscordID string
	Name      string
	Email     string
	Image     string
}

type UserProfile struct {
	*models.User
	PublicBuilds int64 `json:"publicBuilds"`
}

// UpsertDiscordUser finds the user by Discord id (then by email) and refreshes
// name and avatar, creating the user on first login. isAdmin promotes.
func UpsertDiscordUser(id ExternalIdentity, isAdmin bool) (*models.User, error) {
	if id.DiscordID == "" {
		return nil, invalid("missing discord id")
	}
	email := strings.ToLower(strings.TrimSpace(id.Email))
	if email == "" {
		email = id.DiscordID + "@users.discord"
	}

	var user models.User
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("discord_id = ?", id.DiscordID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = tx.Where("email = ?", email).First(&user).Error
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		discordID := id.DiscordID
		user.DiscordID = &discordID
		user.Name = id.Name
		user.Image = id.Image
		if user.ID == "" {
			user.Email = email
			user.Role = models.RoleUser
		}
		if isAdmin {
			user.Role = models.RoleAdmin
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &user, nil
}

func GetUserProfile(id string) (*UserProfile, error) {
	var user models.User
	if err := db.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err, "user")
	}
	var count int64
	if err := db.DB.Model(&models.Build{}).Where("user_id = ? AND is_public = ?", id, true).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count builds: %w", err)
	}
	return &UserProfile{User: &user, PublicBuilds: count}, nil
}

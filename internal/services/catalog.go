package services

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"risehub/internal/db"
	"risehub/internal/models"
	"risehub/internal/utils"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	catalogCachePrefix = "catalog:"
	catalogCacheTTL    = 10 * time.Minute
)

// invalidateCatalog drops every cached catalog read; called after admin writes.
func invalidateCatalog() {
	utils.GetCache().DeletePrefix(catalogCachePrefix)
}

// cachedCatalog serves load through the LRU. An empty key bypasses the cache.
func cachedCatalog[T any](key string, load func() (T, error)) (T, error) {
	if key == "" {
		return load()
	}
	key = catalogCachePrefix + key
	if v, ok := utils.GetCache().Get(key).(T); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	utils.GetCache().Set(key, v, catalogCacheTTL)
	return v, nil
}

// catalogKey escapes each part so distinct filter values never share a key.
func catalogKey(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.QueryEscape(p)
	}
	return strings.Join(escaped, ":")
}

type CharacterInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func ListCharacters() ([]models.Character, error) {
	return cachedCatalog("characters", func() ([]models.Character, error) {
		var chars []models.Character
		if err := db.DB.Order("name ASC").Find(&chars).Error; err != nil {
			return nil, fmt.Errorf("list characters: %w", err)
		}
		return chars, nil
	})
}

func CreateCharacter(in CharacterInput) (*models.Character, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	ch := models.Character{Name: name, Description: in.Description, ImageURL: strings.TrimSpace(in.ImageURL)}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if ch.Slug, err = uniqueSlug(tx, &models.Character{}, name); err != nil {
			return err
		}
		return tx.Create(&ch).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create character: %w", err)
	}
	invalidateCatalog()
	return &ch, nil
}

// DeleteCharacter refuses while builds still reference the character.
func DeleteCharacter(id string) error {
	var used int64
	if err := db.DB.Model(&models.Build{}).Where("character_id = ?", id).Count(&used).Error; err != nil {
		return fmt.Errorf("count builds: %w", err)
	}
	if used > 0 {
		return invalid("character is used by %d builds", used)
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM weapon_characters WHERE character_id = ?", id).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Character{}, id)
	})
	if err != nil {
		return wrapWrite(err, "delete character")
	}
	invalidateCatalog()
	return nil
}

// uniqueSlug derives a slug from name and appends -2, -3... until it is free.
func uniqueSlug(tx *gorm.DB, model interface{}, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "item"
	}
	candidate := base
	for n := 2; ; n++ {
		var count int64
		if err := tx.Model(model).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}

func deleteByID(tx *gorm.DB, model interface{}, id string) error {
	res := tx.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteCatalogRow(model interface{}, id, what string) error {
	if err := deleteByID(db.DB, model, id); err != nil {
		return wrapWrite(err, "delete "+what)
	}
	invalidateCatalog()
	return nil
}

// wrapWrite passes service errors through untouched and wraps store errors.
func wrapWrite(err error, op string) error {
	if err == nil {
		return nil
	}
	var vErr *ValidationError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) || errors.As(err, &vErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

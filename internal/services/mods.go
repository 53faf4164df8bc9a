package services

import (
	"fmt"
	"strings"

	"risehub/internal/db"
	"risehub/internal/models"

	"gorm.io/gorm"
)

type ModInput struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	CombatStyle  string   `json:"combatStyle"`
	Rarity       int      `json:"rarity"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl"`
	AttributeIDs []string `json:"attributeIds"`
	PerkIDs      []string `json:"perkIds"`
}

type ModFilter struct {
	Category    string
	CombatStyle string
}

// equalIfSet is a scope that adds "column = value" only when value is non-empty.
func equalIfSet(column, value string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if value == "" {
			return q
		}
		return q.Where(column+" = ?", value)
	}
}

// ListMods composes the optional equality filters as scopes over the mod
// table and preloads the linked attributes and perks. Only the unfiltered
// list is cached.
func ListMods(f ModFilter) ([]models.WeaponMod, error) {
	key := ""
	if f.Category == "" && f.CombatStyle == "" {
		key = catalogKey("mods")
	}
	return cachedCatalog(key, func() ([]models.WeaponMod, error) {
		var mods []models.WeaponMod
		err := db.DB.
			Scopes(equalIfSet("category", f.Category), equalIfSet("combat_style", f.CombatStyle)).
			Preload("Attributes", func(q *gorm.DB) *gorm.DB { return q.Order("name ASC") }).
			Preload("Perks", func(q *gorm.DB) *gorm.DB { return q.Order("name ASC") }).
			Order("category ASC").Order("name ASC").
			Find(&mods).Error
		if err != nil {
			return nil, fmt.Errorf("list mods: %w", err)
		}
		return mods, nil
	})
}

func CreateMod(in ModInput) (*models.WeaponMod, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	mod := models.WeaponMod{
		Name:        name,
		Category:    strings.TrimSpace(in.Category),
		CombatStyle: strings.TrimSpace(in.CombatStyle),
		Rarity:      in.Rarity,
		Description: in.Description,
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if len(in.AttributeIDs) > 0 {
			if err := tx.Where("id IN ?", in.AttributeIDs).Find(&mod.Attributes).Error; err != nil {
				return err
			}
			if len(mod.Attributes) != len(uniqueStrings(in.AttributeIDs)) {
				return invalid("unknown attribute in attributeIds")
			}
		}
		if len(in.PerkIDs) > 0 {
			if err := tx.Where("id IN ?", in.PerkIDs).Find(&mod.Perks).Error; err != nil {
				return err
			}
			if len(mod.Perks) != len(uniqueStrings(in.PerkIDs)) {
				return invalid("unknown perk in perkIds")
			}
		}
		return tx.Create(&mod).Error
	})
	if err != nil {
		return nil, wrapWrite(err, "create mod")
	}
	invalidateCatalog()
	return &mod, nil
}

func DeleteMod(id string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var mod models.WeaponMod
		if err := tx.Where("id = ?", id).First(&mod).Error; err != nil {
			return notFound(err, "mod")
		}
		if err := tx.Model(&mod).Association("Attributes").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&mod).Association("Perks").Clear(); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM weapon_mod_links WHERE weapon_mod_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&mod).Error
	})
	if err != nil {
		return wrapWrite(err, "delete mod")
	}
	invalidateCatalog()
	return nil
}

type ModAttributeInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func ListModAttributes() ([]models.ModAttribute, error) {
	return cachedCatalog("mod-attributes", func() ([]models.ModAttribute, error) {
		var attrs []models.ModAttribute
		if err := db.DB.Order("name ASC").Find(&attrs).Error; err != nil {
			return nil, fmt.Errorf("list mod attributes: %w", err)
		}
		return attrs, nil
	})
}

func CreateModAttribute(in ModAttributeInput) (*models.ModAttribute, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	var count int64
	if err := db.DB.Model(&models.ModAttribute{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check mod attribute: %w", err)
	}
	if count > 0 {
		return nil, invalid("attribute %q already exists", name)
	}
	attr := models.ModAttribute{Name: name, Description: in.Description}
	if err := db.DB.Create(&attr).Error; err != nil {
		return nil, fmt.Errorf("create mod attribute: %w", err)
	}
	invalidateCatalog()
	return &attr, nil
}

func DeleteModAttribute(id string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM mod_attribute_links WHERE mod_attribute_id = ?", id).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.ModAttribute{}, id)
	})
	if err != nil {
		return wrapWrite(err, "delete mod attribute")
	}
	invalidateCatalog()
	return nil
}


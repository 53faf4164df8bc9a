package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"risehub/internal/db"
	"risehub/internal/models"
	"risehub/internal/utils"

	"gorm.io/gorm"
)

type TraitInput struct {
	Kind        string `json:"kind"`
	Slot        int    `json:"slot"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type PerkAssignmentInput struct {
	PerkID string `json:"perkId"`
	Slot   int    `json:"slot"`
}

type CatalystInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Requirement string `json:"requirement"`
}

type WeaponStats struct {
	Impact      *int `json:"impact"`
	Range       *int `json:"range"`
	Stability   *int `json:"stability"`
	Handling    *int `json:"handling"`
	ReloadSpeed *int `json:"reloadSpeed"`
	Magazine    *int `json:"magazine"`
	RateOfFire  *int `json:"rateOfFire"`
}

type WeaponInput struct {
	Name        string `json:"name"`
	Rarity      int    `json:"rarity"`
	WeaponType  string `json:"weaponType"`
	BasePower   int    `json:"basePower"`
	CombatStyle string `json:"combatStyle"`
	Element     string `json:"element"`
	Slot        string `json:"slot"`
	ImageURL    string `json:"imageUrl"`
	WeaponStats

	Traits       []TraitInput          `json:"traits"`
	Perks        []PerkAssignmentInput `json:"perks"`
	Catalyst     *CatalystInput        `json:"catalyst"`
	ModIDs       []string              `json:"modIds"`
	CharacterIDs []string              `json:"characterIds"`
}

type WeaponUpdateInput struct {
	Name        *string `json:"name"`
	Rarity      *int    `json:"rarity"`
	WeaponType  *string `json:"weaponType"`
	BasePower   *int    `json:"basePower"`
	CombatStyle *string `json:"combatStyle"`
	Element     *string `json:"element"`
	Slot        *string `json:"slot"`
	ImageURL    *string `json:"imageUrl"`
	WeaponStats
}

type WeaponFilter struct {
	Rarity      int
	WeaponType  string
	Slot        string
	CombatStyle string
}

// cacheKey is empty unless every filter is unset or one of the known values;
// free-text filters always go to the database.
func (f WeaponFilter) cacheKey() string {
	if f.WeaponType != "" || f.CombatStyle != "" {
		return ""
	}
	if (f.Slot != "" && !validWeaponSlot(f.Slot)) || (f.Rarity != 0 && !utils.IsValidRarity(f.Rarity)) {
		return ""
	}
	return catalogKey("weapons", strconv.Itoa(f.Rarity), f.Slot)
}

func validWeaponSlot(slot string) bool {
	return slot == models.WeaponSlotPrimary || slot == models.WeaponSlotPower
}

func ListWeapons(f WeaponFilter) ([]models.Weapon, error) {
	return cachedCatalog(f.cacheKey(), func() ([]models.Weapon, error) {
		q := db.DB.Model(&models.Weapon{})
		if f.Rarity != 0 {
			q = q.Where("rarity = ?", f.Rarity)
		}
		if f.WeaponType != "" {
			q = q.Where("weapon_type = ?", f.WeaponType)
		}
		if f.Slot != "" {
			q = q.Where("slot = ?", f.Slot)
		}
		if f.CombatStyle != "" {
			q = q.Where("combat_style = ?", f.CombatStyle)
		}
		var weapons []models.Weapon
		if err := q.Order("rarity DESC").Order("name ASC").Find(&weapons).Error; err != nil {
			return nil, fmt.Errorf("list weapons: %w", err)
		}
		return weapons, nil
	})
}

func GetWeaponBySlug(weaponSlug string) (*models.Weapon, error) {
	return cachedCatalog("weapon:"+weaponSlug, func() (*models.Weapon, error) {
		bySlot := func(db *gorm.DB) *gorm.DB { return db.Order("slot ASC") }
		var w models.Weapon
		err := db.DB.
			Preload("Traits", bySlot).
			Preload("Perks", bySlot).
			Preload("Perks.Perk").
			Preload("Catalyst").
			Preload("Mods").
			Preload("Characters").
			Where("slug = ?", weaponSlug).First(&w).Error
		if err != nil {
			return nil, notFound(err, "weapon")
		}
		return &w, nil
	})
}

func buildTraits(in []TraitInput) ([]models.Trait, error) {
	out := make([]models.Trait, 0, len(in))
	for _, t := range in {
		trait, err := buildTrait(t)
		if err != nil {
			return nil, err
		}
		out = append(out, trait)
	}
	return out, nil
}

// buildTrait checks kind/slot pairing: Intrinsic sits in slot 1, Origin in slot 2.
func buildTrait(t TraitInput) (models.Trait, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return models.Trait{}, invalid("trait name is required")
	}
	slot := t.Slot
	switch t.Kind {
	case models.TraitKindIntrinsic:
		if slot == 0 {
			slot = 1
		}
	case models.TraitKindOrigin:
		if slot == 0 {
			slot = 2
		}
	default:
		return models.Trait{}, invalid("trait kind must be %s or %s", models.TraitKindIntrinsic, models.TraitKindOrigin)
	}
	if slot != 1 && slot != 2 {
		return models.Trait{}, invalid("trait slot must be 1 or 2")
	}
	return models.Trait{
		Kind:        t.Kind,
		Slot:        slot,
		Name:        name,
		Description: t.Description,
		ImageURL:    t.ImageURL,
	}, nil
}

// CreateWeapon writes the weapon, its traits, perk assignments, catalyst and
// link rows in one transaction.
func CreateWeapon(in WeaponInput) (*models.Weapon, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if !utils.IsValidRarity(in.Rarity) {
		return nil, invalid("rarity must be between 3 and 6")
	}
	if !validWeaponSlot(in.Slot) {
		return nil, invalid("slot must be %s or %s", models.WeaponSlotPrimary, models.WeaponSlotPower)
	}
	if in.Catalyst != nil && in.Rarity < models.CatalystMinRarity {
		return nil, invalid("only rarity %d weapons can have a catalyst", models.CatalystMinRarity)
	}
	traits, err := buildTraits(in.Traits)
	if err != nil {
		return nil, err
	}

	weapon := models.Weapon{
		Name:        name,
		Rarity:      in.Rarity,
		WeaponType:  strings.TrimSpace(in.WeaponType),
		BasePower:   in.BasePower,
		CombatStyle: strings.TrimSpace(in.CombatStyle),
		Element:     strings.TrimSpace(in.Element),
		Slot:        in.Slot,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Impact:      in.Impact,
		Range:       in.Range,
		Stability:   in.Stability,
		Handling:    in.Handling,
		ReloadSpeed: in.ReloadSpeed,
		Magazine:    in.Magazine,
		RateOfFire:  in.RateOfFire,
		Traits:      traits,
	}
	if in.Catalyst != nil {
		if strings.TrimSpace(in.Catalyst.Name) == "" {
			return nil, invalid("catalyst name is required")
		}
		weapon.Catalyst = &models.Catalyst{
			Name:        strings.TrimSpace(in.Catalyst.Name),
			Description: in.Catalyst.Description,
			Requirement: in.Catalyst.Requirement,
		}
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if weapon.Slug, err = uniqueSlug(tx, &models.Weapon{}, name); err != nil {
			return err
		}

		for _, p := range in.Perks {
			if p.Slot != 3 && p.Slot != 4 {
				return invalid("perk slot must be 3 or 4")
			}
			var count int64
			if err := tx.Model(&models.Perk{}).Where("id = ?", p.PerkID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return invalid("unknown perk %q", p.PerkID)
			}
			weapon.Perks = append(weapon.Perks, models.PerkAssignment{PerkID: p.PerkID, Slot: p.Slot})
		}

		if len(in.ModIDs) > 0 {
			if err := tx.Where("id IN ?", in.ModIDs).Find(&weapon.Mods).Error; err != nil {
				return err
			}
			if len(weapon.Mods) != len(uniqueStrings(in.ModIDs)) {
				return invalid("unknown mod in modIds")
			}
		}
		if len(in.CharacterIDs) > 0 {
			if err := tx.Where("id IN ?", in.CharacterIDs).Find(&weapon.Characters).Error; err != nil {
				return err
			}
			if len(weapon.Characters) != len(uniqueStrings(in.CharacterIDs)) {
				return invalid("unknown character in characterIds")
			}
		}

		return tx.Create(&weapon).Error
	})
	if err != nil {
		return nil, wrapWrite(err, "create weapon")
	}

	invalidateCatalog()
	return GetWeaponBySlug(weapon.Slug)
}

func UpdateWeapon(id string, in WeaponUpdateInput) (*models.Weapon, error) {
	var weapon models.Weapon
	if err := db.DB.Preload("Catalyst").Where("id = ?", id).First(&weapon).Error; err != nil {
		return nil, notFound(err, "weapon")
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name is required")
		}
		if name != weapon.Name {
			s, err := uniqueSlug(db.DB, &models.Weapon{}, name)
			if err != nil {
				return nil, fmt.Errorf("weapon slug: %w", err)
			}
			updates["name"] = name
			updates["slug"] = s
		}
	}
	if in.Rarity != nil {
		if !utils.IsValidRarity(*in.Rarity) {
			return nil, invalid("rarity must be between 3 and 6")
		}
		if weapon.Catalyst != nil && *in.Rarity < models.CatalystMinRarity {
			return nil, invalid("remove the catalyst before lowering rarity")
		}
		updates["rarity"] = *in.Rarity
	}
	if in.Slot != nil {
		if !validWeaponSlot(*in.Slot) {
			return nil, invalid("slot must be %s or %s", models.WeaponSlotPrimary, models.WeaponSlotPower)
		}
		updates["slot"] = *in.Slot
	}
	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	setString("weapon_type", in.WeaponType)
	setString("combat_style", in.CombatStyle)
	setString("element", in.Element)
	setString("image_url", in.ImageURL)
	if in.BasePower != nil {
		updates["base_power"] = *in.BasePower
	}
	stats := map[string]*int{
		"impact":       in.Impact,
		"range":        in.Range,
		"stability":    in.Stability,
		"handling":     in.Handling,
		"reload_speed": in.ReloadSpeed,
		"magazine":     in.Magazine,
		"rate_of_fire": in.RateOfFire,
	}
	for col, v := range stats {
		if v != nil {
			updates[col] = *v
		}
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&models.Weapon{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update weapon: %w", err)
		}
		invalidateCatalog()
	}
	if s, ok := updates["slug"].(string); ok {
		weapon.Slug = s
	}
	return GetWeaponBySlug(weapon.Slug)
}

func DeleteWeapon(id string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var weapon models.Weapon
		if err := tx.Where("id = ?", id).First(&weapon).Error; err != nil {
			return notFound(err, "weapon")
		}
		if err := tx.Model(&weapon).Association("Mods").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&weapon).Association("Characters").Clear(); err != nil {
			return err
		}
		for _, child := range []interface{}{&models.Trait{}, &models.PerkAssignment{}, &models.Catalyst{}} {
			if err := tx.Where("weapon_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&weapon).Error
	})
	if err != nil {
		return wrapWrite(err, "delete weapon")
	}
	invalidateCatalog()
	return nil
}

func CreateTrait(weaponID string, in TraitInput) (*models.Trait, error) {
	trait, err := buildTrait(in)
	if err != nil {
		return nil, err
	}
	var weapon models.Weapon
	if err := db.DB.Select("id").Where("id = ?", weaponID).First(&weapon).Error; err != nil {
		return nil, notFound(err, "weapon")
	}
	trait.WeaponID = weaponID
	if err := db.DB.Create(&trait).Error; err != nil {
		return nil, fmt.Errorf("create trait: %w", err)
	}
	invalidateCatalog()
	return &trait, nil
}

func DeleteTrait(id string) error {
	return deleteCatalogRow(&models.Trait{}, id, "trait")
}

// UpsertCatalyst sets the catalyst of a rarity 6 weapon, replacing any existing one.
func UpsertCatalyst(weaponID string, in CatalystInput) (*models.Catalyst, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}

	var catalyst models.Catalyst
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var weapon models.Weapon
		if err := tx.Select("id", "rarity").Where("id = ?", weaponID).First(&weapon).Error; err != nil {
			return notFound(err, "weapon")
		}
		if weapon.Rarity < models.CatalystMinRarity {
			return invalid("only rarity %d weapons can have a catalyst", models.CatalystMinRarity)
		}

		err := tx.Where("weapon_id = ?", weaponID).First(&catalyst).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		catalyst.WeaponID = weaponID
		catalyst.Name = name
		catalyst.Description = in.Description
		catalyst.Requirement = in.Requirement
		return tx.Save(&catalyst).Error
	})
	if err != nil {
		return nil, wrapWrite(err, "save catalyst")
	}
	invalidateCatalog()
	return &catalyst, nil
}

func DeleteCatalyst(weaponID string) error {
	res := db.DB.Where("weapon_id = ?", weaponID).Delete(&models.Catalyst{})
	if res.Error != nil {
		return fmt.Errorf("delete catalyst: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	invalidateCatalog()
	return nil
}

type PerkInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Slot        int    `json:"slot"`
}

func ListPerks(slot int) ([]models.Perk, error) {
	key := ""
	if slot == 0 || slot == 3 || slot == 4 {
		key = catalogKey("perks", strconv.Itoa(slot))
	}
	return cachedCatalog(key, func() ([]models.Perk, error) {
		q := db.DB.Order("slot ASC").Order("name ASC")
		if slot != 0 {
			q = q.Where("slot = ?", slot)
		}
		var perks []models.Perk
		if err := q.Find(&perks).Error; err != nil {
			return nil, fmt.Errorf("list perks: %w", err)
		}
		return perks, nil
	})
}

func CreatePerk(in PerkInput) (*models.Perk, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if in.Slot != 3 && in.Slot != 4 {
		return nil, invalid("perk slot must be 3 or 4")
	}
	perk := models.Perk{Name: name, Description: in.Description, ImageURL: strings.TrimSpace(in.ImageURL), Slot: in.Slot}
	if err := db.DB.Create(&perk).Error; err != nil {
		return nil, fmt.Errorf("create perk: %w", err)
	}
	invalidateCatalog()
	return &perk, nil
}

func DeletePerk(id string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("perk_id = ?", id).Delete(&models.PerkAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM mod_perk_links WHERE perk_id = ?", id).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Perk{}, id)
	})
	if err != nil {
		return wrapWrite(err, "delete perk")
	}
	invalidateCatalog()
	return nil
}


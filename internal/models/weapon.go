package models

import (
	"time"
)

const (
	WeaponSlotPrimary = "Primary"
	WeaponSlotPower   = "Power"
)

const (
	TraitKindIntrinsic = "Intrinsic"
	TraitKindOrigin    = "Origin"
)

// CatalystMinRarity is the lowest weapon rarity that can carry a catalyst.
const CatalystMinRarity = 6

type Weapon struct {
	Base
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Rarity      int    `gorm:"not null;index" json:"rarity"` // 3..6
	WeaponType  string `gorm:"size:50;index" json:"weaponType"`
	BasePower   int    `json:"basePower"`
	CombatStyle string `gorm:"size:50;index" json:"combatStyle"`
	Element     string `gorm:"size:50" json:"element"`
	Slot        string `gorm:"size:20;not null;index" json:"slot"`
	ImageURL    string `json:"imageUrl"`

	// Stats are optional; not every weapon page lists them.
	Impact      *int `json:"impact"`
	Range       *int `json:"range"`
	Stability   *int `json:"stability"`
	Handling    *int `json:"handling"`
	ReloadSpeed *int `json:"reloadSpeed"`
	Magazine    *int `json:"magazine"`
	RateOfFire  *int `json:"rateOfFire"`

	UpdatedAt time.Time `json:"updatedAt"`

	Traits     []Trait          `gorm:"constraint:OnDelete:CASCADE;" json:"traits,omitempty"`
	Perks      []PerkAssignment `gorm:"constraint:OnDelete:CASCADE;" json:"perks,omitempty"`
	Catalyst   *Catalyst        `gorm:"constraint:OnDelete:CASCADE;" json:"catalyst,omitempty"`
	Mods       []WeaponMod      `gorm:"many2many:weapon_mod_links;" json:"mods,omitempty"`
	Characters []Character      `gorm:"many2many:weapon_characters;" json:"characters,omitempty"`
}

// Trait is an intrinsic (slot 1) or origin (slot 2) trait of a catalog weapon.
type Trait struct {
	Base
	WeaponID    string `gorm:"size:36;not null;index" json:"weaponId"`
	Kind        string `gorm:"size:20;not null" json:"kind"`
	Slot        int    `gorm:"not null" json:"slot"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// PerkAssignment places a catalog perk in slot 3 or 4 of a weapon.
type PerkAssignment struct {
	Base
	WeaponID string `gorm:"size:36;not null;uniqueIndex:idx_weapon_perk_slot" json:"weaponId"`
	PerkID   string `gorm:"size:36;not null;uniqueIndex:idx_weapon_perk_slot" json:"perkId"`
	Slot     int    `gorm:"not null;uniqueIndex:idx_weapon_perk_slot" json:"slot"`
	Perk     Perk   `gorm:"constraint:OnDelete:CASCADE;" json:"perk"`
}

type Catalyst struct {
	Base
	WeaponID    string    `gorm:"size:36;not null;uniqueIndex" json:"weaponId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Requirement string    `gorm:"type:text" json:"requirement"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

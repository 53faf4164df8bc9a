package models

import (
	"time"
)

// WeaponMod is a catalog mod. Attributes and perks are joined through link tables.
type WeaponMod struct {
	Base
	Name        string         `gorm:"not null" json:"name"`
	Category    string         `gorm:"size:50;index" json:"category"`
	CombatStyle string         `gorm:"size:50;index" json:"combatStyle"`
	Rarity      int            `json:"rarity"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"imageUrl"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Attributes  []ModAttribute `gorm:"many2many:mod_attribute_links;" json:"attributes"`
	Perks       []Perk         `gorm:"many2many:mod_perk_links;" json:"perks"`
}

type ModAttribute struct {
	Base
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

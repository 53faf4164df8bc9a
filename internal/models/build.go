package models

import (
	"time"
)

const (
	ArtifactRarityExotic = "Exotic"
	MaxArtifactSlots     = 4
)

type Build struct {
	Base
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	CharacterID string        `gorm:"size:36;not null;index" json:"characterId"`
	Character   *Character    `gorm:"constraint:OnDelete:RESTRICT;" json:"character,omitempty"`
	Content     string        `gorm:"type:text" json:"content"` // sanitized HTML
	IsPublic    bool          `gorm:"not null;index" json:"isPublic"`
	VoteCount   int           `gorm:"not null;default:0;index" json:"voteCount"`
	UserID      string        `gorm:"size:36;not null;index" json:"userId"`
	User        *User         `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Artifacts   []Artifact    `gorm:"constraint:OnDelete:CASCADE;" json:"artifacts"`
	Weapons     []BuildWeapon `gorm:"constraint:OnDelete:CASCADE;" json:"weapons"`

	// 非数据库字段，查询时填充
	UserVote     int `gorm:"-" json:"userVote"`
	CommentCount int `gorm:"-" json:"commentCount"`
}

type Artifact struct {
	Base
	BuildID    string              `gorm:"size:36;not null;index" json:"buildId"`
	Slot       int                 `gorm:"not null" json:"slot"` // 1..4
	Name       string              `json:"name"`
	Rarity     string              `gorm:"size:20" json:"rarity"`
	Attributes []ArtifactAttribute `gorm:"constraint:OnDelete:CASCADE;" json:"attributes"`
}

type ArtifactAttribute struct {
	Base
	ArtifactID string `gorm:"size:36;not null;index" json:"artifactId"`
	Position   int    `gorm:"not null" json:"position"`
	Name       string `json:"name"`
	Value      string `json:"value"`
}

// BuildWeapon is a free-text snapshot of a weapon loadout. WeaponID may point
// at the catalog but the sub-items are copies, not references.
type BuildWeapon struct {
	Base
	BuildID    string               `gorm:"size:36;not null;index" json:"buildId"`
	Slot       string               `gorm:"size:20;not null" json:"slot"`
	WeaponID   *string              `gorm:"size:36" json:"weaponId"`
	CustomName string               `json:"customName"`
	Traits     []BuildWeaponTrait   `gorm:"constraint:OnDelete:CASCADE;" json:"traits"`
	Perks      []BuildWeaponPerk    `gorm:"constraint:OnDelete:CASCADE;" json:"perks"`
	Catalyst   *BuildWeaponCatalyst `gorm:"constraint:OnDelete:CASCADE;" json:"catalyst"`
	Mods       []BuildWeaponMod     `gorm:"constraint:OnDelete:CASCADE;" json:"mods"`
}

// BuildWeaponItem is the shared shape of the text rows hanging off a BuildWeapon.
type BuildWeaponItem struct {
	Slot        int    `json:"slot"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

type BuildWeaponTrait struct {
	Base
	BuildWeaponID string `gorm:"size:36;not null;index" json:"buildWeaponId"`
	BuildWeaponItem
}

type BuildWeaponPerk struct {
	Base
	BuildWeaponID string `gorm:"size:36;not null;index" json:"buildWeaponId"`
	BuildWeaponItem
}

type BuildWeaponCatalyst struct {
	Base
	BuildWeaponID string `gorm:"size:36;not null;uniqueIndex" json:"buildWeaponId"`
	BuildWeaponItem
}

type BuildWeaponMod struct {
	Base
	BuildWeaponID string `gorm:"size:36;not null;index" json:"buildWeaponId"`
	BuildWeaponItem
}

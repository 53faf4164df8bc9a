package models

import "time"

// LFGPost 组队招募帖。ExpiresAt 只存储，不做自动过期
type LFGPost struct {
	Base
	UserID        string     `gorm:"size:36;not null;index" json:"userId"`
	User          *User      `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Activity      string     `gorm:"index" json:"activity"`
	Region        string     `gorm:"index" json:"region"`
	Platform      string     `json:"platform"`
	PlayersNeeded int        `json:"playersNeeded"`
	Active        bool       `gorm:"not null;index" json:"active"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ClanRecruitment 战队招募帖
type ClanRecruitment struct {
	Base
	UserID       string    `gorm:"size:36;not null;index" json:"userId"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	ClanName     string    `gorm:"not null" json:"clanName"`
	Description  string    `gorm:"type:text" json:"description"`
	Requirements string    `gorm:"type:text" json:"requirements"`
	Region       string    `gorm:"index" json:"region"`
	Language     string    `json:"language"`
	Contact      string    `json:"contact"`
	Active       bool      `gorm:"not null;index" json:"active"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

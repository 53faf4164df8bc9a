package models

import "time"

const ApiKeyPrefix = "lb_"

// ApiKey is a static bearer credential for leaderboard submissions.
type ApiKey struct {
	Base
	Key        string     `gorm:"column:token;size:67;not null;uniqueIndex" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	IsActive   bool       `gorm:"not null" json:"isActive"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
}

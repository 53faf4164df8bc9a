package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	Base
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"-"` // only exposed through /api/me
	Image     string    `json:"image"`
	DiscordID *string   `gorm:"uniqueIndex;size:32" json:"-"`
	Role      string    `gorm:"size:20;default:'user';not null" json:"role"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

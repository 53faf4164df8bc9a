package models

import "time"

// Comment belongs to exactly one of Build or NewsPost.
type Comment struct {
	Base
	Content    string    `gorm:"type:text;not null" json:"content"`
	UserID     string    `gorm:"size:36;not null;index" json:"userId"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	BuildID    *string   `gorm:"size:36;index" json:"buildId"`
	Build      *Build    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	NewsPostID *string   `gorm:"size:36;index" json:"newsId"`
	NewsPost   *NewsPost `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	UpdatedAt  time.Time `json:"updatedAt"`

	ContentHTML string `gorm:"-" json:"contentHtml"`
}

package models

import "time"

const (
	NewsTypeArticle = "ARTICLE"
	NewsTypeVideo   = "VIDEO"
	NewsTypeGuide   = "GUIDE"
	NewsTypeOther   = "OTHER"
)

var NewsTypes = []string{NewsTypeArticle, NewsTypeVideo, NewsTypeGuide, NewsTypeOther}

type NewsPost struct {
	Base
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"` // markdown
	Type       string    `gorm:"size:20;not null;index" json:"type"`
	URL        string    `json:"url"`
	VoteCount  int       `gorm:"not null;default:0;index" json:"voteCount"`
	UserID     string    `gorm:"size:36;not null;index" json:"userId"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	SourceGUID *string   `gorm:"uniqueIndex" json:"-"` // 订阅源导入去重
	UpdatedAt  time.Time `json:"updatedAt"`

	ContentHTML  string `gorm:"-" json:"contentHtml"`
	UserVote     int    `gorm:"-" json:"userVote"`
	CommentCount int    `gorm:"-" json:"commentCount"`
}

func IsNewsType(t string) bool {
	for _, v := range NewsTypes {
		if v == t {
			return true
		}
	}
	return false
}

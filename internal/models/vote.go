package models

const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote 构筑投票，每个用户对同一构筑最多一票
type Vote struct {
	Base
	UserID  string `gorm:"size:36;not null;uniqueIndex:idx_vote_user_build" json:"userId"`
	BuildID string `gorm:"size:36;not null;uniqueIndex:idx_vote_user_build;index" json:"buildId"`
	Value   int    `gorm:"not null" json:"value"` // 1 or -1
	Build   *Build `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	User    *User  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// NewsVote 新闻投票，机制与 Vote 相同
type NewsVote struct {
	Base
	UserID     string    `gorm:"size:36;not null;uniqueIndex:idx_news_vote_user_post" json:"userId"`
	NewsPostID string    `gorm:"size:36;not null;uniqueIndex:idx_news_vote_user_post;index" json:"newsPostId"`
	Value      int       `gorm:"not null" json:"value"`
	NewsPost   *NewsPost `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

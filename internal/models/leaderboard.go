package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RankingServer   = "server"
	RankingRegional = "regional"
)

// LeaderboardSnapshot 一次外部提交的排行榜快照，写入后不再修改
type LeaderboardSnapshot struct {
	Base
	ActivityType string             `gorm:"size:40;not null;index:idx_snapshot_lookup" json:"activityType"`
	RankingType  string             `gorm:"size:20;not null;index:idx_snapshot_lookup" json:"rankingType"`
	Character    string             `gorm:"column:character_name;index:idx_snapshot_lookup" json:"character"`
	Region       string             `gorm:"index:idx_snapshot_lookup" json:"region"`
	SubRegion    string             `json:"subRegion"`
	CapturedAt   time.Time          `gorm:"not null;index" json:"capturedAt"`
	ApiKeyID     *string            `gorm:"size:36;index" json:"-"`
	ApiKey       *ApiKey            `gorm:"constraint:OnDelete:SET NULL;" json:"-"`
	Entries      []LeaderboardEntry `gorm:"foreignKey:SnapshotID;constraint:OnDelete:CASCADE;" json:"entries,omitempty"`
}

type LeaderboardEntry struct {
	Base
	SnapshotID     string         `gorm:"size:36;not null;index" json:"snapshotId"`
	Rank           int            `gorm:"not null" json:"rank"`
	PlayerName     string         `gorm:"not null" json:"playerName"`
	Score          int64          `json:"score"`
	Clan           string         `json:"clan"`
	AdditionalData datatypes.JSON `json:"additionalData,omitempty"`
}

package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"risehub/internal/db"
	"risehub/internal/metrics"
	"risehub/internal/models"
	"risehub/internal/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// leaderboardBatchSize keeps each entry INSERT under the driver's bind limit.
const leaderboardBatchSize = 500

type LeaderboardEntryInput struct {
	Rank           int            `json:"rank"`
	PlayerName     string         `json:"playerName"`
	Score          int64          `json:"score"`
	Clan           string         `json:"clan"`
	AdditionalData datatypes.JSON `json:"additionalData"`
}

// LeaderboardSubmission is the body of POST /api/leaderboard/update. The API
// key travels in the body, not in a header.
type LeaderboardSubmission struct {
	APIKey       string                  `json:"apiKey"`
	ActivityType string                  `json:"activityType"`
	RankingType  string                  `json:"rankingType"`
	Character    string                  `json:"character"`
	Region       string                  `json:"region"`
	SubRegion    string                  `json:"subRegion"`
	Entries      []LeaderboardEntryInput `json:"entries"`
	CapturedAt   *time.Time              `json:"capturedAt"`
}

type LeaderboardResult struct {
	Success          bool   `json:"success"`
	SnapshotID       string `json:"snapshotId"`
	EntriesProcessed int    `json:"entriesProcessed"`
	Message          string `json:"message"`
}

type LeaderboardQuery struct {
	ActivityType string
	RankingType  string
	Character    string
	Region       string
}

func validateSubmission(in *LeaderboardSubmission) error {
	if !utils.IsLeaderboardActivity(in.ActivityType) {
		return invalid("activityType must be one of %s", strings.Join(utils.LeaderboardActivities, ", "))
	}
	if in.RankingType != models.RankingServer && in.RankingType != models.RankingRegional {
		return invalid("rankingType must be %q or %q", models.RankingServer, models.RankingRegional)
	}
	if len(in.Entries) == 0 {
		return invalid("entries must not be empty")
	}
	for i, e := range in.Entries {
		if strings.TrimSpace(e.PlayerName) == "" {
			return invalid("entries[%d]: playerName is required", i)
		}
		if e.Rank < 1 {
			return invalid("entries[%d]: rank must be at least 1", i)
		}
	}
	return nil
}

// SubmitLeaderboard authenticates the key, validates the payload and stores
// one immutable snapshot with all of its entries in a single nested create,
// batched inside the create's transaction.
// Every call produces a new snapshot; nothing is merged or overwritten.
func SubmitLeaderboard(in LeaderboardSubmission) (*LeaderboardResult, error) {
	key, err := AuthenticateAPIKey(in.APIKey)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			metrics.LeaderboardRejected.WithLabelValues("unauthorized").Inc()
		}
		return nil, err
	}
	if err := validateSubmission(&in); err != nil {
		metrics.LeaderboardRejected.WithLabelValues("invalid").Inc()
		return nil, err
	}

	capturedAt := time.Now().UTC()
	if in.CapturedAt != nil && !in.CapturedAt.IsZero() {
		capturedAt = in.CapturedAt.UTC()
	}

	snapshot := models.LeaderboardSnapshot{
		ActivityType: in.ActivityType,
		RankingType:  in.RankingType,
		Character:    strings.TrimSpace(in.Character),
		Region:       strings.TrimSpace(in.Region),
		SubRegion:    strings.TrimSpace(in.SubRegion),
		CapturedAt:   capturedAt,
		ApiKeyID:     &key.ID,
		Entries:      make([]models.LeaderboardEntry, 0, len(in.Entries)),
	}
	for _, e := range in.Entries {
		snapshot.Entries = append(snapshot.Entries, models.LeaderboardEntry{
			Rank:           e.Rank,
			PlayerName:     strings.TrimSpace(e.PlayerName),
			Score:          e.Score,
			Clan:           strings.TrimSpace(e.Clan),
			AdditionalData: e.AdditionalData,
		})
	}

	if err := db.DB.Session(&gorm.Session{CreateBatchSize: leaderboardBatchSize}).Create(&snapshot).Error; err != nil {
		return nil, fmt.Errorf("create leaderboard snapshot: %w", err)
	}

	n := len(snapshot.Entries)
	metrics.LeaderboardSnapshots.WithLabelValues(snapshot.ActivityType).Inc()
	metrics.LeaderboardEntries.Add(float64(n))
	log.Printf("[leaderboard] snapshot %s: %s/%s, %d entries via key %q", snapshot.ID, snapshot.ActivityType, snapshot.RankingType, n, key.Name)

	return &LeaderboardResult{
		Success:          true,
		SnapshotID:       snapshot.ID,
		EntriesProcessed: n,
		Message:          fmt.Sprintf("Leaderboard updated with %d entries", n),
	}, nil
}

// LatestLeaderboard returns the most recently captured snapshot matching the
// query, entries ordered by rank.
func LatestLeaderboard(q LeaderboardQuery) (*models.LeaderboardSnapshot, error) {
	if !utils.IsLeaderboardActivity(q.ActivityType) {
		return nil, invalid("activityType must be one of %s", strings.Join(utils.LeaderboardActivities, ", "))
	}
	if q.RankingType == "" {
		q.RankingType = models.RankingServer
	}
	if q.RankingType != models.RankingServer && q.RankingType != models.RankingRegional {
		return nil, invalid("rankingType must be %q or %q", models.RankingServer, models.RankingRegional)
	}

	tx := db.DB.Where("activity_type = ? AND ranking_type = ?", q.ActivityType, q.RankingType)
	if q.Character != "" {
		tx = tx.Where("character_name = ?", q.Character)
	}
	if q.Region != "" {
		tx = tx.Where("region = ?", q.Region)
	}

	var snapshot models.LeaderboardSnapshot
	err := tx.Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("rank ASC") }).
		Order("captured_at DESC").Order("created_at DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, notFound(err, "leaderboard snapshot")
	}
	return &snapshot, nil
}

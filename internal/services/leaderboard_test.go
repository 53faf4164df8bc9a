package services

import (
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"risehub/internal/db"
	"risehub/internal/models"

	"gorm.io/datatypes"
)

func TestGenerateAPIKeyFormat(t *testing.T) {
	re := regexp.MustCompile(`^lb_[0-9a-f]{64}$`)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		key, err := GenerateAPIKey()
		if err != nil {
			t.Fatalf("GenerateAPIKey: %v", err)
		}
		if !re.MatchString(key) {
			t.Errorf("key %q does not match %s", key, re)
		}
		if seen[key] {
			t.Errorf("duplicate key %q", key)
		}
		seen[key] = true
	}
}

func validSubmission(key string) LeaderboardSubmission {
	return LeaderboardSubmission{
		APIKey:       key,
		ActivityType: "raid",
		RankingType:  models.RankingServer,
		Character:    "Wolf",
		Region:       "NA",
		Entries: []LeaderboardEntryInput{
			{Rank: 2, PlayerName: "Bravo", Score: 900},
			{Rank: 1, PlayerName: "Alpha", Score: 1000, Clan: "Risers", AdditionalData: datatypes.JSON(`{"time":"12:01"}`)},
		},
	}
}

func TestSubmitLeaderboardRejectsBadKeys(t *testing.T) {
	setupTestDB(t)
	inactive, err := CreateAPIKey("old scraper")
	if err != nil {
		t.Fatalf("CreateAPIKey: %v", err)
	}
	if _, err := SetAPIKeyActive(inactive.ID, false); err != nil {
		t.Fatalf("SetAPIKeyActive: %v", err)
	}

	for name, key := range map[string]string{
		"missing":  "",
		"unknown":  "lb_deadbeef",
		"inactive": inactive.Key,
	} {
		t.Run(name, func(t *testing.T) {
			sub := validSubmission(key)
			sub.Entries = nil // the key is checked before the payload
			if _, err := SubmitLeaderboard(sub); !errors.Is(err, ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
	if n := countRows(t, &models.LeaderboardSnapshot{}, ""); n != 0 {
		t.Errorf("no snapshot should be written, got %d", n)
	}
}

func TestSubmitLeaderboardValidation(t *testing.T) {
	setupTestDB(t)
	key, err := CreateAPIKey("scraper")
	if err != nil {
		t.Fatalf("CreateAPIKey: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*LeaderboardSubmission)
	}{
		{"empty entries", func(s *LeaderboardSubmission) { s.Entries = []LeaderboardEntryInput{} }},
		{"unknown activity", func(s *LeaderboardSubmission) { s.ActivityType = "gambit" }},
		{"bad ranking type", func(s *LeaderboardSubmission) { s.RankingType = "global" }},
		{"blank player", func(s *LeaderboardSubmission) { s.Entries[0].PlayerName = " " }},
		{"zero rank", func(s *LeaderboardSubmission) { s.Entries[0].Rank = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission(key.Key)
			tt.mutate(&sub)
			_, err := SubmitLeaderboard(sub)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
	if n := countRows(t, &models.LeaderboardSnapshot{}, ""); n != 0 {
		t.Errorf("no snapshot should be written, got %d", n)
	}
	if n := countRows(t, &models.LeaderboardEntry{}, ""); n != 0 {
		t.Errorf("no entry should be written, got %d", n)
	}
}

func TestSubmitLeaderboardStoresSnapshots(t *testing.T) {
	setupTestDB(t)
	key, err := CreateAPIKey("scraper")
	if err != nil {
		t.Fatalf("CreateAPIKey: %v", err)
	}

	older := time.Now().Add(-time.Hour)
	first := validSubmission(key.Key)
	first.CapturedAt = &older
	if _, err := SubmitLeaderboard(first); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second := validSubmission(key.Key)
	second.Entries = second.Entries[:1]
	res, err := SubmitLeaderboard(second)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if !res.Success || res.EntriesProcessed != 1 || res.SnapshotID == "" {
		t.Errorf("unexpected result %+v", res)
	}

	// snapshots are never merged
	if n := countRows(t, &models.LeaderboardSnapshot{}, ""); n != 2 {
		t.Errorf("expected 2 snapshots, got %d", n)
	}
	if n := countRows(t, &models.LeaderboardEntry{}, ""); n != 3 {
		t.Errorf("expected 3 entries, got %d", n)
	}

	var stored models.ApiKey
	db.DB.Where("id = ?", key.ID).First(&stored)
	if stored.LastUsedAt == nil {
		t.Error("lastUsedAt should be stamped")
	}

	latest, err := LatestLeaderboard(LeaderboardQuery{ActivityType: "raid", Character: "Wolf"})
	if err != nil {
		t.Fatalf("LatestLeaderboard: %v", err)
	}
	if latest.ID != res.SnapshotID {
		t.Errorf("latest snapshot = %s, want %s", latest.ID, res.SnapshotID)
	}

	byRegion, err := LatestLeaderboard(LeaderboardQuery{ActivityType: "raid", Region: "NA"})
	if err != nil {
		t.Fatalf("LatestLeaderboard: %v", err)
	}
	if len(byRegion.Entries) != 1 {
		t.Errorf("latest snapshot should carry 1 entry, got %d", len(byRegion.Entries))
	}

	if _, err := LatestLeaderboard(LeaderboardQuery{ActivityType: "dungeon"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("no dungeon snapshot yet, got %v", err)
	}
}

func TestSubmitLeaderboardLargeSnapshot(t *testing.T) {
	setupTestDB(t)
	key, _ := CreateAPIKey("scraper")

	const total = 5001
	sub := validSubmission(key.Key)
	sub.Entries = make([]LeaderboardEntryInput, 0, total)
	for i := 1; i <= total; i++ {
		sub.Entries = append(sub.Entries, LeaderboardEntryInput{
			Rank:       i,
			PlayerName: "player-" + strconv.Itoa(i),
			Score:      int64(100000 - i),
		})
	}

	res, err := SubmitLeaderboard(sub)
	if err != nil {
		t.Fatalf("submit %d entries: %v", total, err)
	}
	if res.EntriesProcessed != total {
		t.Errorf("EntriesProcessed = %d, want %d", res.EntriesProcessed, total)
	}
	if n := countRows(t, &models.LeaderboardSnapshot{}, ""); n != 1 {
		t.Errorf("expected 1 snapshot, got %d", n)
	}
	if n := countRows(t, &models.LeaderboardEntry{}, "snapshot_id = ?", res.SnapshotID); n != total {
		t.Errorf("expected %d entries, got %d", total, n)
	}
}

func TestLatestLeaderboardOrdersEntriesByRank(t *testing.T) {
	setupTestDB(t)
	key, _ := CreateAPIKey("scraper")
	if _, err := SubmitLeaderboard(validSubmission(key.Key)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	snap, err := LatestLeaderboard(LeaderboardQuery{ActivityType: "raid"})
	if err != nil {
		t.Fatalf("LatestLeaderboard: %v", err)
	}
	if len(snap.Entries) != 2 || snap.Entries[0].PlayerName != "Alpha" {
		t.Errorf("entries should be ordered by rank: %+v", snap.Entries)
	}
}

func TestDeleteAPIKeyKeepsSnapshots(t *testing.T) {
	setupTestDB(t)
	key, _ := CreateAPIKey("scraper")
	if _, err := SubmitLeaderboard(validSubmission(key.Key)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := DeleteAPIKey(key.ID); err != nil {
		t.Fatalf("DeleteAPIKey: %v", err)
	}
	if n := countRows(t, &models.LeaderboardSnapshot{}, "api_key_id IS NULL"); n != 1 {
		t.Errorf("snapshot should survive with a null key, got %d", n)
	}
	if _, err := AuthenticateAPIKey(key.Key); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("deleted key should not authenticate, got %v", err)
	}
}

package utils

import (
	"testing"
	"time"
)

func TestArtifactAttributeCount(t *testing.T) {
	tests := []struct {
		rarity string
		want   int
	}{
		{"Exotic", 4},
		{"exotic", 4},
		{" Exotic ", 4},
		{"Mythic", 3},
		{"Legendary", 3},
		{"", 3},
	}
	for _, tt := range tests {
		if got := ArtifactAttributeCount(tt.rarity); got != tt.want {
			t.Errorf("ArtifactAttributeCount(%q) = %d, want %d", tt.rarity, got, tt.want)
		}
	}
}

func TestRarityName(t *testing.T) {
	if RarityName(6) != "Exotic" || RarityName(3) != "Rare" {
		t.Errorf("unexpected rarity names: %s %s", RarityName(6), RarityName(3))
	}
	if RarityName(7) != "Unknown" || IsValidRarity(2) {
		t.Error("out of range rarity should be unknown")
	}
}

func TestLeaderboardActivities(t *testing.T) {
	if len(LeaderboardActivities) != 11 {
		t.Fatalf("expected 11 activities, got %d", len(LeaderboardActivities))
	}
	if !IsLeaderboardActivity("raid") || IsLeaderboardActivity("gambit") {
		t.Error("allow-list check is wrong")
	}
}

func TestNextReset(t *testing.T) {
	// 2025-03-05 is a Wednesday
	now := time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		category string
		want     time.Time
	}{
		{"DAILY", time.Date(2025, time.March, 6, ResetHourUTC, 0, 0, 0, time.UTC)},
		{"WEEKLY", time.Date(2025, time.March, 11, ResetHourUTC, 0, 0, 0, time.UTC)},
		{"FORTNIGHT", time.Date(2025, time.March, 18, ResetHourUTC, 0, 0, 0, time.UTC)},
		{"MONTHLY", time.Date(2025, time.April, 1, ResetHourUTC, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := NextReset(tt.category, now); !got.Equal(tt.want) {
			t.Errorf("NextReset(%s) = %s, want %s", tt.category, got, tt.want)
		}
	}

	if !NextReset("SEASONAL", now).IsZero() {
		t.Error("seasonal tasks have no computed reset")
	}

	early := time.Date(2025, time.March, 5, 8, 30, 0, 0, time.UTC)
	if got := NextReset("DAILY", early); got.Day() != 5 {
		t.Errorf("before reset hour the daily reset is today, got %s", got)
	}
}

func TestResetLabel(t *testing.T) {
	now := time.Date(2025, time.March, 5, 8, 30, 0, 0, time.UTC)
	if got := ResetLabel("DAILY", now); got != "Resets in 30m" {
		t.Errorf("got %q", got)
	}
	if got := ResetLabel("WEEKLY", now); got != "Resets in 6d 0h" {
		t.Errorf("got %q", got)
	}
	if got := ResetLabel("SEASONAL", now); got != "Resets with the season" {
		t.Errorf("got %q", got)
	}
}

package utils

import (
	"fmt"
	"strings"
	"time"
)

// 稀有度 3..6
var rarityNames = map[int]string{
	3: "Rare",
	4: "Legendary",
	5: "Mythic",
	6: "Exotic",
}

func RarityName(rarity int) string {
	if name, ok := rarityNames[rarity]; ok {
		return name
	}
	return "Unknown"
}

func IsValidRarity(rarity int) bool {
	_, ok := rarityNames[rarity]
	return ok
}

// ArtifactAttributeCount returns how many attribute rows an artifact of the
// given rarity carries: Exotic has 4, everything else 3.
func ArtifactAttributeCount(rarity string) int {
	if strings.EqualFold(strings.TrimSpace(rarity), "Exotic") {
		return 4
	}
	return 3
}

// LeaderboardActivities is the closed list accepted by leaderboard ingestion.
var LeaderboardActivities = []string{
	"abyss",
	"battleground",
	"bounty_hunt",
	"crucible_brawl",
	"crucible_ranked",
	"dungeon",
	"exotic_mission",
	"nightfall",
	"raid",
	"strike",
	"trials",
}

func IsLeaderboardActivity(activity string) bool {
	for _, a := range LeaderboardActivities {
		if a == activity {
			return true
		}
	}
	return false
}

// 游戏每日重置时间 (UTC)
const ResetHourUTC = 9

// fortnightAnchor is a known fortnightly reset (a Tuesday).
var fortnightAnchor = time.Date(2025, time.January, 7, ResetHourUTC, 0, 0, 0, time.UTC)

// NextReset returns the next reset instant for a task category after now.
// SEASONAL and unknown categories return the zero time.
func NextReset(category string, now time.Time) time.Time {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), ResetHourUTC, 0, 0, 0, time.UTC)

	switch category {
	case "DAILY":
		if now.Before(today) {
			return today
		}
		return today.AddDate(0, 0, 1)
	case "WEEKLY":
		days := (int(time.Tuesday) - int(now.Weekday()) + 7) % 7
		next := today.AddDate(0, 0, days)
		if !now.Before(next) {
			next = next.AddDate(0, 0, 7)
		}
		return next
	case "FORTNIGHT":
		period := 14 * 24 * time.Hour
		if now.Before(fortnightAnchor) {
			return fortnightAnchor
		}
		n := now.Sub(fortnightAnchor)/period + 1
		return fortnightAnchor.Add(n * period)
	case "MONTHLY":
		first := time.Date(now.Year(), now.Month(), 1, ResetHourUTC, 0, 0, 0, time.UTC)
		if now.Before(first) {
			return first
		}
		return first.AddDate(0, 1, 0)
	}
	return time.Time{}
}

// ResetLabel 生成给前端显示的重置倒计时文案
func ResetLabel(category string, now time.Time) string {
	next := NextReset(category, now)
	if next.IsZero() {
		return "Resets with the season"
	}
	d := next.Sub(now)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("Resets in %dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("Resets in %dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("Resets in %dm", minutes)
	}
}

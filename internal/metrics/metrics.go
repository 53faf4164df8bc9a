package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Votes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "risehub_votes_total", Help: "Vote clicks by target and resulting action"},
		[]string{"target", "action"},
	)
	BuildsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "risehub_builds_created_total", Help: "Total builds created"},
	)
	LeaderboardSnapshots = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "risehub_leaderboard_snapshots_total", Help: "Leaderboard snapshots accepted"},
		[]string{"activity_type"},
	)
	LeaderboardEntries = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "risehub_leaderboard_entries_total", Help: "Leaderboard entries stored"},
	)
	LeaderboardRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "risehub_leaderboard_rejected_total", Help: "Leaderboard submissions rejected"},
		[]string{"reason"},
	)
	FeedItemsImported = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "risehub_feed_items_imported_total", Help: "News posts created by feed import"},
	)
)

func Register() {
	prometheus.MustRegister(Votes, BuildsCreated, LeaderboardSnapshots, LeaderboardEntries, LeaderboardRejected, FeedItemsImported)
}

package services

import (
	"errors"
	"fmt"
	"log"

	"risehub/internal/db"
	"risehub/internal/metrics"
	"risehub/internal/models"

	"gorm.io/gorm"
)

// VoteResult is returned to the client after a vote click.
type VoteResult struct {
	VoteCount int `json:"voteCount"`
	UserVote  int `json:"userVote"`
}

// ResolveVote decides the new vote state and the counter delta for a click.
// No vote: insert. Same value: toggle off. Opposite value: flip, moving the
// counter by twice the clicked value.
func ResolveVote(current, clicked int) (next, delta int) {
	switch current {
	case 0:
		return clicked, clicked
	case clicked:
		return 0, -clicked
	default:
		return clicked, clicked - current
	}
}

func voteAction(current, next int) string {
	switch {
	case current == 0:
		return "create"
	case next == 0:
		return "remove"
	default:
		return "flip"
	}
}

// voteTarget describes one votable table pair.
type voteTarget struct {
	name       string // metrics label
	voteTable  string
	fkColumn   string
	countTable string
}

var (
	buildVotes = voteTarget{name: "build", voteTable: "votes", fkColumn: "build_id", countTable: "builds"}
	newsVotes  = voteTarget{name: "news", voteTable: "news_votes", fkColumn: "news_post_id", countTable: "news_posts"}
)

type voteRow struct {
	ID    string
	Value int
}

// castVote applies the three-way branch and the counter update in one
// transaction so vote_count always equals the sum of live vote values.
func castVote(target voteTarget, userID, targetID string, value int) (*VoteResult, error) {
	if value != models.VoteUp && value != models.VoteDown {
		return nil, invalid("value must be 1 or -1")
	}

	var result VoteResult
	var current, next int
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if target == buildVotes {
			if err := checkBuildVisible(tx, targetID, userID); err != nil {
				return err
			}
		} else {
			var exists int64
			if err := tx.Table(target.countTable).Where("id = ?", targetID).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return ErrNotFound
			}
		}

		var existing voteRow
		err := tx.Table(target.voteTable).Select("id, value").
			Where("user_id = ? AND "+target.fkColumn+" = ?", userID, targetID).
			Take(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		current = existing.Value

		var delta int
		next, delta = ResolveVote(current, value)

		switch {
		case current == 0:
			if err := insertVote(tx, target, userID, targetID, next); err != nil {
				return err
			}
		case next == 0:
			if err := tx.Exec("DELETE FROM "+target.voteTable+" WHERE id = ?", existing.ID).Error; err != nil {
				return err
			}
		default:
			if err := tx.Table(target.voteTable).Where("id = ?", existing.ID).Update("value", next).Error; err != nil {
				return err
			}
		}

		if err := tx.Table(target.countTable).Where("id = ?", targetID).
			UpdateColumn("vote_count", gorm.Expr("vote_count + ?", delta)).Error; err != nil {
			return err
		}

		return tx.Table(target.countTable).Select("vote_count").Where("id = ?", targetID).Scan(&result.VoteCount).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("cast %s vote: %w", target.name, err)
	}

	result.UserVote = next
	metrics.Votes.WithLabelValues(target.name, voteAction(current, next)).Inc()
	log.Printf("[vote] %s %s by %s: %d -> %d", target.name, targetID, userID, current, next)
	return &result, nil
}

func insertVote(tx *gorm.DB, target voteTarget, userID, targetID string, value int) error {
	switch target.name {
	case buildVotes.name:
		return tx.Create(&models.Vote{UserID: userID, BuildID: targetID, Value: value}).Error
	case newsVotes.name:
		return tx.Create(&models.NewsVote{UserID: userID, NewsPostID: targetID, Value: value}).Error
	}
	return fmt.Errorf("unknown vote target %q", target.name)
}

// VoteBuild records a click on a build's up/down vote button.
func VoteBuild(userID, buildID string, value int) (*VoteResult, error) {
	return castVote(buildVotes, userID, buildID, value)
}

// VoteNews records a click on a news post's vote button.
func VoteNews(userID, newsID string, value int) (*VoteResult, error) {
	return castVote(newsVotes, userID, newsID, value)
}

// userVotes returns the requester's vote per target id.
func userVotes(table, fkColumn, userID string, ids []string) map[string]int {
	out := make(map[string]int, len(ids))
	if userID == "" || len(ids) == 0 {
		return out
	}
	var rows []struct {
		TargetID string
		Value    int
	}
	if err := db.DB.Table(table).Select(fkColumn+" AS target_id, value").
		Where("user_id = ? AND "+fkColumn+" IN ?", userID, ids).Scan(&rows).Error; err != nil {
		log.Printf("[vote] load user votes from %s: %v", table, err)
		return out
	}
	for _, r := range rows {
		out[r.TargetID] = r.Value
	}
	return out
}

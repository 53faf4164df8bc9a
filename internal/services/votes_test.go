package services

import (
	"errors"
	"testing"

	"risehub/internal/db"
	"risehub/internal/models"
)

func TestResolveVote(t *testing.T) {
	tests := []struct {
		current, clicked int
		next, delta      int
	}{
		{0, 1, 1, 1},
		{0, -1, -1, -1},
		{1, 1, 0, -1},
		{-1, -1, 0, 1},
		{1, -1, -1, -2},
		{-1, 1, 1, 2},
	}
	for _, tt := range tests {
		next, delta := ResolveVote(tt.current, tt.clicked)
		if next != tt.next || delta != tt.delta {
			t.Errorf("ResolveVote(%d, %d) = (%d, %d), want (%d, %d)",
				tt.current, tt.clicked, next, delta, tt.next, tt.delta)
		}
	}
}

func TestVoteBuildKeepsCountInSync(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "owner", models.RoleUser)
	createUser(t, "alice", models.RoleUser)
	createUser(t, "bob", models.RoleUser)
	createCharacter(t, "c1", "Wolf")
	build := createBuild(t, owner.ID, "c1")

	steps := []struct {
		user      string
		value     int
		wantCount int
		wantVote  int
	}{
		{"alice", 1, 1, 1},
		{"bob", 1, 2, 1},
		{"alice", -1, 0, -1}, // flip
		{"alice", -1, 1, 0},  // same value again removes the vote
		{"bob", 1, 0, 0},
		{"bob", -1, -1, -1},
	}
	for i, s := range steps {
		res, err := VoteBuild(s.user, build.ID, s.value)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if res.VoteCount != s.wantCount || res.UserVote != s.wantVote {
			t.Fatalf("step %d: got count=%d vote=%d, want count=%d vote=%d",
				i, res.VoteCount, res.UserVote, s.wantCount, s.wantVote)
		}

		var sum int
		db.DB.Model(&models.Vote{}).Select("COALESCE(SUM(value), 0)").Where("build_id = ?", build.ID).Scan(&sum)
		if sum != res.VoteCount {
			t.Fatalf("step %d: vote_count %d != sum of votes %d", i, res.VoteCount, sum)
		}
	}

	if n := countRows(t, &models.Vote{}, "build_id = ?", build.ID); n != 1 {
		t.Errorf("expected only bob's vote row to remain, got %d rows", n)
	}
}

func TestVoteRejectsBadInput(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", models.RoleUser)

	var vErr *ValidationError
	if _, err := VoteBuild("alice", "missing", 2); !errors.As(err, &vErr) {
		t.Errorf("value 2 should be a validation error, got %v", err)
	}
	if _, err := VoteBuild("alice", "missing", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown build should be ErrNotFound, got %v", err)
	}
	if _, err := VoteNews("alice", "missing", -1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown news post should be ErrNotFound, got %v", err)
	}
}

func TestVotePrivateBuildOwnerOnly(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "owner", models.RoleUser)
	other := createUser(t, "other", models.RoleUser)
	createCharacter(t, "c1", "Wolf")
	private := false
	build, err := CreateBuild(owner.ID, BuildInput{Title: "Secret", CharacterID: "c1", IsPublic: &private})
	if err != nil {
		t.Fatalf("CreateBuild: %v", err)
	}

	if _, err := VoteBuild(other.ID, build.ID, models.VoteUp); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-owner vote on a private build should be ErrNotFound, got %v", err)
	}
	if n := countRows(t, &models.Vote{}, "build_id = ?", build.ID); n != 0 {
		t.Errorf("no vote should be stored, got %d", n)
	}

	res, err := VoteBuild(owner.ID, build.ID, models.VoteUp)
	if err != nil {
		t.Fatalf("owner vote: %v", err)
	}
	if res.VoteCount != 1 {
		t.Errorf("VoteCount = %d, want 1", res.VoteCount)
	}
}

func TestVoteNewsAndUserVoteAnnotation(t *testing.T) {
	setupTestDB(t)
	admin := createUser(t, "admin", models.RoleAdmin)
	createUser(t, "alice", models.RoleUser)

	post, err := CreateNews(admin.ID, NewsInput{Title: "Patch notes", Type: models.NewsTypeArticle, Content: "**hi**"})
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	if _, err := VoteNews("alice", post.ID, 1); err != nil {
		t.Fatalf("VoteNews: %v", err)
	}

	got, err := GetNews(post.ID, "alice")
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if got.VoteCount != 1 || got.UserVote != 1 {
		t.Errorf("got count=%d userVote=%d, want 1/1", got.VoteCount, got.UserVote)
	}

	anon, err := GetNews(post.ID, "")
	if err != nil {
		t.Fatalf("GetNews anonymous: %v", err)
	}
	if anon.UserVote != 0 {
		t.Errorf("anonymous viewer should have userVote 0, got %d", anon.UserVote)
	}
}

package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"risehub/internal/models"
)

func TestCommentTargetsAndOwnership(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "author", models.RoleUser)
	stranger := createUser(t, "stranger", models.RoleUser)
	createCharacter(t, "c1", "Wolf")
	build := createBuild(t, author.ID, "c1")

	var vErr *ValidationError
	if _, err := CreateComment(author.ID, CommentInput{Content: "hi"}); !errors.As(err, &vErr) {
		t.Errorf("comment without a target should be invalid, got %v", err)
	}
	if _, err := CreateComment(author.ID, CommentInput{Content: "hi", BuildID: build.ID, NewsID: "n1"}); !errors.As(err, &vErr) {
		t.Errorf("comment with two targets should be invalid, got %v", err)
	}
	if _, err := CreateComment(author.ID, CommentInput{Content: "hi", BuildID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("comment on a missing build should be not found, got %v", err)
	}

	c, err := CreateComment(author.ID, CommentInput{Content: "**great** build", BuildID: build.ID})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if c.User == nil || c.User.ID != author.ID {
		t.Errorf("comment author not loaded: %+v", c.User)
	}
	if c.ContentHTML == "" {
		t.Error("comment markdown not rendered")
	}

	if err := DeleteComment(c.ID, stranger.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger delete should be forbidden, got %v", err)
	}
	if err := DeleteComment(c.ID, author.ID); err != nil {
		t.Errorf("author delete: %v", err)
	}
	if err := DeleteComment(c.ID, author.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete should be not found, got %v", err)
	}
}

func TestPrivateBuildCommentsOwnerOnly(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "owner", models.RoleUser)
	stranger := createUser(t, "stranger", models.RoleUser)
	createCharacter(t, "c1", "Wolf")
	private := false
	build, err := CreateBuild(owner.ID, BuildInput{Title: "Secret", CharacterID: "c1", IsPublic: &private})
	if err != nil {
		t.Fatalf("CreateBuild: %v", err)
	}
	if _, err := CreateComment(owner.ID, CommentInput{Content: "note to self", BuildID: build.ID}); err != nil {
		t.Fatalf("owner comment: %v", err)
	}

	for name, viewer := range map[string]string{"anonymous": "", "stranger": stranger.ID} {
		if _, err := ListComments(build.ID, "", viewer); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: private thread should be ErrNotFound, got %v", name, err)
		}
	}
	if _, err := CreateComment(stranger.ID, CommentInput{Content: "hi", BuildID: build.ID}); !errors.Is(err, ErrNotFound) {
		t.Errorf("stranger comment on a private build should be ErrNotFound, got %v", err)
	}

	comments, err := ListComments(build.ID, "", owner.ID)
	if err != nil {
		t.Fatalf("owner ListComments: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("owner should see 1 comment, got %d", len(comments))
	}

	if _, err := ListComments("missing", "", owner.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown build should be ErrNotFound, got %v", err)
	}
}

func TestCommentLengthCountsRunes(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "author", models.RoleUser)
	createCharacter(t, "c1", "Wolf")
	build := createBuild(t, author.ID, "c1")

	// 3 bytes per rune, so this is over the byte limit but within the rune limit
	content := strings.Repeat("好", maxCommentLength)
	if _, err := CreateComment(author.ID, CommentInput{Content: content, BuildID: build.ID}); err != nil {
		t.Errorf("%d runes should be accepted, got %v", maxCommentLength, err)
	}
	var vErr *ValidationError
	if _, err := CreateComment(author.ID, CommentInput{Content: content + "好", BuildID: build.ID}); !errors.As(err, &vErr) {
		t.Errorf("%d runes should be rejected, got %v", maxCommentLength+1, err)
	}
}

func TestLFGLifecycle(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "author", models.RoleUser)
	stranger := createUser(t, "stranger", models.RoleUser)
	admin := createUser(t, "admin", models.RoleAdmin)

	post, err := CreateLFG(author.ID, LFGInput{Title: "Raid sherpa", Activity: "raid", Region: "EU", PlayersNeeded: 3})
	if err != nil {
		t.Fatalf("CreateLFG: %v", err)
	}
	if !post.Active {
		t.Error("new posts start active")
	}

	closed := false
	if _, err := UpdateLFG(post.ID, stranger.ID, LFGUpdateInput{Active: &closed}); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger update should be forbidden, got %v", err)
	}
	updated, err := UpdateLFG(post.ID, author.ID, LFGUpdateInput{Active: &closed})
	if err != nil {
		t.Fatalf("UpdateLFG: %v", err)
	}
	if updated.Active {
		t.Error("post should be closed")
	}

	_, total, _ := ListLFG(ListingFilter{Page: 1, Limit: 20})
	if total != 0 {
		t.Errorf("closed posts are hidden by default, got %d", total)
	}
	_, total, _ = ListLFG(ListingFilter{IncludeInactive: true, Page: 1, Limit: 20})
	if total != 1 {
		t.Errorf("includeInactive should list the closed post, got %d", total)
	}

	if err := DeleteLFG(post.ID, stranger); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger delete should be forbidden, got %v", err)
	}
	if err := DeleteLFG(post.ID, admin); err != nil {
		t.Errorf("admin delete: %v", err)
	}
}

func TestClanRecruitment(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "author", models.RoleUser)

	if _, err := CreateClan(author.ID, ClanInput{}); err == nil {
		t.Error("clan name is required")
	}
	clan, err := CreateClan(author.ID, ClanInput{ClanName: "Risers", Region: "NA"})
	if err != nil {
		t.Fatalf("CreateClan: %v", err)
	}
	posts, total, err := ListClans(ListingFilter{Region: "NA", Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("ListClans: %v", err)
	}
	if total != 1 || posts[0].ID != clan.ID {
		t.Errorf("ListClans = %d posts", total)
	}
	if err := DeleteClan(clan.ID, author); err != nil {
		t.Errorf("DeleteClan: %v", err)
	}
}

func TestTasksToggleAndReset(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "u1", models.RoleUser)
	other := createUser(t, "u2", models.RoleUser)

	daily, err := CreateTaskTemplate(TaskTemplateInput{Title: "Daily bounty", Category: "daily"})
	if err != nil {
		t.Fatalf("CreateTaskTemplate: %v", err)
	}
	weekly, err := CreateTaskTemplate(TaskTemplateInput{Title: "Weekly raid", Category: models.TaskWeekly})
	if err != nil {
		t.Fatalf("CreateTaskTemplate: %v", err)
	}
	if _, err := CreateTaskTemplate(TaskTemplateInput{Title: "Hourly", Category: "HOURLY"}); err == nil {
		t.Error("unknown category should be rejected")
	}

	ut, err := ToggleTask(user.ID, daily.ID)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if !ut.Completed || ut.CompletedAt == nil {
		t.Errorf("first toggle completes the task: %+v", ut)
	}
	ut, err = ToggleTask(user.ID, daily.ID)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if ut.Completed || ut.CompletedAt != nil {
		t.Errorf("second toggle clears the task: %+v", ut)
	}

	for _, id := range []string{daily.ID, weekly.ID} {
		if _, err := ToggleTask(user.ID, id); err != nil {
			t.Fatalf("ToggleTask: %v", err)
		}
	}
	if _, err := ToggleTask(other.ID, daily.ID); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}

	n, err := ResetTasks(user.ID, "daily")
	if err != nil {
		t.Fatalf("ResetTasks: %v", err)
	}
	if n != 1 {
		t.Errorf("reset affected %d rows, want 1", n)
	}

	now := time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)
	groups, err := ListTasks(user.ID, now)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(groups) != 2 || groups[0].Category != models.TaskDaily || groups[1].Category != models.TaskWeekly {
		t.Fatalf("unexpected groups %+v", groups)
	}
	if groups[0].Tasks[0].Completed {
		t.Error("daily task should be reset")
	}
	if !groups[1].Tasks[0].Completed {
		t.Error("weekly task should stay completed")
	}
	if groups[0].NextReset == nil || groups[0].ResetLabel == "" {
		t.Errorf("daily group needs a reset label: %+v", groups[0])
	}

	// other users keep their progress
	otherGroups, _ := ListTasks(other.ID, now)
	if !otherGroups[0].Tasks[0].Completed {
		t.Error("reset must only touch the caller's rows")
	}

	if _, err := ToggleTask(user.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown template should be not found, got %v", err)
	}
}

package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"risehub/internal/db"
	"risehub/internal/models"
	"risehub/internal/utils"
)

const maxCommentLength = 5000

type CommentInput struct {
	Content string `json:"content"`
	BuildID string `json:"buildId"`
	NewsID  string `json:"newsId"`
}

// ListComments returns the thread of a build or news post, oldest first.
// Threads of private builds are only visible to the build owner.
func ListComments(buildID, newsID, viewerID string) ([]models.Comment, error) {
	if (buildID == "") == (newsID == "") {
		return nil, invalid("exactly one of buildId or newsId is required")
	}
	if buildID != "" {
		if err := checkBuildVisible(db.DB, buildID, viewerID); err != nil {
			return nil, err
		}
	}

	q := db.DB.Preload("User").Order("created_at ASC")
	if buildID != "" {
		q = q.Where("build_id = ?", buildID)
	} else {
		q = q.Where("news_post_id = ?", newsID)
	}

	var comments []models.Comment
	if err := q.Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	for i := range comments {
		comments[i].ContentHTML = utils.RenderMarkdown(comments[i].Content)
	}
	return comments, nil
}

func CreateComment(userID string, in CommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	buildID := strings.TrimSpace(in.BuildID)
	newsID := strings.TrimSpace(in.NewsID)

	if content == "" {
		return nil, invalid("content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, invalid("content is longer than %d characters", maxCommentLength)
	}
	if (buildID == "") == (newsID == "") {
		return nil, invalid("exactly one of buildId or newsId is required")
	}

	comment := models.Comment{Content: content, UserID: userID}
	if buildID != "" {
		if err := checkBuildVisible(db.DB, buildID, userID); err != nil {
			return nil, err
		}
		comment.BuildID = &buildID
	} else {
		var post models.NewsPost
		if err := db.DB.Select("id").Where("id = ?", newsID).First(&post).Error; err != nil {
			return nil, notFound(err, "news post")
		}
		comment.NewsPostID = &newsID
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if err := db.DB.Preload("User").Where("id = ?", comment.ID).First(&comment).Error; err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	comment.ContentHTML = utils.RenderMarkdown(comment.Content)
	return &comment, nil
}

// DeleteComment removes a comment. Only its author may do so.
func DeleteComment(id, userID string) error {
	var comment models.Comment
	if err := db.DB.Where("id = ?", id).First(&comment).Error; err != nil {
		return notFound(err, "comment")
	}
	if comment.UserID != userID {
		return ErrForbidden
	}
	if err := db.DB.Delete(&comment).Error; err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

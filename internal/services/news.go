package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"risehub/internal/db"
	"risehub/internal/models"
	"risehub/internal/utils"

	"gorm.io/gorm"
)

type NewsInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
	URL     string `json:"url"`
}

type NewsFilter struct {
	Type     string
	Sort     string
	Page     int
	Limit    int
	ViewerID string
}

func ListNews(f NewsFilter) ([]models.NewsPost, int64, error) {
	q := db.DB.Model(&models.NewsPost{})
	if f.Type != "" {
		q = q.Where("type = ?", strings.ToUpper(f.Type))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count news: %w", err)
	}

	if f.Sort == "votes" {
		q = q.Order("vote_count DESC").Order("created_at DESC")
	} else {
		q = q.Order("created_at DESC")
	}

	var posts []models.NewsPost
	if err := q.Preload("User").Offset((f.Page - 1) * f.Limit).Limit(f.Limit).Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("list news: %w", err)
	}

	ptrs := make([]*models.NewsPost, len(posts))
	for i := range posts {
		ptrs[i] = &posts[i]
	}
	annotateNews(ptrs, f.ViewerID)
	return posts, total, nil
}

func GetNews(id, viewerID string) (*models.NewsPost, error) {
	var post models.NewsPost
	if err := db.DB.Preload("User").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, notFound(err, "news post")
	}
	annotateNews([]*models.NewsPost{&post}, viewerID)
	return &post, nil
}

func annotateNews(posts []*models.NewsPost, viewerID string) {
	if len(posts) == 0 {
		return
	}
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts := commentCounts("news_post_id", ids)
	votes := userVotes("news_votes", "news_post_id", viewerID, ids)
	for _, p := range posts {
		p.ContentHTML = renderNewsContent(p)
		p.CommentCount = counts[p.ID]
		p.UserVote = votes[p.ID]
	}
}

// renderNewsContent renders markdown and prepends a player for VIDEO posts
// whose url is a YouTube link.
func renderNewsContent(p *models.NewsPost) string {
	html := utils.RenderMarkdown(p.Content)
	if p.Type == models.NewsTypeVideo {
		if id := utils.YouTubeID(p.URL); id != "" {
			html = utils.YouTubeEmbed(id) + html
		}
	}
	return html
}

// CreateNews is admin only; the handler enforces that.
func CreateNews(userID string, in NewsInput) (*models.NewsPost, error) {
	title := strings.TrimSpace(in.Title)
	typ := strings.ToUpper(strings.TrimSpace(in.Type))
	if title == "" {
		return nil, invalid("title is required")
	}
	if typ == "" {
		typ = models.NewsTypeArticle
	}
	if !models.IsNewsType(typ) {
		return nil, invalid("type must be one of %s", strings.Join(models.NewsTypes, ", "))
	}

	post := models.NewsPost{
		Title:   title,
		Content: in.Content,
		Type:    typ,
		URL:     strings.TrimSpace(in.URL),
		UserID:  userID,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return GetNews(post.ID, userID)
}

// DeleteNews removes a post together with its votes and comments.
func DeleteNews(id string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("news_post_id = ?", id).Delete(&models.NewsVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("news_post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.NewsPost{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	log.Printf("[news] %s deleted", id)
	return nil
}

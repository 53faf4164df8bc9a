package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"risehub/internal/db"
	"risehub/internal/metrics"
	"risehub/internal/models"
	"risehub/internal/utils"

	"github.com/mmcdole/gofeed"
)

// NewsImporter turns feed items into news posts, one post per feed GUID.
type NewsImporter struct {
	parser  *gofeed.Parser
	crawler *CrawlerService
}

type ImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

func NewNewsImporter(crawler *CrawlerService) *NewsImporter {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}
	return &NewsImporter{parser: parser, crawler: crawler}
}

// Import parses feedURL and creates a post for every item not seen before,
// authored by userID. VIDEO is used for YouTube links, ARTICLE otherwise.
func (n *NewsImporter) Import(ctx context.Context, feedURL, userID string) (*ImportResult, error) {
	if strings.TrimSpace(feedURL) == "" {
		return nil, invalid("feed url is required")
	}
	if userID == "" {
		return nil, invalid("feed import needs an author")
	}

	feed, err := n.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	result := &ImportResult{}
	for _, item := range feed.Items {
		guid := item.GUID
		if guid == "" {
			guid = item.Link
		}
		if guid == "" || strings.TrimSpace(item.Title) == "" {
			result.Skipped++
			continue
		}

		var exists int64
		if err := db.DB.Model(&models.NewsPost{}).Where("source_guid = ?", guid).Count(&exists).Error; err != nil {
			return result, fmt.Errorf("check feed item: %w", err)
		}
		if exists > 0 {
			result.Skipped++
			continue
		}

		post := models.NewsPost{
			Title:      strings.TrimSpace(item.Title),
			Type:       models.NewsTypeArticle,
			URL:        item.Link,
			UserID:     userID,
			SourceGUID: &guid,
		}
		if utils.YouTubeID(item.Link) != "" {
			post.Type = models.NewsTypeVideo
		}

		// 优先使用 content:encoded，其次是 description
		post.Content = item.Content
		if post.Content == "" {
			post.Content = item.Description
		}
		if post.Content == "" && post.Type == models.NewsTypeArticle && n.crawler != nil && item.Link != "" {
			post.Content = n.crawler.FetchWithFallback(ctx, item.Link)
		}

		if item.PublishedParsed != nil {
			post.CreatedAt = *item.PublishedParsed
		}

		if err := db.DB.Create(&post).Error; err != nil {
			log.Printf("[feed] store item %q: %v", guid, err)
			result.Skipped++
			continue
		}
		result.Created++
		metrics.FeedItemsImported.Inc()
	}

	log.Printf("[feed] %s: %d created, %d skipped", feedURL, result.Created, result.Skipped)
	return result, nil
}

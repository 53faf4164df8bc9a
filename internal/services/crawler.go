package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// CrawlerService 网页正文抓取，用于订阅源条目没有正文时补全内容
type CrawlerService struct {
	client    *http.Client
	sanitizer *bluemonday.Policy
}

func NewCrawlerService() *CrawlerService {
	return &CrawlerService{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// FetchArticleContent 从 URL 抓取正文内容
// 使用 go-readability 提取正文，然后用 bluemonday 清洗
func (s *CrawlerService) FetchArticleContent(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; RiseHubBot/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, resp.Request.URL)
	if err != nil {
		return "", fmt.Errorf("extract article: %w", err)
	}

	return s.sanitizer.Sanitize(article.Content), nil
}

// FetchWithFallback 尝试抓取内容，失败时返回空字符串而不是错误
func (s *CrawlerService) FetchWithFallback(ctx context.Context, pageURL string) string {
	content, err := s.FetchArticleContent(ctx, pageURL)
	if err != nil {
		return ""
	}
	return content
}

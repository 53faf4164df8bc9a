package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"risehub/internal/db"
	"risehub/internal/models"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Destiny Rising</title>
  <link>https://rise.example</link>
  <item>
    <title>Season 2 patch notes</title>
    <link>https://rise.example/news/season-2</link>
    <guid>season-2</guid>
    <description>New raid and balance changes.</description>
    <pubDate>Tue, 07 Jan 2025 09:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Developer stream</title>
    <link>https://www.youtube.com/watch?v=dQw4w9WgXcQ</link>
    <guid>stream-1</guid>
    <description>Watch the stream.</description>
  </item>
  <item>
    <title></title>
    <guid>untitled</guid>
  </item>
</channel>
</rss>`

func TestNewsImporterDedupesByGUID(t *testing.T) {
	setupTestDB(t)
	admin := createUser(t, "admin", models.RoleAdmin)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testFeed)
	}))
	defer srv.Close()

	importer := NewNewsImporter(nil)

	first, err := importer.Import(context.Background(), srv.URL, admin.ID)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if first.Created != 2 || first.Skipped != 1 {
		t.Errorf("first import = %+v, want 2 created 1 skipped", first)
	}

	second, err := importer.Import(context.Background(), srv.URL, admin.ID)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if second.Created != 0 || second.Skipped != 3 {
		t.Errorf("second import = %+v, want everything skipped", second)
	}

	var video models.NewsPost
	if err := db.DB.Where("source_guid = ?", "stream-1").First(&video).Error; err != nil {
		t.Fatalf("load video post: %v", err)
	}
	if video.Type != models.NewsTypeVideo {
		t.Errorf("youtube item type = %s, want VIDEO", video.Type)
	}

	got, err := GetNews(video.ID, "")
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if got.ContentHTML == "" || got.UserID != admin.ID {
		t.Errorf("video post not rendered or wrong author: %+v", got)
	}
}

func TestNewsImporterRequiresAuthor(t *testing.T) {
	setupTestDB(t)
	if _, err := NewNewsImporter(nil).Import(context.Background(), "http://example.invalid/feed", ""); err == nil {
		t.Error("import without an author should fail")
	}
}

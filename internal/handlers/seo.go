package handlers

import (
	"encoding/xml"
	"log"
	"net/http"
	"time"

	"risehub/internal/db"
	"risehub/internal/models"

	"github.com/gin-gonic/gin"
)

const sitemapLimit = 5000

type SEOHandler struct {
	siteURL string
}

func NewSEOHandler(siteURL string) *SEOHandler {
	return &SEOHandler{siteURL: siteURL}
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapXML 动态生成 sitemap.xml，包含公开构筑和新闻
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	today := time.Now().Format("2006-01-02")

	for _, path := range []string{"/", "/builds", "/weapons", "/mods", "/news", "/lfg", "/clans", "/tasks"} {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.siteURL + path, LastMod: today, ChangeFreq: "daily", Priority: "0.8"})
	}

	var builds []models.Build
	if err := db.DB.Select("id", "updated_at").Where("is_public = ?", true).
		Order("updated_at DESC").Limit(sitemapLimit).Find(&builds).Error; err != nil {
		log.Printf("[sitemap] builds: %v", err)
	}
	for _, b := range builds {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.siteURL + "/builds/" + b.ID,
			LastMod:    b.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	var news []models.NewsPost
	if err := db.DB.Select("id", "updated_at").
		Order("created_at DESC").Limit(sitemapLimit).Find(&news).Error; err != nil {
		log.Printf("[sitemap] news: %v", err)
	}
	for _, n := range news {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.siteURL + "/news/" + n.ID,
			LastMod:    n.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.5",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

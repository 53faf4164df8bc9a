package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := RenderMarkdown("**bold** <script>alert(1)</script>")
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered: %s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("script survived sanitizing: %s", out)
	}
}

func TestRenderMarkdownEmbedsYouTube(t *testing.T) {
	out := RenderMarkdown("https://www.youtube.com/watch?v=abc123&t=10")
	if !strings.Contains(out, "https://www.youtube.com/embed/abc123") {
		t.Errorf("expected embed, got %s", out)
	}
}

func TestSanitizeRichText(t *testing.T) {
	out := SanitizeRichText(`<p onclick="x()">hi</p><img src="https://cdn.example/a.png">`)
	if strings.Contains(out, "onclick") {
		t.Errorf("event handler survived: %s", out)
	}
	if !strings.Contains(out, `loading="lazy"`) {
		t.Errorf("image not enhanced: %s", out)
	}
	if SanitizeRichText("") != "" {
		t.Error("empty input should stay empty")
	}
}

func TestYouTubeID(t *testing.T) {
	tests := map[string]string{
		"https://youtu.be/xyz?si=1":         "xyz",
		"https://m.youtube.com/watch?v=q1":  "q1",
		"https://www.youtube.com/shorts/s9": "s9",
		"https://example.com/watch?v=no":    "",
		"not a url at all":                  "",
	}
	for in, want := range tests {
		if got := YouTubeID(in); got != want {
			t.Errorf("YouTubeID(%q) = %q, want %q", in, got, want)
		}
	}
}

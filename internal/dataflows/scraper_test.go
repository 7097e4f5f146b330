package dataflows

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quantfold/marketagent/internal/config"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Fallback title</title>
  <meta property="og:site_name" content="Example Wire">
  <meta property="article:published_time" content="2026-08-30T12:00:00Z">
</head>
<body>
  <h1>Apple ships something new</h1>
  <div class="article-content">
    <p>Cupertino announced a thing today.</p>
    <p>Analysts expect it to matter.</p>
  </div>
</body>
</html>`

func TestFetchArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	client := NewArticleScraperClient(&config.Config{UserAgent: "marketagent-test/1.0"})
	article, err := client.FetchArticle(context.Background(), srv.URL+"/news/apple")
	if err != nil {
		t.Fatalf("FetchArticle: %v", err)
	}

	if article.Title != "Apple ships something new" {
		t.Errorf("expected h1 title, got %q", article.Title)
	}
	if !strings.Contains(article.Content, "Cupertino announced a thing today.") {
		t.Errorf("expected body text, got %q", article.Content)
	}
	if article.Source != "Example Wire" {
		t.Errorf("expected og:site_name source, got %q", article.Source)
	}
	if article.PublishedAt.Year() != 2026 {
		t.Errorf("expected parsed publish time, got %v", article.PublishedAt)
	}
}

func TestFetchArticleRejectsBadInput(t *testing.T) {
	client := NewArticleScraperClient(&config.Config{UserAgent: "marketagent-test/1.0"})

	if _, err := client.FetchArticle(context.Background(), ""); err == nil {
		t.Error("expected error for empty URL")
	}
	if _, err := client.FetchArticle(context.Background(), "not a url"); err == nil {
		t.Error("expected error for malformed URL")
	}
}

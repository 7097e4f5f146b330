package dataflows

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/quantfold/marketagent/internal/config"
)

// ArticleScraperClient fetches a news article page and extracts its text
// so the agent can read beyond the provider's headline/summary fields.
type ArticleScraperClient struct {
	client *resty.Client
}

func NewArticleScraperClient(cfg *config.Config) *ArticleScraperClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; "+cfg.UserAgent+")")

	return &ArticleScraperClient{
		client: client,
	}
}

// FetchArticle downloads one article page and extracts title and body text.
func (as *ArticleScraperClient) FetchArticle(ctx context.Context, articleURL string) (*NewsArticle, error) {
	if strings.TrimSpace(articleURL) == "" {
		return nil, fmt.Errorf("article URL cannot be empty")
	}
	if _, err := url.ParseRequestURI(articleURL); err != nil {
		return nil, fmt.Errorf("invalid article URL %q: %w", articleURL, err)
	}

	resp, err := as.client.R().SetContext(ctx).Get(articleURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP error %d when fetching article", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return extractArticleContent(doc, articleURL), nil
}

// extractArticleContent extracts article content from HTML
func extractArticleContent(doc *goquery.Document, articleURL string) *NewsArticle {
	title := ""
	titleSelectors := []string{"h1", "title", ".headline", ".article-title", ".entry-title"}
	for _, selector := range titleSelectors {
		if t := strings.TrimSpace(doc.Find(selector).First().Text()); t != "" {
			title = t
			break
		}
	}

	content := ""
	contentSelectors := []string{
		".article-content", ".entry-content", ".post-content",
		".content", "article p", ".article-body", ".story-body",
	}
	for _, selector := range contentSelectors {
		if c := strings.TrimSpace(doc.Find(selector).Text()); c != "" {
			content = c
			break
		}
	}
	if content == "" {
		// Last resort: join all paragraph text
		var parts []string
		doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				parts = append(parts, t)
			}
		})
		content = strings.Join(parts, "\n")
	}

	source := ""
	if meta := doc.Find("meta[property='og:site_name']"); meta.Length() > 0 {
		source, _ = meta.Attr("content")
	}
	if source == "" {
		if u, err := url.Parse(articleURL); err == nil {
			source = u.Host
		}
	}

	publishedAt := time.Now()
	if meta := doc.Find("meta[property='article:published_time']"); meta.Length() > 0 {
		if dateStr, exists := meta.Attr("content"); exists {
			if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
				publishedAt = t
			}
		}
	}

	return &NewsArticle{
		Title:       title,
		Content:     content,
		URL:         articleURL,
		Source:      source,
		PublishedAt: publishedAt,
	}
}

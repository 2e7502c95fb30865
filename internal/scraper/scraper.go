package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
)

// ScrapedArticle holds the extracted content from a single article page.
type ScrapedArticle struct {
	Title       string
	CleanText   string
	PublishedAt time.Time
	RawHTML     string
}

// Scraper wraps a Colly collector configured with respectful rate limiting.
// It is used to pull full article text when a feed only carries a snippet.
type Scraper struct {
	userAgent string
}

// NewScraper creates a new Scraper with rate limiting of 1 request/sec per
// domain and at most 2 parallel requests.
func NewScraper() *Scraper {
	return &Scraper{
		userAgent: "campaignwatch/1.0",
	}
}

// newCollector creates a fresh Colly collector with standard settings and rate
// limiting. Each scrape call gets its own collector to avoid state leakage.
func (s *Scraper) newCollector() *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.AllowURLRevisit(),
		colly.MaxDepth(1),
	)

	// Rate limit: 1 request per second per domain, 2 parallel requests.
	_ = c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		Delay:       1 * time.Second,
		RandomDelay: 500 * time.Millisecond,
	})

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9,hi;q=0.8")
	})

	return c
}

// ScrapeArticle fetches an article page and extracts its content using a
// generic selector set: headline candidates for the title, article/main
// paragraph text for the body, and time/meta elements for the publish date.
func (s *Scraper) ScrapeArticle(ctx context.Context, articleURL string) (*ScrapedArticle, error) {
	c := s.newCollector()

	var (
		result ScrapedArticle
		mu     sync.Mutex
		scrErr error
	)

	// Capture the full HTML of the page.
	c.OnResponse(func(r *colly.Response) {
		mu.Lock()
		result.RawHTML = string(r.Body)
		mu.Unlock()
	})

	// Title: first h1, falling back to og:title.
	c.OnHTML("h1", func(e *colly.HTMLElement) {
		mu.Lock()
		if result.Title == "" {
			result.Title = strings.TrimSpace(e.Text)
		}
		mu.Unlock()
	})
	c.OnHTML(`meta[property="og:title"]`, func(e *colly.HTMLElement) {
		mu.Lock()
		if result.Title == "" {
			result.Title = strings.TrimSpace(e.Attr("content"))
		}
		mu.Unlock()
	})

	// Body: paragraph text inside article or main containers.
	c.OnHTML("article p, main p, div.article-body p, div.story-body p", func(e *colly.HTMLElement) {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			return
		}
		mu.Lock()
		if result.CleanText != "" {
			result.CleanText += "\n"
		}
		result.CleanText += text
		mu.Unlock()
	})

	// Publish date: <time datetime> or article:published_time meta.
	c.OnHTML("time[datetime]", func(e *colly.HTMLElement) {
		mu.Lock()
		if result.PublishedAt.IsZero() {
			result.PublishedAt = parseDate(e.Attr("datetime"))
		}
		mu.Unlock()
	})
	c.OnHTML(`meta[property="article:published_time"]`, func(e *colly.HTMLElement) {
		mu.Lock()
		if result.PublishedAt.IsZero() {
			result.PublishedAt = parseDate(e.Attr("content"))
		}
		mu.Unlock()
	})

	c.OnError(func(r *colly.Response, err error) {
		mu.Lock()
		scrErr = fmt.Errorf("scraper: fetch %s: %w", articleURL, err)
		mu.Unlock()
	})

	// Respect context cancellation.
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := c.Visit(articleURL); err != nil {
			mu.Lock()
			if scrErr == nil {
				scrErr = fmt.Errorf("scraper: visit %s: %w", articleURL, err)
			}
			mu.Unlock()
		}
		c.Wait()
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
	}

	if scrErr != nil {
		return nil, scrErr
	}

	// Fall back to <title> tag if no headline matched.
	if result.Title == "" && result.RawHTML != "" {
		result.Title = extractHTMLTitle(result.RawHTML)
	}

	slog.Debug("scraped article", "url", articleURL, "title_len", len(result.Title), "body_len", len(result.CleanText))

	return &result, nil
}

// extractHTMLTitle performs a simple extraction of the <title> tag from raw HTML.
func extractHTMLTitle(html string) string {
	lower := strings.ToLower(html)
	start := strings.Index(lower, "<title")
	if start == -1 {
		return ""
	}
	// Find the closing > of the opening tag.
	tagEnd := strings.Index(html[start:], ">")
	if tagEnd == -1 {
		return ""
	}
	contentStart := start + tagEnd + 1
	end := strings.Index(lower[contentStart:], "</title>")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(html[contentStart : contentStart+end])
}

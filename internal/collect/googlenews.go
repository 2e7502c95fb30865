package collect

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/durgeshw22/campaignwatch/internal/scraper"
)

// GoogleNews collects articles from the Google News search RSS feed.
type GoogleNews struct{}

func (GoogleNews) Name() string { return "google_news" }

func (g GoogleNews) Collect(ctx context.Context, queries []string, limit int) ([]Item, error) {
	var out []Item
	for _, query := range queries {
		if len(out) >= limit || ctx.Err() != nil {
			break
		}

		feedURL := fmt.Sprintf(
			"https://news.google.com/rss/search?q=%s&hl=en-IN&gl=IN&ceid=IN:en",
			url.QueryEscape(query),
		)

		feedCtx, cancel := context.WithTimeout(ctx, collectTimeout)
		items, err := scraper.ParseFeed(feedCtx, feedURL)
		cancel()

		if err != nil {
			slog.Warn("collect/google_news: parse feed", "query", query, "err", err)
			continue
		}

		for _, item := range items {
			if len(out) >= limit {
				break
			}
			if item.Link == "" {
				continue
			}
			if IsNoise(item.Link, item.Title, item.Description) {
				continue
			}

			out = append(out, Item{
				Source:    g.Name(),
				Title:     item.Title,
				URL:       item.Link,
				Snippet:   truncateStr(item.Description, 500),
				Published: item.Published,
			})
		}
	}

	return out, ctx.Err()
}

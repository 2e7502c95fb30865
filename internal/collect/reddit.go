package collect

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/durgeshw22/campaignwatch/internal/scraper"
)

// Reddit collects posts from the Reddit search RSS feed. Posts must mention
// the query in title or snippet, otherwise the search surfaces too much noise.
type Reddit struct{}

func (Reddit) Name() string { return "reddit" }

func (r Reddit) Collect(ctx context.Context, queries []string, limit int) ([]Item, error) {
	var out []Item
	for _, query := range queries {
		if len(out) >= limit || ctx.Err() != nil {
			break
		}

		feedURL := fmt.Sprintf(
			"https://www.reddit.com/search.rss?q=%s&sort=new",
			url.QueryEscape(query),
		)

		feedCtx, cancel := context.WithTimeout(ctx, collectTimeout)
		items, err := scraper.ParseFeed(feedCtx, feedURL)
		cancel()

		if err != nil {
			slog.Warn("collect/reddit: parse feed", "query", query, "err", err)
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
			text := strings.ToLower(item.Title + " " + item.Description)
			if !strings.Contains(text, strings.ToLower(query)) {
				continue
			}

			out = append(out, Item{
				Source:    r.Name(),
				Title:     item.Title,
				URL:       item.Link,
				Snippet:   truncateStr(item.Description, 500),
				Published: item.Published,
			})
		}
	}

	return out, ctx.Err()
}

// Package scraper provides feed parsing, page scraping, and content
// processing for the collection pipeline.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	feedUserAgent = "campaignwatch/1.0 (+https://github.com/durgeshw22/campaignwatch)"
	feedTimeout   = 30 * time.Second
)

// FeedItem is a single entry parsed from an RSS or Atom feed.
type FeedItem struct {
	Title       string
	Link        string
	Description string
	Published   time.Time
	GUID        string
}

// ParseFeed fetches and parses an RSS or Atom feed, returning its items.
func ParseFeed(ctx context.Context, feedURL string) ([]FeedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, feedTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: create request: %w", err)
	}
	req.Header.Set("User-Agent", feedUserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: fetch %s: status %d", feedURL, resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed: parse %s: %w", feedURL, err)
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, fi := range feed.Items {
		item := FeedItem{
			Title:       strings.TrimSpace(fi.Title),
			Link:        strings.TrimSpace(fi.Link),
			Description: strings.TrimSpace(fi.Description),
			GUID:        strings.TrimSpace(fi.GUID),
		}
		if item.Description == "" && fi.Content != "" {
			item.Description = strings.TrimSpace(fi.Content)
		}
		if fi.PublishedParsed != nil {
			item.Published = *fi.PublishedParsed
		} else if fi.UpdatedParsed != nil {
			item.Published = *fi.UpdatedParsed
		}
		if item.GUID == "" {
			item.GUID = item.Link
		}
		items = append(items, item)
	}
	return items, nil
}

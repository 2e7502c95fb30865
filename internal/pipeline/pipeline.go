// Package pipeline runs the collection and rescoring jobs: it pulls candidate
// documents from the collectors, scores them against the keyword snapshot, and
// persists the results.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/durgeshw22/campaignwatch/internal/collect"
	"github.com/durgeshw22/campaignwatch/internal/config"
	"github.com/durgeshw22/campaignwatch/internal/detect"
	"github.com/durgeshw22/campaignwatch/internal/models"
	"github.com/durgeshw22/campaignwatch/internal/scraper"
	"github.com/durgeshw22/campaignwatch/internal/storage"
)

// maxConcurrentUploads limits parallel snapshot upload goroutines.
const maxConcurrentUploads = 3

// Deps groups everything the pipeline jobs need.
type Deps struct {
	Records    *models.RecordStore
	Keywords   *models.KeywordStore
	Scraper    *scraper.Scraper
	Storage    *storage.Client
	Collectors []collect.Collector
	Cfg        config.CollectorConfig
}

// RunCollection is the main collection job. It snapshots the keyword set,
// derives search queries, runs every collector, and scores and persists each
// new document. Per-document failures are logged and skipped; an invalid
// keyword in the snapshot aborts the pass.
func RunCollection(ctx context.Context, deps Deps) error {
	slog.Info("collection: starting run")
	startTime := time.Now()

	snapshot, err := deps.Keywords.Snapshot(ctx)
	if err != nil {
		return err
	}
	if snapshot.Len() == 0 {
		slog.Info("collection: no keywords configured, nothing to do")
		return nil
	}

	// Check how many documents we've already collected today.
	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	todayCount, err := deps.Records.CountSince(ctx, midnight)
	if err != nil {
		slog.Error("collection: count today", "err", err)
		todayCount = 0
	}

	remaining := deps.Cfg.DailyBudget - todayCount
	if remaining <= 0 {
		slog.Info("collection: daily budget reached", "count", todayCount)
		return nil
	}

	slog.Info("collection: daily budget", "used", todayCount, "remaining", remaining)

	queries := collect.BuildQueries(snapshot, deps.Cfg.MaxQueries)
	slog.Info("collection: queries built", "queries", queries)

	// Semaphore for concurrent snapshot uploads.
	sem := make(chan struct{}, maxConcurrentUploads)
	var wg sync.WaitGroup
	var ingested atomic.Int32

	for _, c := range deps.Collectors {
		if ctx.Err() != nil {
			break
		}
		if int(ingested.Load()) >= remaining {
			slog.Info("collection: daily budget reached mid-run")
			break
		}

		items, err := c.Collect(ctx, queries, deps.Cfg.MaxPerSource)
		if err != nil {
			slog.Error("collection: collect", "source", c.Name(), "err", err)
		}

		slog.Info("collection: items found", "source", c.Name(), "count", len(items))

		for _, item := range items {
			if ctx.Err() != nil {
				break
			}
			if int(ingested.Load()) >= remaining {
				break
			}

			doc, res, err := processItem(ctx, item, snapshot, deps)
			if err != nil {
				if errors.Is(err, detect.ErrInvalidKeyword) {
					wg.Wait()
					return err
				}
				slog.Error("collection: process item", "url", item.URL, "err", err)
				continue
			}
			if doc == nil {
				continue
			}

			ingested.Add(1)
			slog.Info("collection: document stored",
				"id", doc.ID,
				"source", doc.Source,
				"score", res.TotalScore,
				"threat", res.ThreatLevel,
			)

			// Archive the raw text in background.
			if deps.Storage != nil && deps.Storage.Configured() {
				wg.Add(1)
				go func(d models.Document) {
					defer wg.Done()
					sem <- struct{}{}
					defer func() { <-sem }()

					if err := deps.Storage.StoreSnapshot(ctx, d.ID, d.Source, d.URL, []byte(d.RawText)); err != nil {
						slog.Error("collection: store snapshot", "id", d.ID, "err", err)
					}
				}(*doc)
			}
		}
	}

	wg.Wait()

	slog.Info("collection: run complete",
		"documents_stored", ingested.Load(),
		"duration", time.Since(startTime).Round(time.Millisecond),
	)
	return nil
}

// processItem turns one collected item into a stored, scored document. It
// returns (nil, nil, nil) when the item is a duplicate or has no usable text.
func processItem(ctx context.Context, item collect.Item, snapshot *detect.Store, deps Deps) (*models.Document, *detect.Result, error) {
	urlHash := scraper.HashURL(item.URL)

	exists, err := deps.Records.ExistsByURLHash(ctx, urlHash)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		slog.Debug("collection: skipping duplicate", "url", item.URL)
		return nil, nil, nil
	}

	title := item.Title
	text := scraper.CleanText(item.Snippet)

	// Feed snippets are often too thin to score. Pull the full article when
	// the snippet is below the threshold.
	if len(text) < deps.Cfg.ScrapeBelow && deps.Scraper != nil {
		scraped, scrapeErr := deps.Scraper.ScrapeArticle(ctx, item.URL)
		if scrapeErr != nil {
			slog.Debug("collection: scrape fallback failed", "url", item.URL, "err", scrapeErr)
		} else {
			if len(scraped.CleanText) > len(text) {
				text = scraped.CleanText
			}
			if title == "" {
				title = scraped.Title
			}
			if item.Published.IsZero() && !scraped.PublishedAt.IsZero() {
				item.Published = scraped.PublishedAt
			}
		}
	}

	if title == "" && text == "" {
		slog.Warn("collection: empty document, skipping", "url", item.URL)
		return nil, nil, nil
	}

	doc := &models.Document{
		ID:          uuid.New(),
		Source:      item.Source,
		Title:       title,
		URL:         scraper.CanonicalizeURL(item.URL),
		URLHash:     urlHash,
		RawText:     text,
		PublishedAt: timePtr(item.Published),
		CollectedAt: time.Now().UTC(),
	}

	res, err := detect.Score(detect.Document{ID: doc.ID, Text: title + "\n" + text}, snapshot)
	if err != nil {
		return nil, nil, err
	}

	if err := deps.Records.Save(ctx, doc, res); err != nil {
		return nil, nil, err
	}

	return doc, res, nil
}

// timePtr returns a pointer to the given time, or nil if it is the zero value.
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Command worker runs the campaignwatch background jobs. It periodically
// collects candidate documents from the configured sources, scores them
// against the keyword set, and rescores the stored corpus once a day.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/durgeshw22/campaignwatch/internal/collect"
	"github.com/durgeshw22/campaignwatch/internal/config"
	"github.com/durgeshw22/campaignwatch/internal/db"
	"github.com/durgeshw22/campaignwatch/internal/models"
	"github.com/durgeshw22/campaignwatch/internal/pipeline"
	"github.com/durgeshw22/campaignwatch/internal/scraper"
	"github.com/durgeshw22/campaignwatch/internal/storage"
)

func main() {
	// Structured JSON logging.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("worker: starting campaignwatch worker")

	// Load configuration.
	cfg := config.Load()

	// Create a root context that is cancelled on shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the database.
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		slog.Error("worker: database connection failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Create stores.
	recordStore := models.NewRecordStore(pool)
	keywordStore := models.NewKeywordStore(pool)

	// Create S3 storage client.
	storageClient, err := storage.NewClient(ctx, cfg.S3)
	if err != nil {
		slog.Error("worker: storage client creation failed", "err", err)
		os.Exit(1)
	}

	deps := pipeline.Deps{
		Records:  recordStore,
		Keywords: keywordStore,
		Scraper:  scraper.NewScraper(),
		Storage:  storageClient,
		Collectors: []collect.Collector{
			collect.NewNewsAPI(cfg.Collector.NewsAPIKey),
			collect.GoogleNews{},
			collect.Reddit{},
		},
		Cfg: cfg.Collector,
	}

	// Track in-flight jobs for graceful shutdown.
	var wg sync.WaitGroup

	// Set up cron scheduler (standard 5-field cron expressions).
	c := cron.New()

	// Collection: every 4 hours (6 times/day).
	_, err = c.AddFunc("0 */4 * * *", func() {
		wg.Add(1)
		defer wg.Done()

		jobCtx, jobCancel := context.WithTimeout(ctx, 1*time.Hour)
		defer jobCancel()

		slog.Info("cron: collection job triggered")
		if err := pipeline.RunCollection(jobCtx, deps); err != nil {
			slog.Error("cron: collection job failed", "err", err)
		}
	})
	if err != nil {
		slog.Error("worker: add collection cron", "err", err)
		os.Exit(1)
	}

	// Rescore: daily at 3am, so yesterday's documents pick up keyword changes.
	_, err = c.AddFunc("0 3 * * *", func() {
		wg.Add(1)
		defer wg.Done()

		jobCtx, jobCancel := context.WithTimeout(ctx, 30*time.Minute)
		defer jobCancel()

		slog.Info("cron: rescore job triggered")
		if err := pipeline.RunRescore(jobCtx, recordStore, keywordStore); err != nil {
			slog.Error("cron: rescore job failed", "err", err)
		}
	})
	if err != nil {
		slog.Error("worker: add rescore cron", "err", err)
		os.Exit(1)
	}

	// Start the cron scheduler.
	c.Start()
	slog.Info("worker: cron scheduler started",
		"jobs", len(c.Entries()),
	)

	// Run an initial collection on startup so we don't wait 4 hours for the
	// first run.
	wg.Add(1)
	go func() {
		defer wg.Done()

		// Small delay to let everything settle.
		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
			return
		}

		jobCtx, jobCancel := context.WithTimeout(ctx, 1*time.Hour)
		defer jobCancel()

		slog.Info("worker: running initial collection on startup")
		if err := pipeline.RunCollection(jobCtx, deps); err != nil {
			slog.Error("worker: initial collection failed", "err", err)
		}
	}()

	// ── Graceful Shutdown ──────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	slog.Info("worker: received shutdown signal", "signal", sig.String())

	// Stop accepting new cron jobs.
	slog.Info("worker: stopping cron scheduler")
	cronCtx := c.Stop()

	// Cancel the root context to signal all in-flight jobs to stop.
	cancel()

	// Wait for the cron scheduler to finish its currently running jobs.
	select {
	case <-cronCtx.Done():
		slog.Info("worker: cron scheduler stopped")
	case <-time.After(30 * time.Second):
		slog.Warn("worker: cron scheduler stop timed out")
	}

	// Wait for all in-flight goroutines.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("worker: all in-flight jobs complete")
	case <-time.After(60 * time.Second):
		slog.Warn("worker: timed out waiting for in-flight jobs")
	}

	// Close the database pool.
	pool.Close()
	slog.Info("worker: shutdown complete")
}

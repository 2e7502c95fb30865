// Command api starts the campaignwatch HTTP API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/durgeshw22/campaignwatch/internal/collect"
	"github.com/durgeshw22/campaignwatch/internal/config"
	"github.com/durgeshw22/campaignwatch/internal/db"
	"github.com/durgeshw22/campaignwatch/internal/handlers"
	"github.com/durgeshw22/campaignwatch/internal/models"
	"github.com/durgeshw22/campaignwatch/internal/pipeline"
	"github.com/durgeshw22/campaignwatch/internal/scraper"
	"github.com/durgeshw22/campaignwatch/internal/storage"
)

func main() {
	// Structured logging.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Database connection.
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Data stores.
	recordStore := models.NewRecordStore(pool)
	keywordStore := models.NewKeywordStore(pool)

	// S3 storage client (for snapshot retrieval and archival).
	storageClient, storageErr := storage.NewClient(ctx, cfg.S3)
	if storageErr != nil {
		slog.Warn("S3 storage not available", "err", storageErr)
		storageClient = nil
	}

	// Handlers.
	keywordsHandler := &handlers.KeywordsHandler{
		Keywords: keywordStore,
	}
	recordsHandler := &handlers.RecordsHandler{
		Records: recordStore,
		Storage: storageClient,
	}
	statsHandler := &handlers.StatsHandler{
		Records: recordStore,
	}
	exportHandler := &handlers.ExportHandler{
		Records: recordStore,
	}
	adminHandler := &handlers.AdminHandler{
		Deps: pipeline.Deps{
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
		},
	}

	// Router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/health", handlers.Health)

	// Keywords.
	r.Get("/api/keywords", keywordsHandler.ListKeywords)
	r.Post("/api/keywords", keywordsHandler.CreateKeyword)
	r.Delete("/api/keywords/{term}", keywordsHandler.DeleteKeyword)

	// Records.
	r.Get("/api/records", recordsHandler.ListRecords)
	r.Get("/api/records/{id}", recordsHandler.GetRecord)
	r.Get("/api/records/{id}/snapshot", recordsHandler.GetSnapshot)

	// Reports.
	r.Get("/api/stats", statsHandler.GetStats)
	r.Get("/api/export.csv", exportHandler.ExportCSV)

	// Admin actions.
	r.Post("/api/admin/collect", adminHandler.TriggerCollect)
	r.Post("/api/admin/rescore", adminHandler.TriggerRescore)

	// Start server.
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
	}

	slog.Info("server stopped")
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/durgeshw22/campaignwatch/internal/pipeline"
)

// AdminHandler groups the manual job-trigger HTTP handlers.
type AdminHandler struct {
	Deps pipeline.Deps
}

// TriggerCollect handles POST /api/admin/collect.
// Manually starts a collection pass in the background.
func (h *AdminHandler) TriggerCollect(w http.ResponseWriter, r *http.Request) {
	go func() {
		if err := pipeline.RunCollection(context.Background(), h.Deps); err != nil {
			slog.Error("admin: collection run", "err", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":  "started",
		"message": "Collection started in background. New records will appear shortly.",
	})
}

// TriggerRescore handles POST /api/admin/rescore.
// Recomputes all stored scores against the current keyword set.
func (h *AdminHandler) TriggerRescore(w http.ResponseWriter, r *http.Request) {
	go func() {
		if err := pipeline.RunRescore(context.Background(), h.Deps.Records, h.Deps.Keywords); err != nil {
			slog.Error("admin: rescore run", "err", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":  "started",
		"message": "Rescore started in background.",
	})
}

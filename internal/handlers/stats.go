package handlers

import (
	"log/slog"
	"net/http"

	"github.com/durgeshw22/campaignwatch/internal/models"
)

// StatsHandler serves aggregate dashboard statistics.
type StatsHandler struct {
	Records *models.RecordStore
}

// GetStats handles GET /api/stats.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Records.Stats(r.Context())
	if err != nil {
		slog.Error("get stats", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

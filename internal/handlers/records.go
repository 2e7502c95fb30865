package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/durgeshw22/campaignwatch/internal/models"
	"github.com/durgeshw22/campaignwatch/internal/storage"
)

// RecordsHandler groups scored document HTTP handlers.
type RecordsHandler struct {
	Records *models.RecordStore
	Storage *storage.Client
}

// ListRecords handles GET /api/records.
// Query params: from, to (RFC 3339), source, min_score, limit, offset.
func (h *RecordsHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilters(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, err := h.Records.Query(r.Context(), f)
	if err != nil {
		slog.Error("list records", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if records == nil {
		records = []models.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"count":   len(records),
	})
}

// GetRecord handles GET /api/records/{id}.
func (h *RecordsHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid record id"})
		return
	}

	record, err := h.Records.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "record not found"})
			return
		}
		slog.Error("get record", "id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// GetSnapshot handles GET /api/records/{id}/snapshot.
// Returns the archived raw text for a document from object storage.
func (h *RecordsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid record id"})
		return
	}

	if h.Storage == nil || !h.Storage.Configured() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "snapshot storage not configured"})
		return
	}

	snap, err := h.Storage.GetSnapshot(r.Context(), id)
	if err != nil {
		slog.Debug("get snapshot", "id", id, "err", err)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "snapshot not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"raw_text": string(snap.RawText),
		"meta":     snap.Meta,
	})
}

// parseFilters builds query filters from request parameters.
func parseFilters(r *http.Request) (models.Filters, error) {
	var f models.Filters
	q := r.URL.Query()

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("invalid from timestamp, expected RFC 3339")
		}
		f.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("invalid to timestamp, expected RFC 3339")
		}
		f.To = t
	}

	f.Source = q.Get("source")

	if v := q.Get("min_score"); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil || s < 0 {
			return f, errors.New("invalid min_score")
		}
		f.MinScore = s
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("invalid limit")
		}
		f.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("invalid offset")
		}
		f.Offset = n
	}

	return f, nil
}

package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/durgeshw22/campaignwatch/internal/models"
)

// maxExportRecords caps a single CSV export.
const maxExportRecords = 10000

// ExportHandler serves CSV exports of scored documents.
type ExportHandler struct {
	Records *models.RecordStore
}

// ExportCSV handles GET /api/export.csv.
// Accepts the same query params as GET /api/records.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilters(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if f.Limit == 0 || f.Limit > maxExportRecords {
		f.Limit = maxExportRecords
	}

	records, err := h.Records.Query(r.Context(), f)
	if err != nil {
		slog.Error("export csv", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="campaignwatch-export-%s.csv"`, time.Now().UTC().Format("2006-01-02")))

	if err := writeRecordsCSV(w, records); err != nil {
		slog.Error("export csv: write", "err", err)
	}
}

// writeRecordsCSV writes records as CSV rows with a header line.
func writeRecordsCSV(w io.Writer, records []models.Record) error {
	cw := csv.NewWriter(w)

	header := []string{
		"id", "source", "title", "url", "published_at", "collected_at",
		"total_score", "threat_level", "matched_terms", "category_hits", "scored_at",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		publishedAt := ""
		if rec.Document.PublishedAt != nil {
			publishedAt = rec.Document.PublishedAt.UTC().Format(time.RFC3339)
		}

		hits := make([]string, 0, len(rec.Score.CategoryHits))
		for _, ch := range rec.Score.CategoryHits {
			hits = append(hits, fmt.Sprintf("%s=%s", ch.Category, strconv.FormatFloat(ch.Hits, 'f', -1, 64)))
		}

		row := []string{
			rec.Document.ID.String(),
			rec.Document.Source,
			rec.Document.Title,
			rec.Document.URL,
			publishedAt,
			rec.Document.CollectedAt.UTC().Format(time.RFC3339),
			strconv.FormatFloat(rec.Score.TotalScore, 'f', -1, 64),
			rec.Score.ThreatLevel,
			strings.Join(rec.Score.MatchedTerms, ";"),
			strings.Join(hits, ";"),
			rec.Score.ScoredAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

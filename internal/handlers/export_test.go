package handlers

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durgeshw22/campaignwatch/internal/detect"
	"github.com/durgeshw22/campaignwatch/internal/models"
)

func TestWriteRecordsCSV(t *testing.T) {
	published := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	collected := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	scored := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)
	id := uuid.MustParse("4f8a2c1e-9b2d-4e6f-8a3b-1c5d7e9f0a2b")

	records := []models.Record{
		{
			Document: models.Document{
				ID:          id,
				Source:      "google_news",
				Title:       "Coordinated posts spread fake news",
				URL:         "https://example.com/article",
				PublishedAt: &published,
				CollectedAt: collected,
			},
			Score: detect.Result{
				DocumentID: id,
				CategoryHits: []detect.CategoryHit{
					{Category: "misinfo", Hits: 2},
					{Category: "campaign", Hits: 1.5},
				},
				TotalScore:   3.5,
				MatchedTerms: []string{"fake news", "coordinated"},
				ThreatLevel:  detect.ThreatMedium,
				ScoredAt:     scored,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeRecordsCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"id", "source", "title", "url", "published_at", "collected_at",
		"total_score", "threat_level", "matched_terms", "category_hits", "scored_at",
	}, rows[0])

	row := rows[1]
	assert.Equal(t, id.String(), row[0])
	assert.Equal(t, "google_news", row[1])
	assert.Equal(t, "2026-03-01T10:00:00Z", row[4])
	assert.Equal(t, "3.5", row[6])
	assert.Equal(t, "medium", row[7])
	assert.Equal(t, "fake news;coordinated", row[8])
	assert.Equal(t, "misinfo=2;campaign=1.5", row[9])
}

func TestWriteRecordsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecordsCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestWriteRecordsCSVNilPublished(t *testing.T) {
	records := []models.Record{
		{
			Document: models.Document{ID: uuid.New(), Source: "reddit"},
			Score:    detect.Result{ThreatLevel: detect.ThreatNone},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeRecordsCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Empty(t, rows[1][4])
}

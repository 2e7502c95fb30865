package models

import (
	"context"
	"time"

	"github.com/durgeshw22/campaignwatch/internal/detect"
)

// SourceCount is the number of documents collected from one source.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// ThreatCount is the number of documents at one threat level.
type ThreatCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// DayCount is the number of documents collected on one UTC day.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// Stats holds the dashboard summary aggregates.
type Stats struct {
	TotalDocuments int                  `json:"total_documents"`
	AverageScore   float64              `json:"average_score"`
	MaxScore       float64              `json:"max_score"`
	BySource       []SourceCount        `json:"by_source"`
	ByThreatLevel  []ThreatCount        `json:"by_threat_level"`
	ByCategory     []detect.CategoryHit `json:"by_category"`
	RecentActivity []DayCount           `json:"recent_activity"`
}

// Stats computes the dashboard aggregates: document totals, score summary,
// per-source and per-threat-level distributions, accumulated category hits,
// and collection activity over the last 30 days.
func (s *RecordStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(d.id), COALESCE(AVG(r.total_score), 0), COALESCE(MAX(r.total_score), 0)
		FROM documents d
		JOIN score_results r ON r.document_id = d.id
	`).Scan(&stats.TotalDocuments, &stats.AverageScore, &stats.MaxScore)
	if err != nil {
		return nil, storageErr("stats totals", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT source, COUNT(*) FROM documents GROUP BY source ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, storageErr("stats by source", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, storageErr("stats by source: scan", err)
		}
		stats.BySource = append(stats.BySource, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("stats by source", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT threat_level, COUNT(*) FROM score_results GROUP BY threat_level ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, storageErr("stats by threat level", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tc ThreatCount
		if err := rows.Scan(&tc.Level, &tc.Count); err != nil {
			return nil, storageErr("stats by threat level: scan", err)
		}
		stats.ByThreatLevel = append(stats.ByThreatLevel, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("stats by threat level", err)
	}

	// Category hits live in a JSONB array per score row; unnest and sum.
	rows, err = s.pool.Query(ctx, `
		SELECT h->>'category', SUM((h->>'hits')::double precision)
		FROM score_results, jsonb_array_elements(category_hits) h
		GROUP BY 1
		ORDER BY 2 DESC
	`)
	if err != nil {
		return nil, storageErr("stats by category", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ch detect.CategoryHit
		if err := rows.Scan(&ch.Category, &ch.Hits); err != nil {
			return nil, storageErr("stats by category: scan", err)
		}
		stats.ByCategory = append(stats.ByCategory, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("stats by category", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT date_trunc('day', collected_at AT TIME ZONE 'UTC'), COUNT(*)
		FROM documents
		WHERE collected_at >= now() - interval '30 days'
		GROUP BY 1
		ORDER BY 1
	`)
	if err != nil {
		return nil, storageErr("stats recent activity", err)
	}
	defer rows.Close()
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, storageErr("stats recent activity: scan", err)
		}
		stats.RecentActivity = append(stats.RecentActivity, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("stats recent activity", err)
	}

	return stats, nil
}

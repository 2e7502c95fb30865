// Package models defines the persisted data types and their pgx-backed
// stores: immutable collected documents, their latest score results, and the
// keyword list that drives the matcher.
package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/durgeshw22/campaignwatch/internal/detect"
)

// Document is one collected article or social post. Documents are immutable
// once stored; only their score result is ever replaced.
type Document struct {
	ID          uuid.UUID  `json:"id"`
	Source      string     `json:"source"`
	Title       string     `json:"title,omitempty"`
	URL         string     `json:"url,omitempty"`
	URLHash     string     `json:"-"`
	RawText     string     `json:"raw_text,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CollectedAt time.Time  `json:"collected_at"`
}

// Record is a document joined with its latest score result.
type Record struct {
	Document Document      `json:"document"`
	Score    detect.Result `json:"score"`
}

// Filters narrows a RecordStore query. Zero values impose no constraint.
type Filters struct {
	From     time.Time
	To       time.Time
	Source   string
	MinScore float64
	Limit    int
	Offset   int
}

// RecordStore persists documents and their computed scores.
type RecordStore struct {
	pool *pgxpool.Pool
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

// Pool returns the underlying connection pool for direct queries.
func (s *RecordStore) Pool() *pgxpool.Pool {
	return s.pool
}

// Save upserts a document with its score result. The document insert is
// idempotent (re-saving the same id changes nothing); the score row replaces
// any prior result for that document. Failures wrap ErrStorage.
func (s *RecordStore) Save(ctx context.Context, doc *Document, res *detect.Result) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.CollectedAt.IsZero() {
		doc.CollectedAt = time.Now().UTC()
	}

	hitsJSON, err := json.Marshal(res.CategoryHits)
	if err != nil {
		return fmt.Errorf("record save: marshal category hits: %w", err)
	}
	termsJSON, err := json.Marshal(res.MatchedTerms)
	if err != nil {
		return fmt.Errorf("record save: marshal matched terms: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return storageErr("record save: begin", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO documents (id, source, title, url, url_hash, raw_text, published_at, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`, doc.ID, doc.Source, doc.Title, doc.URL, doc.URLHash, doc.RawText, doc.PublishedAt, doc.CollectedAt)
	if err != nil {
		return storageErr("record save: document", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO score_results (document_id, category_hits, total_score, matched_terms, threat_level, scored_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (document_id) DO UPDATE SET
			category_hits = EXCLUDED.category_hits,
			total_score   = EXCLUDED.total_score,
			matched_terms = EXCLUDED.matched_terms,
			threat_level  = EXCLUDED.threat_level,
			scored_at     = EXCLUDED.scored_at
	`, doc.ID, hitsJSON, res.TotalScore, termsJSON, res.ThreatLevel, res.ScoredAt)
	if err != nil {
		return storageErr("record save: score", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr("record save: commit", err)
	}
	return nil
}

const recordColumns = `
	d.id, d.source, d.title, d.url, d.url_hash, d.raw_text, d.published_at, d.collected_at,
	s.category_hits, s.total_score, s.matched_terms, s.threat_level, s.scored_at`

// scannable is an interface for pgx Row and Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*Record, error) {
	var rec Record
	var hitsRaw, termsRaw []byte
	if err := row.Scan(
		&rec.Document.ID, &rec.Document.Source, &rec.Document.Title, &rec.Document.URL,
		&rec.Document.URLHash, &rec.Document.RawText, &rec.Document.PublishedAt,
		&rec.Document.CollectedAt,
		&hitsRaw, &rec.Score.TotalScore, &termsRaw, &rec.Score.ThreatLevel, &rec.Score.ScoredAt,
	); err != nil {
		return nil, err
	}
	rec.Score.DocumentID = rec.Document.ID
	if len(hitsRaw) > 0 {
		if err := json.Unmarshal(hitsRaw, &rec.Score.CategoryHits); err != nil {
			return nil, fmt.Errorf("decode category hits: %w", err)
		}
	}
	if len(termsRaw) > 0 {
		if err := json.Unmarshal(termsRaw, &rec.Score.MatchedTerms); err != nil {
			return nil, fmt.Errorf("decode matched terms: %w", err)
		}
	}
	return &rec, nil
}

// Query returns document/score pairs matching the filters, ordered by
// collected_at descending.
func (s *RecordStore) Query(ctx context.Context, f Filters) ([]Record, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}

	var conditions []string
	var args []any
	argN := 1

	if !f.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("d.collected_at >= $%d", argN))
		args = append(args, f.From)
		argN++
	}
	if !f.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("d.collected_at <= $%d", argN))
		args = append(args, f.To)
		argN++
	}
	if f.Source != "" {
		conditions = append(conditions, fmt.Sprintf("d.source = $%d", argN))
		args = append(args, f.Source)
		argN++
	}
	if f.MinScore > 0 {
		conditions = append(conditions, fmt.Sprintf("s.total_score >= $%d", argN))
		args = append(args, f.MinScore)
		argN++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	q := fmt.Sprintf(`
		SELECT %s
		FROM documents d
		JOIN score_results s ON s.document_id = d.id
		%s
		ORDER BY d.collected_at DESC
		LIMIT $%d OFFSET $%d
	`, recordColumns, where, argN, argN+1)
	args = append(args, limit, f.Offset)

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, storageErr("record query", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("record query: scan: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("record query", err)
	}
	return records, nil
}

// GetByID returns a single record by document id.
func (s *RecordStore) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM documents d
		JOIN score_results s ON s.document_id = d.id
		WHERE d.id = $1
	`, recordColumns), id)

	rec, err := scanRecord(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("record get %s: %w", id, ErrNotFound)
		}
		return nil, storageErr("record get", err)
	}
	return rec, nil
}

// ExistsByURLHash checks whether a document with the given canonical URL hash
// is already stored.
func (s *RecordStore) ExistsByURLHash(ctx context.Context, urlHash string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM documents WHERE url_hash = $1)`, urlHash,
	).Scan(&exists)
	if err != nil {
		return false, storageErr("record exists by url hash", err)
	}
	return exists, nil
}

// ListDocuments returns all stored documents in collection order, newest
// first. Used by the rescore pass, which walks every document.
func (s *RecordStore) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, source, title, url, url_hash, raw_text, published_at, collected_at
		FROM documents
		ORDER BY collected_at DESC
	`)
	if err != nil {
		return nil, storageErr("document list", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Source, &d.Title, &d.URL, &d.URLHash,
			&d.RawText, &d.PublishedAt, &d.CollectedAt); err != nil {
			return nil, fmt.Errorf("document list: scan: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("document list", err)
	}
	return docs, nil
}

// CountSince returns the number of documents collected at or after the given
// time. The ingestion budget check uses this with the start of the UTC day.
func (s *RecordStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM documents WHERE collected_at >= $1`, since,
	).Scan(&count)
	if err != nil {
		return 0, storageErr("document count since", err)
	}
	return count, nil
}

package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/durgeshw22/campaignwatch/internal/detect"
)

// KeywordRecord is a persisted keyword with its storage metadata.
type KeywordRecord struct {
	ID        int64     `json:"id"`
	Term      string    `json:"term"`
	Category  string    `json:"category"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

// KeywordStore persists the keyword list. Insertion order is the serial id,
// which is the order the in-memory snapshot preserves.
type KeywordStore struct {
	pool *pgxpool.Pool
}

// NewKeywordStore creates a new KeywordStore.
func NewKeywordStore(pool *pgxpool.Pool) *KeywordStore {
	return &KeywordStore{pool: pool}
}

// pgUniqueViolation is the Postgres error code for unique constraint hits.
const pgUniqueViolation = "23505"

// Create inserts a keyword. Terms are unique case-insensitively; a duplicate
// returns detect.ErrDuplicateKeyword unless overwrite is set, in which case
// category and weight are updated in place (keeping the original id, and with
// it the insertion position). A zero weight defaults to 1.
func (s *KeywordStore) Create(ctx context.Context, kw detect.Keyword, overwrite bool) error {
	if err := kw.Validate(); err != nil {
		return err
	}
	kw.Term = strings.TrimSpace(kw.Term)
	if kw.Weight == 0 {
		kw.Weight = 1
	}

	if overwrite {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO keywords (term, category, weight)
			VALUES ($1, $2, $3)
			ON CONFLICT (lower(term)) DO UPDATE SET
				category = EXCLUDED.category,
				weight   = EXCLUDED.weight
		`, kw.Term, kw.Category, kw.Weight)
		if err != nil {
			return storageErr("keyword upsert", err)
		}
		return nil
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO keywords (term, category, weight) VALUES ($1, $2, $3)
	`, kw.Term, kw.Category, kw.Weight)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("keyword create: %w: %q", detect.ErrDuplicateKeyword, kw.Term)
		}
		return storageErr("keyword create", err)
	}
	return nil
}

// Delete removes a keyword by term (case-insensitive). Returns
// detect.ErrKeywordNotFound if no row matched.
func (s *KeywordStore) Delete(ctx context.Context, term string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM keywords WHERE lower(term) = lower($1)`, strings.TrimSpace(term))
	if err != nil {
		return storageErr("keyword delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("keyword delete: %w: %q", detect.ErrKeywordNotFound, term)
	}
	return nil
}

// ListAll returns all keywords in insertion order.
func (s *KeywordStore) ListAll(ctx context.Context) ([]KeywordRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, term, category, weight, created_at
		FROM keywords
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, storageErr("keyword list", err)
	}
	defer rows.Close()

	var keywords []KeywordRecord
	for rows.Next() {
		var k KeywordRecord
		if err := rows.Scan(&k.ID, &k.Term, &k.Category, &k.Weight, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("keyword list: scan: %w", err)
		}
		keywords = append(keywords, k)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("keyword list", err)
	}
	return keywords, nil
}

// Snapshot loads the persisted keyword list into an in-memory detect.Store
// for a scoring pass. The snapshot is independent of later edits, so the
// matcher sees a stable read-only view.
func (s *KeywordStore) Snapshot(ctx context.Context) (*detect.Store, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	store := detect.NewStore()
	for _, k := range records {
		kw := detect.Keyword{Term: k.Term, Category: k.Category, Weight: k.Weight}
		if err := store.Add(kw, false); err != nil {
			return nil, fmt.Errorf("keyword snapshot: %w", err)
		}
	}
	return store, nil
}

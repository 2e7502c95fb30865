// Package detect implements the campaign-detection core: an ordered keyword
// store, a deterministic text normalizer, and the matcher/scorer that turns a
// collected document into weighted per-category hit counts.
package detect

import (
	"fmt"
	"iter"
	"strings"
)

// Keyword is a term/category/weight triple used for text matching.
// Multi-word terms match as contiguous token sequences.
type Keyword struct {
	Term     string  `json:"term"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

// Validate checks the term and weight. A zero weight is treated as
// unspecified by Store.Add, so only negative weights are rejected here.
func (k Keyword) Validate() error {
	if strings.TrimSpace(k.Term) == "" {
		return fmt.Errorf("%w: empty term", ErrInvalidKeyword)
	}
	if k.Weight < 0 {
		return fmt.Errorf("%w: negative weight %g for %q", ErrInvalidKeyword, k.Weight, k.Term)
	}
	return nil
}

// Store is an ordered collection of keywords, deduplicated by term
// (case-insensitive). It is not a process-wide singleton: callers construct
// one, pass it by reference into Score, and treat it as read-only while a
// scoring pass runs. Concurrent reads are safe.
type Store struct {
	keywords []Keyword
	index    map[string]int // lowercased term -> position in keywords
}

// NewStore creates an empty keyword store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Add inserts a keyword. If the term is already present (case-insensitive)
// and overwrite is false, it returns ErrDuplicateKeyword; with overwrite the
// category and weight are updated in place and the original position is kept.
// A zero weight defaults to 1.
func (s *Store) Add(kw Keyword, overwrite bool) error {
	if err := kw.Validate(); err != nil {
		return err
	}
	kw.Term = strings.TrimSpace(kw.Term)
	if kw.Weight == 0 {
		kw.Weight = 1
	}

	key := strings.ToLower(kw.Term)
	if pos, ok := s.index[key]; ok {
		if !overwrite {
			return fmt.Errorf("%w: %q", ErrDuplicateKeyword, kw.Term)
		}
		s.keywords[pos] = kw
		return nil
	}

	s.index[key] = len(s.keywords)
	s.keywords = append(s.keywords, kw)
	return nil
}

// Remove deletes a keyword by term (case-insensitive). Returns
// ErrKeywordNotFound if absent.
func (s *Store) Remove(term string) error {
	key := strings.ToLower(strings.TrimSpace(term))
	pos, ok := s.index[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrKeywordNotFound, term)
	}

	s.keywords = append(s.keywords[:pos], s.keywords[pos+1:]...)
	delete(s.index, key)
	for k, p := range s.index {
		if p > pos {
			s.index[k] = p - 1
		}
	}
	return nil
}

// All returns a restartable iterator over keywords in insertion order.
func (s *Store) All() iter.Seq[Keyword] {
	return func(yield func(Keyword) bool) {
		for _, kw := range s.keywords {
			if !yield(kw) {
				return
			}
		}
	}
}

// Len returns the number of keywords in the store.
func (s *Store) Len() int {
	return len(s.keywords)
}

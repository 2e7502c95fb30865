package detect

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Document is the scorer's view of a collected article or post: the stored
// id plus the raw text to scan. The full persisted record lives in models.
type Document struct {
	ID   uuid.UUID
	Text string
}

// CategoryHit is one category's accumulated weighted hit count.
type CategoryHit struct {
	Category string  `json:"category"`
	Hits     float64 `json:"hits"`
}

// Result is the per-document output of a scoring pass. CategoryHits and
// MatchedTerms keep first-seen order from the scan so reports are
// reproducible. Results are derived data: rescoring a document replaces the
// prior result.
type Result struct {
	DocumentID   uuid.UUID     `json:"document_id"`
	CategoryHits []CategoryHit `json:"category_hits"`
	TotalScore   float64       `json:"total_score"`
	MatchedTerms []string      `json:"matched_terms"`
	ThreatLevel  string        `json:"threat_level"`
	ScoredAt     time.Time     `json:"scored_at"`
}

// Hits returns the accumulated hits for a category, or 0 if it never matched.
func (r *Result) Hits(category string) float64 {
	for _, ch := range r.CategoryHits {
		if ch.Category == category {
			return ch.Hits
		}
	}
	return 0
}

// Threat-level thresholds on the aggregate score. The score is a coarse
// campaign-likelihood signal, not a probability.
const (
	ThreatNone   = "none"
	ThreatLow    = "low"
	ThreatMedium = "medium"
	ThreatHigh   = "high"
)

func threatLevel(score float64) string {
	switch {
	case score >= 5:
		return ThreatHigh
	case score >= 3:
		return ThreatMedium
	case score >= 1:
		return ThreatLow
	default:
		return ThreatNone
	}
}

// Score scans the document text for keyword occurrences and tallies weighted
// per-category hit counts. The document text is normalized once; each keyword
// term is matched case-insensitively as a contiguous token subsequence, and
// every occurrence counts independently (overlapping matches included). An
// empty document or an empty store yields a zero-score result. A keyword with
// an empty term fails fast with ErrInvalidKeyword before any scanning.
func Score(doc Document, store *Store) (*Result, error) {
	for kw := range store.All() {
		if err := kw.Validate(); err != nil {
			return nil, fmt.Errorf("detect: score %s: %w", doc.ID, err)
		}
	}

	tokens, err := Normalize(doc.Text)
	if err != nil {
		return nil, fmt.Errorf("detect: score %s: %w", doc.ID, err)
	}

	result := &Result{
		DocumentID: doc.ID,
		ScoredAt:   time.Now().UTC(),
	}
	catIndex := make(map[string]int)

	for kw := range store.All() {
		term, err := Normalize(kw.Term)
		if err != nil || len(term) == 0 {
			// Terms are validated above; a term that normalizes to nothing
			// (pure punctuation) can never match.
			continue
		}

		n := countOccurrences(tokens, term)
		if n == 0 {
			continue
		}

		pos, ok := catIndex[kw.Category]
		if !ok {
			pos = len(result.CategoryHits)
			catIndex[kw.Category] = pos
			result.CategoryHits = append(result.CategoryHits, CategoryHit{Category: kw.Category})
		}
		result.CategoryHits[pos].Hits += float64(n) * kw.Weight
		result.TotalScore += float64(n) * kw.Weight
		result.MatchedTerms = append(result.MatchedTerms, kw.Term)
	}

	result.ThreatLevel = threatLevel(result.TotalScore)
	return result, nil
}

// countOccurrences counts how many positions in tokens start a contiguous
// match of term. Overlapping occurrences all count.
func countOccurrences(tokens, term []string) int {
	if len(term) == 0 || len(tokens) < len(term) {
		return 0
	}
	count := 0
	for i := 0; i+len(term) <= len(tokens); i++ {
		match := true
		for j, t := range term {
			if tokens[i+j] != t {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count
}

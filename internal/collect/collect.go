// Package collect gathers candidate documents from external sources: NewsAPI,
// Google News search RSS, and Reddit search RSS. Collectors only fetch; the
// pipeline scores and persists.
package collect

import (
	"context"
	"sort"
	"time"

	"github.com/durgeshw22/campaignwatch/internal/detect"
)

const collectTimeout = 30 * time.Second

// Item is one candidate document found by a collector.
type Item struct {
	Source    string
	Title     string
	URL       string
	Snippet   string
	Published time.Time
}

// Collector fetches candidate items for a set of search queries.
type Collector interface {
	// Name identifies the collector; it becomes the document source.
	Name() string
	// Collect runs the queries and returns at most limit items. Collectors
	// make network calls and respect ctx cancellation.
	Collect(ctx context.Context, queries []string, limit int) ([]Item, error)
}

// BuildQueries derives search queries from the keyword snapshot: terms in
// descending weight order (insertion order breaking ties), capped at max.
func BuildQueries(store *detect.Store, max int) []string {
	type weighted struct {
		term   string
		weight float64
		pos    int
	}

	var kws []weighted
	pos := 0
	for kw := range store.All() {
		kws = append(kws, weighted{term: kw.Term, weight: kw.Weight, pos: pos})
		pos++
	}

	sort.SliceStable(kws, func(i, j int) bool {
		if kws[i].weight != kws[j].weight {
			return kws[i].weight > kws[j].weight
		}
		return kws[i].pos < kws[j].pos
	})

	if max <= 0 {
		max = 5
	}
	queries := make([]string, 0, max)
	for _, kw := range kws {
		if len(queries) >= max {
			break
		}
		queries = append(queries, kw.term)
	}
	return queries
}

// truncateStr shortens a string to maxLen.
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durgeshw22/campaignwatch/internal/detect"
)

func TestBuildQueries(t *testing.T) {
	store := detect.NewStore()
	require.NoError(t, store.Add(detect.Keyword{Term: "boycott india", Category: "campaign", Weight: 3}, false))
	require.NoError(t, store.Add(detect.Keyword{Term: "fake news", Category: "misinfo", Weight: 1}, false))
	require.NoError(t, store.Add(detect.Keyword{Term: "propaganda", Category: "campaign", Weight: 3}, false))
	require.NoError(t, store.Add(detect.Keyword{Term: "kashmir", Category: "geo", Weight: 5}, false))

	queries := BuildQueries(store, 3)

	// Highest weight first, insertion order breaking ties.
	assert.Equal(t, []string{"kashmir", "boycott india", "propaganda"}, queries)
}

func TestBuildQueriesEmptyStore(t *testing.T) {
	queries := BuildQueries(detect.NewStore(), 5)
	assert.Empty(t, queries)
}

func TestBuildQueriesDefaultCap(t *testing.T) {
	store := detect.NewStore()
	for _, term := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"} {
		require.NoError(t, store.Add(detect.Keyword{Term: term, Category: "c", Weight: 1}, false))
	}

	queries := BuildQueries(store, 0)
	assert.Len(t, queries, 5)
}

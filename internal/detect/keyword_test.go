package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(s *Store) []Keyword {
	var out []Keyword
	for kw := range s.All() {
		out = append(out, kw)
	}
	return out
}

func TestStoreAdd(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Add(Keyword{Term: "boycott india", Category: "campaign", Weight: 2}, false))
	require.NoError(t, s.Add(Keyword{Term: "fake", Category: "misinfo", Weight: 1}, false))

	err := s.Add(Keyword{Term: "Boycott India", Category: "other"}, false)
	require.ErrorIs(t, err, ErrDuplicateKeyword)

	assert.Equal(t, 2, s.Len())
}

func TestStoreAddOverwriteUpdatesInPlace(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(Keyword{Term: "fake", Category: "misinfo", Weight: 1}, false))
	require.NoError(t, s.Add(Keyword{Term: "boycott", Category: "campaign", Weight: 1}, false))

	require.NoError(t, s.Add(Keyword{Term: "FAKE", Category: "disinfo", Weight: 3}, true))

	kws := collect(s)
	require.Len(t, kws, 2)
	// Position preserved, category/weight replaced.
	assert.Equal(t, "disinfo", kws[0].Category)
	assert.Equal(t, 3.0, kws[0].Weight)
	assert.Equal(t, "boycott", kws[1].Term)
}

func TestStoreAddDefaultsWeight(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(Keyword{Term: "propaganda", Category: "misinfo"}, false))
	assert.Equal(t, 1.0, collect(s)[0].Weight)
}

func TestStoreAddInvalid(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.Add(Keyword{Term: "", Category: "misinfo"}, false), ErrInvalidKeyword)
	assert.ErrorIs(t, s.Add(Keyword{Term: "   ", Category: "misinfo"}, false), ErrInvalidKeyword)
	assert.ErrorIs(t, s.Add(Keyword{Term: "x", Category: "misinfo", Weight: -1}, false), ErrInvalidKeyword)
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(Keyword{Term: "a", Category: "c1"}, false))
	require.NoError(t, s.Add(Keyword{Term: "b", Category: "c2"}, false))
	require.NoError(t, s.Add(Keyword{Term: "c", Category: "c3"}, false))

	require.NoError(t, s.Remove("B"))
	assert.ErrorIs(t, s.Remove("b"), ErrKeywordNotFound)
	assert.ErrorIs(t, s.Remove("missing"), ErrKeywordNotFound)

	kws := collect(s)
	require.Len(t, kws, 2)
	assert.Equal(t, "a", kws[0].Term)
	assert.Equal(t, "c", kws[1].Term)

	// Index positions stay consistent after removal.
	require.NoError(t, s.Remove("c"))
	require.NoError(t, s.Remove("a"))
	assert.Equal(t, 0, s.Len())
}

func TestStoreAllInsertionOrderAndRestartable(t *testing.T) {
	s := NewStore()
	terms := []string{"z", "m", "a", "q"}
	for _, term := range terms {
		require.NoError(t, s.Add(Keyword{Term: term, Category: "c"}, false))
	}

	seq := s.All()
	for pass := 0; pass < 2; pass++ {
		i := 0
		for kw := range seq {
			assert.Equal(t, terms[i], kw.Term)
			i++
		}
		assert.Equal(t, len(terms), i)
	}

	// Early break must not poison later iterations.
	for range s.All() {
		break
	}
	assert.Len(t, collect(s), len(terms))
}

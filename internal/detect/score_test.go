package detect

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeFrom(t *testing.T, kws ...Keyword) *Store {
	t.Helper()
	s := NewStore()
	for _, kw := range kws {
		require.NoError(t, s.Add(kw, false))
	}
	return s
}

func doc(text string) Document {
	return Document{ID: uuid.New(), Text: text}
}

func TestScoreEmptyStore(t *testing.T) {
	res, err := Score(doc("anti India campaign spreading fake news"), NewStore())
	require.NoError(t, err)
	assert.Zero(t, res.TotalScore)
	assert.Empty(t, res.CategoryHits)
	assert.Empty(t, res.MatchedTerms)
	assert.Equal(t, ThreatNone, res.ThreatLevel)
}

func TestScoreEmptyDocument(t *testing.T) {
	s := storeFrom(t,
		Keyword{Term: "fake", Category: "misinfo", Weight: 1},
		Keyword{Term: "boycott india", Category: "campaign", Weight: 2},
	)
	res, err := Score(doc(""), s)
	require.NoError(t, err)
	assert.Zero(t, res.TotalScore)
	assert.Empty(t, res.CategoryHits)
}

func TestScoreScenario(t *testing.T) {
	s := storeFrom(t,
		Keyword{Term: "fake", Category: "misinfo", Weight: 1},
		Keyword{Term: "boycott india", Category: "campaign", Weight: 2},
	)

	res, err := Score(doc("Boycott India now, it's fake news"), s)
	require.NoError(t, err)

	assert.Equal(t, 3.0, res.TotalScore)
	assert.Equal(t, 1.0, res.Hits("misinfo"))
	assert.Equal(t, 2.0, res.Hits("campaign"))
	assert.ElementsMatch(t, []string{"fake", "boycott india"}, res.MatchedTerms)
	assert.Equal(t, ThreatMedium, res.ThreatLevel)
}

func TestScoreCaseInsensitive(t *testing.T) {
	s := storeFrom(t, Keyword{Term: "india", Category: "geo", Weight: 1})

	lower, err := Score(doc("India"), s)
	require.NoError(t, err)
	upper, err := Score(doc("INDIA"), s)
	require.NoError(t, err)

	assert.Equal(t, lower.TotalScore, upper.TotalScore)
	assert.Equal(t, lower.CategoryHits, upper.CategoryHits)
	assert.Equal(t, lower.MatchedTerms, upper.MatchedTerms)
}

func TestScoreMultiWordContiguous(t *testing.T) {
	s := storeFrom(t, Keyword{Term: "fake news", Category: "misinfo", Weight: 1})

	hit, err := Score(doc("this is fake news today"), s)
	require.NoError(t, err)
	assert.Equal(t, 1.0, hit.TotalScore)

	miss, err := Score(doc("fake report, no news"), s)
	require.NoError(t, err)
	assert.Zero(t, miss.TotalScore)
	assert.Empty(t, miss.MatchedTerms)
}

func TestScoreCountsEveryOccurrence(t *testing.T) {
	s := storeFrom(t,
		Keyword{Term: "india", Category: "geo", Weight: 1},
		Keyword{Term: "india india", Category: "echo", Weight: 1},
	)

	// "india india india": three single-token hits, two overlapping bigrams.
	res, err := Score(doc("india india india"), s)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Hits("geo"))
	assert.Equal(t, 2.0, res.Hits("echo"))
	assert.Equal(t, 5.0, res.TotalScore)
}

func TestScoreCategoryFirstSeenOrder(t *testing.T) {
	s := storeFrom(t,
		Keyword{Term: "boycott", Category: "campaign", Weight: 1},
		Keyword{Term: "fake", Category: "misinfo", Weight: 1},
		Keyword{Term: "ban", Category: "campaign", Weight: 1},
	)

	res, err := Score(doc("fake claims urge boycott and ban"), s)
	require.NoError(t, err)
	require.Len(t, res.CategoryHits, 2)
	assert.Equal(t, "campaign", res.CategoryHits[0].Category)
	assert.Equal(t, "misinfo", res.CategoryHits[1].Category)
	assert.Equal(t, 2.0, res.CategoryHits[0].Hits)
}

func TestScoreMatchedTermsRecordedOnce(t *testing.T) {
	s := storeFrom(t, Keyword{Term: "fake", Category: "misinfo", Weight: 1})
	res, err := Score(doc("fake fake fake"), s)
	require.NoError(t, err)
	assert.Equal(t, []string{"fake"}, res.MatchedTerms)
	assert.Equal(t, 3.0, res.TotalScore)
}

func TestScoreInvalidKeywordFailsFast(t *testing.T) {
	s := NewStore()
	// Bypass Add validation to simulate a corrupt snapshot.
	s.keywords = append(s.keywords, Keyword{Term: "", Category: "misinfo", Weight: 1})

	_, err := Score(doc("anything"), s)
	assert.ErrorIs(t, err, ErrInvalidKeyword)
}

func TestScoreBadEncoding(t *testing.T) {
	s := storeFrom(t, Keyword{Term: "india", Category: "geo", Weight: 1})
	_, err := Score(doc(string([]byte{0xff, 0xfe})), s)
	assert.ErrorIs(t, err, ErrBadEncoding)
}

func TestThreatLevels(t *testing.T) {
	assert.Equal(t, ThreatNone, threatLevel(0))
	assert.Equal(t, ThreatNone, threatLevel(0.5))
	assert.Equal(t, ThreatLow, threatLevel(1))
	assert.Equal(t, ThreatMedium, threatLevel(3))
	assert.Equal(t, ThreatHigh, threatLevel(5))
	assert.Equal(t, ThreatHigh, threatLevel(42))
}

package search

import (
	"testing"

	"github.com/okulfonu/destekbot/internal/knowledge"
	"github.com/okulfonu/destekbot/internal/textnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(t *testing.T, entries []knowledge.Entry) *Matcher {
	t.Helper()
	idx, err := knowledge.NewIndex(entries)
	require.NoError(t, err)
	return NewMatcher(idx)
}

func corpusMatcher(t *testing.T) *Matcher {
	t.Helper()
	return newTestMatcher(t, knowledge.Corpus())
}

func TestMatchEmptyQuery(t *testing.T) {
	t.Parallel()
	m := corpusMatcher(t)

	for _, q := range []string{"", "   ", "?!", "a b c"} {
		res := m.Match(q)
		assert.Nil(t, res.Best, "query %q must yield no best match", q)
		assert.Empty(t, res.Related, "query %q must yield no related entries", q)
	}
}

func TestMatchDonationSafety(t *testing.T) {
	t.Parallel()
	m := corpusMatcher(t)

	res := m.Match("bağışım güvende mi")
	require.NotNil(t, res.Best)
	assert.Equal(t, "payment-security", res.Best.ID)
	for _, rel := range res.Related {
		assert.NotEqual(t, "farewell", rel.ID)
	}
}

func TestMatchThresholdContract(t *testing.T) {
	t.Parallel()

	entries := []knowledge.Entry{
		{ID: "weak", Category: knowledge.CategoryGeneral, Keywords: []string{"zzzz"}, Question: "soru", Answer: "cevap", Priority: 1},
		{ID: "strong", Category: knowledge.CategoryDonation, Keywords: []string{"bağış"}, Question: "Bağış nasıl yapılır?", Answer: "cevap", Priority: 5},
	}
	m := newTestMatcher(t, entries)

	// "weak" scores only its priority bias (0.5), below the threshold.
	res := m.Match("tamamen alakasız sorgu")
	assert.Nil(t, res.Best)

	res = m.Match("bağış yapmak istiyorum")
	require.NotNil(t, res.Best)
	assert.Equal(t, "strong", res.Best.ID)
	assert.Empty(t, res.Related, "sub-threshold entries must never appear as related")
}

func TestMatchRelatedCap(t *testing.T) {
	t.Parallel()

	entries := []knowledge.Entry{
		{ID: "e1", Category: knowledge.CategoryDonation, Keywords: []string{"bağış"}, Question: "Bağış bir", Answer: "a", Priority: 9},
		{ID: "e2", Category: knowledge.CategoryDonation, Keywords: []string{"bağış"}, Question: "Bağış iki", Answer: "a", Priority: 8},
		{ID: "e3", Category: knowledge.CategoryDonation, Keywords: []string{"bağış"}, Question: "Bağış üç", Answer: "a", Priority: 7},
		{ID: "e4", Category: knowledge.CategoryDonation, Keywords: []string{"bağış"}, Question: "Bağış dört", Answer: "a", Priority: 6},
	}
	m := newTestMatcher(t, entries)

	res := m.Match("bağış")
	require.NotNil(t, res.Best)
	assert.Equal(t, "e1", res.Best.ID)
	require.Len(t, res.Related, 2)
	assert.Equal(t, "e2", res.Related[0].ID)
	assert.Equal(t, "e3", res.Related[1].ID)
}

func TestMatchStableTieBreak(t *testing.T) {
	t.Parallel()

	// Identical entries apart from ID: corpus order must decide.
	entries := []knowledge.Entry{
		{ID: "first", Category: knowledge.CategoryGeneral, Keywords: []string{"destek"}, Question: "Destek", Answer: "a", Priority: 5},
		{ID: "second", Category: knowledge.CategoryGeneral, Keywords: []string{"destek"}, Question: "Destek", Answer: "a", Priority: 5},
	}
	m := newTestMatcher(t, entries)

	res := m.Match("destek")
	require.NotNil(t, res.Best)
	assert.Equal(t, "first", res.Best.ID)
}

func TestScoreMonotonicUnderAddedKeyword(t *testing.T) {
	t.Parallel()

	query := "öğrenci doğrulama süreci nasıl işliyor"
	normalized := textnorm.Normalize(query)
	tokens := textnorm.Tokenize(normalized)

	base := knowledge.Entry{
		ID:       "verify",
		Category: knowledge.CategoryVerification,
		Keywords: []string{"doğrulama"},
		Question: "Öğrenciler nasıl doğrulanıyor?",
		Answer:   "a",
		Priority: 5,
	}
	extended := base
	extended.Keywords = append([]string{"öğrenci doğrulama"}, base.Keywords...)

	mBase := newTestMatcher(t, []knowledge.Entry{base})
	mExt := newTestMatcher(t, []knowledge.Entry{extended})

	baseScore := mBase.score(&mBase.entries[0], normalized, tokens)
	extScore := mExt.score(&mExt.entries[0], normalized, tokens)

	assert.GreaterOrEqual(t, extScore, baseScore,
		"adding a literally-matching keyword must never decrease the score")
}

func TestScoreComponents(t *testing.T) {
	t.Parallel()

	entry := knowledge.Entry{
		ID:       "fee",
		Category: knowledge.CategoryPlatform,
		Keywords: []string{"komisyon"},
		Question: "Komisyon var mı?",
		Answer:   "a",
		Priority: 4,
	}
	m := newTestMatcher(t, []knowledge.Entry{entry})

	normalized := textnorm.Normalize("komisyon oranı nedir")
	tokens := textnorm.Tokenize(normalized)
	got := m.score(&m.entries[0], normalized, tokens)

	// keyword substring: 10*8 = 80
	// token "komisyon" vs keyword "komisyon": +3 overlap, +1 prefix
	// question contains token "komisyon": +2
	// priority bias: 4*0.5 = 2
	assert.InDelta(t, 88.0, got, 0.001)
}

func TestGibberishYieldsNoMatch(t *testing.T) {
	t.Parallel()
	m := corpusMatcher(t)

	res := m.Match("xyzqw asdfgh")
	assert.Nil(t, res.Best, "gibberish must not produce a best match")
	assert.Empty(t, res.Related)
}

func TestNoCorpusEntryMatchesOnPriorityAlone(t *testing.T) {
	t.Parallel()

	// The priority bias applies to every scored entry, so an entry whose
	// bias alone reaches the threshold would be returned for any query
	// that survives tokenization.
	for _, e := range knowledge.Corpus() {
		assert.Less(t, float64(e.Priority)*priorityWeight, MatchThreshold,
			"entry %s would match every query on priority bias alone", e.ID)
	}
}

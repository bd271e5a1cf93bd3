// Package search implements the knowledge-base matcher. It scores every
// corpus entry against a normalized free-text query and returns the best
// entry plus up to two related runner-ups.
//
// The scoring constants are load-bearing: they were tuned against the live
// corpus and changing them changes which answer users get. Do not retune
// them without re-validating the corpus.
package search

import (
	"sort"
	"strings"

	"github.com/okulfonu/destekbot/internal/knowledge"
	"github.com/okulfonu/destekbot/internal/textnorm"
)

// Scoring constants.
const (
	// keywordHitWeight multiplies the keyword length when the whole keyword
	// phrase appears in the query.
	keywordHitWeight = 10.0

	// tokenOverlapBonus applies when a query token and a keyword contain one
	// another in either direction.
	tokenOverlapBonus = 3.0

	// prefixBonus applies when a token and a keyword (both at least three
	// characters) share their first three characters.
	prefixBonus = 1.0

	// questionTokenBonus applies per query token found in the entry's
	// normalized question text.
	questionTokenBonus = 2.0

	// priorityWeight scales the entry priority into a fixed importance bias.
	priorityWeight = 0.5

	// MatchThreshold is the minimum score for an entry to be reported at all.
	MatchThreshold = 5.0

	// maxRelated caps the runner-up entries returned alongside the best match.
	maxRelated = 2
)

// Result holds the ranking output for one query. Best is nil when no entry
// reached the threshold; Related never contains Best and holds at most two
// entries, all at or above the threshold.
type Result struct {
	Best    *knowledge.Entry
	Related []*knowledge.Entry
}

// indexedEntry carries an entry with its normalized match material,
// precomputed once at construction.
type indexedEntry struct {
	entry    *knowledge.Entry
	keywords []string // normalized keyword phrases
	question string   // normalized question text
}

// Matcher scores queries against an immutable knowledge index.
type Matcher struct {
	entries []indexedEntry
}

// NewMatcher builds a matcher over the given index, normalizing all keyword
// phrases and question texts up front.
func NewMatcher(idx *knowledge.Index) *Matcher {
	entries := idx.Entries()
	indexed := make([]indexedEntry, len(entries))
	for i := range entries {
		e := &entries[i]
		keywords := make([]string, 0, len(e.Keywords))
		for _, kw := range e.Keywords {
			if n := textnorm.Normalize(kw); n != "" {
				keywords = append(keywords, n)
			}
		}
		indexed[i] = indexedEntry{
			entry:    e,
			keywords: keywords,
			question: textnorm.Normalize(e.Question),
		}
	}
	return &Matcher{entries: indexed}
}

// Match ranks the corpus against the raw query. An empty query, or one whose
// tokens are all a single character, yields an empty Result by contract.
func (m *Matcher) Match(query string) Result {
	normalized := textnorm.Normalize(query)
	if normalized == "" {
		return Result{}
	}
	tokens := textnorm.Tokenize(normalized)
	if len(tokens) == 0 {
		return Result{}
	}

	type scored struct {
		pos   int
		score float64
	}
	ranked := make([]scored, 0, len(m.entries))
	for i := range m.entries {
		ranked = append(ranked, scored{pos: i, score: m.score(&m.entries[i], normalized, tokens)})
	}

	// Stable sort keeps corpus order as the tie-break.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	var result Result
	for _, s := range ranked {
		if s.score < MatchThreshold {
			break
		}
		entry := m.entries[s.pos].entry
		if result.Best == nil {
			result.Best = entry
			continue
		}
		result.Related = append(result.Related, entry)
		if len(result.Related) == maxRelated {
			break
		}
	}
	return result
}

// score computes the additive match score of one entry for the query.
func (m *Matcher) score(ie *indexedEntry, normalizedQuery string, tokens []string) float64 {
	var score float64

	for _, kw := range ie.keywords {
		if strings.Contains(normalizedQuery, kw) {
			score += keywordHitWeight * float64(len(kw))
		}
		for _, tok := range tokens {
			if strings.Contains(tok, kw) || strings.Contains(kw, tok) {
				score += tokenOverlapBonus
			}
			if len(tok) >= 3 && len(kw) >= 3 && tok[:3] == kw[:3] {
				score += prefixBonus
			}
		}
	}

	for _, tok := range tokens {
		if strings.Contains(ie.question, tok) {
			score += questionTokenBonus
		}
	}

	score += float64(ie.entry.Priority) * priorityWeight

	return score
}

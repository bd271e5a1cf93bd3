// Package textnorm provides text normalization for matching Turkish user
// input against the knowledge corpus. All matching layers (intent phrases,
// keyword scoring, question-text lookups) go through the same Normalize
// function so comparisons stay literal after folding.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// foldTable maps Turkish letters (and the circumflexed vowels that appear in
// loanwords) to their base Latin forms. Uppercase forms are handled by the
// Turkish-aware lowercasing pass that runs first, so only lowercase runes
// need entries here.
var foldTable = map[rune]rune{
	'ç': 'c',
	'ğ': 'g',
	'ı': 'i',
	'ö': 'o',
	'ş': 's',
	'ü': 'u',
	'â': 'a',
	'î': 'i',
	'û': 'u',
}

// turkishLower applies Turkish casing rules, so that "İ" lowers to "i" and
// "I" lowers to "ı" (which the fold table then maps to "i").
var turkishLower = cases.Lower(language.Turkish)

// Normalize lowercases s with Turkish casing rules, folds accented letters to
// base Latin letters, strips every rune that is not a-z, 0-9 or space, and
// trims surrounding whitespace. It is pure and total: empty input yields
// empty output, and Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	lowered := turkishLower.String(s)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if folded, ok := foldTable[r]; ok {
			r = folded
		}
		switch {
		case r >= 'a' && r <= 'z',
			r >= '0' && r <= '9',
			r == ' ':
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}

// Tokenize splits a normalized query into scoring tokens. Tokens of length
// one or less carry no signal for substring scoring and are dropped; a query
// that only contains such tokens therefore yields no tokens at all.
func Tokenize(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

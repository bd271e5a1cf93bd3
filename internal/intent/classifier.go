// Package intent implements the first-pass router for free-text input. It is
// deliberately simpler than the knowledge matcher: a fixed, ordered list of
// literal trigger phrases where the first hit wins and anything unmatched
// falls through to knowledge search.
package intent

import (
	"strings"

	"github.com/okulfonu/destekbot/internal/textnorm"
)

// Intent is the routing decision for one user message.
type Intent string

// The closed set of intents. IntentFAQ is the fallthrough: it routes the
// message to the knowledge matcher.
const (
	IntentGreeting    Intent = "greeting"
	IntentFindStudent Intent = "find_student"
	IntentMotivation  Intent = "motivation"
	IntentFarewell    Intent = "farewell"
	IntentThanks      Intent = "thanks"
	IntentFAQ         Intent = "faq"
)

// rule pairs an intent with its trigger phrases. Phrases are stored
// normalized so classification is a plain substring check.
type rule struct {
	intent  Intent
	phrases []string
}

// Classifier routes text to an intent by ordered literal phrase matching.
type Classifier struct {
	rules []rule
}

// NewClassifier builds the classifier with the fixed rule set. Declaration
// order is the match order: greeting wins over find-student when both hit.
func NewClassifier() *Classifier {
	raw := []struct {
		intent  Intent
		phrases []string
	}{
		{IntentGreeting, []string{"merhaba", "selam", "günaydın", "iyi akşamlar", "hey"}},
		{IntentFindStudent, []string{"öğrenci bul", "öğrenci ara", "bağış yapmak istiyorum", "destek olmak istiyorum", "öğrenci öner"}},
		{IntentMotivation, []string{"neden bağış", "ne işe yarar", "bağışım ne olacak", "etkisi ne"}},
		{IntentFarewell, []string{"hoşça kal", "güle güle", "görüşürüz", "bay bay"}},
		{IntentThanks, []string{"teşekkür", "sağ ol", "sağol", "eyvallah", "çok naziksin"}},
	}

	rules := make([]rule, 0, len(raw))
	for _, r := range raw {
		normalized := make([]string, 0, len(r.phrases))
		for _, p := range r.phrases {
			if n := textnorm.Normalize(p); n != "" {
				normalized = append(normalized, n)
			}
		}
		rules = append(rules, rule{intent: r.intent, phrases: normalized})
	}
	return &Classifier{rules: rules}
}

// Classify normalizes the text and returns the first intent whose phrase set
// yields a literal substring hit, or IntentFAQ when none match.
func (c *Classifier) Classify(text string) Intent {
	normalized := textnorm.Normalize(text)
	if normalized == "" {
		return IntentFAQ
	}
	for _, r := range c.rules {
		for _, phrase := range r.phrases {
			if strings.Contains(normalized, phrase) {
				return r.intent
			}
		}
	}
	return IntentFAQ
}

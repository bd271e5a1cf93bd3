// Package knowledge holds the curated question/answer corpus the assistant
// searches. The corpus is immutable: it is built once at startup and never
// modified afterwards, so it can be shared between goroutines without locks.
package knowledge

import (
	"errors"
	"fmt"
)

// Category tags a knowledge entry with the part of the platform it covers.
type Category string

// The closed set of entry categories.
const (
	CategoryGeneral      Category = "general"
	CategoryDonation     Category = "donation"
	CategorySecurity     Category = "security"
	CategoryPayment      Category = "payment"
	CategoryCampaign     Category = "campaign"
	CategoryVerification Category = "verification"
	CategoryStudent      Category = "student"
	CategoryAccount      Category = "account"
	CategoryTax          Category = "tax"
	CategoryRefund       Category = "refund"
	CategoryPlatform     Category = "platform"
	CategoryPrivacy      Category = "privacy"
	CategoryContact      Category = "contact"
	CategoryVolunteer    Category = "volunteer"
	CategoryCorporate    Category = "corporate"
)

// validCategories is used by Entry.Validate.
var validCategories = map[Category]struct{}{
	CategoryGeneral:      {},
	CategoryDonation:     {},
	CategorySecurity:     {},
	CategoryPayment:      {},
	CategoryCampaign:     {},
	CategoryVerification: {},
	CategoryStudent:      {},
	CategoryAccount:      {},
	CategoryTax:          {},
	CategoryRefund:       {},
	CategoryPlatform:     {},
	CategoryPrivacy:      {},
	CategoryContact:      {},
	CategoryVolunteer:    {},
	CategoryCorporate:    {},
}

// Priority bounds for entries.
const (
	MinPriority = 1
	MaxPriority = 10
)

// Entry is one knowledge-base record: a canonical question, its answer, the
// keyword phrases the ranker scores against, and a priority weight used as a
// fixed importance bias. JSON tags match the snapshot format used for corpus
// overrides.
type Entry struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Keywords []string `json:"keywords"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	FollowUp string   `json:"follow_up,omitempty"`
	Priority int      `json:"priority"`
}

// Validation errors.
var (
	ErrEmptyID         = errors.New("knowledge: entry id is empty")
	ErrUnknownCategory = errors.New("knowledge: unknown category")
	ErrPriorityRange   = errors.New("knowledge: priority out of range")
	ErrNoKeywords      = errors.New("knowledge: entry has no keywords")
)

// Validate checks the entry invariants: non-empty ID, a known category, at
// least one keyword, and priority within [1,10].
func (e *Entry) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if _, ok := validCategories[e.Category]; !ok {
		return fmt.Errorf("%w: %q (entry %s)", ErrUnknownCategory, e.Category, e.ID)
	}
	if len(e.Keywords) == 0 {
		return fmt.Errorf("%w: entry %s", ErrNoKeywords, e.ID)
	}
	if e.Priority < MinPriority || e.Priority > MaxPriority {
		return fmt.Errorf("%w: %d (entry %s)", ErrPriorityRange, e.Priority, e.ID)
	}
	return nil
}

package chat

import (
	"context"

	"github.com/okulfonu/destekbot/internal/knowledge"
	"github.com/okulfonu/destekbot/internal/search"
)

// FAQAnswer is a resolved knowledge-base answer.
type FAQAnswer struct {
	Text     string
	FollowUp string
	Related  []RelatedQuestion
}

// RelatedQuestion is a runner-up entry offered as a quick reply.
type RelatedQuestion struct {
	EntryID string
	Label   string
}

// FAQService answers free text from the knowledge base. The flow controller
// treats it as an opaque collaborator: Lookup returns nil (not an error) when
// nothing matched, and any error is converted to apology copy by the caller.
type FAQService interface {
	Lookup(ctx context.Context, query string) (*FAQAnswer, error)
	ByID(ctx context.Context, entryID string) (*FAQAnswer, error)
}

// KnowledgeFAQ serves FAQ lookups from the in-process index and matcher.
type KnowledgeFAQ struct {
	index   *knowledge.Index
	matcher *search.Matcher
}

// NewKnowledgeFAQ builds the in-process FAQ service.
func NewKnowledgeFAQ(idx *knowledge.Index, matcher *search.Matcher) *KnowledgeFAQ {
	return &KnowledgeFAQ{index: idx, matcher: matcher}
}

// Lookup ranks the corpus against the query.
func (f *KnowledgeFAQ) Lookup(_ context.Context, query string) (*FAQAnswer, error) {
	result := f.matcher.Match(query)
	if result.Best == nil {
		return nil, nil
	}
	return toAnswer(result.Best, result.Related), nil
}

// ByID answers a specific entry, used by related-question quick replies.
func (f *KnowledgeFAQ) ByID(_ context.Context, entryID string) (*FAQAnswer, error) {
	entry := f.index.ByID(entryID)
	if entry == nil {
		return nil, nil
	}
	return toAnswer(entry, nil), nil
}

func toAnswer(best *knowledge.Entry, related []*knowledge.Entry) *FAQAnswer {
	answer := &FAQAnswer{
		Text:     best.Answer,
		FollowUp: best.FollowUp,
	}
	for _, r := range related {
		answer.Related = append(answer.Related, RelatedQuestion{EntryID: r.ID, Label: r.Question})
	}
	return answer
}

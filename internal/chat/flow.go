package chat

import (
	"context"
	"sync"
	"time"

	"github.com/okulfonu/destekbot/internal/clock"
	"github.com/okulfonu/destekbot/internal/intent"
	"github.com/okulfonu/destekbot/internal/logger"
	"github.com/okulfonu/destekbot/internal/occasion"
	"github.com/okulfonu/destekbot/internal/recommend"
)

// Step is the conversation position.
type Step string

// The conversation steps. Data collection runs welcome through ask_country in
// a fixed order; searching and results follow the single recommendation
// fetch.
const (
	StepWelcome     Step = "welcome"
	StepAskField    Step = "ask_field"
	StepAskGender   Step = "ask_gender"
	StepAskBudget   Step = "ask_budget"
	StepAskPriority Step = "ask_priority"
	StepAskCountry  Step = "ask_country"
	StepSearching   Step = "searching"
	StepResults     Step = "results"
)

// nextStep advances the pointer. It depends only on the current step, never
// on the value the user chose.
func nextStep(s Step) Step {
	switch s {
	case StepWelcome:
		return StepAskField
	case StepAskField:
		return StepAskGender
	case StepAskGender:
		return StepAskBudget
	case StepAskBudget:
		return StepAskPriority
	case StepAskPriority:
		return StepAskCountry
	case StepAskCountry:
		return StepSearching
	case StepSearching:
		return StepResults
	default:
		return s
	}
}

func isCollectionStep(s Step) bool {
	switch s {
	case StepAskField, StepAskGender, StepAskBudget, StepAskPriority, StepAskCountry:
		return true
	}
	return false
}

// stepOption is one fixed choice of a data-collection step.
type stepOption struct {
	Label string
	Value string
}

// anyValue is the explicit "no constraint" answer. It is stored, not omitted,
// so an answered step is distinguishable from an unanswered one.
const anyValue = "any"

func stepDefinition(step Step) (prompt string, options []stepOption) {
	switch step {
	case StepAskField:
		return "Hangi alanda okuyan bir öğrenciye destek olmak istersiniz?", []stepOption{
			{Label: "🩺 Tıp", Value: "tıp"},
			{Label: "⚙️ Mühendislik", Value: "mühendislik"},
			{Label: "📚 Eğitim", Value: "eğitim"},
			{Label: "🎨 Sanat", Value: "sanat"},
			{Label: "Farketmez", Value: anyValue},
		}
	case StepAskGender:
		return "Desteklemek istediğiniz öğrencinin cinsiyeti sizin için önemli mi?", []stepOption{
			{Label: "Kadın", Value: "kadın"},
			{Label: "Erkek", Value: "erkek"},
			{Label: "Farketmez", Value: anyValue},
		}
	case StepAskBudget:
		return "Ne kadarlık bir destek düşünüyorsunuz?", []stepOption{
			{Label: "100 TL'ye kadar", Value: "0-100"},
			{Label: "100 - 500 TL", Value: "100-500"},
			{Label: "500 TL ve üzeri", Value: "500+"},
			{Label: "Farketmez", Value: anyValue},
		}
	case StepAskPriority:
		return "Sizin için en önemli kriter hangisi?", []stepOption{
			{Label: "⏰ Aciliyet", Value: "acil"},
			{Label: "🏆 Başarı durumu", Value: "başarı"},
			{Label: "🤲 İhtiyaç düzeyi", Value: "ihtiyaç"},
			{Label: "Farketmez", Value: anyValue},
		}
	case StepAskCountry:
		return "Öğrencinin okuduğu yer için bir tercihiniz var mı?", []stepOption{
			{Label: "🇹🇷 Türkiye", Value: "türkiye"},
			{Label: "🌍 Yurt dışı", Value: "yurtdışı"},
			{Label: "Farketmez", Value: anyValue},
		}
	}
	return "", nil
}

// setPreference writes the answer of one step into the preference record.
func setPreference(p *recommend.Preferences, step Step, value string) {
	switch step {
	case StepAskField:
		p.Field = value
	case StepAskGender:
		p.Gender = value
	case StepAskBudget:
		p.Budget = value
	case StepAskPriority:
		p.Priority = value
	case StepAskCountry:
		p.Country = value
	}
}

// Conversation is the per-session state. The owning session mutex guards
// everything except the delayed queue, which the follow-up timer writes from
// its own goroutine.
type Conversation struct {
	ID          string
	Step        Step
	Preferences recommend.Preferences
	Results     []recommend.Campaign

	dmu      sync.Mutex
	delayed  []ChatMessage
	followUp clock.Timer
	// followUpGen invalidates follow-up callbacks that lost the race with a
	// cancel: Stop can miss a callback already running on the real clock.
	followUpGen uint64
}

// NewConversation creates a fresh conversation at the welcome step.
func NewConversation(id string) *Conversation {
	return &Conversation{ID: id, Step: StepWelcome}
}

// enqueueFollowUp appends a timed message unless the arming generation has
// been superseded by a cancel or a newer schedule.
func (c *Conversation) enqueueFollowUp(gen uint64, msg ChatMessage) {
	c.dmu.Lock()
	defer c.dmu.Unlock()
	if gen != c.followUpGen {
		return
	}
	c.delayed = append(c.delayed, msg)
}

// PushDelayed queues messages for delivery with the next client poll, used
// when something outside a user action (a fired trigger) produces output.
func (c *Conversation) PushDelayed(msgs ...ChatMessage) {
	c.dmu.Lock()
	defer c.dmu.Unlock()
	c.delayed = append(c.delayed, msgs...)
}

// DrainDelayed returns and clears the delayed messages that have come due
// since the last user action.
func (c *Conversation) DrainDelayed() []ChatMessage {
	c.dmu.Lock()
	defer c.dmu.Unlock()
	out := c.delayed
	c.delayed = nil
	return out
}

// cancelDelayed stops a pending follow-up and drops anything queued. Bumping
// the generation also silences a follow-up callback that already fired but
// has not appended yet.
func (c *Conversation) cancelDelayed() {
	c.dmu.Lock()
	defer c.dmu.Unlock()
	if c.followUp != nil {
		c.followUp.Stop()
		c.followUp = nil
	}
	c.followUpGen++
	c.delayed = nil
}

// Recommender fetches ranked campaigns for a preference record.
type Recommender interface {
	Fetch(ctx context.Context, prefs recommend.Preferences, limit int) ([]recommend.Campaign, error)
}

// OccasionSource provides the active special occasion, if any.
type OccasionSource interface {
	Active(ctx context.Context) (*occasion.Occasion, error)
}

// MetricsRecorder counts intents and search outcomes.
type MetricsRecorder interface {
	RecordIntent(name string)
	RecordSearch(outcome string)
}

// Reply is the result of one user action: the ordered messages to append and
// the updated quick-reply set (mirrors the last message carrying one).
type Reply struct {
	Messages     []ChatMessage `json:"messages"`
	QuickReplies []QuickReply  `json:"quick_replies,omitempty"`
	// FetchIssued marks that this action triggered the recommendation fetch.
	FetchIssued bool `json:"fetch_issued,omitempty"`
}

func reply(messages []ChatMessage) Reply {
	r := Reply{Messages: messages}
	for i := len(messages) - 1; i >= 0; i-- {
		if len(messages[i].QuickReplies) > 0 {
			r.QuickReplies = messages[i].QuickReplies
			break
		}
	}
	return r
}

// Flow drives the guided conversation. All methods must be called with the
// session lock held; they never block on anything but the awaited
// recommendation fetch.
type Flow struct {
	composer    *Composer
	intents     *intent.Classifier
	faq         FAQService
	recommender Recommender
	occasions   OccasionSource
	clock       clock.Clock
	logger      *logger.Logger
	metrics     MetricsRecorder

	resultLimit   int
	followUpDelay time.Duration
}

// FlowOptions wires the flow's collaborators. Occasions and Metrics may be
// nil.
type FlowOptions struct {
	Composer    *Composer
	Intents     *intent.Classifier
	FAQ         FAQService
	Recommender Recommender
	Occasions   OccasionSource
	Clock       clock.Clock
	Logger      *logger.Logger
	Metrics     MetricsRecorder

	ResultLimit   int
	FollowUpDelay time.Duration
}

// NewFlow creates the conversation flow controller.
func NewFlow(opts FlowOptions) *Flow {
	return &Flow{
		composer:      opts.Composer,
		intents:       opts.Intents,
		faq:           opts.FAQ,
		recommender:   opts.Recommender,
		occasions:     opts.Occasions,
		clock:         opts.Clock,
		logger:        opts.Logger.WithModule("flow"),
		metrics:       opts.Metrics,
		resultLimit:   opts.ResultLimit,
		followUpDelay: opts.FollowUpDelay,
	}
}

// Welcome composes the opening of a conversation. The occasion lookup is best
// effort: on failure the plain greeting is used.
func (f *Flow) Welcome(ctx context.Context, conv *Conversation) Reply {
	var occ *occasion.Occasion
	if f.occasions != nil {
		active, err := f.occasions.Active(ctx)
		if err == nil {
			occ = active
		}
	}
	conv.Step = StepWelcome
	return reply(f.composer.Welcome(occ))
}

// HandleText processes free-text input. The FAQ track never moves the step
// pointer; only the explicit find-student intent does.
func (f *Flow) HandleText(ctx context.Context, conv *Conversation, text string) Reply {
	detected := f.intents.Classify(text)
	if f.metrics != nil {
		f.metrics.RecordIntent(string(detected))
	}

	switch detected {
	case intent.IntentGreeting:
		return reply(f.composer.Greeting())
	case intent.IntentFindStudent:
		return f.startSearch(conv)
	case intent.IntentMotivation:
		return reply(f.composer.Motivation())
	case intent.IntentFarewell:
		return reply(f.composer.Farewell())
	case intent.IntentThanks:
		return reply(f.composer.Thanks())
	default:
		return f.answerFAQ(ctx, text)
	}
}

// HandleCommand processes a quick-reply selection.
func (f *Flow) HandleCommand(ctx context.Context, conv *Conversation, cmd Command) Reply {
	switch cmd.Kind {
	case CommandFindStudent:
		return f.startSearch(conv)
	case CommandBackToMenu:
		return f.Welcome(ctx, conv)
	case CommandRetrySearch:
		return f.runSearch(ctx, conv)
	case CommandFAQEntry:
		return f.answerEntry(ctx, cmd.Value)
	case CommandAnswer:
		return f.handleAnswer(ctx, conv, cmd.Value)
	default:
		return reply(f.composer.Fallback())
	}
}

// Reset returns the conversation to the welcome step, clears preferences and
// results, and cancels pending delayed messages. Calling it twice is the same
// as calling it once.
func (f *Flow) Reset(ctx context.Context, conv *Conversation) Reply {
	conv.cancelDelayed()
	conv.Preferences = recommend.Preferences{}
	conv.Results = nil
	return f.Welcome(ctx, conv)
}

// startSearch begins the guided collection with a fresh preference record,
// from any state.
func (f *Flow) startSearch(conv *Conversation) Reply {
	conv.Preferences = recommend.Preferences{}
	conv.Results = nil
	conv.Step = StepAskField
	return reply(f.composer.StepPrompt(StepAskField))
}

// handleAnswer writes exactly one preference field and advances the pointer.
// Answering the last collection step triggers the recommendation fetch.
func (f *Flow) handleAnswer(ctx context.Context, conv *Conversation, value string) Reply {
	if !isCollectionStep(conv.Step) {
		// A stale quick reply from an earlier step. Reoffer the menu.
		return f.Welcome(ctx, conv)
	}

	setPreference(&conv.Preferences, conv.Step, value)
	conv.Step = nextStep(conv.Step)

	if conv.Step == StepSearching {
		return f.runSearch(ctx, conv)
	}
	return reply(f.composer.StepPrompt(conv.Step))
}

// runSearch performs the single awaited recommendation fetch and lands on
// results. Fetch failure is converted to the no-results message, never
// surfaced to the caller.
func (f *Flow) runSearch(ctx context.Context, conv *Conversation) Reply {
	conv.Step = StepSearching
	messages := []ChatMessage{f.composer.Searching()}

	campaigns, err := f.recommender.Fetch(ctx, conv.Preferences, f.resultLimit)
	conv.Step = StepResults

	if err != nil {
		f.logger.WithError(err).Warn("Recommendation fetch failed, showing apology")
		campaigns = nil
	}
	if len(campaigns) == 0 {
		conv.Results = nil
		messages = append(messages, f.composer.NoResults()...)
		r := reply(messages)
		r.FetchIssued = true
		return r
	}

	conv.Results = campaigns
	messages = append(messages, f.composer.Results(campaigns)...)
	f.scheduleFollowUp(conv)

	r := reply(messages)
	r.FetchIssued = true
	return r
}

// scheduleFollowUp arms the delayed "anything else?" prompt. A newer result
// list replaces any pending one.
func (f *Flow) scheduleFollowUp(conv *Conversation) {
	conv.dmu.Lock()
	defer conv.dmu.Unlock()
	if conv.followUp != nil {
		conv.followUp.Stop()
	}
	conv.followUpGen++
	gen := conv.followUpGen
	conv.followUp = f.clock.AfterFunc(f.followUpDelay, func() {
		conv.enqueueFollowUp(gen, f.composer.AnythingElse())
	})
}

func (f *Flow) answerFAQ(ctx context.Context, text string) Reply {
	answer, err := f.faq.Lookup(ctx, text)
	if err != nil {
		f.logger.WithError(err).Warn("FAQ lookup failed, showing apology")
		if f.metrics != nil {
			f.metrics.RecordSearch("error")
		}
		return reply(f.composer.Apology())
	}
	if answer == nil {
		if f.metrics != nil {
			f.metrics.RecordSearch("fallback")
		}
		return reply(f.composer.Fallback())
	}
	if f.metrics != nil {
		f.metrics.RecordSearch("match")
	}
	return reply(f.composer.FAQ(answer))
}

func (f *Flow) answerEntry(ctx context.Context, entryID string) Reply {
	answer, err := f.faq.ByID(ctx, entryID)
	if err != nil {
		f.logger.WithError(err).Warn("FAQ entry lookup failed, showing apology")
		return reply(f.composer.Apology())
	}
	if answer == nil {
		return reply(f.composer.Fallback())
	}
	return reply(f.composer.FAQ(answer))
}

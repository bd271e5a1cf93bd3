package chat

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/okulfonu/destekbot/internal/clock"
	"github.com/okulfonu/destekbot/internal/occasion"
	"github.com/okulfonu/destekbot/internal/recommend"
)

// fallbackPool holds the canned responses used when no knowledge entry
// matches. One is chosen pseudo-randomly per miss.
var fallbackPool = []string{
	"Bunu tam anlayamadım. Sorunuzu biraz farklı kelimelerle tekrar yazabilir misiniz?",
	"Bu konuda elimde hazır bir yanıt yok ama yardımcı olmak isterim. Aşağıdaki seçenekleri deneyebilirsiniz.",
	"Üzgünüm, sorunuzla eşleşen bir bilgi bulamadım. İsterseniz size uygun bir öğrenci bulalım?",
	"Hmm, bu soruyu yanıtlayamadım. Sık sorulan konulardan birini seçebilir veya sorunuzu yeniden yazabilirsiniz.",
}

// Composer turns resolved intents and flow events into transcript messages.
type Composer struct {
	clock        clock.Clock
	typingMillis int
}

// NewComposer creates a composer. typingDelay is attached to every bot
// message as a client-side rendering hint.
func NewComposer(clk clock.Clock, typingDelay time.Duration) *Composer {
	return &Composer{
		clock:        clk,
		typingMillis: int(typingDelay.Milliseconds()),
	}
}

func (c *Composer) bot(text string, replies ...QuickReply) ChatMessage {
	msg := newMessage(SenderBot, text, c.clock.Now())
	msg.TypingMillis = c.typingMillis
	msg.QuickReplies = replies
	return msg
}

// User records a user utterance as a transcript message.
func (c *Composer) User(text string) ChatMessage {
	return newMessage(SenderUser, text, c.clock.Now())
}

// navReplies is the baseline navigation attached to every knowledge-search
// response so the conversation never dead-ends.
func navReplies() []QuickReply {
	return []QuickReply{
		{Label: "🎓 Öğrenci bul", Command: Command{Kind: CommandFindStudent}},
		{Label: "🏠 Ana menü", Command: Command{Kind: CommandBackToMenu}},
	}
}

func menuReplies() []QuickReply {
	return []QuickReply{
		{Label: "🎓 Öğrenci bul", Command: Command{Kind: CommandFindStudent}},
		{Label: "Bağışım güvende mi?", Command: Command{Kind: CommandFAQEntry, Value: "payment-security"}},
		{Label: "Nasıl bağış yapabilirim?", Command: Command{Kind: CommandFAQEntry, Value: "how-to-donate"}},
	}
}

// Welcome composes the opening message. When an occasion is active a
// contextual line is appended to the greeting.
func (c *Composer) Welcome(occ *occasion.Occasion) []ChatMessage {
	text := "Merhaba! 👋 Ben Okul Fonu asistanıyım. Size uygun bir öğrenci bulabilir veya sorularınızı yanıtlayabilirim."
	if occ != nil {
		text += "\n\n" + occasionLine(occ)
	}
	return []ChatMessage{c.bot(text, menuReplies()...)}
}

func occasionLine(occ *occasion.Occasion) string {
	if occ.DaysUntil > 0 {
		return fmt.Sprintf("%s %s yaklaşıyor! %s", occ.Emoji, occ.Title, occ.Description)
	}
	return fmt.Sprintf("%s Bugün %s! %s", occ.Emoji, occ.Title, occ.Description)
}

// Greeting answers a greeting without moving the conversation.
func (c *Composer) Greeting() []ChatMessage {
	return []ChatMessage{c.bot("Merhaba! 👋 Size nasıl yardımcı olabilirim?", menuReplies()...)}
}

// Motivation answers "why donate" style questions.
func (c *Composer) Motivation() []ChatMessage {
	return []ChatMessage{c.bot(
		"Bağışınız bir öğrencinin eğitimine doğrudan ulaşır: kitap, barınma ve okul masraflarında gerçek bir fark yaratırsınız. Küçük bir destek bile bir dönemi kurtarabilir. 💙",
		navReplies()...,
	)}
}

// Farewell closes the conversation politely.
func (c *Composer) Farewell() []ChatMessage {
	return []ChatMessage{c.bot("Görüşmek üzere! Her öğrencinin hikayesi bir bağışla değişebilir. 💙")}
}

// Thanks acknowledges gratitude.
func (c *Composer) Thanks() []ChatMessage {
	return []ChatMessage{c.bot("Rica ederim! Başka bir sorunuz olursa buradayım. 😊", menuReplies()...)}
}

// FAQ composes the answer for a resolved knowledge entry: the answer itself,
// an optional follow-up, and related questions as quick replies on the last
// message.
func (c *Composer) FAQ(answer *FAQAnswer) []ChatMessage {
	replies := make([]QuickReply, 0, len(answer.Related)+2)
	for _, r := range answer.Related {
		replies = append(replies, QuickReply{
			Label:   r.Label,
			Command: Command{Kind: CommandFAQEntry, Value: r.EntryID},
		})
	}
	replies = append(replies, navReplies()...)

	if answer.FollowUp == "" {
		return []ChatMessage{c.bot(answer.Text, replies...)}
	}
	return []ChatMessage{
		c.bot(answer.Text),
		c.bot(answer.FollowUp, replies...),
	}
}

// Fallback composes a no-match response from the canned pool.
func (c *Composer) Fallback() []ChatMessage {
	text := fallbackPool[rand.IntN(len(fallbackPool))]
	return []ChatMessage{c.bot(text, navReplies()...)}
}

// Apology covers a failed FAQ collaborator call.
func (c *Composer) Apology() []ChatMessage {
	return []ChatMessage{c.bot(
		"Şu anda bu soruya yanıt veremiyorum, kısa bir süre sonra tekrar deneyebilirsiniz.",
		navReplies()...,
	)}
}

// StepPrompt composes the fixed prompt and option set of a data-collection
// step.
func (c *Composer) StepPrompt(step Step) []ChatMessage {
	prompt, options := stepDefinition(step)
	replies := make([]QuickReply, 0, len(options))
	for _, opt := range options {
		replies = append(replies, QuickReply{
			Label:   opt.Label,
			Command: Command{Kind: CommandAnswer, Value: opt.Value},
		})
	}
	return []ChatMessage{c.bot(prompt, replies...)}
}

// Searching is the transient message shown while recommendations are fetched.
func (c *Composer) Searching() ChatMessage {
	return c.bot("Harika, tercihlerinize uygun öğrencileri arıyorum... 🔍")
}

// Results summarizes the fetched campaigns in rank order.
func (c *Composer) Results(campaigns []recommend.Campaign) []ChatMessage {
	var b strings.Builder
	b.WriteString("Size uygun öğrencileri buldum:\n")
	for i, campaign := range campaigns {
		fmt.Fprintf(&b, "\n%d. %s — %%%.0f fonlandı", i+1, campaign.Title, campaign.FundingProgress*100)
		if campaign.Snippet != "" {
			b.WriteString("\n   ")
			b.WriteString(campaign.Snippet)
		}
		if len(campaign.MatchReasons) > 0 {
			b.WriteString("\n   Neden uygun: ")
			b.WriteString(strings.Join(campaign.MatchReasons, ", "))
		}
	}
	return []ChatMessage{c.bot(b.String(), navReplies()...)}
}

// NoResults covers both an empty result set and a failed fetch.
func (c *Composer) NoResults() []ChatMessage {
	return []ChatMessage{c.bot(
		"Üzgünüm, şu an tercihlerinize uygun bir öğrenci bulamadım. Tekrar deneyebilir veya sorularınızı yanıtlayabilirim.",
		QuickReply{Label: "🔄 Tekrar dene", Command: Command{Kind: CommandRetrySearch}},
		QuickReply{Label: "Bağışım güvende mi?", Command: Command{Kind: CommandFAQEntry, Value: "payment-security"}},
		QuickReply{Label: "🏠 Ana menü", Command: Command{Kind: CommandBackToMenu}},
	)}
}

// AnythingElse is the delayed prompt that follows a non-empty result list.
func (c *Composer) AnythingElse() ChatMessage {
	return c.bot("Başka bir konuda yardımcı olabilir miyim?", menuReplies()...)
}

// Package chat implements the conversational core: message composition, the
// guided conversation flow, and in-memory session management. The flow is a
// small state machine that collects donor preferences step by step, fetches
// campaign recommendations once, and otherwise answers free text through the
// knowledge base.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a message.
type Sender string

// Message senders.
const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// ChatMessage is one transcript entry. TypingMillis is a rendering hint: the
// client pauses that long with a typing indicator before showing the message.
type ChatMessage struct {
	ID           string       `json:"id"`
	Sender       Sender       `json:"sender"`
	Text         string       `json:"text"`
	Timestamp    time.Time    `json:"timestamp"`
	TypingMillis int          `json:"typing_ms,omitempty"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
}

// QuickReply is one tappable option offered under a bot message.
type QuickReply struct {
	Label   string  `json:"label"`
	Command Command `json:"command"`
}

func newMessage(sender Sender, text string, ts time.Time) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: ts,
	}
}

package chat

import "strings"

// CommandKind enumerates everything a quick reply can do. The set is closed:
// unknown wire tokens are rejected at parse time instead of being dispatched
// by string.
type CommandKind string

// The closed command set.
const (
	// CommandFindStudent starts (or restarts) the guided student search.
	CommandFindStudent CommandKind = "find_student"
	// CommandBackToMenu returns to the welcome menu without touching state.
	CommandBackToMenu CommandKind = "back_to_menu"
	// CommandRetrySearch repeats the recommendation fetch with the already
	// collected preferences.
	CommandRetrySearch CommandKind = "retry_search"
	// CommandFAQEntry answers a specific knowledge entry; Value is the entry ID.
	CommandFAQEntry CommandKind = "faq"
	// CommandAnswer answers the current data-collection step; Value is the
	// chosen option.
	CommandAnswer CommandKind = "answer"
)

// Command is the parsed form of a quick-reply token.
type Command struct {
	Kind  CommandKind `json:"kind"`
	Value string      `json:"value,omitempty"`
}

// ParseCommand parses a wire token into a Command. Tokens are either a bare
// kind ("find_student") or kind:value ("faq:payment-security"). The second
// return value is false for anything outside the closed set.
func ParseCommand(token string) (Command, bool) {
	kind, value, _ := strings.Cut(token, ":")
	switch CommandKind(kind) {
	case CommandFindStudent, CommandBackToMenu, CommandRetrySearch:
		if value != "" {
			return Command{}, false
		}
		return Command{Kind: CommandKind(kind)}, true
	case CommandFAQEntry, CommandAnswer:
		if value == "" {
			return Command{}, false
		}
		return Command{Kind: CommandKind(kind), Value: value}, true
	default:
		return Command{}, false
	}
}

// Token renders the command back into its wire form.
func (c Command) Token() string {
	if c.Value == "" {
		return string(c.Kind)
	}
	return string(c.Kind) + ":" + c.Value
}

package chat

// Roles accepted on the chat wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn. The order of turns within a request
// is the conversation history and is preserved end to end.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the body accepted by POST /api/chat. A missing messages field
// decodes to an empty sequence.
type Request struct {
	Messages []Message `json:"messages"`
}

// HasSystem reports whether any turn carries the system role.
func HasSystem(msgs []Message) bool {
	for _, m := range msgs {
		if m.Role == RoleSystem {
			return true
		}
	}
	return false
}

// WithSystem returns the sequence with a system turn prepended, unless one is
// already present. The input slice is never mutated.
func WithSystem(msgs []Message, content string) []Message {
	if HasSystem(msgs) {
		return msgs
	}
	out := make([]Message, 0, len(msgs)+1)
	out = append(out, Message{Role: RoleSystem, Content: content})
	return append(out, msgs...)
}

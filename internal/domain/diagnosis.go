package domain

import "strings"

// Diagnosis is the transient classification extracted from one assistant reply.
// It is never persisted on its own.
type Diagnosis struct {
	Domain   string   `json:"domain"`
	Keywords []string `json:"keywords"`
	Summary  string   `json:"summary"`
}

// ChatRole tags who produced a transcript turn
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the visitor-held transcript
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ValidateTranscript checks roles and contents. maxMessages <= 0 disables the length guard.
func ValidateTranscript(messages []ChatMessage, maxMessages int) error {
	if maxMessages > 0 && len(messages) > maxMessages {
		return ErrTooManyChatMessages
	}
	for _, m := range messages {
		switch m.Role {
		case ChatRoleUser, ChatRoleAssistant:
		default:
			return ErrInvalidChatRole
		}
		if strings.TrimSpace(m.Content) == "" {
			return ErrEmptyChatMessage
		}
	}
	return nil
}

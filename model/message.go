package model

import (
	"strings"
	"time"

	"vozdalei/api"
	"vozdalei/storage"
)

// Message represents a chat message in the conversation
type Message struct {
	ID        string
	Role      api.Role
	Content   string
	Timestamp time.Time
}

// LooksLikeError matches messages the chat shows as an error block. Such
// messages are never read aloud.
func (m Message) LooksLikeError() bool {
	return IsErrorContent(m.Content)
}

func (m Message) Speakable() bool {
	return m.Role == api.RoleAssistant && !m.LooksLikeError()
}

// SpeechTarget identifies the message in the speech slot
func (m Message) SpeechTarget() string {
	return "chat:" + m.ID
}

func IsErrorContent(content string) bool {
	return strings.Contains(content, "Error") ||
		strings.Contains(content, "erro") ||
		strings.Contains(content, "401") ||
		strings.Contains(content, "authentication_error")
}

func (m Message) toAPI() api.ChatMessage {
	return api.ChatMessage{
		ID:        m.ID,
		Role:      m.Role,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

func (m Message) toStorage() storage.Message {
	return storage.Message{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

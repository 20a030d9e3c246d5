package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is one transcript entry as written to disk
type Message struct {
	ID        string    `json:"id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is a chat conversation exported on request. Nothing is written
// unless the user asks for it.
type Transcript struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	BackendURL string    `json:"backend_url,omitempty"`
	ExportedAt time.Time `json:"exported_at"`
	Messages   []Message `json:"messages"`
}

type ExportResult struct {
	JSONPath string
	TextPath string
}

// TranscriptStorage writes transcript exports into one directory
type TranscriptStorage struct {
	exportDir string
}

func NewTranscriptStorage(exportDir string) (*TranscriptStorage, error) {
	// 0700 - user-only access
	if err := os.MkdirAll(exportDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	return &TranscriptStorage{exportDir: exportDir}, nil
}

func (s *TranscriptStorage) Dir() string {
	return s.exportDir
}

// Export writes the transcript as JSON and as plain text side by side
func (s *TranscriptStorage) Export(t *Transcript) (ExportResult, error) {
	if t == nil || len(t.Messages) == 0 {
		return ExportResult{}, fmt.Errorf("nothing to export: transcript is empty")
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.ExportedAt.IsZero() {
		t.ExportedAt = time.Now()
	}

	base := fmt.Sprintf("vozdalei-%s-%s-%s",
		SanitizeFilename(t.Title),
		t.ExportedAt.Format("20060102-150405"),
		t.ID[:8])

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to marshal transcript: %w", err)
	}

	result := ExportResult{
		JSONPath: filepath.Join(s.exportDir, base+".json"),
		TextPath: filepath.Join(s.exportDir, base+".txt"),
	}

	// 0600 - exports contain the user's conversation
	if err := os.WriteFile(result.JSONPath, data, 0600); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write transcript: %w", err)
	}
	if err := os.WriteFile(result.TextPath, []byte(FormatText(t.Messages)), 0600); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write transcript text: %w", err)
	}

	return result, nil
}

// FormatText renders messages as a plain text conversation
func FormatText(messages []Message) string {
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s] %s:\n%s", msg.Timestamp.Format("02/01/2006 15:04"), roleLabel(msg.Role), msg.Content)
	}
	return b.String()
}

func roleLabel(role string) string {
	switch role {
	case "user":
		return "Você"
	case "assistant":
		return "Assistente"
	default:
		return role
	}
}

// SanitizeFilename removes or replaces characters that are invalid in filenames
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ', '\n', '\r', '\t':
			return '-'
		}
		return r
	}, name)

	// Remove leading/trailing hyphens and dots
	name = strings.Trim(name, "-.")

	// Limit length, in runes so accented titles stay valid UTF-8
	if runes := []rune(name); len(runes) > 50 {
		name = string(runes[:50])
	}

	if name == "" {
		name = "conversa"
	}

	return name
}

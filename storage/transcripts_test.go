package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	ts, err := NewTranscriptStorage(dir)
	if err != nil {
		t.Fatalf("NewTranscriptStorage: %v", err)
	}

	at := time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)
	transcript := &Transcript{
		Title:      "O que é um projeto de lei?",
		ExportedAt: at,
		Messages: []Message{
			{Role: "user", Content: "O que é um projeto de lei?", Timestamp: at},
			{Role: "assistant", Content: "É uma proposta de lei.", Timestamp: at},
		},
	}

	result, err := ts.Export(transcript)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if transcript.ID == "" {
		t.Error("expected an id to be assigned")
	}
	if !strings.HasPrefix(filepath.Base(result.JSONPath), "vozdalei-O-que-é-um-projeto-de-lei-20240502-143000-") {
		t.Errorf("unexpected file name %s", filepath.Base(result.JSONPath))
	}

	data, err := os.ReadFile(result.JSONPath)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Transcript
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported JSON is invalid: %v", err)
	}
	if len(decoded.Messages) != 2 || decoded.Messages[1].Role != "assistant" {
		t.Errorf("decoded messages: got %+v", decoded.Messages)
	}

	text, err := os.ReadFile(result.TextPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(text), "[02/05/2024 14:30] Assistente:\nÉ uma proposta de lei.") {
		t.Errorf("unexpected text export:\n%s", text)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(result.JSONPath)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("permissions: got %o, want 600", info.Mode().Perm())
		}
	}
}

func TestExportEmpty(t *testing.T) {
	ts, err := NewTranscriptStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ts.Export(&Transcript{}); err == nil {
		t.Error("expected error for an empty transcript")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Como posso votar?", "Como-posso-votar"},
		{"a/b\\c:d", "a-b-c-d"},
		{"...", "conversa"},
		{"", "conversa"},
		{strings.Repeat("ç", 60), strings.Repeat("ç", 50)},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.expected {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

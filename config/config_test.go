package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("VOZDALEI_DATA_DIR", filepath.Join(home, "data"))
	t.Setenv("VOZDALEI_API_URL", "")
	t.Setenv("NEXT_PUBLIC_API_URL", "")
	t.Setenv("VOZDALEI_API_TIMEOUT", "")
	t.Setenv("VOZDALEI_SPEECH_ENGINE", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := setupHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL() != DefaultAPIBaseURL {
		t.Errorf("base URL: got %q, want %q", cfg.BaseURL(), DefaultAPIBaseURL)
	}
	if cfg.APITimeout != 60*time.Second {
		t.Errorf("timeout: got %v, want 60s", cfg.APITimeout)
	}
	if cfg.SpeechLang != "pt-BR" || cfg.SpeechRate != 0.9 {
		t.Errorf("speech defaults: got %q/%v", cfg.SpeechLang, cfg.SpeechRate)
	}
	if cfg.Keybindings == nil {
		t.Fatal("expected keybindings to be loaded")
	}

	dataDir := filepath.Join(home, "data")
	for _, name := range []string{"config.toml", "keybindings.toml"} {
		if !FileExists(filepath.Join(dataDir, name)) {
			t.Errorf("expected %s to be created in data dir", name)
		}
	}
	if !FileExists(GetSettingsFilePath()) {
		t.Error("expected settings.toml to be created")
	}
}

func TestLoadUserConfigFile(t *testing.T) {
	home := setupHome(t)
	dataDir := filepath.Join(home, "data")
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		t.Fatal(err)
	}

	content := `[api]
base_url = "http://backend:9000"
timeout_seconds = 5

[speech]
enabled = false
rate = 1.2
`
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL() != "http://backend:9000" {
		t.Errorf("base URL: got %q", cfg.BaseURL())
	}
	if cfg.APITimeout != 5*time.Second {
		t.Errorf("timeout: got %v", cfg.APITimeout)
	}
	if cfg.SpeechEnabled {
		t.Error("expected speech to be disabled")
	}
	if cfg.SpeechRate != 1.2 {
		t.Errorf("rate: got %v", cfg.SpeechRate)
	}
	// lang was not in the file, default kept
	if cfg.SpeechLang != "pt-BR" {
		t.Errorf("lang: got %q", cfg.SpeechLang)
	}
}

func TestEnvOverridesBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		vozdalei string
		next     string
		expected string
	}{
		{"no env", "", "", DefaultAPIBaseURL},
		{"frontend variable", "", "http://next:8000", "http://next:8000"},
		{"own variable", "http://own:8000", "", "http://own:8000"},
		{"own variable wins", "http://own:8000", "http://next:8000", "http://own:8000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHome(t)
			t.Setenv("VOZDALEI_API_URL", tt.vozdalei)
			t.Setenv("NEXT_PUBLIC_API_URL", tt.next)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.BaseURL() != tt.expected {
				t.Errorf("got %q, want %q", cfg.BaseURL(), tt.expected)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"~/data", "/home/tester/data"},
		{"/abs/path/", "/abs/path"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.expected {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func writeDataFile(t *testing.T, home, name, content string) {
	t.Helper()
	dataDir := filepath.Join(home, "data")
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadRejectsInvalidUserConfig(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantText string
	}{
		{"ftp scheme", "[api]\nbase_url = \"ftp://backend\"\n", "base_url"},
		{"missing scheme", "[api]\nbase_url = \"localhost:8000\"\n", "http:// or https://"},
		{"no host", "[api]\nbase_url = \"http://\"\n", "no host"},
		{"query", "[api]\nbase_url = \"http://backend?x=1\"\n", "query"},
		{"negative timeout", "[api]\ntimeout_seconds = -1\n", "timeout_seconds"},
		{"huge timeout", "[api]\ntimeout_seconds = 9999\n", "timeout_seconds"},
		{"rate", "[speech]\nrate = 5.0\n", "rate"},
		{"engine", "[speech]\nengine = \"festival\"\n", "festival"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := setupHome(t)
			writeDataFile(t, home, "config.toml", tt.content)

			_, err := Load()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v should wrap ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q does not mention %q", err, tt.wantText)
			}
		})
	}
}

func TestLoadAcceptsHTTPS(t *testing.T) {
	home := setupHome(t)
	writeDataFile(t, home, "config.toml", "[api]\nbase_url = \"https://vozdalei.example.org/backend\"\ntimeout_seconds = 0\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL() != "https://vozdalei.example.org/backend" {
		t.Errorf("base URL: got %q", cfg.BaseURL())
	}
	// zero keeps the default
	if cfg.APITimeout != 60*time.Second {
		t.Errorf("timeout: got %v", cfg.APITimeout)
	}
}

func TestLoadRejectsInvalidEnvURL(t *testing.T) {
	setupHome(t)
	t.Setenv("VOZDALEI_API_URL", "backend:8000")

	_, err := Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestEnvTimeoutOutOfRangeIgnored(t *testing.T) {
	for _, value := range []string{"abc", "0", "-3", "601"} {
		t.Run(value, func(t *testing.T) {
			setupHome(t)
			t.Setenv("VOZDALEI_API_TIMEOUT", value)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.APITimeout != 60*time.Second {
				t.Errorf("timeout: got %v, want the 60s default", cfg.APITimeout)
			}
		})
	}
}

func TestLoadRejectsReservedKeybinding(t *testing.T) {
	home := setupHome(t)
	writeDataFile(t, home, "keybindings.toml", "[modifiers]\nprimary = \"alt\"\n\n[actions]\nquit = \"enter\"\n")

	_, err := Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), "quit cannot use enter") {
		t.Errorf("error %q does not name the action", err)
	}
}

func TestLoadKeepsKeybindingWarnings(t *testing.T) {
	home := setupHome(t)
	writeDataFile(t, home, "keybindings.toml", "[actions]\nsuggestions = \"alt+c\"\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("duplicates should not block startup: %v", err)
	}
	if _, warning := cfg.Keybindings.Validate(); !strings.Contains(warning, "suggestions and yank_conversation") {
		t.Errorf("warning = %q", warning)
	}
}

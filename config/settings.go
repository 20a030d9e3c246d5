package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Limits for [api] timeout_seconds. Zero keeps the default.
const (
	MaxTimeoutSeconds = 600
	maxSpeechRate     = 3.0
)

// ErrInvalidConfig wraps every value config.toml or the environment cannot use
var ErrInvalidConfig = errors.New("invalid configuration")

// loadOrCreate decodes path into into. A missing file is written from template
// and into keeps its defaults.
func loadOrCreate(dir, name, template string, into any) error {
	path := filepath.Join(dir, name)

	if !FileExists(path) {
		if err := EnsureDir(dir); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		if err := os.WriteFile(path, []byte(template), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		if DebugLog != nil {
			DebugLog.Printf("[Config] Created %s from template", path)
		}
		return nil
	}

	// Keys missing from the file keep their defaults.
	if _, err := toml.DecodeFile(path, into); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func LoadSystemConfig() (*SystemConfig, error) {
	cfg := DefaultSystemConfig()
	if err := loadOrCreate(GetConfigDir(), "settings.toml", GenerateSystemConfigTemplate(), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUserConfig reads <dataDir>/config.toml and rejects values the client
// cannot run with.
func LoadUserConfig(dataDir string) (*UserConfig, error) {
	cfg := DefaultUserConfig()
	if err := loadOrCreate(dataDir, "config.toml", GenerateUserConfigTemplate(), cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.toml: %w", err)
	}
	return cfg, nil
}

// Validate checks the [api] and [speech] sections
func (u *UserConfig) Validate() error {
	if u.API.BaseURL != "" {
		if err := ValidateBaseURL(u.API.BaseURL); err != nil {
			return fmt.Errorf("[api] base_url: %w", err)
		}
	}

	if u.API.TimeoutSeconds < 0 || u.API.TimeoutSeconds > MaxTimeoutSeconds {
		return fmt.Errorf("%w: [api] timeout_seconds must be between 0 and %d, got %d",
			ErrInvalidConfig, MaxTimeoutSeconds, u.API.TimeoutSeconds)
	}

	if u.Speech.Rate < 0 || u.Speech.Rate > maxSpeechRate {
		return fmt.Errorf("%w: [speech] rate must be between 0 and %.1f, got %v",
			ErrInvalidConfig, maxSpeechRate, u.Speech.Rate)
	}

	switch u.Speech.Engine {
	case "", "espeak-ng", "espeak", "say":
	default:
		return fmt.Errorf("%w: [speech] engine %q is not one of espeak-ng, espeak, say",
			ErrInvalidConfig, u.Speech.Engine)
	}
	return nil
}

// ValidateBaseURL accepts absolute http(s) URLs with a host and no query
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q must start with http:// or https://", ErrInvalidConfig, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidConfig, raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("%w: %q must not carry a query or fragment", ErrInvalidConfig, raw)
	}
	return nil
}

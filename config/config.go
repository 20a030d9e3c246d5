package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAPIBaseURL = "http://localhost:8000"

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type SpeechConfig struct {
	Enabled bool    `toml:"enabled"`
	Engine  string  `toml:"engine,omitempty"`
	Lang    string  `toml:"lang"`
	Rate    float64 `toml:"rate"`
}

type UserConfig struct {
	API    APIConfig    `toml:"api"`
	Speech SpeechConfig `toml:"speech"`
}

type Config struct {
	DataDirectory string
	APIBaseURL    string
	APITimeout    time.Duration
	SpeechEnabled bool
	SpeechEngine  string
	SpeechLang    string
	SpeechRate    float64
	Keybindings   *KeyBindingsConfig
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) BaseURL() string {
	return c.APIBaseURL
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyUserConfig(userCfg *UserConfig) {
	if userCfg.API.BaseURL != "" {
		c.APIBaseURL = userCfg.API.BaseURL
	}
	if userCfg.API.TimeoutSeconds > 0 {
		c.APITimeout = time.Duration(userCfg.API.TimeoutSeconds) * time.Second
	}
	c.SpeechEnabled = userCfg.Speech.Enabled
	c.SpeechEngine = userCfg.Speech.Engine
	if userCfg.Speech.Lang != "" {
		c.SpeechLang = userCfg.Speech.Lang
	}
	if userCfg.Speech.Rate > 0 {
		c.SpeechRate = userCfg.Speech.Rate
	}
}

// applyEnvOverrides gives the environment the last word. VOZDALEI_API_URL wins
// over NEXT_PUBLIC_API_URL, which the web frontend deployments already export.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("NEXT_PUBLIC_API_URL"); url != "" {
		c.APIBaseURL = url
	}
	if url := os.Getenv("VOZDALEI_API_URL"); url != "" {
		c.APIBaseURL = url
	}
	if timeout := os.Getenv("VOZDALEI_API_TIMEOUT"); timeout != "" {
		secs, err := strconv.Atoi(timeout)
		switch {
		case err != nil || secs <= 0 || secs > MaxTimeoutSeconds:
			if DebugLog != nil {
				DebugLog.Printf("[Config] Ignoring VOZDALEI_API_TIMEOUT=%q", timeout)
			}
		default:
			c.APITimeout = time.Duration(secs) * time.Second
		}
	}
	if engine := os.Getenv("VOZDALEI_SPEECH_ENGINE"); engine != "" {
		c.SpeechEngine = engine
	}
}

func CheckDebug() bool {
	debug := os.Getenv("VOZDALEI_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: the log carries request payloads
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (VOZDALEI_DEBUG=%s) ===", os.Getenv("VOZDALEI_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// LoadDotEnv loads a .env file from the working directory if there is one.
// Variables already present in the environment are not overwritten.
func LoadDotEnv() bool {
	if err := godotenv.Load(); err != nil {
		return false
	}
	return true
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: "~/.local/share/vozdalei",
		APIBaseURL:    DefaultAPIBaseURL,
		APITimeout:    60 * time.Second,
		SpeechEnabled: true,
		SpeechLang:    "pt-BR",
		SpeechRate:    0.9,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	if systemCfg.DataDirectory != "" {
		cfg.DataDirectory = systemCfg.DataDirectory
	}
	if dataDir := os.Getenv("VOZDALEI_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides()

	// The environment may have replaced the file's URL
	if err := ValidateBaseURL(cfg.APIBaseURL); err != nil {
		return nil, fmt.Errorf("API base URL: %w", err)
	}

	kb, err := LoadKeybindings(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	if ok, problem := kb.Validate(); !ok {
		return nil, fmt.Errorf("%w: keybindings.toml: %s", ErrInvalidConfig, problem)
	}
	cfg.Keybindings = kb

	return cfg, nil
}

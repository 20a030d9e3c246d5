package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vozdalei/api"
	"vozdalei/config"
	appmodel "vozdalei/model"
	"vozdalei/speech"
	"vozdalei/storage"
	"vozdalei/ui"
)

const Version = "v0.01.00"

func main() {
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("vozdalei", Version)
		return
	}

	// .env is optional; real environment variables win over it
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		showStartupError("Erro de configuração", err.Error())
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	// Load already rejected invalid keybindings; only warnings are left
	if _, warning := cfg.Keybindings.Validate(); warning != "" && config.DebugLog != nil {
		config.DebugLog.Printf("Keybindings: %s", warning)
	}

	client, err := api.NewClient(cfg.BaseURL(), api.WithTimeout(cfg.APITimeout))
	if err != nil {
		showStartupError("Endereço do servidor inválido", err.Error())
		os.Exit(1)
	}

	slot := speech.NewSlot(nil)
	if cfg.SpeechEnabled {
		engine, err := speech.DetectEngine(cfg.SpeechEngine)
		switch {
		case errors.Is(err, speech.ErrNoEngine):
			if config.DebugLog != nil {
				config.DebugLog.Printf("Speech disabled: %v", err)
			}
		case err != nil:
			if config.DebugLog != nil {
				config.DebugLog.Printf("Speech engine %q unavailable: %v", cfg.SpeechEngine, err)
			}
		default:
			slot = speech.NewSlot(engine)
		}
	}
	slot.SetVoice(cfg.SpeechLang, cfg.SpeechRate)

	transcripts, err := storage.NewTranscriptStorage(config.GetExportDir(cfg.DataDir()))
	if err != nil {
		// Export is optional; the rest of the program still works
		if config.DebugLog != nil {
			config.DebugLog.Printf("Warning: transcript export disabled: %v", err)
		}
	}

	// Cancelled on quit so every pending request is aborted
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dataModel := appmodel.NewModel(ctx, cfg, client, slot, transcripts, Version)

	p := tea.NewProgram(
		ui.NewAppView(dataModel, cancel),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running vozdalei: %v\n", err)
		os.Exit(1)
	}
}

// showStartupError shows a blocking error modal before the main UI exists
func showStartupError(title, msg string) {
	errorModal := ui.NewErrorModal(title, msg)
	p := tea.NewProgram(
		errorModal,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

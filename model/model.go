package model

import (
	"context"

	"vozdalei/config"
	"vozdalei/publications"
	"vozdalei/speech"
	"vozdalei/storage"
)

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config      *config.Config
	Backend     Backend
	Speech      *speech.Slot
	Transcripts *storage.TranscriptStorage

	// Application data
	Chat     *Chat
	Simplify *SimplifyForm
	Search   *LegislationSearch
	Projects []publications.Project

	// Cancelled on quit, which aborts every in-flight request
	ctx context.Context

	// Runtime state (not UI)
	BackendReachable bool
	Quitting         bool

	Version string
}

func NewModel(ctx context.Context, cfg *config.Config, backend Backend, slot *speech.Slot, transcripts *storage.TranscriptStorage, version string) *Model {
	projects, err := publications.Catalog()
	if err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("[Model] %v", err)
	}

	if slot == nil {
		slot = speech.NewSlot(nil)
	}

	return &Model{
		Config:      cfg,
		Backend:     backend,
		Speech:      slot,
		Transcripts: transcripts,
		Chat:        NewChat(),
		Simplify:    NewSimplifyForm(),
		Search:      NewLegislationSearch(),
		Projects:    projects,
		ctx:         ctx,
		Version:     version,
	}
}

func (m *Model) Context() context.Context {
	return m.ctx
}

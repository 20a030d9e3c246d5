package model

import (
	"vozdalei/api"
	"vozdalei/storage"
)

type ChatResponseMsg struct {
	Turn uint64
	Resp *api.ChatResponse
	Err  error
}

type SuggestionsLoadedMsg struct {
	Suggestions []string
	Err         error
}

type SimplifyResultMsg struct {
	ID   uint64
	Resp *api.SimplificationResponse
	Err  error
}

type SearchResultMsg struct {
	ID   uint64
	Resp *api.SearchResponse
	Err  error
}

type AutocompleteMsg struct {
	Term        string
	Suggestions []string
	Err         error
}

type FiltersLoadedMsg struct {
	Filters *api.SearchFilters
	Err     error
}

// SpeechFinishedMsg reports that the utterance for Target ended, for any reason
type SpeechFinishedMsg struct {
	Target string
}

type TranscriptExportedMsg struct {
	Result storage.ExportResult
	Err    error
}

type BackendStatusMsg struct {
	Err error
}

type FlashTickMsg struct{}

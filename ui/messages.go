package ui

import (
	"vozdalei/model"
)

// Message type aliases - these are defined in the model package
type chatResponseMsg = model.ChatResponseMsg
type suggestionsLoadedMsg = model.SuggestionsLoadedMsg
type simplifyResultMsg = model.SimplifyResultMsg
type searchResultMsg = model.SearchResultMsg
type autocompleteMsg = model.AutocompleteMsg
type filtersLoadedMsg = model.FiltersLoadedMsg
type speechFinishedMsg = model.SpeechFinishedMsg
type transcriptExportedMsg = model.TranscriptExportedMsg
type backendStatusMsg = model.BackendStatusMsg
type flashTickMsg = model.FlashTickMsg

// viewID selects which of the three screens is shown
type viewID int

const (
	viewChat viewID = iota
	viewSimplify
	viewPublications
)

func (v viewID) String() string {
	switch v {
	case viewSimplify:
		return "Simplificar"
	case viewPublications:
		return "Publicações"
	default:
		return "Conversa"
	}
}

// pickerKind tells what selecting a picker row does
type pickerKind int

const (
	pickerSuggestions pickerKind = iota
	pickerExamples
)

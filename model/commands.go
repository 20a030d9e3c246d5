package model

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vozdalei/config"
	"vozdalei/speech"
)

// SendChat submits text as a new turn and returns the command that calls the
// backend. A nil command means the submission was rejected.
func (m *Model) SendChat(text string) tea.Cmd {
	turn, err := m.Chat.Submit(m.ctx, text)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Chat] Submit rejected: %v", err)
		}
		return nil
	}

	backend := m.Backend
	return func() tea.Msg {
		resp, err := backend.SendMessage(turn.Ctx, turn.Request)
		return ChatResponseMsg{Turn: turn.ID, Resp: resp, Err: err}
	}
}

// HandleChatResponse applies a backend answer; stale answers are dropped
func (m *Model) HandleChatResponse(msg ChatResponseMsg) bool {
	if msg.Err != nil {
		return m.Chat.Fail(msg.Turn, msg.Err)
	}
	return m.Chat.Complete(msg.Turn, msg.Resp)
}

// ClearChat starts a new conversation: stops speech, abandons the pending
// turn and fetches fresh suggestions.
func (m *Model) ClearChat() tea.Cmd {
	m.Speech.Stop()
	m.Chat.Clear()
	return m.FetchSuggestions()
}

func (m *Model) FetchSuggestions() tea.Cmd {
	backend := m.Backend
	ctx := m.ctx
	return func() tea.Msg {
		suggestions, err := backend.GetSuggestions(ctx)
		return SuggestionsLoadedMsg{Suggestions: suggestions, Err: err}
	}
}

func (m *Model) HandleSuggestions(msg SuggestionsLoadedMsg) {
	if msg.Err != nil {
		m.Chat.SuggestionsFailed(msg.Err)
		return
	}
	m.Chat.SetSuggestions(msg.Suggestions)
}

// SimplifyText validates text and returns the backend call. On a validation
// error no command is returned and the error carries the user message.
func (m *Model) SimplifyText(text string) (tea.Cmd, error) {
	req, err := m.Simplify.Begin(m.ctx, text)
	if err != nil {
		return nil, err
	}

	m.Speech.Stop()
	backend := m.Backend
	return func() tea.Msg {
		resp, err := backend.Simplify(req.Ctx, req.Request)
		return SimplifyResultMsg{ID: req.ID, Resp: resp, Err: err}
	}, nil
}

// HandleSimplifyResult returns the modal text for a failure, "" otherwise
func (m *Model) HandleSimplifyResult(msg SimplifyResultMsg) string {
	if msg.Err != nil {
		text, _ := m.Simplify.Fail(msg.ID, msg.Err)
		return text
	}
	m.Simplify.Succeed(msg.ID, msg.Resp)
	return ""
}

func (m *Model) SearchLegislation(query string) tea.Cmd {
	q, err := m.Search.Begin(m.ctx, query)
	if err != nil {
		return nil
	}

	backend := m.Backend
	return func() tea.Msg {
		resp, err := backend.Search(q.Ctx, q.Request)
		return SearchResultMsg{ID: q.ID, Resp: resp, Err: err}
	}
}

func (m *Model) HandleSearchResult(msg SearchResultMsg) bool {
	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Search] Query %d failed: %v", msg.ID, msg.Err)
		}
		return m.Search.Fail(msg.ID, msg.Err)
	}
	return m.Search.Succeed(msg.ID, msg.Resp)
}

func (m *Model) FetchFilters() tea.Cmd {
	backend := m.Backend
	ctx := m.ctx
	return func() tea.Msg {
		filters, err := backend.Filters(ctx)
		return FiltersLoadedMsg{Filters: filters, Err: err}
	}
}

// FetchAutocomplete asks the backend for term completions after a short
// pause, so typing does not fire one request per key.
func (m *Model) FetchAutocomplete(term string) tea.Cmd {
	backend := m.Backend
	ctx := m.ctx
	return tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg {
		suggestions, err := backend.Autocomplete(ctx, term)
		return AutocompleteMsg{Term: term, Suggestions: suggestions, Err: err}
	})
}

// ToggleSpeech starts or stops reading text for target and returns the
// command that reports when it ends.
func (m *Model) ToggleSpeech(target, text string) tea.Cmd {
	pb, ok := m.Speech.Toggle(target, text)
	if !ok {
		return nil
	}
	return WaitForSpeech(pb)
}

func WaitForSpeech(pb speech.Playback) tea.Cmd {
	return func() tea.Msg {
		<-pb.Done
		return SpeechFinishedMsg{Target: pb.Target}
	}
}

// ExportTranscript writes the current conversation to the export directory
// ErrExportUnavailable is reported when the export directory could not be
// prepared at startup.
var ErrExportUnavailable = errors.New("exportação indisponível")

func (m *Model) ExportTranscript() tea.Cmd {
	if m.Transcripts == nil {
		return func() tea.Msg {
			return TranscriptExportedMsg{Err: ErrExportUnavailable}
		}
	}
	store := m.Transcripts
	transcript := m.Chat.Transcript(m.Backend.BaseURL())
	return func() tea.Msg {
		result, err := store.Export(transcript)
		return TranscriptExportedMsg{Result: result, Err: err}
	}
}

func (m *Model) PingBackend() tea.Cmd {
	backend := m.Backend
	ctx := m.ctx
	return func() tea.Msg {
		return BackendStatusMsg{Err: backend.Ping(ctx)}
	}
}

func (m *Model) HandleBackendStatus(msg BackendStatusMsg) {
	m.BackendReachable = msg.Err == nil
	if msg.Err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("[Model] Backend %s not reachable: %v", m.Backend.BaseURL(), msg.Err)
	}
}

func FlashTick() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return FlashTickMsg{}
	})
}

// Shutdown stops speech; the root context is cancelled by the caller
func (m *Model) Shutdown(cancel context.CancelFunc) {
	m.Quitting = true
	m.Speech.Stop()
	if cancel != nil {
		cancel()
	}
}

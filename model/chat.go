package model

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vozdalei/api"
	"vozdalei/config"
	"vozdalei/storage"
)

type ChatState int

const (
	ChatIdle ChatState = iota
	ChatAwaitingResponse
)

const (
	suggestionsEmptyLimit = 4
	suggestionsLimit      = 6
)

// DefaultSuggestions are offered when the backend cannot be reached
var DefaultSuggestions = []string{
	"O que é um projeto de lei?",
	"Como funciona a Câmara?",
	"Como posso votar?",
	"O que faz um deputado?",
}

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrAwaiting     = errors.New("a response is already pending")
)

// Turn is one submitted question waiting for its answer
type Turn struct {
	ID      uint64
	Request api.ChatRequest
	Ctx     context.Context
}

// Chat is the conversation state machine. It is not safe for concurrent use;
// the UI update loop owns it.
type Chat struct {
	messages    []Message
	suggestions []string
	state       ChatState

	turn   uint64
	cancel context.CancelFunc

	// index into messages of the selected assistant message, -1 follows the latest
	selected int

	now func() time.Time
}

func NewChat() *Chat {
	return &Chat{selected: -1, now: time.Now}
}

func (c *Chat) State() ChatState {
	return c.state
}

func (c *Chat) Awaiting() bool {
	return c.state == ChatAwaitingResponse
}

func (c *Chat) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Chat) Len() int {
	return len(c.messages)
}

// Submit appends the user message and returns the request to send. The
// request history is the transcript as it was before this message.
func (c *Chat) Submit(parent context.Context, text string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyMessage
	}
	if c.state == ChatAwaitingResponse {
		return Turn{}, ErrAwaiting
	}

	history := make([]api.ChatMessage, len(c.messages))
	for i, m := range c.messages {
		history[i] = m.toAPI()
	}

	c.messages = append(c.messages, Message{
		ID:        uuid.New().String(),
		Role:      api.RoleUser,
		Content:   text,
		Timestamp: c.now(),
	})

	c.turn++
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	c.state = ChatAwaitingResponse

	return Turn{
		ID: c.turn,
		Request: api.ChatRequest{
			Message:             text,
			ConversationHistory: history,
			UseAudio:            false,
		},
		Ctx: ctx,
	}, nil
}

// Complete records the answer for turn. Answers for a turn that is no longer
// current (the chat was cleared) are dropped and false is returned.
func (c *Chat) Complete(turn uint64, resp *api.ChatResponse) bool {
	if !c.current(turn) {
		return false
	}

	content := ""
	if resp != nil {
		content = resp.Message
		if len(resp.Suggestions) > 0 {
			c.suggestions = resp.Suggestions
		}
	}
	c.appendAssistant(content)
	c.finish()
	return true
}

// Fail records err as the assistant's answer for turn
func (c *Chat) Fail(turn uint64, err error) bool {
	if !c.current(turn) {
		return false
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Chat] Turn %d failed: %v", turn, err)
	}
	c.appendAssistant(api.Normalize(err))
	c.finish()
	return true
}

// Clear empties the transcript and abandons the pending turn, if any
func (c *Chat) Clear() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.turn++
	c.messages = nil
	c.state = ChatIdle
	c.selected = -1
}

func (c *Chat) current(turn uint64) bool {
	return c.state == ChatAwaitingResponse && turn == c.turn
}

func (c *Chat) finish() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = ChatIdle
	c.selected = -1
}

func (c *Chat) appendAssistant(content string) {
	c.messages = append(c.messages, Message{
		ID:        uuid.New().String(),
		Role:      api.RoleAssistant,
		Content:   content,
		Timestamp: c.now(),
	})
}

// SetSuggestions replaces the suggestion set after a successful fetch
func (c *Chat) SetSuggestions(suggestions []string) {
	c.suggestions = suggestions
}

// SuggestionsFailed applies the fetch failure policy: an unreachable backend
// gives the default set, anything else keeps the current one.
func (c *Chat) SuggestionsFailed(err error) {
	if api.IsNetworkUnavailable(err) {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Chat] Warning: backend unavailable, using default suggestions")
		}
		c.suggestions = append([]string(nil), DefaultSuggestions...)
		return
	}
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Chat] Failed to load suggestions: %v", err)
	}
}

func (c *Chat) Suggestions() []string {
	return append([]string(nil), c.suggestions...)
}

// VisibleSuggestions is what the chat offers: four on an empty transcript,
// six once the conversation has started.
func (c *Chat) VisibleSuggestions() []string {
	limit := suggestionsLimit
	if len(c.messages) == 0 {
		limit = suggestionsEmptyLimit
	}
	if len(c.suggestions) < limit {
		limit = len(c.suggestions)
	}
	return append([]string(nil), c.suggestions[:limit]...)
}

// speakable returns indexes of assistant messages that can be read aloud
func (c *Chat) speakable() []int {
	var idx []int
	for i, m := range c.messages {
		if m.Speakable() {
			idx = append(idx, i)
		}
	}
	return idx
}

// Selected returns the message the speech and copy actions apply to: the
// chosen assistant message, or the latest speakable one.
func (c *Chat) Selected() (Message, bool) {
	if c.selected >= 0 && c.selected < len(c.messages) {
		return c.messages[c.selected], true
	}
	idx := c.speakable()
	if len(idx) == 0 {
		return Message{}, false
	}
	return c.messages[idx[len(idx)-1]], true
}

// SelectedIndex is the transcript index of Selected, or -1
func (c *Chat) SelectedIndex() int {
	if c.selected >= 0 {
		return c.selected
	}
	idx := c.speakable()
	if len(idx) == 0 {
		return -1
	}
	return idx[len(idx)-1]
}

// SelectPrev moves the cursor to the previous speakable message
func (c *Chat) SelectPrev() {
	idx := c.speakable()
	if len(idx) == 0 {
		return
	}
	cur := c.SelectedIndex()
	for i := len(idx) - 1; i >= 0; i-- {
		if idx[i] < cur {
			c.selected = idx[i]
			return
		}
	}
	c.selected = idx[0]
}

// SelectNext moves the cursor forward, back to following the latest at the end
func (c *Chat) SelectNext() {
	idx := c.speakable()
	cur := c.SelectedIndex()
	for _, i := range idx {
		if i > cur {
			c.selected = i
			if i == idx[len(idx)-1] {
				c.selected = -1
			}
			return
		}
	}
	c.selected = -1
}

// LastAnswer is the most recent assistant message, error or not
func (c *Chat) LastAnswer() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == api.RoleAssistant {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

// Transcript converts the conversation for export
func (c *Chat) Transcript(backendURL string) *storage.Transcript {
	t := &storage.Transcript{BackendURL: backendURL}
	for _, m := range c.messages {
		t.Messages = append(t.Messages, m.toStorage())
	}
	if len(c.messages) > 0 {
		t.Title = c.messages[0].Content
	}
	return t
}

// PlainText is the conversation as copied to the clipboard
func (c *Chat) PlainText() string {
	return storage.FormatText(c.Transcript("").Messages)
}

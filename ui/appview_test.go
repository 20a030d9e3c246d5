package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"vozdalei/api"
	"vozdalei/config"
	appmodel "vozdalei/model"
	"vozdalei/model/testutil"
	"vozdalei/publications"
)

func newTestView(t *testing.T, backend *testutil.MockBackend) (AppView, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{Keybindings: config.DefaultKeybindings()}
	m := appmodel.NewModel(ctx, cfg, backend, nil, nil, "test")

	view := NewAppView(m, cancel)
	next, _ := view.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(AppView), ctx
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func press(t *testing.T, v AppView, msg tea.Msg) (AppView, tea.Cmd) {
	t.Helper()
	next, cmd := v.Update(msg)
	view, ok := next.(AppView)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return view, cmd
}

// drain runs cmd and any batched commands, collecting their messages.
// Only use it on commands that return immediately.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestChatEnterSubmits(t *testing.T) {
	backend := testutil.NewMockBackend()
	v, _ := newTestView(t, backend)

	v.textarea.SetValue("Como posso votar?")
	v, cmd := press(t, v, enterKey())

	if v.textarea.Value() != "" {
		t.Errorf("textarea should be cleared, got %q", v.textarea.Value())
	}
	if !v.dataModel.Chat.Awaiting() {
		t.Fatal("chat should be awaiting a response")
	}

	var resp *appmodel.ChatResponseMsg
	for _, msg := range drain(cmd) {
		if r, ok := msg.(appmodel.ChatResponseMsg); ok {
			resp = &r
		}
	}
	if resp == nil {
		t.Fatal("no chat response produced")
	}

	// The answer still lands in the chat after switching views
	v, _ = press(t, v, altKey('2'))
	if v.active != viewSimplify {
		t.Fatalf("active view = %v, want simplify", v.active)
	}
	v, _ = press(t, v, *resp)

	if got := v.dataModel.Chat.Len(); got != 2 {
		t.Errorf("transcript length = %d, want 2", got)
	}
	if v.dataModel.Chat.Awaiting() {
		t.Error("chat should be idle")
	}
}

func TestChatEnterIgnoresBlankInput(t *testing.T) {
	v, _ := newTestView(t, testutil.NewMockBackend())

	v.textarea.SetValue("   ")
	v, cmd := press(t, v, enterKey())

	if cmd != nil {
		t.Error("blank input should not produce a command")
	}
	if v.dataModel.Chat.Len() != 0 {
		t.Error("blank input should not be added to the transcript")
	}
}

func TestChatAltEnterInsertsNewline(t *testing.T) {
	backend := testutil.NewMockBackend()
	v, _ := newTestView(t, backend)

	v.textarea.SetValue("linha1")
	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})

	if got := v.textarea.Value(); got != "linha1\n" {
		t.Errorf("textarea = %q, want a trailing newline", got)
	}
	if v.dataModel.Chat.Awaiting() || v.dataModel.Chat.Len() != 0 {
		t.Error("alt+enter should not submit")
	}
	if len(backend.ChatRequests()) != 0 {
		t.Error("backend should not be called")
	}
}

func TestChatEnterWhileAwaiting(t *testing.T) {
	backend := testutil.NewMockBackend()
	v, _ := newTestView(t, backend)

	v.textarea.SetValue("primeira")
	v, first := press(t, v, enterKey())

	v.textarea.SetValue("segunda")
	v, _ = press(t, v, enterKey())

	if got := v.textarea.Value(); got != "segunda" {
		t.Errorf("textarea = %q, the pending turn should keep the input", got)
	}
	if got := v.dataModel.Chat.Len(); got != 1 {
		t.Errorf("transcript length = %d, want only the first question", got)
	}
	if v.flashMessage != "Aguarde a resposta anterior" {
		t.Errorf("flash = %q", v.flashMessage)
	}

	drain(first)
	if got := len(backend.ChatRequests()); got != 1 {
		t.Errorf("backend calls = %d, want 1", got)
	}
}

func TestClearDropsLateResponse(t *testing.T) {
	v, _ := newTestView(t, testutil.NewMockBackend())

	v.textarea.SetValue("Olá")
	v, cmd := press(t, v, enterKey())
	msgs := drain(cmd)

	v, _ = press(t, v, altKey('n'))
	for _, msg := range msgs {
		if r, ok := msg.(appmodel.ChatResponseMsg); ok {
			v, _ = press(t, v, r)
		}
	}

	if got := v.dataModel.Chat.Len(); got != 0 {
		t.Errorf("transcript length after clear = %d, want 0", got)
	}
}

func TestExportWithoutStorageFlashes(t *testing.T) {
	v, _ := newTestView(t, testutil.NewMockBackend())

	v.textarea.SetValue("Olá")
	v, cmd := press(t, v, enterKey())
	for _, msg := range drain(cmd) {
		if r, ok := msg.(appmodel.ChatResponseMsg); ok {
			v, _ = press(t, v, r)
		}
	}

	v, cmd = press(t, v, altKey('E'))
	msgs := drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("export produced %d messages", len(msgs))
	}
	v, _ = press(t, v, msgs[0])

	if v.flashMessage != "Exportação indisponível" {
		t.Errorf("flash = %q", v.flashMessage)
	}
	if v.showAcknowledgeModal {
		t.Error("an unavailable export should not open a modal")
	}
}

func TestSimplifyValidationModal(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "   ", appmodel.MsgSimplifyEmpty},
		{"too short", "curto", appmodel.MsgSimplifyTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewMockBackend()
			v, _ := newTestView(t, backend)
			v, _ = press(t, v, altKey('2'))

			v.simplifyInput.SetValue(tt.text)
			v, cmd := press(t, v, enterKey())

			if cmd != nil {
				t.Error("validation failure should not call the backend")
			}
			if !v.showAcknowledgeModal || v.acknowledgeModalMsg != tt.want {
				t.Errorf("modal = %v %q, want %q", v.showAcknowledgeModal, v.acknowledgeModalMsg, tt.want)
			}
			if len(backend.SimplifyRequests()) != 0 {
				t.Error("backend should not be called")
			}

			v, _ = press(t, v, enterKey())
			if v.showAcknowledgeModal {
				t.Error("enter should dismiss the modal")
			}
		})
	}
}

func TestSimplifyFailureModal(t *testing.T) {
	backend := testutil.NewMockBackend()
	backend.SimplifyFunc = func(ctx context.Context, req api.SimplificationRequest) (*api.SimplificationResponse, error) {
		return nil, testutil.NetworkDown()
	}
	v, _ := newTestView(t, backend)
	v, _ = press(t, v, altKey('2'))

	v.simplifyInput.SetValue("Art. 1º Esta Lei institui o programa.")
	v, cmd := press(t, v, enterKey())
	if !v.dataModel.Simplify.Pending() {
		t.Fatal("simplify should be pending")
	}

	for _, msg := range drain(cmd) {
		if r, ok := msg.(appmodel.SimplifyResultMsg); ok {
			v, _ = press(t, v, r)
		}
	}

	if v.dataModel.Simplify.Pending() {
		t.Error("simplify should no longer be pending")
	}
	if !v.showAcknowledgeModal || v.acknowledgeModalType != ModalTypeError {
		t.Fatal("expected an error modal")
	}
	if v.acknowledgeModalMsg != api.NormalizeSimplify(testutil.NetworkDown()) {
		t.Errorf("modal message = %q", v.acknowledgeModalMsg)
	}
}

func TestPublicationsCategoryCycle(t *testing.T) {
	v, _ := newTestView(t, testutil.NewMockBackend())
	v, _ = press(t, v, altKey('3'))

	want := publications.AllCategories
	for range publications.Categories {
		want = publications.NextCategory(want)
		v, _ = press(t, v, altKey('l'))
		if v.pubCategory != want {
			t.Fatalf("category = %q, want %q", v.pubCategory, want)
		}
	}
	if v.pubCategory != publications.AllCategories {
		t.Errorf("cycling through every category should wrap to %q", publications.AllCategories)
	}
}

func TestPublicationsEmptyResult(t *testing.T) {
	v, _ := newTestView(t, testutil.NewMockBackend())
	v, _ = press(t, v, altKey('3'))

	v.pubInput.SetValue("zzzz-nada")
	v.updatePublicationsContent()

	if v.pubCount() != 0 {
		t.Fatalf("expected no projects, got %d", v.pubCount())
	}
	if !strings.Contains(v.pubViewport.View(), publications.EmptyMessage) {
		t.Error("empty message not shown")
	}
}

func TestPublicationsToggleDetails(t *testing.T) {
	v, _ := newTestView(t, testutil.NewMockBackend())
	v, _ = press(t, v, altKey('3'))

	key, _, ok := v.selectedItem()
	if !ok {
		t.Fatal("catalog should have a selected project")
	}

	v, _ = press(t, v, enterKey())
	if !v.pubExpanded[key] {
		t.Error("enter should expand the official text")
	}
	v, _ = press(t, v, enterKey())
	if v.pubExpanded[key] {
		t.Error("second enter should collapse it")
	}
}

func TestQuitCancelsContext(t *testing.T) {
	v, ctx := newTestView(t, testutil.NewMockBackend())

	v, cmd := press(t, v, altKey('q'))

	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !v.dataModel.Quitting {
		t.Error("model should be marked as quitting")
	}
	if ctx.Err() == nil {
		t.Error("root context should be cancelled")
	}
}

func TestPickerFuzzyFilter(t *testing.T) {
	p := newPicker()
	p.open(pickerSuggestions, "Sugestões", appmodel.DefaultSuggestions)

	if len(p.filtered) != len(appmodel.DefaultSuggestions) {
		t.Fatalf("unfiltered picker shows %d items", len(p.filtered))
	}

	p.filter.SetValue("votar")
	p.applyFilter()

	idx, ok := p.selected()
	if !ok {
		t.Fatal("expected a match")
	}
	if got := p.items[idx]; got != "Como posso votar?" {
		t.Errorf("selected = %q", got)
	}

	p.move(1)
	if _, ok := p.selected(); !ok {
		t.Error("move should wrap within the filtered list")
	}
}

package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmodel "vozdalei/model"
	"vozdalei/publications"
)

// AppView is the presentation layer that wraps the core Model.
// The three views are built once and kept for the life of the program, so a
// request started in one view still lands there after switching tabs.
type AppView struct {
	dataModel *appmodel.Model
	cancel    context.CancelFunc
	active    viewID

	// Chat
	viewport viewport.Model
	textarea textarea.Model

	// Simplify
	simplifyInput    textarea.Model
	simplifyViewport viewport.Model

	// Publications
	pubInput     textinput.Model
	pubViewport  viewport.Model
	pubCategory  string
	pubCursor    int
	pubExpanded  map[string]bool
	autocomplete []string

	width  int
	height int
	ready  bool

	showHelp       bool
	showAbout      bool
	loadingSpinner spinner.Model
	backendChecked bool

	showAcknowledgeModal  bool
	acknowledgeModalTitle string
	acknowledgeModalMsg   string
	acknowledgeModalType  ModalType

	picker       picker
	flashMessage string
}

// newInputArea builds a textarea where Enter is left to the view (submit)
// and Alt+Enter inserts a newline.
func newInputArea(placeholder string, height int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(height)
	ta.SetWidth(80)

	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	// "> " for the first line, "| " for continuation lines
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})
	return ta
}

// NewAppView wraps dataModel. cancel aborts the root context shared by every
// backend call and is invoked when the user quits.
func NewAppView(dataModel *appmodel.Model, cancel context.CancelFunc) AppView {
	ta := newInputArea("Digite sua pergunta sobre leis e projetos...", 3)
	ta.Focus()

	simplifyInput := newInputArea("Cole aqui o texto jurídico que deseja simplificar...", 5)

	pubInput := textinput.New()
	pubInput.Placeholder = "Buscar por tema, título ou palavra-chave"
	pubInput.Prompt = "Buscar: "
	pubInput.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return AppView{
		dataModel:        dataModel,
		cancel:           cancel,
		active:           viewChat,
		viewport:         viewport.New(0, 0),
		textarea:         ta,
		simplifyInput:    simplifyInput,
		simplifyViewport: viewport.New(0, 0),
		pubInput:         pubInput,
		pubViewport:      viewport.New(0, 0),
		pubCategory:      publications.AllCategories,
		pubExpanded:      make(map[string]bool),
		loadingSpinner:   sp,
		picker:           newPicker(),
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		a.dataModel.FetchSuggestions(),
		a.dataModel.PingBackend(),
		a.dataModel.FetchFilters(),
	)
}

// busy reports whether any view is waiting on the backend
func (a AppView) busy() bool {
	return a.dataModel.Chat.Awaiting() || a.dataModel.Simplify.Pending() || a.dataModel.Search.Pending()
}

// resize lays out every view for the current terminal size.
// Title (1) and separator (1) on top, status bar (1) below.
func (a *AppView) resize() {
	chrome := 3

	a.textarea.SetWidth(a.width)
	a.viewport.Width = a.width
	a.viewport.Height = max(a.height-chrome-a.textarea.Height(), 1)

	// Simplify adds the counter line under its input
	a.simplifyInput.SetWidth(a.width)
	a.simplifyViewport.Width = a.width
	a.simplifyViewport.Height = max(a.height-chrome-a.simplifyInput.Height()-2, 1)

	// Publications has the search line and the filter line
	a.pubInput.Width = max(a.width-10, 10)
	a.pubViewport.Width = a.width
	a.pubViewport.Height = max(a.height-chrome-3, 1)
}

// refresh re-renders every view's content
func (a *AppView) refresh(gotoBottom bool) {
	a.updateChatContent(gotoBottom)
	a.updateSimplifyContent()
	a.updatePublicationsContent()
}

func (a AppView) View() string {
	if !a.ready {
		return "Carregando Voz da Lei..."
	}

	// Modal rendering order (top to bottom layers):
	// 1. Acknowledge modal (blocking validation and error messages)
	// 2. Help
	// 3. About
	// 4. Picker (suggestions, examples)
	if a.showAcknowledgeModal {
		return RenderAcknowledgeModal(a.acknowledgeModalTitle, a.acknowledgeModalMsg, a.acknowledgeModalType, a.width, a.height)
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.showAbout {
		return renderAboutModal(a, a.width, a.height, a.dataModel.Version)
	}

	if a.picker.active {
		return a.picker.render(a.width, a.height)
	}

	var body string
	switch a.active {
	case viewSimplify:
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			a.simplifyInput.View(),
			a.simplifyInfoLine(),
			"",
			a.simplifyViewport.View(),
		)
	case viewPublications:
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			a.pubInput.View(),
			a.publicationsFilterLine(),
			"",
			a.pubViewport.View(),
		)
	default:
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			a.viewport.View(),
			a.textarea.View(),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderTitleBar(),
		"",
		body,
		a.renderStatusBar(),
	)
}

func (a AppView) renderTitleBar() string {
	kb := a.dataModel.Config.Keybindings

	title := TitleStyle.Render("Voz da Lei")

	tabs := []struct {
		id     viewID
		action string
	}{
		{viewChat, "view_chat"},
		{viewSimplify, "view_simplify"},
		{viewPublications, "view_publications"},
	}
	for _, tab := range tabs {
		label := fmt.Sprintf("%s %s", kb.DisplayActionKey(tab.action), tab.id)
		if tab.id == a.active {
			title += "  " + TabActiveStyle.Render(label)
		} else {
			title += "  " + TabStyle.Render(label)
		}
	}

	var status string
	switch {
	case !a.backendChecked:
		status = DimStyle.Render(" | verificando servidor...")
	case a.dataModel.BackendReachable:
		status = lipgloss.NewStyle().Foreground(successColor).Render(" | ● conectado")
	default:
		status = lipgloss.NewStyle().Foreground(dangerColor).Render(" | ● sem conexão")
	}
	title += status

	if a.flashMessage != "" {
		title += HighlightStyle.Render(" | " + a.flashMessage)
	}
	return title
}

func (a AppView) renderStatusBar() string {
	kb := a.dataModel.Config.Keybindings

	// Main views use user green for descriptions
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	item := func(keyLabel, desc string) string {
		return keyLabel + " " + descStyle.Render(desc)
	}

	parts := []string{item(kb.DisplayActionKey("quit"), "Sair"), item(kb.DisplayActionKey("help"), "Ajuda")}
	switch a.active {
	case viewSimplify:
		parts = append(parts,
			item("Enter", "Simplificar"),
			item(kb.DisplayActionKey("cycle_option"), "Nível"),
			item(kb.DisplayActionKey("simplify_examples"), "Exemplos"),
			item(kb.DisplayActionKey("speak"), "Ouvir"),
			item(kb.DisplayActionKey("yank_last_response"), "Copiar"),
		)
	case viewPublications:
		parts = append(parts,
			item("↑/↓", "Navegar"),
			item("Enter", "Detalhes"),
			item(kb.DisplayActionKey("cycle_option"), "Área"),
			item(kb.DisplayActionKey("search_legislation"), "Buscar na base"),
			item(kb.DisplayActionKey("speak"), "Ouvir"),
		)
	default:
		parts = append(parts,
			item("Enter", "Enviar"),
			item("Alt+Enter", "Nova linha"),
			item(kb.DisplayActionKey("suggestions"), "Sugestões"),
			item(kb.DisplayActionKey("speak"), "Ouvir"),
			item(kb.DisplayActionKey("clear_conversation"), "Nova conversa"),
		)
	}

	statusBar := ""
	for i, p := range parts {
		if i > 0 {
			statusBar += "  "
		}
		statusBar += p
	}
	return StatusStyle.Render(statusBar)
}

// focusActive moves keyboard focus to the input of the active view
func (a *AppView) focusActive() tea.Cmd {
	a.textarea.Blur()
	a.simplifyInput.Blur()
	a.pubInput.Blur()

	switch a.active {
	case viewSimplify:
		return a.simplifyInput.Focus()
	case viewPublications:
		return a.pubInput.Focus()
	default:
		return a.textarea.Focus()
	}
}

func (a *AppView) activeViewport() *viewport.Model {
	switch a.active {
	case viewSimplify:
		return &a.simplifyViewport
	case viewPublications:
		return &a.pubViewport
	default:
		return &a.viewport
	}
}

func (a *AppView) showModal(title, msg string, modalType ModalType) {
	a.showAcknowledgeModal = true
	a.acknowledgeModalTitle = title
	a.acknowledgeModalMsg = msg
	a.acknowledgeModalType = modalType
}

// flash shows a short notice in the title bar
func (a *AppView) flash(msg string) tea.Cmd {
	a.flashMessage = msg
	return appmodel.FlashTick()
}

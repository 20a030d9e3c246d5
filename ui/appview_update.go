package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"vozdalei/config"
	appmodel "vozdalei/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Update spinner FIRST so its tick keeps running while anything is pending
	if a.busy() {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		if _, ok := msg.(spinner.TickMsg); ok {
			a.refresh(false)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		a.ready = true
		a.refresh(true)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		model, keyCmd := a.handleKey(msg)
		cmds = append(cmds, keyCmd)
		return model, tea.Batch(cmds...)

	case chatResponseMsg:
		if !a.dataModel.HandleChatResponse(msg) {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Dropped stale chat response for turn %d", msg.Turn)
			}
			return a, tea.Batch(cmds...)
		}
		a.updateChatContent(true)
		return a, tea.Batch(cmds...)

	case suggestionsLoadedMsg:
		a.dataModel.HandleSuggestions(msg)
		a.updateChatContent(false)
		return a, tea.Batch(cmds...)

	case simplifyResultMsg:
		if errMsg := a.dataModel.HandleSimplifyResult(msg); errMsg != "" {
			a.showModal("Erro ao simplificar", errMsg, ModalTypeError)
		}
		a.updateSimplifyContent()
		return a, tea.Batch(cmds...)

	case searchResultMsg:
		if a.dataModel.HandleSearchResult(msg) {
			a.pubCursor = 0
			a.updatePublicationsContent()
			a.pubViewport.GotoTop()
		}
		return a, tea.Batch(cmds...)

	case autocompleteMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Autocomplete for %q failed: %v", msg.Term, msg.Err)
			}
			return a, tea.Batch(cmds...)
		}
		// Only the completion for what is typed right now is shown
		if msg.Term == a.pubInput.Value() {
			a.autocomplete = msg.Suggestions
		}
		return a, tea.Batch(cmds...)

	case filtersLoadedMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Failed to load search filters: %v", msg.Err)
			}
			return a, tea.Batch(cmds...)
		}
		a.dataModel.Search.SetFilters(msg.Filters)
		return a, tea.Batch(cmds...)

	case speechFinishedMsg:
		a.refresh(false)
		return a, tea.Batch(cmds...)

	case transcriptExportedMsg:
		if errors.Is(msg.Err, appmodel.ErrExportUnavailable) {
			cmds = append(cmds, a.flash("Exportação indisponível"))
			return a, tea.Batch(cmds...)
		}
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Transcript export failed: %v", msg.Err)
			}
			a.showModal("Falha ao exportar", msg.Err.Error(), ModalTypeError)
			return a, tea.Batch(cmds...)
		}
		cmds = append(cmds, a.flash("Conversa exportada em "+msg.Result.TextPath))
		return a, tea.Batch(cmds...)

	case backendStatusMsg:
		a.dataModel.HandleBackendStatus(msg)
		a.backendChecked = true
		return a, tea.Batch(cmds...)

	case flashTickMsg:
		a.flashMessage = ""
		return a, tea.Batch(cmds...)
	}

	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.Keybindings
	pressed := msg.String()

	// PRIORITY 0: quit always works
	if kb.Is("quit", pressed) || pressed == "ctrl+c" {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Quit requested - cancelling pending requests")
		}
		a.dataModel.Shutdown(a.cancel)
		return a, tea.Quit
	}

	// PRIORITY 1: blocking acknowledge modal
	if a.showAcknowledgeModal {
		if pressed == "enter" || pressed == "esc" {
			a.showAcknowledgeModal = false
		}
		return a, nil
	}

	// PRIORITY 2: help and about toggles
	switch {
	case kb.Is("help", pressed):
		a.showHelp = !a.showHelp
		a.showAbout = false
		return a, nil
	case kb.Is("about", pressed):
		a.showAbout = !a.showAbout
		a.showHelp = false
		return a, nil
	}
	if a.showHelp || a.showAbout {
		if pressed == "esc" {
			a.showHelp = false
			a.showAbout = false
		}
		return a, nil
	}

	// PRIORITY 3: picker
	if a.picker.active {
		return a.handlePickerKey(msg)
	}

	// PRIORITY 4: view switching and scrolling
	switch {
	case kb.Is("view_chat", pressed):
		return a.switchView(viewChat)
	case kb.Is("view_simplify", pressed):
		return a.switchView(viewSimplify)
	case kb.Is("view_publications", pressed):
		return a.switchView(viewPublications)
	case kb.Is("half_page_down", pressed):
		a.activeViewport().HalfPageDown()
		return a, nil
	case kb.Is("half_page_up", pressed):
		a.activeViewport().HalfPageUp()
		return a, nil
	case kb.Is("scroll_to_top", pressed):
		a.activeViewport().GotoTop()
		return a, nil
	case kb.Is("scroll_to_bottom", pressed):
		a.activeViewport().GotoBottom()
		return a, nil
	}

	switch a.active {
	case viewSimplify:
		return a.handleSimplifyKey(msg)
	case viewPublications:
		return a.handlePublicationsKey(msg)
	default:
		return a.handleChatKey(msg)
	}
}

func (a AppView) switchView(v viewID) (tea.Model, tea.Cmd) {
	if config.DebugLog != nil {
		config.DebugLog.Printf("[UI] Switching view %s -> %s", a.active, v)
	}
	a.active = v
	cmd := a.focusActive()
	a.refresh(false)
	return a, cmd
}

func (a AppView) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.Keybindings
	pressed := msg.String()

	if a.picker.filterMode {
		switch pressed {
		case "esc":
			a.picker.stopFilter()
			a.picker.filter.SetValue("")
			a.picker.applyFilter()
			return a, nil
		case "enter":
			return a.selectPickerItem()
		case "up":
			a.picker.move(-1)
			return a, nil
		case "down":
			a.picker.move(1)
			return a, nil
		}
		cmd := a.picker.updateFilter(msg)
		return a, cmd
	}

	switch {
	case pressed == "esc":
		a.picker.close()
		cmd := a.focusActive()
		return a, cmd
	case pressed == "enter":
		return a.selectPickerItem()
	case pressed == "/":
		cmd := a.picker.startFilter()
		return a, cmd
	case kb.Is("picker_down", pressed) || pressed == "down":
		a.picker.move(1)
	case kb.Is("picker_up", pressed) || pressed == "up":
		a.picker.move(-1)
	}
	return a, nil
}

func (a AppView) selectPickerItem() (tea.Model, tea.Cmd) {
	idx, ok := a.picker.selected()
	kind := a.picker.kind
	items := a.picker.items
	a.picker.close()
	focus := a.focusActive()
	if !ok {
		return a, focus
	}

	switch kind {
	case pickerSuggestions:
		cmd := a.dataModel.SendChat(items[idx])
		if cmd == nil {
			cmd = tea.Batch(focus, a.flash("Aguarde a resposta anterior"))
			return a, cmd
		}
		a.updateChatContent(true)
		return a, tea.Batch(focus, cmd, a.loadingSpinner.Tick)

	case pickerExamples:
		a.simplifyInput.SetValue(appmodel.Examples[idx].Text)
		return a, focus
	}
	return a, focus
}

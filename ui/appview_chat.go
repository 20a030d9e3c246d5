package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"vozdalei/api"
	"vozdalei/config"
)

func (a AppView) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.Keybindings
	pressed := msg.String()
	chat := a.dataModel.Chat

	switch {
	case pressed == "enter":
		cmd := a.dataModel.SendChat(a.textarea.Value())
		if cmd == nil {
			if chat.Awaiting() {
				cmd = a.flash("Aguarde a resposta anterior")
				return a, cmd
			}
			return a, nil
		}
		a.textarea.Reset()
		a.updateChatContent(true)
		return a, tea.Batch(cmd, a.loadingSpinner.Tick)

	case kb.Is("clear_conversation", pressed):
		cmd := a.dataModel.ClearChat()
		a.textarea.Reset()
		a.updateChatContent(true)
		cmd = tea.Batch(cmd, a.flash("Nova conversa"))
		return a, cmd

	case kb.Is("suggestions", pressed):
		suggestions := chat.VisibleSuggestions()
		if len(suggestions) == 0 {
			cmd := a.flash("Nenhuma sugestão disponível")
			return a, cmd
		}
		a.textarea.Blur()
		a.picker.open(pickerSuggestions, "Perguntas sugeridas", suggestions)
		return a, nil

	case kb.Is("select_prev_message", pressed):
		chat.SelectPrev()
		a.updateChatContent(false)
		return a, nil

	case kb.Is("select_next_message", pressed):
		chat.SelectNext()
		a.updateChatContent(false)
		return a, nil

	case kb.Is("speak", pressed):
		selected, ok := chat.Selected()
		if !ok || !selected.Speakable() {
			cmd := a.flash("Nenhuma resposta para ouvir")
			return a, cmd
		}
		cmd := a.toggleSpeech(selected.SpeechTarget(), selected.Content)
		return a, cmd

	case kb.Is("yank_last_response", pressed):
		answer, ok := chat.LastAnswer()
		if !ok {
			cmd := a.flash("Nenhuma resposta para copiar")
			return a, cmd
		}
		cmd := a.copyToClipboard(answer.Content, "Resposta copiada")
		return a, cmd

	case kb.Is("yank_conversation", pressed):
		if chat.Len() == 0 {
			cmd := a.flash("A conversa está vazia")
			return a, cmd
		}
		cmd := a.copyToClipboard(chat.PlainText(), "Conversa copiada")
		return a, cmd

	case kb.Is("export_conversation", pressed):
		if chat.Len() == 0 {
			cmd := a.flash("A conversa está vazia")
			return a, cmd
		}
		cmd := a.dataModel.ExportTranscript()
		return a, cmd

	case kb.Is("clear_input", pressed):
		a.textarea.Reset()
		return a, nil
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

// toggleSpeech starts or stops reading text and re-renders the markers
func (a *AppView) toggleSpeech(target, text string) tea.Cmd {
	cmd := a.dataModel.ToggleSpeech(target, text)
	a.refresh(false)
	if cmd == nil && !a.dataModel.Speech.Available() {
		return a.flash("Leitura em voz alta indisponível")
	}
	return cmd
}

func (a *AppView) copyToClipboard(text, notice string) tea.Cmd {
	if err := clipboard.WriteAll(text); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Clipboard write failed: %v", err)
		}
		return a.flash("Não foi possível copiar")
	}
	return a.flash(notice)
}

func (a *AppView) updateChatContent(gotoBottom bool) {
	chat := a.dataModel.Chat
	width := max(a.viewport.Width-2, 20)

	if chat.Len() == 0 && !chat.Awaiting() {
		a.viewport.SetContent(a.renderChatWelcome(width))
		return
	}

	var content strings.Builder
	selectedIdx := chat.SelectedIndex()

	for i, msg := range chat.Messages() {
		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

		if msg.Role == api.RoleUser {
			content.WriteString(formatUserMessage(timestamp, UserStyle.Render("Você"), wordWrap(msg.Content, width-2)))
			continue
		}

		prefix := ""
		if i == selectedIdx {
			prefix = HighlightStyle.Render("▶ ")
		}

		header := fmt.Sprintf("%s%s %s", prefix, timestamp, AssistantStyle.Render("Assistente"))
		if a.dataModel.Speech.Speaking(msg.SpeechTarget()) {
			header += " " + SelectedStyle.Render("♪ Falando...")
		}

		body := wordWrap(msg.Content, width)
		if msg.LooksLikeError() {
			body = ErrorBlockStyle.Render(wordWrap(msg.Content, width-2))
		}

		content.WriteString(fmt.Sprintf("%s\n%s\n\n", header, body))
	}

	if chat.Awaiting() {
		content.WriteString(fmt.Sprintf("%s %s\n\n", a.loadingSpinner.View(), DimStyle.Render("Aguardando resposta...")))
	}

	if suggestions := chat.VisibleSuggestions(); len(suggestions) > 0 {
		content.WriteString(DimStyle.Render("Perguntas sugeridas:") + "\n")
		for i, s := range suggestions {
			content.WriteString(DimStyle.Render(fmt.Sprintf("  %d. %s", i+1, s)) + "\n")
		}
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func (a AppView) renderChatWelcome(width int) string {
	kb := a.dataModel.Config.Keybindings

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Como posso ajudar você hoje?"))
	sb.WriteString("\n\n")
	sb.WriteString(wordWrap("Pergunte sobre projetos de lei, o funcionamento da Câmara ou os seus direitos. As respostas usam linguagem simples.", width))
	sb.WriteString("\n\n")

	suggestions := a.dataModel.Chat.VisibleSuggestions()
	if len(suggestions) > 0 {
		sb.WriteString(AssistantStyle.Render("Perguntas sugeridas:"))
		sb.WriteString("\n")
		for i, s := range suggestions {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, s))
		}
		sb.WriteString("\n")
		sb.WriteString(DimStyle.Render(fmt.Sprintf("Pressione %s para escolher uma sugestão", kb.DisplayActionKey("suggestions"))))
	}

	return sb.String()
}

// formatUserMessage draws the user turn with a green bar on the left
func formatUserMessage(timestamp, role, content string) string {
	bar := UserStyle.Render("┃")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))
	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}
	result.WriteString("\n")

	return result.String()
}

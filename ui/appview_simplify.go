package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	appmodel "vozdalei/model"
)

func (a AppView) handleSimplifyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.Keybindings
	pressed := msg.String()
	form := a.dataModel.Simplify

	switch {
	case pressed == "enter":
		if form.Pending() {
			return a, nil
		}
		cmd, err := a.dataModel.SimplifyText(a.simplifyInput.Value())
		if err != nil {
			var verr *appmodel.ValidationError
			if errors.As(err, &verr) {
				a.showModal("Atenção", verr.Message, ModalTypeWarning)
			}
			return a, nil
		}
		a.updateSimplifyContent()
		return a, tea.Batch(cmd, a.loadingSpinner.Tick)

	case kb.Is("cycle_option", pressed):
		level := form.CycleLevel()
		cmd := a.flash("Nível: " + level.Label)
		return a, cmd

	case kb.Is("simplify_examples", pressed):
		titles := make([]string, len(appmodel.Examples))
		for i, ex := range appmodel.Examples {
			titles[i] = ex.Title
		}
		a.simplifyInput.Blur()
		a.picker.open(pickerExamples, "Exemplos de texto", titles)
		return a, nil

	case kb.Is("speak", pressed):
		result, ok := form.Result()
		if !ok {
			cmd := a.flash("Nenhum texto simplificado para ouvir")
			return a, cmd
		}
		cmd := a.toggleSpeech(appmodel.SimplifySpeechTarget, result.SimplifiedText)
		return a, cmd

	case kb.Is("yank_last_response", pressed):
		result, ok := form.Result()
		if !ok {
			cmd := a.flash("Nenhum texto simplificado para copiar")
			return a, cmd
		}
		cmd := a.copyToClipboard(result.SimplifiedText, "Texto simplificado copiado")
		return a, cmd

	case kb.Is("clear_input", pressed):
		a.simplifyInput.Reset()
		return a, nil
	}

	var cmd tea.Cmd
	a.simplifyInput, cmd = a.simplifyInput.Update(msg)
	return a, cmd
}

// simplifyInfoLine is the counter and level line under the input
func (a AppView) simplifyInfoLine() string {
	count := appmodel.CharCount(a.simplifyInput.Value())
	level := a.dataModel.Simplify.Level()
	return fmt.Sprintf("%s  %s %s",
		DimStyle.Render(count),
		DimStyle.Render("Nível:"),
		AssistantStyle.Render(level.Label),
	)
}

func (a *AppView) updateSimplifyContent() {
	form := a.dataModel.Simplify
	width := max(a.simplifyViewport.Width-2, 20)

	var content strings.Builder
	switch result, ok := form.Result(); {
	case form.Pending():
		content.WriteString(fmt.Sprintf("%s %s", a.loadingSpinner.View(), DimStyle.Render("Simplificando...")))

	case ok:
		header := AssistantStyle.Bold(true).Render("Texto simplificado")
		if a.dataModel.Speech.Speaking(appmodel.SimplifySpeechTarget) {
			header += " " + SelectedStyle.Render("♪ Falando...")
		}
		content.WriteString(header + "\n\n")
		content.WriteString(wordWrap(result.SimplifiedText, width))
		if rt := form.ReadingTime(); rt != "" {
			content.WriteString("\n\n")
			content.WriteString(DimStyle.Render("Tempo estimado de leitura: " + rt))
		}

	default:
		content.WriteString(DimStyle.Italic(true).Render("O texto simplificado aparecerá aqui"))
	}

	a.simplifyViewport.SetContent(content.String())
}

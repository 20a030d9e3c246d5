package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vozdalei/api"
	"vozdalei/publications"
)

// backendMode is true while the list shows the backend legislation search
// instead of the built-in catalog.
func (a AppView) backendMode() bool {
	s := a.dataModel.Search
	return s.Pending() || s.Results() != nil || s.Err() != ""
}

func (a AppView) visibleProjects() []publications.Project {
	return publications.Filter(a.dataModel.Projects, a.pubInput.Value(), a.pubCategory)
}

func (a AppView) legislationResults() []api.Legislation {
	if res := a.dataModel.Search.Results(); res != nil {
		return res.Results
	}
	return nil
}

func (a AppView) pubCount() int {
	if a.backendMode() {
		return len(a.legislationResults())
	}
	return len(a.visibleProjects())
}

func legislationKey(l api.Legislation) string {
	return "lei:" + strconv.FormatInt(l.ID, 10)
}

func projectKey(p publications.Project) string {
	return "pub:" + p.ID
}

// selectedItem returns the speech target key and spoken text of the row
// under the cursor.
func (a AppView) selectedItem() (string, string, bool) {
	if a.backendMode() {
		results := a.legislationResults()
		if a.pubCursor < 0 || a.pubCursor >= len(results) {
			return "", "", false
		}
		l := results[a.pubCursor]
		text := l.Title
		if l.Summary != "" {
			text += ". " + l.Summary
		}
		return legislationKey(l), text, true
	}

	projects := a.visibleProjects()
	if a.pubCursor < 0 || a.pubCursor >= len(projects) {
		return "", "", false
	}
	p := projects[a.pubCursor]
	return projectKey(p), p.SimplifiedSummary, true
}

func (a AppView) handlePublicationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.Keybindings
	pressed := msg.String()

	switch {
	case kb.Is("project_down", pressed):
		if a.pubCursor < a.pubCount()-1 {
			a.pubCursor++
		}
		a.updatePublicationsContent()
		return a, nil

	case kb.Is("project_up", pressed):
		if a.pubCursor > 0 {
			a.pubCursor--
		}
		a.updatePublicationsContent()
		return a, nil

	case kb.Is("toggle_details", pressed):
		if k, _, ok := a.selectedItem(); ok {
			a.pubExpanded[k] = !a.pubExpanded[k]
			a.updatePublicationsContent()
		}
		return a, nil

	case kb.Is("cycle_option", pressed):
		a.pubCategory = publications.NextCategory(a.pubCategory)
		a.pubCursor = 0
		a.updatePublicationsContent()
		a.pubViewport.GotoTop()
		return a, nil

	case kb.Is("cycle_status", pressed):
		if status := a.dataModel.Search.CycleStatus(); status != "" {
			cmd := a.flash("Situação: " + status)
			return a, cmd
		}
		cmd := a.flash("Situação: qualquer")
		return a, cmd

	case kb.Is("search_legislation", pressed):
		cmd := a.dataModel.SearchLegislation(a.pubInput.Value())
		if cmd == nil {
			cmd = a.flash("Digite um termo para buscar")
			return a, cmd
		}
		a.pubCursor = 0
		a.updatePublicationsContent()
		return a, tea.Batch(cmd, a.loadingSpinner.Tick)

	case pressed == "esc":
		if a.backendMode() {
			a.dataModel.Search.Reset()
			a.pubCursor = 0
			a.updatePublicationsContent()
			a.pubViewport.GotoTop()
		}
		return a, nil

	case kb.Is("speak", pressed):
		target, text, ok := a.selectedItem()
		if !ok || strings.TrimSpace(text) == "" {
			cmd := a.flash("Nada para ouvir")
			return a, cmd
		}
		cmd := a.toggleSpeech(target, text)
		return a, cmd

	case kb.Is("yank_last_response", pressed):
		_, text, ok := a.selectedItem()
		if !ok {
			cmd := a.flash("Nada para copiar")
			return a, cmd
		}
		cmd := a.copyToClipboard(text, "Resumo copiado")
		return a, cmd

	case kb.Is("clear_input", pressed):
		a.pubInput.SetValue("")
		a.autocomplete = nil
		a.pubCursor = 0
		a.updatePublicationsContent()
		return a, nil
	}

	before := a.pubInput.Value()
	var cmd tea.Cmd
	a.pubInput, cmd = a.pubInput.Update(msg)

	term := a.pubInput.Value()
	if term == before {
		return a, cmd
	}

	a.pubCursor = 0
	a.autocomplete = nil
	a.updatePublicationsContent()
	a.pubViewport.GotoTop()

	if utf8.RuneCountInString(strings.TrimSpace(term)) >= 2 {
		return a, tea.Batch(cmd, a.dataModel.FetchAutocomplete(term))
	}
	return a, cmd
}

// publicationsFilterLine shows the active filters and completions
func (a AppView) publicationsFilterLine() string {
	kb := a.dataModel.Config.Keybindings

	line := fmt.Sprintf("%s %s %s",
		DimStyle.Render("Área:"),
		AssistantStyle.Render(publications.CategoryLabel(a.pubCategory)),
		DimStyle.Render("("+kb.DisplayActionKey("cycle_option")+")"),
	)

	status := a.dataModel.Search.StatusFilter()
	if status == "" {
		status = "qualquer"
	}
	line += fmt.Sprintf("  %s %s %s",
		DimStyle.Render("Situação na base:"),
		AssistantStyle.Render(status),
		DimStyle.Render("("+kb.DisplayActionKey("cycle_status")+")"),
	)

	if len(a.autocomplete) > 0 {
		line += "  " + DimStyle.Render("Sugestões: "+strings.Join(a.autocomplete, ", "))
	}
	return line
}

func (a *AppView) updatePublicationsContent() {
	width := max(a.pubViewport.Width-2, 20)

	var content strings.Builder
	var cursorLine int
	if a.backendMode() {
		cursorLine = a.renderLegislation(&content, width)
	} else {
		cursorLine = a.renderCatalog(&content, width)
	}

	a.pubViewport.SetContent(content.String())

	// Keep the row under the cursor on screen
	switch {
	case cursorLine < a.pubViewport.YOffset:
		a.pubViewport.SetYOffset(cursorLine)
	case cursorLine >= a.pubViewport.YOffset+a.pubViewport.Height:
		a.pubViewport.SetYOffset(cursorLine - a.pubViewport.Height + 3)
	}
}

// renderCatalog writes the filtered built-in projects and returns the line
// where the cursor row starts.
func (a *AppView) renderCatalog(content *strings.Builder, width int) int {
	projects := a.visibleProjects()
	if len(projects) == 0 {
		content.WriteString(DimStyle.Render(publications.EmptyMessage))
		content.WriteString("\n")
		if hints := publications.Hints(a.pubInput.Value()); len(hints) > 0 {
			content.WriteString("\n")
			content.WriteString(DimStyle.Render("Talvez você procure: " + strings.Join(hints, ", ")))
			content.WriteString("\n")
		}
		return 0
	}

	cursorLine := 0
	for i, p := range projects {
		if i == a.pubCursor {
			cursorLine = strings.Count(content.String(), "\n")
		}

		indicator := "  "
		titleStyle := TitleStyle
		if i == a.pubCursor {
			indicator = "▶ "
			titleStyle = SelectedStyle
		}

		meta := StatusBadge(p.Status) + DimStyle.Render("  "+p.Category+"  "+p.DisplayDate())
		if a.dataModel.Speech.Speaking(projectKey(p)) {
			meta += " " + SelectedStyle.Render("♪ Falando...")
		}

		content.WriteString(indicator + titleStyle.Render(publications.ShortTitle(p.Title, width-2)) + "\n")
		content.WriteString("  " + meta + "\n")
		content.WriteString("  " + DimStyle.Render(p.OriginalNumber) + "\n\n")

		content.WriteString("  " + AssistantStyle.Bold(true).Render("Em palavras simples:") + "\n")
		content.WriteString(indent(wordWrap(p.SimplifiedSummary, width-4), "  ") + "\n")

		if len(p.Impacts) > 0 {
			content.WriteString("\n  " + AssistantStyle.Bold(true).Render("Como isso afeta você:") + "\n")
			for _, impact := range p.Impacts {
				content.WriteString(indent(wordWrap("• "+impact, width-4), "  ") + "\n")
			}
		}

		if a.pubExpanded[projectKey(p)] {
			content.WriteString("\n  " + DimStyle.Bold(true).Render("Texto oficial:") + "\n")
			content.WriteString(indent(DimStyle.Render(wordWrap(p.Summary, width-4)), "  ") + "\n")
		} else {
			content.WriteString("\n  " + DimStyle.Render("Ver texto oficial completo (Enter)") + "\n")
		}

		content.WriteString(BorderStyle.Render(strings.Repeat("─", width)) + "\n")
	}
	return cursorLine
}

// renderLegislation writes the backend search results and returns the line
// where the cursor row starts.
func (a *AppView) renderLegislation(content *strings.Builder, width int) int {
	s := a.dataModel.Search

	switch {
	case s.Pending():
		content.WriteString(fmt.Sprintf("%s %s\n", a.loadingSpinner.View(), DimStyle.Render("Buscando na base legislativa...")))
		return 0
	case s.Err() != "":
		content.WriteString(lipgloss.NewStyle().Foreground(dangerColor).Render(wordWrap(s.Err(), width)))
		content.WriteString("\n\n" + DimStyle.Render("Esc volta para a lista de projetos") + "\n")
		return 0
	}

	res := s.Results()
	content.WriteString(DimStyle.Render(fmt.Sprintf("%d resultado(s) na base legislativa  (Esc volta para a lista de projetos)", res.Total)))
	content.WriteString("\n\n")
	if len(res.Results) == 0 {
		content.WriteString(DimStyle.Render("Nenhuma norma encontrada.") + "\n")
		return 0
	}

	cursorLine := 0
	for i, l := range res.Results {
		if i == a.pubCursor {
			cursorLine = strings.Count(content.String(), "\n")
		}

		indicator := "  "
		titleStyle := TitleStyle
		if i == a.pubCursor {
			indicator = "▶ "
			titleStyle = SelectedStyle
		}

		label := fmt.Sprintf("%s %s/%d", l.Type, l.Number, l.Year)
		content.WriteString(indicator + titleStyle.Render(publications.ShortTitle(label+" - "+l.Title, width-2)) + "\n")

		meta := ""
		if l.Status != "" {
			meta = StatusBadge(l.Status)
		}
		if l.Author != "" {
			meta += DimStyle.Render("  " + l.Author)
		}
		if a.dataModel.Speech.Speaking(legislationKey(l)) {
			meta += " " + SelectedStyle.Render("♪ Falando...")
		}
		if meta != "" {
			content.WriteString("  " + meta + "\n")
		}

		if a.pubExpanded[legislationKey(l)] {
			if l.Summary != "" {
				content.WriteString(indent(wordWrap(l.Summary, width-4), "  ") + "\n")
			}
			if l.URN != "" {
				content.WriteString("  " + DimStyle.Render(l.URN) + "\n")
			}
		}
		content.WriteString("\n")
	}
	return cursorLine
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

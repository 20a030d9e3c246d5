package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

// picker is the list modal used for chat suggestions and simplify examples.
// "/" switches to a fuzzy filter over the item labels.
type picker struct {
	active     bool
	kind       pickerKind
	title      string
	items      []string
	filtered   []int // indexes into items
	idx        int
	filterMode bool
	filter     textinput.Model
}

func newPicker() picker {
	ti := textinput.New()
	ti.Placeholder = "Filtrar..."
	ti.CharLimit = 80
	ti.Prompt = "/ "
	return picker{filter: ti}
}

func (p *picker) open(kind pickerKind, title string, items []string) {
	p.active = true
	p.kind = kind
	p.title = title
	p.items = items
	p.idx = 0
	p.filterMode = false
	p.filter.SetValue("")
	p.filter.Blur()
	p.applyFilter()
}

func (p *picker) close() {
	p.active = false
	p.filterMode = false
	p.filter.Blur()
}

func (p *picker) applyFilter() {
	value := p.filter.Value()
	if value == "" {
		p.filtered = make([]int, len(p.items))
		for i := range p.items {
			p.filtered[i] = i
		}
	} else {
		matches := fuzzy.Find(value, p.items)
		p.filtered = make([]int, len(matches))
		for i, match := range matches {
			p.filtered[i] = match.Index
		}
	}

	if p.idx >= len(p.filtered) {
		p.idx = len(p.filtered) - 1
	}
	if p.idx < 0 {
		p.idx = 0
	}
}

func (p *picker) move(delta int) {
	if len(p.filtered) == 0 {
		return
	}
	p.idx = (p.idx + delta + len(p.filtered)) % len(p.filtered)
}

// selected returns the index into items of the highlighted row
func (p *picker) selected() (int, bool) {
	if p.idx < 0 || p.idx >= len(p.filtered) {
		return 0, false
	}
	return p.filtered[p.idx], true
}

func (p *picker) updateFilter(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.applyFilter()
	return cmd
}

func (p *picker) startFilter() tea.Cmd {
	p.filterMode = true
	p.filter.SetValue("")
	p.applyFilter()
	return p.filter.Focus()
}

func (p *picker) stopFilter() {
	p.filterMode = false
	p.filter.Blur()
}

func (p picker) render(width, height int) string {
	modalWidth := modalWidthFor(70, width)

	var lines []string
	switch {
	case p.filterMode:
		lines = append(lines, p.filter.View(), "")
	case len(p.filtered) != len(p.items):
		lines = append(lines, DimStyle.Render(fmt.Sprintf("%d de %d", len(p.filtered), len(p.items))), "")
	}

	if len(p.filtered) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render("Nenhum resultado")
		lines = append(lines, empty)
	}

	for i, itemIdx := range p.filtered {
		indicator := "  "
		if i == p.idx {
			indicator = "▶ "
		}
		label := fmt.Sprintf("%d. %s", itemIdx+1, p.items[itemIdx])
		label = runewidth.Truncate(label, modalWidth-4, "...")
		line := indicator + label
		if i == p.idx {
			line = SelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	footer := FormatFooter("j/k", "Navegar", "Enter", "Selecionar", "/", "Filtrar", "Esc", "Fechar")
	if p.filterMode {
		footer = FormatFooter("↑/↓", "Navegar", "Enter", "Selecionar", "Esc", "Limpar filtro")
	}

	return RenderThreeSectionModal(p.title, lines, footer, ModalTypeInfo, 70, width, height)
}

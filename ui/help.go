package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	kb := a.dataModel.Config.Keybindings

	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("Voz da Lei - Atalhos de teclado")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Geral"),
		fmt.Sprintf("• %-13s Conversa", kb.DisplayActionKey("view_chat")),
		fmt.Sprintf("• %-13s Simplificar texto", kb.DisplayActionKey("view_simplify")),
		fmt.Sprintf("• %-13s Publicações", kb.DisplayActionKey("view_publications")),
		fmt.Sprintf("• %-13s Ouvir / parar", kb.DisplayActionKey("speak")),
		fmt.Sprintf("• %-13s Copiar", kb.DisplayActionKey("yank_last_response")),
		fmt.Sprintf("• %-13s Limpar campo", kb.DisplayActionKey("clear_input")),
		fmt.Sprintf("• %-13s Sobre", kb.DisplayActionKey("about")),
		fmt.Sprintf("• %-13s Esta ajuda", kb.DisplayActionKey("help")),
		fmt.Sprintf("• %-13s Sair", kb.DisplayActionKey("quit")),
	)

	navigation := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Rolagem"),
		fmt.Sprintf("• %-13s Meia página abaixo", kb.DisplayActionKey("half_page_down")),
		fmt.Sprintf("• %-13s Meia página acima", kb.DisplayActionKey("half_page_up")),
		fmt.Sprintf("• %-13s Início", kb.DisplayActionKey("scroll_to_top")),
		fmt.Sprintf("• %-13s Fim", kb.DisplayActionKey("scroll_to_bottom")),
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Conversa"),
		"• Enter         Enviar pergunta",
		"• Alt+Enter     Nova linha",
		fmt.Sprintf("• %-13s Perguntas sugeridas", kb.DisplayActionKey("suggestions")),
		fmt.Sprintf("• %-13s Resposta anterior", kb.DisplayActionKey("select_prev_message")),
		fmt.Sprintf("• %-13s Próxima resposta", kb.DisplayActionKey("select_next_message")),
		fmt.Sprintf("• %-13s Copiar conversa", kb.DisplayActionKey("yank_conversation")),
		fmt.Sprintf("• %-13s Exportar conversa", kb.DisplayActionKey("export_conversation")),
		fmt.Sprintf("• %-13s Nova conversa", kb.DisplayActionKey("clear_conversation")),
	)

	simplifyActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Simplificar"),
		"• Enter         Simplificar",
		fmt.Sprintf("• %-13s Trocar nível", kb.DisplayActionKey("cycle_option")),
		fmt.Sprintf("• %-13s Exemplos", kb.DisplayActionKey("simplify_examples")),
	)

	pubActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Publicações"),
		"• ↑/↓           Navegar",
		"• Enter         Texto oficial",
		fmt.Sprintf("• %-13s Trocar área", kb.DisplayActionKey("cycle_option")),
		fmt.Sprintf("• %-13s Buscar na base", kb.DisplayActionKey("search_legislation")),
		fmt.Sprintf("• %-13s Trocar situação", kb.DisplayActionKey("cycle_status")),
		"• Esc           Voltar aos projetos",
	)

	column1 := lipgloss.JoinVertical(
		lipgloss.Left,
		globalActions,
		"",
		navigation,
	)

	column2 := lipgloss.JoinVertical(
		lipgloss.Left,
		chatActions,
		"",
		simplifyActions,
		"",
		pubActions,
	)

	columnStyle := lipgloss.NewStyle().Width(42).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"  ",
		columnStyle.Render(column2),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render(fmt.Sprintf("Pressione %s ou Esc para fechar", kb.DisplayActionKey("help")))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}

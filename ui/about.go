package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ASCIIArt = `
__     __            _         _         _
\ \   / /__ ____   __| | __ _  | |    ___(_)
 \ \ / / _ \_  /  / _' |/ _' | | |   / _ \ |
  \ V / (_) / /  | (_| | (_| | | |__|  __/ |
   \_/ \___/___|  \__,_|\__,_| |_____\___|_|`

var Features = []string{
	"Pergunte sobre leis e projetos em linguagem simples",
	"Simplifique textos jurídicos em três níveis",
	"Acompanhe projetos explicados e busque na base legislativa",
	"Ouça respostas em voz alta",
}

func renderAboutModal(a AppView, width, height int, version string) string {
	kb := a.dataModel.Config.Keybindings
	var sb strings.Builder

	asciiStyle := lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true)

	sb.WriteString(asciiStyle.Render(ASCIIArt))
	sb.WriteString("\n\n\n")

	featureStyle := lipgloss.NewStyle().
		Foreground(dimColor)

	for _, feature := range Features {
		sb.WriteString(featureStyle.Render("• " + feature))
		sb.WriteString("\n")
	}

	sb.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(dimColor)

	sb.WriteString(labelStyle.Render("Versão: "))
	sb.WriteString(valueStyle.Render(version))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Servidor: "))
	sb.WriteString(valueStyle.Render(a.dataModel.Backend.BaseURL()))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Voz: "))
	if engine := a.dataModel.Speech.EngineName(); engine != "" {
		sb.WriteString(valueStyle.Render(engine))
	} else {
		sb.WriteString(valueStyle.Render("indisponível"))
	}
	sb.WriteString("\n\n\n")

	sb.WriteString(featureStyle.Render(fmt.Sprintf("Pressione Esc ou %s para fechar", kb.DisplayActionKey("about"))))
	sb.WriteString("\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxStyle.Render(sb.String()))
}

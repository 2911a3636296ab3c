package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const fontSize = 16

var defaultStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#7D56F4"))

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#F45E6E"))

var successStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#6ef4a1ff"))

var infoStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#6EC4F4"))

var warnStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#F4B95E"))

func styleFor(style string) lipgloss.Style {
	switch style {
	case "error":
		return errorStyle
	case "success":
		return successStyle
	case "info":
		return infoStyle
	case "warn":
		return warnStyle
	default:
		return defaultStyle
	}
}

func PrintFS(style string, text string, a ...interface{}) {
	fmt.Println(styleFor(style).Render(fmt.Sprintf(text, a...)))
}

func SprintfS(style string, format string, a ...interface{}) string {
	return styleFor(style).Render(fmt.Sprintf(format, a...))
}

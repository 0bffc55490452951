package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/docscout/internal/render"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	fileNameStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147"))

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroEmberColor         = lipgloss.Color("#2b1400")
	heroTextColor          = lipgloss.Color("#fff4d0")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")

	taglineStyle       = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	fileBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor).Padding(0, 2)
	answerBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
	buttonStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(heroAccentColor).Padding(0, 2)
	buttonOffStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e6a86")).Background(lipgloss.Color("#26233a")).Padding(0, 2)
	currentLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor)
	logoShadowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#110600"))
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
	logoArtLines       = []string{
		"██████╗    ██████╗    ██████╗  ███████╗   ██████╗   ██████╗   ██╗   ██╗  ████████╗  ",
		"██╔══██╗  ██╔═══██╗  ██╔════╝  ██╔════╝  ██╔════╝  ██╔═══██╗  ██║   ██║  ╚══██╔══╝  ",
		"██║  ██║  ██║   ██║  ██║       ███████╗  ██║       ██║   ██║  ██║   ██║     ██║     ",
		"██║  ██║  ██║   ██║  ██║       ╚════██║  ██║       ██║   ██║  ██║   ██║     ██║     ",
		"██████╔╝  ╚██████╔╝  ╚██████╗  ███████║  ╚██████╗  ╚██████╔╝  ╚██████╔╝     ██║     ",
		"╚═════╝    ╚═════╝    ╚═════╝  ╚══════╝   ╚═════╝   ╚═════╝    ╚═════╝      ╚═╝     ",
	}
)

func toneStyle(tone render.Tone) lipgloss.Style {
	switch tone {
	case render.ToneSuccess:
		return successStyle
	case render.ToneWarning:
		return warningStyle
	case render.ToneError:
		return errorStyle
	default:
		return helperStyle
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/docscout/internal/render"
)

func (m *model) View() string {
	switch m.stage {
	case stagePicker:
		return m.viewPicker()
	default:
		return m.viewCompose()
	}
}

func (m *model) viewCompose() string {
	parts := []string{
		m.heroView(),
		m.filePanel(),
		m.suggestionsView(),
		m.composerPanel(),
		m.answerPanel(),
		m.statusBarView(),
		m.noticesView(),
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	return joinNonEmpty(parts)
}

func (m *model) viewPicker() string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("Choose a Document"))
	b.WriteRune('\n')
	b.WriteString(helperStyle.Render(m.picker.CurrentDirectory))
	b.WriteRune('\n')
	b.WriteRune('\n')
	b.WriteString(m.picker.View())
	b.WriteRune('\n')
	b.WriteString(helperStyle.Render("Enter: select • ←/→: change directory • Esc: cancel"))
	return joinNonEmpty([]string{m.heroView(), b.String(), m.noticesView()})
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderLogo(),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) filePanel() string {
	snap := m.session.Snapshot()
	if !snap.HasFile {
		return joinNonEmpty([]string{
			sectionHeaderStyle.Render("Document"),
			helperStyle.Render("No document staged. Press Ctrl+O to browse or paste a file path."),
		})
	}
	file := snap.File
	meta := []string{
		strings.ToUpper(file.Extension),
		humanize.Bytes(uint64(file.Size)),
	}
	if file.Pages > 0 {
		meta = append(meta, fmt.Sprintf("%d %s", file.Pages, plural(file.Pages, "page", "pages")))
	}
	lines := []string{
		fileNameStyle.Render(file.Name),
		helperStyle.Render(strings.Join(meta, " • ")),
	}
	if m.preview != "" {
		lines = append(lines, helperStyle.Render(wordwrap.String(m.preview, m.layout.wrapWidth(10))))
	}
	return joinNonEmpty([]string{
		sectionHeaderStyle.Render("Document"),
		fileBoxStyle.Render(strings.Join(lines, "\n")),
	})
}

func (m *model) suggestionsView() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	width := m.layout.wrapWidth(6)
	lines := []string{sectionHeaderStyle.Render("Try Asking")}
	for idx, suggestion := range m.suggestions {
		line := " • " + wordwrap.String(suggestion, width)
		if idx == m.suggestionIdx {
			line = currentLineStyle.Render("▸ " + suggestion)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *model) composerPanel() string {
	button := buttonOffStyle.Render(m.display.SubmitLabel)
	if m.display.SubmitEnabled {
		button = buttonStyle.Render(m.display.SubmitLabel)
	}
	return joinNonEmpty([]string{
		sectionHeaderStyle.Render("Question"),
		lipgloss.JoinHorizontal(lipgloss.Center, m.composer.View(), "  ", button),
		helperStyle.Render(m.composerHelpText()),
	})
}

func (m *model) composerHelpText() string {
	return "Enter: send • Tab: suggestion • Ctrl+O: open file • F1: shortcuts"
}

func (m *model) answerPanel() string {
	if !m.display.PanelVisible {
		return ""
	}
	var body string
	if m.display.Typing {
		body = helperStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), typingPlaceholder))
	} else {
		body = m.viewport.View()
	}
	return joinNonEmpty([]string{
		sectionHeaderStyle.Render("Answer"),
		answerBoxStyle.Render(body),
	})
}

func (m *model) statusBarView() string {
	status := toneStyle(m.display.Tone).Render("● ") + m.display.StatusText
	stats := []string{status, m.backendLabel()}
	if badges := m.jobStatusBadges(); len(badges) > 0 {
		stats = append(stats, badges...)
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) backendLabel() string {
	label := m.config.BackendLabel
	if label == "" {
		label = "backend"
	}
	switch m.backend {
	case backendUp:
		return label + " connected"
	case backendDown:
		return label + " unreachable"
	default:
		return label + " checking…"
	}
}

func (m *model) jobStatusBadges() []string {
	counts := map[jobKind]int{}
	for _, job := range m.activeJobs {
		if job.Status == jobStatusRunning {
			counts[job.Kind]++
		}
	}
	var badges []string
	for _, kind := range []jobKind{jobKindHealth, jobKindQuery} {
		if n := counts[kind]; n > 0 {
			badges = append(badges, fmt.Sprintf("%s %s", m.spinner.View(), kind))
		}
	}
	return badges
}

func (m *model) noticesView() string {
	items := m.notices.Items()
	if len(items) == 0 {
		return ""
	}
	width := m.layout.wrapWidth(4)
	lines := make([]string, 0, len(items))
	for _, n := range items {
		lines = append(lines, toneStyle(n.Tone).Render(noticeIcon(n.Tone)+" "+wordwrap.String(n.Text, width)))
	}
	return strings.Join(lines, "\n")
}

func noticeIcon(tone render.Tone) string {
	switch tone {
	case render.ToneSuccess:
		return "✓"
	case render.ToneWarning:
		return "!"
	case render.ToneError:
		return "✗"
	default:
		return "ℹ"
	}
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Enter", "Send question"},
		{"Ctrl+O", "Open file"},
		{"Ctrl+R", "Remove file"},
		{"Ctrl+Y", "Copy answer"},
		{"Ctrl+L", "Clear answer"},
		{"Tab", "Next suggestion"},
		{"PgUp/PgDn", "Scroll answer"},
		{"Esc", "Dismiss notices"},
		{"Ctrl+C", "Quit"},
	}
	rows := []string{sectionHeaderStyle.Render("Shortcuts")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, helperStyle.Render("Paste a file path to stage it. Answers render as markdown."))
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}

	// Shadow first, offset one cell down and right, then the face on top.
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
			}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y][x] = cell{r: r, style: logoFaceStyle}
			}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}

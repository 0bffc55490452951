package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/docscout/internal/render"
	"github.com/csheth/docscout/internal/session"
)

func TestViewIdle(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	for _, want := range []string{heroTagline, "No document staged", render.StatusReady, render.SubmitLabelIdle} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Answer") {
		t.Fatal("answer panel should be hidden while idle")
	}
}

func TestViewShowsStagedFileAndAnswer(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	stageReport(t, m)
	m.onStaged(m.session.Snapshot().File)
	typeQuestion(m, "What is the total?")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	out := m.View()
	if !strings.Contains(out, typingPlaceholder) || !strings.Contains(out, render.StatusProcessing) {
		t.Fatalf("processing view incomplete:\n%s", out)
	}

	m.Update(queryResultMsg{result: session.Result{RequestID: m.pendingRequestID, Answer: "The total is **42**."}})
	out = m.View()
	for _, want := range []string{"report.txt", "TXT", "Answer", "42", render.StatusSuccess, "Try Asking"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestViewHelpLegend(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyF1})
	if out := m.View(); !strings.Contains(out, "Shortcuts") || !strings.Contains(out, "Copy answer") {
		t.Fatalf("help legend missing:\n%s", out)
	}
}

func TestViewPicker(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if out := m.View(); !strings.Contains(out, "Choose a Document") {
		t.Fatalf("picker view missing header:\n%s", out)
	}
}

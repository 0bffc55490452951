package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	"github.com/csheth/docscout/internal/render"
	"github.com/csheth/docscout/internal/session"
	"github.com/csheth/docscout/internal/stager"
	"github.com/csheth/docscout/internal/suggest"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Session      *session.Session
	Health       HealthChecker
	Clipboard    session.Clipboard
	Logger       *zap.Logger
	NoticeTTL    time.Duration
	GlamourStyle string
	StartDir     string
	BackendLabel string
}

type model struct {
	config  Config
	session *session.Session
	logger  *zap.Logger
	jobs    *jobBus
	stage   stage
	layout  pageLayout

	composer textinput.Model
	picker   filepicker.Model
	spinner  spinner.Model
	viewport viewport.Model

	notices       noticeQueue
	backend       backendStatus
	display       render.Display
	preview       string
	suggestions   []string
	suggestionIdx int
	helpVisible   bool

	renderer       *glamour.TermRenderer
	rendererWidth  int
	renderedAnswer string

	pendingRequestID string
	activeJobs       map[string]jobSnapshot
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Session == nil {
		config.Session = session.New(nil, logger)
	}
	if config.Clipboard == nil {
		config.Clipboard = session.SystemClipboard{}
	}
	if config.GlamourStyle == "" {
		config.GlamourStyle = "dark"
	}
	if config.StartDir == "" {
		config.StartDir = "."
	}

	composer := textinput.New()
	composer.Placeholder = composerPlaceholder
	composer.Focus()
	composer.CharLimit = 500
	composer.Width = 70

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	layout := newPageLayout()
	vp := viewport.New(layout.viewportWidth, layout.viewportHeight)
	vp.MouseWheelEnabled = true

	m := &model{
		config:     config,
		session:    config.Session,
		logger:     logger.Named("tui"),
		jobs:       newJobBus(logger),
		stage:      stageCompose,
		layout:     layout,
		composer:   composer,
		picker:     newPicker(config.StartDir, layout.pickerHeight),
		spinner:    spin,
		viewport:   vp,
		notices:    newNoticeQueue(config.NoticeTTL),
		activeJobs: map[string]jobSnapshot{},
	}
	if snap := m.session.Snapshot(); snap.HasFile {
		m.onStaged(snap.File)
	}
	m.refresh()
	return m
}

func newPicker(dir string, height int) filepicker.Model {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AutoHeight = false
	fp.Height = height
	fp.ShowHidden = false
	return fp
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.config.Health != nil {
		cmds = append(cmds, m.jobs.Start(jobKindHealth, healthJob(m.config.Health)))
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.viewport.Width = m.layout.viewportWidth
		m.viewport.Height = m.layout.viewportHeight
		m.picker.Height = m.layout.pickerHeight
		m.composer.Width = m.layout.wrapWidth(6)
		m.renderedAnswer = ""
		m.refresh()
		return m, nil
	case spinner.TickMsg:
		if m.display.Typing || len(m.activeJobs) > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		m.activeJobs[msg.Snapshot.ID] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		delete(m.activeJobs, msg.Snapshot.ID)
		if msg.Payload != nil {
			return m.Update(msg.Payload)
		}
		if msg.Snapshot.Kind == jobKindQuery && m.pendingRequestID != "" {
			return m.Update(queryResultMsg{result: session.Result{
				RequestID: m.pendingRequestID,
				Err:       fmt.Errorf("%w: %s", session.ErrAborted, msg.Snapshot.Err),
			}})
		}
		return m, nil
	case healthResultMsg:
		if msg.err != nil {
			m.backend = backendDown
			m.logger.Warn("backend health check failed", zap.Error(msg.err))
			return m, m.notices.Push(render.NoticeBackendDown)
		}
		m.backend = backendUp
		return m, m.notices.Push(render.NoticeBackendUp)
	case queryResultMsg:
		if msg.result.RequestID != m.pendingRequestID {
			return m, nil
		}
		m.pendingRequestID = ""
		m.session.Complete(msg.result)
		m.refresh()
		if m.session.Snapshot().State == session.Success {
			return m, m.notices.Push(render.NoticeAnswerReady)
		}
		return m, m.notices.Push(render.NoticeQueryFailed)
	case noticeExpiredMsg:
		m.notices.Expire(msg.id)
		return m, nil
	case tea.MouseMsg:
		if m.stage == stageCompose && m.display.PanelVisible {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.stage == stagePicker {
			return m.handlePickerKey(msg)
		}
		return m.handleComposeKey(msg)
	}

	// Directory listings and other picker-internal messages.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *model) handlePickerKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyEsc {
		m.stage = stageCompose
		m.composer.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(key)
	if didSelect, path := m.picker.DidSelectFile(key); didSelect {
		m.stage = stageCompose
		m.composer.Focus()
		m.config.StartDir = m.picker.CurrentDirectory
		return m, tea.Batch(cmd, m.stageFile(path))
	}
	return m, cmd
}

func (m *model) handleComposeKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Paste {
		if path, ok := pastedPath(string(key.Runes)); ok {
			return m, m.stageFile(path)
		}
	}
	switch key.Type {
	case tea.KeyEnter:
		return m, m.submit()
	case tea.KeyCtrlO:
		m.stage = stagePicker
		m.composer.Blur()
		m.picker = newPicker(m.config.StartDir, m.layout.pickerHeight)
		return m, m.picker.Init()
	case tea.KeyCtrlR:
		return m, m.unstage()
	case tea.KeyCtrlY:
		return m, m.copyAnswer()
	case tea.KeyCtrlL:
		m.session.Clear()
		m.refresh()
		return m, nil
	case tea.KeyTab:
		m.cycleSuggestion()
		return m, nil
	case tea.KeyEsc:
		if !m.notices.DismissAll() {
			m.helpVisible = false
		}
		return m, nil
	case tea.KeyF1:
		m.helpVisible = !m.helpVisible
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return m, cmd
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(key)
	m.session.SetQuestion(m.composer.Value())
	m.refresh()
	return m, cmd
}

// pastedPath reports whether a bracketed paste names an existing regular
// file. Terminals often quote dropped paths.
func pastedPath(raw string) (string, bool) {
	candidate := strings.TrimSpace(raw)
	candidate = strings.Trim(candidate, `"'`)
	if candidate == "" || strings.ContainsRune(candidate, '\n') {
		return "", false
	}
	info, err := os.Stat(candidate)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return candidate, true
}

func (m *model) submit() tea.Cmd {
	m.session.SetQuestion(m.composer.Value())
	req, err := m.session.Begin()
	if err != nil {
		return m.notices.Push(render.NoticesFor(err)...)
	}
	m.pendingRequestID = req.ID
	m.refresh()
	return tea.Batch(m.jobs.Start(jobKindQuery, queryJob(m.session, req)), m.spinner.Tick)
}

func (m *model) stageFile(path string) tea.Cmd {
	file, err := m.session.StagePath(path)
	if err != nil {
		return m.notices.Push(render.NoticesFor(err)...)
	}
	m.onStaged(file)
	m.refresh()
	return m.notices.Push(render.NoticeStaged)
}

func (m *model) onStaged(file stager.StagedFile) {
	preview, err := stager.Preview(file, previewLimit)
	if err != nil {
		m.logger.Debug("preview unavailable", zap.String("name", file.Name), zap.Error(err))
		preview = ""
	}
	m.preview = preview
	m.suggestions = suggest.Build(suggest.Metadata{FileName: file.Name, Kind: file.Kind, Pages: file.Pages})
	m.suggestionIdx = -1
}

func (m *model) unstage() tea.Cmd {
	m.session.Unstage()
	m.preview = ""
	m.suggestions = nil
	m.suggestionIdx = -1
	m.refresh()
	return m.notices.Push(render.NoticeUnstaged)
}

func (m *model) copyAnswer() tea.Cmd {
	if err := m.session.Copy(m.config.Clipboard); err != nil {
		m.logger.Info("copy failed", zap.Error(err))
		return m.notices.Push(render.NoticesFor(err)...)
	}
	return m.notices.Push(render.NoticeCopied)
}

func (m *model) cycleSuggestion() {
	if len(m.suggestions) == 0 {
		return
	}
	m.suggestionIdx = (m.suggestionIdx + 1) % len(m.suggestions)
	m.composer.SetValue(m.suggestions[m.suggestionIdx])
	m.composer.CursorEnd()
	m.session.SetQuestion(m.composer.Value())
	m.refresh()
}

// refresh reprojects session state and re-renders the answer when it changed.
func (m *model) refresh() {
	m.display = render.Project(m.session.Snapshot())
	if m.display.AnswerText == m.renderedAnswer {
		return
	}
	m.renderedAnswer = m.display.AnswerText
	m.viewport.SetContent(m.renderAnswer(m.display))
	m.viewport.GotoTop()
}

func (m *model) renderAnswer(d render.Display) string {
	if d.AnswerText == "" {
		return ""
	}
	width := m.layout.wrapWidth(4)
	if d.Tone == render.ToneError {
		return errorStyle.Render(wordwrap.String(d.AnswerText, width))
	}
	if m.renderer == nil || m.rendererWidth != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.config.GlamourStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			m.logger.Warn("markdown renderer unavailable", zap.Error(err))
			return wordwrap.String(d.AnswerText, width)
		}
		m.renderer = renderer
		m.rendererWidth = width
	}
	out, err := m.renderer.Render(d.AnswerText)
	if err != nil {
		return wordwrap.String(d.AnswerText, width)
	}
	return strings.TrimRight(out, "\n")
}

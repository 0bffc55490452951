package tui

import (
	"github.com/csheth/docscout/internal/session"
)

type stage int

const (
	stageCompose stage = iota
	stagePicker
)

const heroTagline = "Ask your documents anything with DocScout."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	previewLimit              = 240
	maxVisibleNotices         = 4
)

const (
	composerPlaceholder = "Ask a question about the staged document…"
	typingPlaceholder   = "Thinking…"
)

type backendStatus int

const (
	backendUnknown backendStatus = iota
	backendUp
	backendDown
)

type healthResultMsg struct {
	err error
}

type queryResultMsg struct {
	result session.Result
}

type noticeExpiredMsg struct {
	id int
}

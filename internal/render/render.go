// Package render projects session state into display instructions. Nothing
// here holds state; callers recompute the Display after every transition.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/csheth/docscout/internal/session"
	"github.com/csheth/docscout/internal/stager"
)

// Tone colours a status line or notice.
type Tone int

const (
	ToneSuccess Tone = iota
	ToneWarning
	ToneError
	ToneInfo
)

func (t Tone) String() string {
	switch t {
	case ToneSuccess:
		return "success"
	case ToneWarning:
		return "warning"
	case ToneError:
		return "error"
	default:
		return "info"
	}
}

// Display is everything a surface needs to draw the query panel.
type Display struct {
	PanelVisible  bool
	Typing        bool
	AnswerText    string
	SubmitEnabled bool
	SubmitLabel   string
	StatusText    string
	Tone          Tone
}

const (
	StatusReady      = "Ready"
	StatusProcessing = "Processing your query..."
	StatusSuccess    = "Query completed successfully"
	StatusError      = "Error occurred"

	SubmitLabelIdle = "Send"
	SubmitLabelBusy = "Sending…"
)

// Project maps a snapshot to display instructions.
func Project(snap session.Snapshot) Display {
	d := Display{
		SubmitEnabled: snap.HasFile && strings.TrimSpace(snap.Question) != "" && snap.State != session.Processing,
		SubmitLabel:   SubmitLabelIdle,
	}
	switch snap.State {
	case session.Processing:
		d.PanelVisible = true
		d.Typing = true
		d.SubmitLabel = SubmitLabelBusy
		d.StatusText = StatusProcessing
		d.Tone = ToneWarning
	case session.Success:
		d.PanelVisible = true
		d.AnswerText = snap.Answer
		d.StatusText = StatusSuccess
		d.Tone = ToneSuccess
	case session.Error:
		d.PanelVisible = true
		d.AnswerText = snap.Answer
		d.StatusText = StatusError
		d.Tone = ToneError
	default:
		d.StatusText = StatusReady
		d.Tone = ToneSuccess
	}
	return d
}

// Notice is a transient, dismissible message.
type Notice struct {
	Text string
	Tone Tone
}

var (
	NoticeStaged          = Notice{Text: "File uploaded successfully!", Tone: ToneSuccess}
	NoticeUnstaged        = Notice{Text: "File removed.", Tone: ToneInfo}
	NoticeAnswerReady     = Notice{Text: "Answer generated successfully!", Tone: ToneSuccess}
	NoticeQueryFailed     = Notice{Text: "Query failed. Check the log for details.", Tone: ToneError}
	NoticeCopied          = Notice{Text: "Answer copied to clipboard!", Tone: ToneSuccess}
	NoticeCopyFailed      = Notice{Text: "Failed to copy to clipboard", Tone: ToneError}
	NoticeNothingToCopy   = Notice{Text: "There is no answer to copy yet.", Tone: ToneInfo}
	NoticeBackendUp       = Notice{Text: "Connected to Backend!", Tone: ToneSuccess}
	NoticeBackendDown     = Notice{Text: "Backend connection failed. Check if the backend is running.", Tone: ToneError}
	NoticeMissingFile     = Notice{Text: "Please upload a document first", Tone: ToneError}
	NoticeEmptyQuestion   = Notice{Text: "Please enter a question", Tone: ToneError}
	NoticeRequestInFlight = Notice{Text: "A query is already running. Wait for the answer.", Tone: ToneWarning}
	NoticeUnsupportedType = Notice{Text: unsupportedTypeText(), Tone: ToneError}
)

func unsupportedTypeText() string {
	exts := make([]string, 0, len(stager.AllowedExtensions))
	for _, ext := range stager.AllowedExtensions {
		exts = append(exts, strings.ToUpper(ext))
	}
	return fmt.Sprintf("Unsupported file type. Please upload %s files.", strings.Join(exts, ", "))
}

// NoticesFor turns an error from the session into user-facing notices. A
// joined precondition error yields one notice per failed precondition.
func NoticesFor(err error) []Notice {
	if err == nil {
		return nil
	}
	var notices []Notice
	if errors.Is(err, session.ErrMissingFile) {
		notices = append(notices, NoticeMissingFile)
	}
	if errors.Is(err, session.ErrEmptyQuestion) {
		notices = append(notices, NoticeEmptyQuestion)
	}
	if errors.Is(err, session.ErrRequestInFlight) {
		notices = append(notices, NoticeRequestInFlight)
	}
	if len(notices) > 0 {
		return notices
	}

	var clipErr *session.ClipboardError
	switch {
	case errors.Is(err, stager.ErrUnsupportedType):
		return []Notice{NoticeUnsupportedType}
	case errors.Is(err, session.ErrNothingToCopy):
		return []Notice{NoticeNothingToCopy}
	case errors.As(err, &clipErr):
		return []Notice{NoticeCopyFailed}
	default:
		return []Notice{{Text: err.Error(), Tone: ToneError}}
	}
}

package tuitest

import (
	"bytes"
	"testing"
)

func TestParseFramesSplitsOnClear(t *testing.T) {
	raw := []byte("\x1b[2J\x1b[Hfirst  \r\n\x1b[2J\x1b[H\x1b[1mDocScout\x1b[0m\r\nReady\r\n\r\n")
	frames := parseFrames(raw)
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].Plain != "first" {
		t.Fatalf("first frame = %q", frames[0].Plain)
	}
	rec := &Recording{Raw: raw, Frames: frames}
	final, ok := rec.FinalFrame()
	if !ok || final.Plain != "DocScout\nReady" {
		t.Fatalf("final frame = %q", final.Plain)
	}
	if !rec.Contains("DocScout") || rec.Contains("\x1b") {
		t.Fatal("plain text should contain rendered words and no escapes")
	}
}

func TestFinalFrameEmpty(t *testing.T) {
	var rec *Recording
	if _, ok := rec.FinalFrame(); ok {
		t.Fatal("nil recording has no frames")
	}
}

func TestTerminalResponderAnswersInOrder(t *testing.T) {
	var out bytes.Buffer
	tr := newTerminalResponder(&out)
	tr.Process([]byte("noise\x1b]11;?\x07more\x1b[6"))
	tr.Process([]byte("n"))
	want := "\x1b]11;rgb:0000/0000/0000\x07\x1b[1;1R"
	if got := out.String(); got != want {
		t.Fatalf("responses = %q, want %q", got, want)
	}
}

func TestPasteBrackets(t *testing.T) {
	if got := string(Paste("/tmp/a.pdf")); got != "\x1b[200~/tmp/a.pdf\x1b[201~" {
		t.Fatalf("paste = %q", got)
	}
}

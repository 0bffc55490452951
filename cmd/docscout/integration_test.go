package main

import (
	"context"
	"net/http"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/csheth/docscout/internal/tuitest"
)

func TestDocScoutAsksThroughTerminalUI(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty harness requires a unix terminal")
	}
	if testing.Short() {
		t.Skip("builds the binary")
	}
	isolateConfig(t)

	tb := newTestBackend(t, http.StatusOK, `{"status":"success","answer":"The total is 42."}`)
	doc := writeFile(t, "report.txt", "Q1: 40\nQ2: 2\n")
	logFile := filepath.Join(t.TempDir(), "docscout.log")

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen", "--log-file", logFile},
		Dir:     cmdDir,
		Env:     []string{"DOCSCOUT_BACKEND_URL=" + tb.server.URL, "DOCSCOUT_GLAMOUR_STYLE=notty"},
		Width:   120,
		Height:  48,
		Steps: []tuitest.Step{
			{WaitFor: "Connected to Backend!", Input: tuitest.Paste(doc)},
			{WaitFor: "report.txt", Input: []byte("What is the total?")},
			{Delay: 200 * time.Millisecond, Input: tuitest.KeyEnter},
			{WaitFor: "Query completed successfully", Input: tuitest.KeyCtrlC},
		},
		Timeout:        20 * time.Second,
		AllowInterrupt: true,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}
	if !rec.Contains("The total is 42.") {
		frame, _ := rec.FinalFrame()
		t.Fatalf("answer not rendered; final frame:\n%s", frame.Plain)
	}

	queries := tb.recorded()
	if len(queries) != 1 {
		t.Fatalf("expected one backend query, got %d", len(queries))
	}
	if queries[0].Question != "What is the total?" {
		t.Fatalf("question = %q", queries[0].Question)
	}
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "docscout-integration")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}

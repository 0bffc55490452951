package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/docscout/internal/session"
)

type recordedQuery struct {
	FileName string
	Content  string
	Question string
}

type testBackend struct {
	server *httptest.Server

	mu      sync.Mutex
	queries []recordedQuery
}

func newTestBackend(t *testing.T, status int, body string) *testBackend {
	t.Helper()
	tb := &testBackend{}
	tb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			w.Write([]byte(`{"message":"ok"}`))
			return
		}
		if r.Method != http.MethodPost || r.URL.Path != "/api/query" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		content, _ := io.ReadAll(file)
		tb.mu.Lock()
		tb.queries = append(tb.queries, recordedQuery{
			FileName: header.Filename,
			Content:  string(content),
			Question: r.FormValue("question"),
		})
		tb.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(tb.server.Close)
	return tb
}

func (tb *testBackend) recorded() []recordedQuery {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return append([]recordedQuery(nil), tb.queries...)
}

// isolateConfig keeps the user's own config file and DOCSCOUT_* variables out
// of the test.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, key := range []string{"BACKEND_URL", "BACKEND_TIMEOUT", "NOTICE_TTL", "GLAMOUR_STYLE", "LOG_FILE", "LOG_LEVEL"} {
		t.Setenv("DOCSCOUT_"+key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAskPrintsAnswer(t *testing.T) {
	isolateConfig(t)
	tb := newTestBackend(t, http.StatusOK, `{"status":"success","answer":"42"}`)
	path := writeFile(t, "report.txt", "total: 42")

	stdout, _, err := execute(t, "ask", "--backend", tb.server.URL, "--file", path, "What", "is", "the", "total?")
	require.NoError(t, err)
	assert.Equal(t, "42\n", stdout)

	queries := tb.recorded()
	require.Len(t, queries, 1)
	assert.Equal(t, "report.txt", queries[0].FileName)
	assert.Equal(t, "total: 42", queries[0].Content)
	assert.Equal(t, "What is the total?", queries[0].Question)
}

func TestAskRejectsUnsupportedFile(t *testing.T) {
	isolateConfig(t)
	tb := newTestBackend(t, http.StatusOK, `{"status":"success","answer":"42"}`)
	path := writeFile(t, "report.exe", "MZ")

	stdout, stderr, err := execute(t, "ask", "--backend", tb.server.URL, "--file", path, "What is the total?")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Unsupported file type")
	assert.Empty(t, tb.recorded())
}

func TestAskWithoutFile(t *testing.T) {
	isolateConfig(t)
	tb := newTestBackend(t, http.StatusOK, `{"status":"success","answer":"42"}`)

	_, stderr, err := execute(t, "ask", "--backend", tb.server.URL, "What is the total?")
	require.ErrorIs(t, err, session.ErrMissingFile)
	assert.Contains(t, stderr, "Please upload a document first")
	assert.Empty(t, tb.recorded())
}

func TestAskBlankQuestion(t *testing.T) {
	isolateConfig(t)
	tb := newTestBackend(t, http.StatusOK, `{"status":"success","answer":"42"}`)
	path := writeFile(t, "report.pdf", "%PDF-1.4")

	_, stderr, err := execute(t, "ask", "--backend", tb.server.URL, "--file", path, "   ")
	require.ErrorIs(t, err, session.ErrEmptyQuestion)
	assert.Contains(t, stderr, "Please enter a question")
	assert.Empty(t, tb.recorded())
}

func TestAskServerError(t *testing.T) {
	isolateConfig(t)
	tb := newTestBackend(t, http.StatusInternalServerError, `oops`)
	path := writeFile(t, "report.pdf", "%PDF-1.4")

	stdout, stderr, err := execute(t, "ask", "--backend", tb.server.URL, "--file", path, "What is the total?")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, session.MsgTransportFailure)
}

func TestAskApplicationError(t *testing.T) {
	isolateConfig(t)
	tb := newTestBackend(t, http.StatusOK, `{"status":"error","detail":"Document could not be parsed"}`)
	path := writeFile(t, "report.docx", "PK")

	_, stderr, err := execute(t, "ask", "--backend", tb.server.URL, "--file", path, "What is the total?")
	require.Error(t, err)
	assert.Contains(t, stderr, "Document could not be parsed")
}

func TestAskRequiresQuestionArgument(t *testing.T) {
	isolateConfig(t)
	_, _, err := execute(t, "ask", "--file", "report.pdf")
	require.Error(t, err)
}

func TestHealthCommand(t *testing.T) {
	isolateConfig(t)
	tb := newTestBackend(t, http.StatusOK, `{}`)

	_, stderr, err := execute(t, "health", "--backend", tb.server.URL)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Connected to Backend!")
}

func TestHealthCommandUnreachable(t *testing.T) {
	isolateConfig(t)
	tb := newTestBackend(t, http.StatusOK, `{}`)
	url := tb.server.URL
	tb.server.Close()

	_, stderr, err := execute(t, "health", "--backend", url)
	require.Error(t, err)
	assert.Contains(t, stderr, "Backend connection failed")
}

func TestBackendFlagValidated(t *testing.T) {
	isolateConfig(t)
	_, _, err := execute(t, "health", "--backend", "ftp://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an http(s) URL")
}

func TestEnvBackendUsedWithoutFlag(t *testing.T) {
	isolateConfig(t)
	tb := newTestBackend(t, http.StatusOK, `{}`)
	t.Setenv("DOCSCOUT_BACKEND_URL", tb.server.URL)

	_, stderr, err := execute(t, "health")
	require.NoError(t, err)
	assert.Contains(t, stderr, tb.server.URL)
}

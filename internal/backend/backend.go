package backend

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	queryPath  = "/api/query"
	healthPath = "/"

	// StatusSuccess is the payload status the backend reports for a usable answer.
	StatusSuccess = "success"
)

// Config describes how to reach the question-answering backend.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// QueryRequest is built once per submission and lives for one network call.
type QueryRequest struct {
	ID       string
	FileName string
	Content  []byte
	Question string
}

// TransportError covers an unreachable backend, a non-2xx status, or a body
// that could not be decoded.
type TransportError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("backend returned %s", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("backend transport error: %v", e.Err)
	default:
		return "backend transport error"
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Unreachable reports whether the request never produced an HTTP response.
func (e *TransportError) Unreachable() bool {
	return e.StatusCode == 0 && !errors.Is(e.Err, errMalformedPayload)
}

// ApplicationError is a 2xx response whose payload signals failure.
type ApplicationError struct {
	Status string
	Detail string
}

const fallbackDetail = "Unknown error occurred"

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("backend reported %q: %s", e.Status, e.Message())
}

// Message returns the backend's detail, or a generic fallback when it sent none.
func (e *ApplicationError) Message() string {
	if strings.TrimSpace(e.Detail) == "" {
		return fallbackDetail
	}
	return e.Detail
}

var errMalformedPayload = errors.New("malformed response payload")

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("backend base URL is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid backend base URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("backend base URL %q must use http or https", raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("backend base URL %q has no host", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	// A zero timeout leaves the request to the transport's own limits.
	return &http.Client{Timeout: timeout}
}

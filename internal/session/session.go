package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/csheth/docscout/internal/backend"
	"github.com/csheth/docscout/internal/stager"
)

// Querier issues one question-answering request.
type Querier interface {
	Query(ctx context.Context, req backend.QueryRequest) (string, error)
}

// Clipboard receives copied answers.
type Clipboard interface {
	WriteAll(text string) error
}

// Result carries the outcome of one Run back into the session.
type Result struct {
	RequestID string
	Answer    string
	Err       error
}

// Snapshot is a read-only copy of session state for rendering.
type Snapshot struct {
	State     State
	Answer    string
	Question  string
	File      stager.StagedFile
	HasFile   bool
	RequestID string
}

// Session owns the staged document, the question, the query state and the
// last answer. At most one query is in flight at any time.
type Session struct {
	querier Querier
	logger  *zap.Logger
	guard   *semaphore.Weighted

	mu        sync.Mutex
	files     *stager.Stager
	question  string
	state     State
	answer    string
	requestID string
}

// New returns an Idle session that sends queries through querier.
func New(querier Querier, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		querier: querier,
		logger:  logger.Named("session"),
		guard:   semaphore.NewWeighted(1),
		files:   stager.New(),
		state:   Idle,
	}
}

// Stage validates and stages an in-memory document.
func (s *Session) Stage(name string, content []byte) (stager.StagedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := s.files.Stage(name, content)
	if err != nil {
		s.logger.Info("file rejected", zap.String("name", name), zap.Error(err))
		return stager.StagedFile{}, err
	}
	s.logger.Info("file staged", zap.String("name", file.Name), zap.Int64("size", file.Size))
	return file, nil
}

// StagePath validates and stages a document from disk.
func (s *Session) StagePath(path string) (stager.StagedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := s.files.StagePath(path)
	if err != nil {
		s.logger.Info("file rejected", zap.String("path", path), zap.Error(err))
		return stager.StagedFile{}, err
	}
	s.logger.Info("file staged", zap.String("name", file.Name), zap.Int64("size", file.Size))
	return file, nil
}

// Unstage removes the staged document. It is safe to call repeatedly.
func (s *Session) Unstage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files.Unstage()
}

// SetQuestion records the raw question text as typed.
func (s *Session) SetQuestion(question string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.question = question
}

// Ready reports every precondition that currently blocks a submission.
func (s *Session) Ready() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyLocked()
}

func (s *Session) readyLocked() error {
	var errs []error
	if _, ok := s.files.Current(); !ok {
		errs = append(errs, ErrMissingFile)
	}
	if strings.TrimSpace(s.question) == "" {
		errs = append(errs, ErrEmptyQuestion)
	}
	if s.state == Processing {
		errs = append(errs, ErrRequestInFlight)
	}
	return errors.Join(errs...)
}

// Begin gate-checks the session and, when every precondition holds, moves it
// to Processing and returns the request to send. Every successful Begin must
// be followed by exactly one Complete.
func (s *Session) Begin() (backend.QueryRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return backend.QueryRequest{}, err
	}
	if !s.guard.TryAcquire(1) {
		return backend.QueryRequest{}, ErrRequestInFlight
	}
	file, _ := s.files.Current()
	req := backend.QueryRequest{
		ID:       backend.NewRequestID(),
		FileName: file.Name,
		Content:  file.Content,
		Question: strings.TrimSpace(s.question),
	}
	s.state = Processing
	s.answer = ""
	s.requestID = req.ID
	s.logger.Info("query started", zap.String("request_id", req.ID), zap.String("file", file.Name))
	return req, nil
}

// Run performs the single backend call for req. It does not touch session
// state, so it may run off the event loop.
func (s *Session) Run(ctx context.Context, req backend.QueryRequest) (result Result) {
	result = Result{RequestID: req.ID, Err: ErrAborted}
	defer func() {
		if r := recover(); r != nil {
			result = Result{RequestID: req.ID, Err: fmt.Errorf("%w: %v", ErrAborted, r)}
		}
	}()
	answer, err := s.querier.Query(ctx, req)
	return Result{RequestID: req.ID, Answer: answer, Err: err}
}

// Complete applies a Run result and releases the in-flight guard. Results for
// any request other than the one in flight are ignored.
func (s *Session) Complete(result Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Processing || result.RequestID != s.requestID {
		s.logger.Debug("stale query result ignored", zap.String("request_id", result.RequestID))
		return
	}
	defer s.guard.Release(1)
	s.requestID = ""

	if result.Err == nil {
		s.state = Success
		s.answer = result.Answer
		s.logger.Info("query succeeded", zap.String("request_id", result.RequestID))
		return
	}
	s.state = Error
	s.answer = failureMessage(result.Err)
	s.logger.Warn("query failed", zap.String("request_id", result.RequestID), zap.Error(result.Err))
}

func failureMessage(err error) string {
	var appErr *backend.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}
	var transportErr *backend.TransportError
	if errors.As(err, &transportErr) && transportErr.Unreachable() {
		return MsgBackendUnreachable
	}
	return MsgTransportFailure
}

// Submit sends the staged document and question and waits for the answer.
// Precondition failures return before any state change or network call.
func (s *Session) Submit(ctx context.Context) error {
	req, err := s.Begin()
	if err != nil {
		return err
	}
	result := Result{RequestID: req.ID, Err: ErrAborted}
	defer func() { s.Complete(result) }()
	result = s.Run(ctx, req)
	return result.Err
}

// Clear empties the answer and returns a finished session to Idle. It has no
// effect while a query is running.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Processing {
		return
	}
	s.state = Idle
	s.answer = ""
}

// Copy writes the current answer to cb.
func (s *Session) Copy(cb Clipboard) error {
	s.mu.Lock()
	answer := s.answer
	s.mu.Unlock()
	if answer == "" {
		return ErrNothingToCopy
	}
	if err := cb.WriteAll(answer); err != nil {
		return &ClipboardError{Err: err}
	}
	return nil
}

// Snapshot returns the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.files.Current()
	return Snapshot{
		State:     s.state,
		Answer:    s.answer,
		Question:  s.question,
		File:      file,
		HasFile:   ok,
		RequestID: s.requestID,
	}
}

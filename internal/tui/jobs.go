package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type jobKind string

type jobStatus string

const (
	jobKindHealth jobKind = "health"
	jobKindQuery  jobKind = "query"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	logger  *zap.Logger
}

func newJobBus(logger *zap.Logger) *jobBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &jobBus{logger: logger.Named("jobs")}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start emits a running signal, then runs the job and wraps its payload in a
// result envelope.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}
	runCmd := func() tea.Msg {
		return b.run(context.Background(), startSnapshot, runner)
	}
	return tea.Sequence(startCmd, runCmd)
}

func (b *jobBus) run(ctx context.Context, start jobSnapshot, runner jobRunner) (envelope jobResultEnvelope) {
	var (
		payload tea.Msg
		err     error
	)
	defer func() {
		if r := recover(); r != nil {
			payload, err = nil, fmt.Errorf("job panicked: %v", r)
		}
		snapshot := start
		snapshot.CompletedAt = time.Now()
		snapshot.Duration = snapshot.CompletedAt.Sub(start.StartedAt)
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		b.logger.Info("job finished",
			zap.String("id", snapshot.ID),
			zap.String("kind", string(snapshot.Kind)),
			zap.String("status", string(snapshot.Status)),
			zap.Duration("duration", snapshot.Duration),
			zap.Error(err))
		envelope = jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}()
	payload, err = runner(ctx)
	return
}

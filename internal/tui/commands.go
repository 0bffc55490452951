package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/docscout/internal/backend"
	"github.com/csheth/docscout/internal/session"
)

const healthProbeTimeout = 15 * time.Second

// HealthChecker probes the backend once at startup.
type HealthChecker interface {
	Health(ctx context.Context) error
}

func healthJob(checker HealthChecker) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, healthProbeTimeout)
		defer cancel()
		err := checker.Health(ctx)
		return healthResultMsg{err: err}, err
	}
}

// queryJob always yields a queryResultMsg so the session's guard is released
// even when the call fails.
func queryJob(s *session.Session, req backend.QueryRequest) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		result := s.Run(ctx, req)
		return queryResultMsg{result: result}, result.Err
	}
}

func expireNoticeCmd(id int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

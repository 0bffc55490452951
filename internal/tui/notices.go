package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/docscout/internal/render"
)

const defaultNoticeTTL = 3 * time.Second

type activeNotice struct {
	id     int
	notice render.Notice
}

// noticeQueue holds transient notices. Each one expires on its own timer and
// the oldest is dropped once the queue is full.
type noticeQueue struct {
	ttl    time.Duration
	nextID int
	items  []activeNotice
}

func newNoticeQueue(ttl time.Duration) noticeQueue {
	if ttl <= 0 {
		ttl = defaultNoticeTTL
	}
	return noticeQueue{ttl: ttl}
}

func (q *noticeQueue) Push(notices ...render.Notice) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(notices))
	for _, n := range notices {
		q.nextID++
		q.items = append(q.items, activeNotice{id: q.nextID, notice: n})
		cmds = append(cmds, expireNoticeCmd(q.nextID, q.ttl))
	}
	if overflow := len(q.items) - maxVisibleNotices; overflow > 0 {
		q.items = append([]activeNotice(nil), q.items[overflow:]...)
	}
	return tea.Batch(cmds...)
}

func (q *noticeQueue) Expire(id int) {
	for i, item := range q.items {
		if item.id == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

func (q *noticeQueue) DismissAll() bool {
	if len(q.items) == 0 {
		return false
	}
	q.items = nil
	return true
}

func (q *noticeQueue) Items() []render.Notice {
	out := make([]render.Notice, 0, len(q.items))
	for _, item := range q.items {
		out = append(out, item.notice)
	}
	return out
}

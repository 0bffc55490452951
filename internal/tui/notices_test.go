package tui

import (
	"testing"

	"github.com/csheth/docscout/internal/render"
)

func TestNoticeQueueDropsOldest(t *testing.T) {
	q := newNoticeQueue(0)
	if q.ttl != defaultNoticeTTL {
		t.Fatalf("ttl = %v", q.ttl)
	}
	for i := 0; i < maxVisibleNotices+2; i++ {
		q.Push(render.Notice{Text: string(rune('a' + i))})
	}
	items := q.Items()
	if len(items) != maxVisibleNotices {
		t.Fatalf("len = %d", len(items))
	}
	if items[0].Text != "c" {
		t.Fatalf("oldest kept = %q, want c", items[0].Text)
	}
}

func TestNoticeQueueExpireAndDismiss(t *testing.T) {
	q := newNoticeQueue(0)
	q.Push(render.NoticeStaged, render.NoticeCopied)
	first := q.items[0].id

	q.Expire(first)
	if items := q.Items(); len(items) != 1 || items[0] != render.NoticeCopied {
		t.Fatalf("items = %v", items)
	}
	q.Expire(first)
	if len(q.Items()) != 1 {
		t.Fatal("expiring twice should be harmless")
	}
	if !q.DismissAll() {
		t.Fatal("dismiss should report removal")
	}
	if q.DismissAll() {
		t.Fatal("dismissing an empty queue should report false")
	}
}

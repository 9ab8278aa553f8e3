package schedule_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/teamtext2/bot/internal/repository"
	"github.com/teamtext2/bot/internal/schedule"
)

type sentMessage struct {
	ChatID string
	Text   string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	fail bool
}

func (n *recordingNotifier) Send(ctx context.Context, chatID, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{ChatID: chatID, Text: text})
	if n.fail {
		return fmt.Errorf("chat is gone")
	}
	return nil
}

func (n *recordingNotifier) Sent() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}

type recordingRemover struct {
	mu      sync.Mutex
	removed []string
}

func (r *recordingRemover) RemoveByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, id)
	return nil
}

func (r *recordingRemover) Removed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.removed...)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestSpawnDeliversOnceAndRemoves(t *testing.T) {
	notifier := &recordingNotifier{}
	remover := &recordingRemover{}
	s := schedule.NewScheduler(remover, notifier)

	r := repository.Reminder{ID: "r1", ChatID: "chat-1", Message: "test"}
	s.Spawn(r, time.Now().Add(50*time.Millisecond))

	if s.Pending() != 1 {
		t.Fatalf("expected 1 pending wait-task, got %d", s.Pending())
	}

	waitFor(t, 2*time.Second, func() bool {
		return len(remover.Removed()) == 1
	})

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected exactly one delivery, got %d", len(sent))
	}
	if sent[0].ChatID != "chat-1" {
		t.Errorf("delivered to chat %q, want %q", sent[0].ChatID, "chat-1")
	}
	if want := schedule.FormatDelivery("test"); sent[0].Text != want {
		t.Errorf("delivered text %q, want %q", sent[0].Text, want)
	}
	if removed := remover.Removed(); removed[0] != "r1" {
		t.Errorf("removed id %q, want %q", removed[0], "r1")
	}
	if s.Pending() != 0 {
		t.Errorf("expected no pending wait-tasks after delivery, got %d", s.Pending())
	}
}

func TestSpawnPastDueRemovesWithoutDelivering(t *testing.T) {
	notifier := &recordingNotifier{}
	remover := &recordingRemover{}
	s := schedule.NewScheduler(remover, notifier)

	r := repository.Reminder{ID: "stale", ChatID: "chat-1", Message: "late"}
	s.Spawn(r, time.Now().Add(-time.Minute))

	if len(notifier.Sent()) != 0 {
		t.Errorf("expected no delivery for past-due reminder, got %d", len(notifier.Sent()))
	}
	if removed := remover.Removed(); len(removed) != 1 || removed[0] != "stale" {
		t.Errorf("expected past-due reminder to be removed, got %v", removed)
	}
	if s.Pending() != 0 {
		t.Errorf("expected no pending wait-tasks, got %d", s.Pending())
	}
}

func TestDeliveryFailureStillRemoves(t *testing.T) {
	notifier := &recordingNotifier{fail: true}
	remover := &recordingRemover{}
	s := schedule.NewScheduler(remover, notifier)

	r := repository.Reminder{ID: "r1", ChatID: "blocked-chat", Message: "hi"}
	s.Spawn(r, time.Now().Add(30*time.Millisecond))

	waitFor(t, 2*time.Second, func() bool {
		return len(remover.Removed()) == 1
	})

	if len(notifier.Sent()) != 1 {
		t.Errorf("expected exactly one delivery attempt, got %d", len(notifier.Sent()))
	}
}

func TestCancelStopsTimer(t *testing.T) {
	notifier := &recordingNotifier{}
	remover := &recordingRemover{}
	s := schedule.NewScheduler(remover, notifier)

	r := repository.Reminder{ID: "r1", ChatID: "chat-1", Message: "never"}
	s.Spawn(r, time.Now().Add(time.Hour))

	if !s.Cancel("r1") {
		t.Fatal("expected Cancel to report a stopped timer")
	}
	if s.Cancel("r1") {
		t.Error("expected second Cancel to be a no-op")
	}
	if s.Pending() != 0 {
		t.Errorf("expected no pending wait-tasks after cancel, got %d", s.Pending())
	}

	time.Sleep(50 * time.Millisecond)
	if len(notifier.Sent()) != 0 {
		t.Errorf("expected no delivery after cancel, got %d", len(notifier.Sent()))
	}
}

func TestSpawnSameIDTwiceKeepsOneTimer(t *testing.T) {
	notifier := &recordingNotifier{}
	remover := &recordingRemover{}
	s := schedule.NewScheduler(remover, notifier)

	r := repository.Reminder{ID: "r1", ChatID: "chat-1", Message: "once"}
	due := time.Now().Add(time.Hour)
	s.Spawn(r, due)
	s.Spawn(r, due)

	if s.Pending() != 1 {
		t.Errorf("expected a single wait-task for the id, got %d", s.Pending())
	}
}

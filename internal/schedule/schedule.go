package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/teamtext2/bot/internal/repository"
)

// Outcome is the terminal state of a wait-task. Every reminder ends in
// exactly one outcome, and every outcome ends with the record removed.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
	OutcomeExpired   Outcome = "expired"
	OutcomeCancelled Outcome = "cancelled"
)

const deliveryPrefix = "🔔 Reminder: "

// FormatDelivery wraps a reminder message with the delivery marker.
func FormatDelivery(message string) string {
	return deliveryPrefix + message
}

// Notifier delivers text to a chat. Failures are terminal for the
// reminder: the scheduler never retries a send.
type Notifier interface {
	Send(ctx context.Context, chatID, text string) error
}

// Remover is the slice of the reminder store the scheduler needs.
type Remover interface {
	RemoveByID(ctx context.Context, id string) error
}

// Scheduler owns one single-shot timer per pending reminder, keyed by
// reminder id. Timers are not persisted; recovery rebuilds them from the
// store after a restart.
type Scheduler struct {
	store    Remover
	notifier Notifier

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewScheduler(store Remover, notifier Notifier) *Scheduler {
	return &Scheduler{
		store:    store,
		notifier: notifier,
		timers:   make(map[string]*time.Timer),
	}
}

// Spawn registers a wait-task that fires at due. A reminder already past
// due is removed without a delivery attempt. Spawning an id that already
// has a live timer is a no-op, so at most one wait-task exists per id.
func (s *Scheduler) Spawn(r repository.Reminder, due time.Time) {
	delay := time.Until(due)
	if delay <= 0 {
		s.finish(r.ID, OutcomeExpired)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.timers[r.ID]; exists {
		return
	}
	s.timers[r.ID] = time.AfterFunc(delay, func() {
		s.fire(r)
	})
}

// Cancel stops the live timer for id, if any. It does not touch the
// store; callers remove the record themselves.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[id]
	if !ok {
		return false
	}
	timer.Stop()
	delete(s.timers, id)
	slog.Info("reminder finished", "id", id, "outcome", OutcomeCancelled)
	return true
}

// Pending returns the number of live wait-tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// fire delivers the reminder exactly once and removes it regardless of
// the delivery outcome, so a permanently failing chat cannot wedge the
// scheduler in a retry loop.
func (s *Scheduler) fire(r repository.Reminder) {
	s.mu.Lock()
	delete(s.timers, r.ID)
	s.mu.Unlock()

	outcome := OutcomeDelivered
	if err := s.deliver(r); err != nil {
		outcome = OutcomeFailed
		slog.Error("failed to deliver reminder", "id", r.ID, "chatID", r.ChatID, "error", err)
	}
	s.finish(r.ID, outcome)
}

func (s *Scheduler) deliver(r repository.Reminder) error {
	err := s.notifier.Send(context.Background(), r.ChatID, FormatDelivery(r.Message))
	if err != nil {
		return fmt.Errorf("failed to send reminder message: %w", err)
	}
	return nil
}

func (s *Scheduler) finish(id string, outcome Outcome) {
	if err := s.store.RemoveByID(context.Background(), id); err != nil {
		slog.Error("failed to remove finished reminder", "id", id, "error", err)
	}
	slog.Info("reminder finished", "id", id, "outcome", outcome)
}

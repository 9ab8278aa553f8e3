// Package reminder is the service facade the command front-end calls.
// It composes the store and the scheduler and enforces chat ownership.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teamtext2/bot/internal/generator"
	"github.com/teamtext2/bot/internal/repository"
	"github.com/teamtext2/bot/internal/schedule"
	"github.com/teamtext2/bot/internal/util"
)

type Service struct {
	store     repository.ReminderStore
	scheduler *schedule.Scheduler
	ids       generator.Generator[string]
}

// NewService creates the reminder service. A nil id generator defaults
// to random UUIDs.
func NewService(store repository.ReminderStore, scheduler *schedule.Scheduler, ids generator.Generator[string]) *Service {
	if ids == nil {
		ids = &generator.UUIDV4Generator{}
	}
	return &Service{
		store:     store,
		scheduler: scheduler,
		ids:       ids,
	}
}

// Create persists a reminder due at dueAt and spawns its wait-task.
// The returned reminder carries the generated id, which is the caller's
// only handle for cancellation.
func (s *Service) Create(ctx context.Context, chatID string, dueAt time.Time, message string) (repository.Reminder, error) {
	if !dueAt.After(time.Now()) {
		return repository.Reminder{}, &ValidationError{
			Message: "the due time has already passed, pick a time in the future",
		}
	}

	id, err := s.ids.Next()
	if err != nil {
		return repository.Reminder{}, fmt.Errorf("failed to generate reminder id: %w", err)
	}

	r := repository.Reminder{
		ID:      id,
		ChatID:  chatID,
		Due:     dueAt.Format(repository.DueLayout),
		Message: message,
	}

	if err := s.store.Append(ctx, r); err != nil {
		return repository.Reminder{}, fmt.Errorf("failed to persist reminder: %w", err)
	}
	s.scheduler.Spawn(r, dueAt)

	return r, nil
}

// ListByChat returns the chat's pending reminders in insertion order.
func (s *Service) ListByChat(ctx context.Context, chatID string) ([]repository.Reminder, error) {
	reminders, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}

	return util.Filter(reminders, func(r repository.Reminder) bool {
		return r.ChatID == chatID
	}), nil
}

// Cancel removes the reminder and stops its live wait-task. It fails
// with NotFoundError unless the id belongs to the requesting chat.
func (s *Service) Cancel(ctx context.Context, chatID, id string) error {
	reminders, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}

	_, found := util.FindFirst(reminders, func(r repository.Reminder) bool {
		return r.ID == id && r.ChatID == chatID
	})
	if !found {
		return &NotFoundError{ID: id}
	}

	if err := s.store.RemoveByID(ctx, id); err != nil {
		return fmt.Errorf("failed to remove reminder: %w", err)
	}
	s.scheduler.Cancel(id)
	return nil
}

// Recover rebuilds wait-tasks from the store after a restart. Records
// with a malformed schema or an unparsable due time are dropped, and
// reminders that expired while the process was down are removed without
// a late delivery. It returns the number of wait-tasks spawned and must
// complete before the front-end starts accepting commands.
func (s *Service) Recover(ctx context.Context) (int, error) {
	reminders, err := s.store.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load reminders: %w", err)
	}

	spawned := 0
	now := time.Now()
	for _, r := range reminders {
		if r.ID == "" || r.ChatID == "" {
			slog.Warn("dropping reminder with incomplete record", "id", r.ID, "chatID", r.ChatID)
			s.drop(ctx, r.ID)
			continue
		}

		due, err := r.DueTime()
		if err != nil {
			slog.Warn("dropping reminder with unparsable due time", "id", r.ID, "due", r.Due, "error", err)
			s.drop(ctx, r.ID)
			continue
		}
		if !due.After(now) {
			slog.Info("dropping reminder that expired while offline", "id", r.ID, "due", r.Due)
			s.drop(ctx, r.ID)
			continue
		}

		s.scheduler.Spawn(r, due)
		spawned++
	}
	return spawned, nil
}

// drop removes a record during recovery; a removal failure is logged so
// recovery still runs to completion for the remaining records.
func (s *Service) drop(ctx context.Context, id string) {
	if err := s.store.RemoveByID(ctx, id); err != nil {
		slog.Error("failed to drop reminder during recovery", "id", id, "error", err)
	}
}

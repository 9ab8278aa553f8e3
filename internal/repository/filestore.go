package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/teamtext2/bot/internal/util"
)

// FileStore persists reminders as a single flat JSON file. Every mutation
// is a whole-collection load-modify-save behind one mutex, so concurrent
// command handlers and wait-tasks cannot lose each other's writes.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) LoadAll(ctx context.Context) ([]Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) SaveAll(ctx context.Context, reminders []Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(reminders)
}

func (s *FileStore) Append(ctx context.Context, reminder Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.loadLocked()
	if err != nil {
		return err
	}
	return s.saveLocked(append(reminders, reminder))
}

func (s *FileStore) RemoveByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.loadLocked()
	if err != nil {
		return err
	}

	kept := util.Filter(reminders, func(r Reminder) bool {
		return r.ID != id
	})
	return s.saveLocked(kept)
}

// loadLocked reads the whole collection. A missing or unparsable file
// loads as an empty collection rather than failing the caller.
func (s *FileStore) loadLocked() ([]Reminder, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read reminder file: %w", err)
	}

	var reminders []Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		slog.Warn("reminder file is unparsable, treating as empty", "path", s.path, "error", err)
		return nil, nil
	}
	return reminders, nil
}

// saveLocked atomically replaces the file via a temp-file rename.
func (s *FileStore) saveLocked(reminders []Reminder) error {
	if reminders == nil {
		reminders = []Reminder{}
	}

	data, err := json.MarshalIndent(reminders, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write reminder file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace reminder file: %w", err)
	}
	return nil
}

var _ ReminderStore = (*FileStore)(nil)

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DueLayout is the wall-clock format reminders are persisted with.
// It is minute-resolution and carries no timezone; due times are
// interpreted in the local location.
const DueLayout = "2006-01-02 15:04"

// Reminder is a pending one-time notification. All fields are set at
// creation and immutable. The JSON field names are the on-disk schema;
// unknown fields in stored records are ignored on load.
type Reminder struct {
	ID      string `json:"id"`
	ChatID  string `json:"chat_id"`
	Due     string `json:"time"`
	Message string `json:"message"`
}

// DueTime parses the persisted due string in local wall-clock time.
func (r Reminder) DueTime() (time.Time, error) {
	return time.ParseInLocation(DueLayout, r.Due, time.Local)
}

// ReminderStore is durable CRUD over the set of pending reminders.
// A reminder exists in the store exactly while it is pending: delivery,
// expiry and cancellation all end with RemoveByID.
type ReminderStore interface {
	LoadAll(ctx context.Context) ([]Reminder, error)
	SaveAll(ctx context.Context, reminders []Reminder) error
	Append(ctx context.Context, reminder Reminder) error

	// RemoveByID is a no-op, not an error, when the id is absent.
	RemoveByID(ctx context.Context, id string) error
}

type PostgresReminderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReminderRepository(db *pgxpool.Pool) *PostgresReminderRepository {
	return &PostgresReminderRepository{db: db}
}

func (r *PostgresReminderRepository) LoadAll(ctx context.Context) ([]Reminder, error) {
	const query = `
	SELECT id, chat_id, due, message
	FROM reminder
	ORDER BY position
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var reminder Reminder
		if err := rows.Scan(&reminder.ID, &reminder.ChatID, &reminder.Due, &reminder.Message); err != nil {
			return nil, fmt.Errorf("failed to scan reminder row: %w", err)
		}
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reminder rows: %w", err)
	}

	return reminders, nil
}

func (r *PostgresReminderRepository) SaveAll(ctx context.Context, reminders []Reminder) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE reminder RESTART IDENTITY`); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}

	const insertQuery = `
	INSERT INTO reminder (id, chat_id, due, message)
	VALUES ($1, $2, $3, $4)
	`
	for _, reminder := range reminders {
		_, err := tx.Exec(ctx, insertQuery, reminder.ID, reminder.ChatID, reminder.Due, reminder.Message)
		if err != nil {
			return fmt.Errorf("failed to insert reminder %s: %w", reminder.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *PostgresReminderRepository) Append(ctx context.Context, reminder Reminder) error {
	const query = `
	INSERT INTO reminder (id, chat_id, due, message)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, reminder.ID, reminder.ChatID, reminder.Due, reminder.Message)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

func (r *PostgresReminderRepository) RemoveByID(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM reminder WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

var _ ReminderStore = (*PostgresReminderRepository)(nil)

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// NewID generates a new ULID-based identifier.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// SQLiteStore implements ReminderStore backed by SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the SQLite database at dbPath and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

const timeFormat = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeFormat, s)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// CreateReminder inserts a new reminder record.
func (s *SQLiteStore) CreateReminder(ctx context.Context, r *Reminder) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (
			id, phrase, message, at, zone, schedule, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Phrase,
		nullString(r.Message),
		formatTime(r.At),
		nullString(r.Zone),
		nullString(r.Schedule),
		r.Status,
		formatTime(r.CreatedAt),
	)
	return err
}

func (s *SQLiteStore) scanReminder(row interface{ Scan(...any) error }) (*Reminder, error) {
	var r Reminder
	var at, createdAt string
	var message, zone, schedule sql.NullString

	err := row.Scan(
		&r.ID,
		&r.Phrase,
		&message,
		&at,
		&zone,
		&schedule,
		&r.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	r.At, err = parseTime(at)
	if err != nil {
		return nil, fmt.Errorf("parse at: %w", err)
	}
	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	if message.Valid {
		r.Message = message.String
	}
	if zone.Valid {
		r.Zone = zone.String
	}
	if schedule.Valid {
		r.Schedule = schedule.String
	}

	return &r, nil
}

const selectReminderCols = `id, phrase, message, at, zone, schedule, status, created_at`

// GetReminder retrieves a single reminder by ID.
func (s *SQLiteStore) GetReminder(ctx context.Context, id string) (*Reminder, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectReminderCols+" FROM reminders WHERE id = ?", id)
	r, err := s.scanReminder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// ListReminders returns reminders matching the given options, ordered by at ascending.
func (s *SQLiteStore) ListReminders(ctx context.Context, opts ListOpts) ([]*Reminder, error) {
	query := "SELECT " + selectReminderCols + " FROM reminders"
	var args []any

	if opts.Status != "" {
		query += " WHERE status = ?"
		args = append(args, opts.Status)
	}
	query += " ORDER BY at ASC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*Reminder
	for rows.Next() {
		r, err := s.scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// SetStatus updates the status of a reminder.
func (s *SQLiteStore) SetStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE reminders SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("reminder %s not found", id)
	}
	return nil
}

// Reschedule moves a reminder to a new fire time and marks it pending again.
func (s *SQLiteStore) Reschedule(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE reminders SET at = ?, status = ? WHERE id = ?",
		formatTime(at), StatusPending, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("reminder %s not found", id)
	}
	return nil
}

// DeleteReminder removes a reminder and its fire history.
func (s *SQLiteStore) DeleteReminder(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM fires WHERE reminder_id = ?", id); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("reminder %s not found", id)
	}
	return nil
}

// RecordFire inserts a fire record.
func (s *SQLiteStore) RecordFire(ctx context.Context, f *Fire) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	if f.FiredAt.IsZero() {
		f.FiredAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fires (
			id, reminder_id, fired_at, status, exit_code, output, error_msg, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID,
		f.ReminderID,
		formatTime(f.FiredAt),
		f.Status,
		f.ExitCode,
		nullString(f.Output),
		nullString(f.ErrorMsg),
		f.DurationMs,
	)
	return err
}

// ListFires returns fires for a reminder, most recent first.
func (s *SQLiteStore) ListFires(ctx context.Context, reminderID string, limit int) ([]*Fire, error) {
	query := `SELECT id, reminder_id, fired_at, status, exit_code, output, error_msg, duration_ms
		FROM fires WHERE reminder_id = ? ORDER BY fired_at DESC`
	args := []any{reminderID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fires []*Fire
	for rows.Next() {
		var f Fire
		var firedAt string
		var output, errorMsg sql.NullString
		var exitCode, durationMs sql.NullInt64

		err := rows.Scan(
			&f.ID,
			&f.ReminderID,
			&firedAt,
			&f.Status,
			&exitCode,
			&output,
			&errorMsg,
			&durationMs,
		)
		if err != nil {
			return nil, err
		}

		f.FiredAt, err = parseTime(firedAt)
		if err != nil {
			return nil, fmt.Errorf("parse fired_at: %w", err)
		}
		if exitCode.Valid {
			f.ExitCode = int(exitCode.Int64)
		}
		if durationMs.Valid {
			f.DurationMs = durationMs.Int64
		}
		if output.Valid {
			f.Output = output.String
		}
		if errorMsg.Valid {
			f.ErrorMsg = errorMsg.String
		}

		fires = append(fires, &f)
	}
	return fires, rows.Err()
}

// GetStats returns aggregate statistics across all reminders.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	var pending, fired, canceled sql.NullInt64

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) AS total,
			SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END) AS pending,
			SUM(CASE WHEN status = 'fired' THEN 1 ELSE 0 END) AS fired,
			SUM(CASE WHEN status = 'canceled' THEN 1 ELSE 0 END) AS canceled
		FROM reminders`).Scan(
		&stats.Total,
		&pending,
		&fired,
		&canceled,
	)
	if err != nil {
		return nil, err
	}
	if pending.Valid {
		stats.Pending = int(pending.Int64)
	}
	if fired.Valid {
		stats.Fired = int(fired.Int64)
	}
	if canceled.Valid {
		stats.Canceled = int(canceled.Int64)
	}

	var lastFire sql.NullString
	err = s.db.QueryRowContext(ctx,
		"SELECT MAX(fired_at) FROM fires").Scan(&lastFire)
	if err != nil {
		return nil, err
	}
	if lastFire.Valid {
		t, err := parseTime(lastFire.String)
		if err != nil {
			return nil, fmt.Errorf("parse last fire: %w", err)
		}
		stats.LastFire = &t
	}

	return &stats, nil
}

package store

import (
	"context"
	"time"
)

// Reminder statuses.
const (
	StatusPending  = "pending"
	StatusFired    = "fired"
	StatusCanceled = "canceled"
)

// Reminder is a phrase scheduled to fire at a resolved future moment. A
// reminder with a cron Schedule recurs; one without fires once.
type Reminder struct {
	ID        string
	Phrase    string
	Message   string
	At        time.Time
	Zone      string
	Schedule  string
	Status    string // "pending", "fired", "canceled"
	CreatedAt time.Time
}

// Recurs reports whether the reminder reschedules itself after firing.
func (r *Reminder) Recurs() bool {
	return r.Schedule != ""
}

// Fire records one delivery attempt of a reminder.
type Fire struct {
	ID         string
	ReminderID string
	FiredAt    time.Time
	Status     string // "notified", "failed"
	ExitCode   int
	Output     string
	ErrorMsg   string
	DurationMs int64
}

// ListOpts controls filtering and pagination for reminder queries.
type ListOpts struct {
	Status string
	Limit  int
	Offset int
}

// Stats holds aggregate counts across all reminders.
type Stats struct {
	Total    int
	Pending  int
	Fired    int
	Canceled int
	LastFire *time.Time
}

// ReminderStore is the interface for persisting reminders and their fires.
type ReminderStore interface {
	CreateReminder(ctx context.Context, r *Reminder) error
	GetReminder(ctx context.Context, id string) (*Reminder, error)
	ListReminders(ctx context.Context, opts ListOpts) ([]*Reminder, error)
	SetStatus(ctx context.Context, id, status string) error
	Reschedule(ctx context.Context, id string, at time.Time) error
	DeleteReminder(ctx context.Context, id string) error
	RecordFire(ctx context.Context, f *Fire) error
	ListFires(ctx context.Context, reminderID string, limit int) ([]*Fire, error)
	GetStats(ctx context.Context) (*Stats, error)
}

package remind

import (
	"context"
	"fmt"
	"log"
	"time"

	"soonish/internal/config"
	"soonish/internal/notify"
	"soonish/internal/realtime"
	"soonish/internal/store"
)

// Daemon wires the scheduler, store, notifier and event broker together. It
// fires pending reminders at their resolved times, records the outcome, and
// reschedules recurring reminders.
type Daemon struct {
	store    store.ReminderStore
	notifier *notify.Notifier
	broker   *realtime.Broker
	sched    *Scheduler
	command  string
	timeout  time.Duration
}

// NewDaemon creates a Daemon using the given notify configuration.
func NewDaemon(st store.ReminderStore, broker *realtime.Broker, nc config.NotifyConfig) (*Daemon, error) {
	timeout, err := nc.ParseTimeout()
	if err != nil {
		return nil, fmt.Errorf("parse notify timeout: %w", err)
	}

	d := &Daemon{
		store:    st,
		notifier: notify.NewNotifier(),
		broker:   broker,
		command:  nc.Command,
		timeout:  timeout,
	}
	d.sched = NewScheduler(d.fire)
	return d, nil
}

// Start loads pending reminders from the store, schedules them, and launches
// the scheduler. Reminders whose time passed while the daemon was down fire
// immediately.
func (d *Daemon) Start(ctx context.Context) error {
	pending, err := d.store.ListReminders(ctx, store.ListOpts{Status: store.StatusPending})
	if err != nil {
		return fmt.Errorf("load pending reminders: %w", err)
	}
	for _, r := range pending {
		if err := d.Schedule(r); err != nil {
			log.Printf("skip reminder %s: %v", r.ID, err)
		}
	}

	d.sched.Start()
	log.Printf("scheduled %d pending reminders", len(pending))
	return nil
}

// Stop shuts down the scheduler.
func (d *Daemon) Stop() {
	d.sched.Stop()
}

// Schedule adds a reminder to the scheduler. Recurring reminders follow their
// cron schedule; one-shot reminders fire at their stored time.
func (d *Daemon) Schedule(r *store.Reminder) error {
	if r.Recurs() {
		schedule, err := ParseSchedule(r.Schedule)
		if err != nil {
			return fmt.Errorf("parse schedule %q: %w", r.Schedule, err)
		}
		d.sched.AddRecurring(r.ID, schedule)
		return nil
	}
	d.sched.Add(r.ID, r.At)
	return nil
}

// Cancel removes a reminder from the scheduler.
func (d *Daemon) Cancel(id string) {
	d.sched.Remove(id)
}

// NextFireTime returns the next scheduled fire time for the reminder.
func (d *Daemon) NextFireTime(id string) (time.Time, bool) {
	return d.sched.NextFireTime(id)
}

// fire is the scheduler callback. It runs the notify command for the
// reminder, records the fire, publishes an event, and updates the reminder's
// status in the store.
func (d *Daemon) fire(id string) {
	ctx := context.Background()

	r, err := d.store.GetReminder(ctx, id)
	if err != nil {
		log.Printf("fire %s: load reminder: %v", id, err)
		return
	}
	if r == nil || r.Status != store.StatusPending {
		return
	}

	res := d.notifier.Run(ctx, d.command, notify.Context{
		ReminderID: r.ID,
		Phrase:     r.Phrase,
		Message:    r.Message,
		At:         r.At,
	}, d.timeout, nil)

	status := "notified"
	if res.Error != "" {
		status = "failed"
		log.Printf("fire %s: notify failed: %s", id, res.Error)
	}

	fire := &store.Fire{
		ReminderID: r.ID,
		Status:     status,
		ExitCode:   res.ExitCode,
		Output:     res.Stdout,
		ErrorMsg:   res.Error,
		DurationMs: res.DurationMs,
	}
	if res.Stderr != "" && res.Error == "" {
		fire.Output = res.Stdout + res.Stderr
	}
	if err := d.store.RecordFire(ctx, fire); err != nil {
		log.Printf("fire %s: record fire: %v", id, err)
	}

	if r.Recurs() {
		// The scheduler already re-queued the cron entry; mirror its next
		// time into the store.
		if next, ok := d.sched.NextFireTime(r.ID); ok {
			if err := d.store.Reschedule(ctx, r.ID, next); err != nil {
				log.Printf("fire %s: reschedule: %v", id, err)
			}
		}
	} else {
		if err := d.store.SetStatus(ctx, r.ID, store.StatusFired); err != nil {
			log.Printf("fire %s: set status: %v", id, err)
		}
	}

	d.broker.Publish(realtime.Event{
		Type:       "reminder.fired",
		ReminderID: r.ID,
		Phrase:     r.Phrase,
		Status:     status,
	})
}

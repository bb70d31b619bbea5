package store

import "database/sql"

const migrationSQL = `
CREATE TABLE IF NOT EXISTS reminders (
    id TEXT PRIMARY KEY,
    phrase TEXT NOT NULL,
    message TEXT,
    at TEXT NOT NULL,
    zone TEXT,
    schedule TEXT,
    status TEXT NOT NULL DEFAULT 'pending',
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_reminders_status ON reminders(status);
CREATE INDEX IF NOT EXISTS idx_reminders_at ON reminders(at);

CREATE TABLE IF NOT EXISTS fires (
    id TEXT PRIMARY KEY,
    reminder_id TEXT NOT NULL,
    fired_at TEXT NOT NULL,
    status TEXT NOT NULL,
    exit_code INTEGER,
    output TEXT,
    error_msg TEXT,
    duration_ms INTEGER
);
CREATE INDEX IF NOT EXISTS idx_fires_reminder_id ON fires(reminder_id);
`

// RunMigrations applies the database schema migrations.
func RunMigrations(db *sql.DB) error {
	_, err := db.Exec(migrationSQL)
	return err
}

package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id             TEXT PRIMARY KEY,
	email          TEXT NOT NULL DEFAULT '',
	name           TEXT NOT NULL DEFAULT '',
	partner_id     TEXT REFERENCES users(id) ON DELETE SET NULL,
	partner_notify INTEGER NOT NULL DEFAULT 0 CHECK(partner_notify IN (0, 1)),
	created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
	id                TEXT PRIMARY KEY,
	user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	scheduled_time    DATETIME NOT NULL,
	completed         INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	completed_at      DATETIME,
	created_at        DATETIME NOT NULL,
	notification_sent INTEGER NOT NULL DEFAULT 0 CHECK(notification_sent IN (0, 1))
);

CREATE TABLE IF NOT EXISTS notifications (
	id       TEXT PRIMARY KEY,
	user_id  TEXT NOT NULL,
	task_id  TEXT NOT NULL,
	kind     TEXT NOT NULL CHECK(kind IN ('reminder', 'completion')),
	message  TEXT NOT NULL,
	sent_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_scheduled_time ON tasks(scheduled_time);
CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);
CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
CREATE INDEX IF NOT EXISTS idx_notifications_task_id ON notifications(task_id);
CREATE INDEX IF NOT EXISTS idx_notifications_sent_at ON notifications(sent_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS push_tokens (
	user_id    TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	token      TEXT NOT NULL,
	platform   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tasks_due_scan
	ON tasks(completed, notification_sent, scheduled_time);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}

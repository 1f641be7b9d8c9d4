package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	sessionsTable  = "interview_sessions"
	llmEventsTable = "llm_request_events"
)

// Tables are created with raw DDL; the repositories build their statements
// with the ent SQL builder.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS interview_sessions (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		interview_type TEXT NOT NULL,
		duration REAL NOT NULL,
		total_questions INTEGER NOT NULL,
		questions TEXT NOT NULL,
		report TEXT,
		overall_score REAL,
		percentage_score INTEGER,
		status TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		completed_at INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS interview_sessions_status_completed_at
		ON interview_sessions (status, completed_at)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose
		ON llm_request_events (purpose)`,
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range ddl {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}

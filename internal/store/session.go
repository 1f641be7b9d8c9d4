package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/intervue/internal/difficulty"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/report"
)

var _ interview.SessionRepo = (*SessionRepo)(nil)

// SessionRepo persists interview sessions in SQLite. The question log and
// report are stored as JSON; scores are copied into columns for listing.
type SessionRepo struct {
	drv *entsql.Driver
}

var sessionColumns = []string{
	"id", "role", "difficulty", "interview_type", "duration", "total_questions",
	"questions", "report", "overall_score", "percentage_score",
	"status", "started_at", "completed_at",
}

// Save inserts the session or replaces every column of an existing row.
func (r *SessionRepo) Save(ctx context.Context, s *interview.Session) error {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	var rep, overall, pct, completedAt any
	if s.Report != nil {
		b, err := json.Marshal(s.Report)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		rep, overall, pct = string(b), s.Report.OverallScore, s.Report.PercentageScore
	}
	if s.CompletedAt != nil {
		completedAt = s.CompletedAt.UnixMilli()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(
			s.ID, s.Role, string(s.Difficulty), s.InterviewType, s.Duration, s.TotalQuestions,
			string(questions), rep, overall, pct,
			string(s.Status), s.StartedAt.UnixMilli(), completedAt,
		).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

// Find returns the session with the given ID, or nil if none exists.
func (r *SessionRepo) Find(ctx context.Context, id string) (*interview.Session, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(sessionColumns...).
		From(entsql.Table(sessionsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanSession(&rows)
}

// ListCompleted returns completed sessions, most recently completed first.
func (r *SessionRepo) ListCompleted(ctx context.Context, limit int) ([]interview.SessionSummary, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "role", "difficulty", "interview_type", "duration",
			"overall_score", "percentage_score", "completed_at").
		From(entsql.Table(sessionsTable)).
		Where(entsql.EQ("status", string(interview.StatusCompleted))).
		OrderBy(entsql.Desc("completed_at"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []interview.SessionSummary
	for rows.Next() {
		var (
			sum         interview.SessionSummary
			level       string
			overall     sql.NullFloat64
			pct         sql.NullInt64
			completedAt sql.NullInt64
		)
		err := rows.Scan(&sum.ID, &sum.Role, &level, &sum.InterviewType, &sum.Duration,
			&overall, &pct, &completedAt)
		if err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		sum.Difficulty = difficulty.Level(level)
		sum.OverallScore = overall.Float64
		sum.PercentageScore = int(pct.Int64)
		if completedAt.Valid {
			sum.CompletedAt = time.UnixMilli(completedAt.Int64)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func scanSession(rows *entsql.Rows) (*interview.Session, error) {
	var (
		s           interview.Session
		level       string
		status      string
		questions   string
		rep         sql.NullString
		overall     sql.NullFloat64
		pct         sql.NullInt64
		startedAt   int64
		completedAt sql.NullInt64
	)
	err := rows.Scan(&s.ID, &s.Role, &level, &s.InterviewType, &s.Duration, &s.TotalQuestions,
		&questions, &rep, &overall, &pct, &status, &startedAt, &completedAt)
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}

	s.Difficulty = difficulty.Level(level)
	s.Status = interview.Status(status)
	s.StartedAt = time.UnixMilli(startedAt)
	if completedAt.Valid {
		t := time.UnixMilli(completedAt.Int64)
		s.CompletedAt = &t
	}
	if err := json.Unmarshal([]byte(questions), &s.Questions); err != nil {
		return nil, fmt.Errorf("decode questions of session %s: %w", s.ID, err)
	}
	if rep.Valid {
		var decoded report.Report
		if err := json.Unmarshal([]byte(rep.String), &decoded); err != nil {
			return nil, fmt.Errorf("decode report of session %s: %w", s.ID, err)
		}
		s.Report = &decoded
	}
	return &s, nil
}

package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/intervue/internal/difficulty"
	"github.com/abhisek/intervue/internal/evaluation"
	"github.com/abhisek/intervue/internal/questiongen"
	"github.com/abhisek/intervue/internal/report"
)

// AnswerEvaluator scores one answer.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, in evaluation.Input) (*evaluation.Result, error)
}

// QuestionGenerator produces question text.
type QuestionGenerator interface {
	MainQuestion(ctx context.Context, in questiongen.MainInput) (string, error)
	FollowUp(ctx context.Context, in questiongen.FollowUpInput) (string, error)
}

// ReportSynthesizer builds the final report from the answered log.
type ReportSynthesizer interface {
	Synthesize(ctx context.Context, in report.Input) (*report.Report, error)
}

// Deps are the collaborators of a Service.
type Deps struct {
	Sessions  SessionRepo
	States    StateStore
	Evaluator AnswerEvaluator
	Questions QuestionGenerator
	Reports   ReportSynthesizer
	Logger    *slog.Logger

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// Service is the session state machine: it owns SessionState through the
// StateStore and writes the Session once per operation.
type Service struct {
	sessions  SessionRepo
	states    StateStore
	evaluator AnswerEvaluator
	questions QuestionGenerator
	reports   ReportSynthesizer
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewService creates a Service. A nil States uses a MemoryStateStore.
func NewService(d Deps) *Service {
	s := &Service{
		sessions:  d.Sessions,
		states:    d.States,
		evaluator: d.Evaluator,
		questions: d.Questions,
		reports:   d.Reports,
		logger:    d.Logger,
		now:       d.Now,
		newID:     d.NewID,
	}
	if s.states == nil {
		s.states = NewMemoryStateStore()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// StartInput configures a new session.
type StartInput struct {
	Role          string
	Difficulty    string
	InterviewType string
	Duration      float64
}

// StartResult is the first question of a new session.
type StartResult struct {
	SessionID      string `json:"sessionId"`
	Question       string `json:"question"`
	QuestionNumber int    `json:"questionNumber"`
	TotalQuestions int    `json:"totalQuestions"`
	IsFollowUp     bool   `json:"isFollowUp"`
}

// Evaluation is the judgment returned for a submitted answer.
type Evaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// AnswerResult is the outcome of a submitted answer: either the next
// question or the completion signal.
type AnswerResult struct {
	Evaluation Evaluation `json:"evaluation"`
	IsComplete bool       `json:"isComplete"`

	NextQuestion   string `json:"nextQuestion,omitempty"`
	QuestionNumber int    `json:"questionNumber"`
	// QuestionLabel is the display number, "<n>" or "<n> (Follow-up)".
	QuestionLabel  string `json:"questionLabel,omitempty"`
	TotalQuestions int    `json:"totalQuestions"`
	IsFollowUp     bool   `json:"isFollowUp"`

	// Filled in when IsComplete.
	TotalAnswered      int `json:"totalAnswered,omitempty"`
	MainQuestionsAsked int `json:"mainQuestionsAsked,omitempty"`
}

// ReportResult is the finalized report with the echoed session details.
type ReportResult struct {
	SessionID     string           `json:"sessionId"`
	Role          string           `json:"role"`
	Difficulty    difficulty.Level `json:"difficulty"`
	InterviewType string           `json:"interviewType"`
	Duration      float64          `json:"duration"`
	CompletedAt   time.Time        `json:"completedAt"`
	report.Report
	Questions []QuestionRecord `json:"questions"`
}

func validateStart(in StartInput) (StartInput, difficulty.Level, error) {
	in.Role = strings.TrimSpace(in.Role)
	in.InterviewType = strings.TrimSpace(in.InterviewType)
	if in.Role == "" {
		return in, "", &ValidationError{Field: "role", Message: "is required"}
	}
	if in.InterviewType == "" {
		return in, "", &ValidationError{Field: "interviewType", Message: "is required"}
	}
	level, err := difficulty.Parse(in.Difficulty)
	if err != nil {
		return in, "", &ValidationError{Field: "difficulty", Message: "must be one of " + strings.Join(difficulty.Names(), ", ")}
	}
	if !(in.Duration > 0) {
		return in, "", &ValidationError{Field: "duration", Message: "must be a positive number of minutes"}
	}
	return in, level, nil
}

// Start creates a session and asks its first question.
func (s *Service) Start(ctx context.Context, in StartInput) (*StartResult, error) {
	in, level, err := validateStart(in)
	if err != nil {
		return nil, err
	}

	total := TotalQuestions(in.Duration)

	q, err := s.questions.MainQuestion(ctx, questiongen.MainInput{
		Role:          in.Role,
		Difficulty:    level,
		InterviewType: in.InterviewType,
	})
	if err != nil {
		return nil, &GenerationError{Op: "generate first question", Err: err}
	}

	sess := &Session{
		ID:             s.newID(),
		Role:           in.Role,
		Difficulty:     level,
		InterviewType:  in.InterviewType,
		Duration:       in.Duration,
		TotalQuestions: total,
		Questions:      []QuestionRecord{{Question: q}},
		Status:         StatusInProgress,
		StartedAt:      s.now(),
	}
	// State goes first: a session without state could never be resumed.
	if err := s.states.Put(ctx, NewSessionState(sess.ID, level, total)); err != nil {
		return nil, &PersistenceError{Op: "save session state", Err: err}
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.dropState(ctx, sess.ID)
		return nil, &PersistenceError{Op: "save session", Err: err}
	}

	s.logger.Info("interview started", "session", sess.ID, "role", sess.Role,
		"difficulty", level, "total_questions", total)

	return &StartResult{
		SessionID:      sess.ID,
		Question:       q,
		QuestionNumber: 1,
		TotalQuestions: total,
	}, nil
}

// load returns the persisted session and its live state.
func (s *Service) load(ctx context.Context, sessionID string) (*Session, *SessionState, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, nil, &ValidationError{Field: "sessionId", Message: "is required"}
	}
	sess, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, nil, &PersistenceError{Op: "find session", Err: err}
	}
	if sess == nil {
		return nil, nil, ErrSessionNotFound
	}
	st, err := s.states.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, &PersistenceError{Op: "load session state", Err: err}
	}
	return sess, st, nil
}

// SubmitAnswer records and scores the answer to the current question and
// asks the next one, or signals completion.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, answer string) (*AnswerResult, error) {
	sess, st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if st == nil || sess.Status != StatusInProgress || st.Phase != PhaseAwaitingAnswer {
		return nil, ErrSessionNotActive
	}
	idx := st.CurrentQuestionIndex
	if idx < 0 || idx >= len(sess.Questions) {
		return nil, fmt.Errorf("session %s: current question index %d out of range", sess.ID, idx)
	}
	current := sess.Questions[idx]

	eval, err := s.evaluator.Evaluate(ctx, evaluation.Input{
		Question:   current.Question,
		Answer:     answer,
		Role:       sess.Role,
		Difficulty: sess.Difficulty,
	})
	if err != nil {
		return nil, &GenerationError{Op: "evaluate answer", Err: err}
	}

	// Work on copies so a failed generation leaves nothing half-applied.
	next := *st
	if err := next.Transition(AnswerEvaluated(eval.Score)); err != nil {
		return nil, err
	}

	current.Answer = answer
	current.Answered = true
	current.Score = eval.Score
	current.Feedback = eval.Feedback

	questions := make([]QuestionRecord, len(sess.Questions), len(sess.Questions)+1)
	copy(questions, sess.Questions)
	questions[idx] = current

	res := &AnswerResult{
		Evaluation:     Evaluation{Score: eval.Score, Feedback: eval.Feedback},
		TotalQuestions: sess.TotalQuestions,
	}

	switch next.Phase {
	case PhaseComplete:
		res.IsComplete = true
		res.TotalAnswered = next.AnsweredCount
		res.MainQuestionsAsked = next.MainQuestionsAsked

	case PhaseFollowUpPending:
		text, err := s.questions.FollowUp(ctx, questiongen.FollowUpInput{
			Question:   current.Question,
			Answer:     answer,
			Role:       sess.Role,
			Difficulty: sess.Difficulty,
		})
		if err != nil {
			return nil, &GenerationError{Op: "generate follow-up question", Err: err}
		}
		parent := idx
		questions = append(questions, QuestionRecord{
			Question:            text,
			IsFollowUp:          true,
			ParentQuestionIndex: &parent,
		})
		if err := next.Transition(QuestionAsked(len(questions) - 1)); err != nil {
			return nil, err
		}
		res.NextQuestion = text
		res.IsFollowUp = true
		res.QuestionNumber = next.MainQuestionsAsked
		res.QuestionLabel = strconv.Itoa(next.MainQuestionsAsked) + " (Follow-up)"

	case PhaseMainPending:
		text, err := s.questions.MainQuestion(ctx, questiongen.MainInput{
			Role:          sess.Role,
			Difficulty:    sess.Difficulty,
			InterviewType: sess.InterviewType,
			History:       history(questions),
			Adjusted:      next.AdjustedDifficulty,
		})
		if err != nil {
			return nil, &GenerationError{Op: "generate next question", Err: err}
		}
		questions = append(questions, QuestionRecord{Question: text})
		if err := next.Transition(QuestionAsked(len(questions) - 1)); err != nil {
			return nil, err
		}
		res.NextQuestion = text
		res.QuestionNumber = next.MainQuestionsAsked
		res.QuestionLabel = strconv.Itoa(next.MainQuestionsAsked)
	}

	// The state is written first and restored if the session write fails,
	// so a retry always sees the state that matches the persisted log.
	if err := s.states.Put(ctx, &next); err != nil {
		return nil, &PersistenceError{Op: "save session state", Err: err}
	}
	updated := *sess
	updated.Questions = questions
	if err := s.sessions.Save(ctx, &updated); err != nil {
		if rbErr := s.states.Put(ctx, st); rbErr != nil {
			s.logger.Warn("failed to restore session state", "session", sess.ID, "error", rbErr)
		}
		return nil, &PersistenceError{Op: "save session", Err: err}
	}

	s.logger.Debug("answer recorded", "session", sess.ID, "score", eval.Score,
		"phase", next.Phase, "adjusted", next.AdjustedDifficulty)
	return res, nil
}

// history lists the answered main and follow-up questions with scores.
func history(questions []QuestionRecord) []questiongen.Asked {
	out := make([]questiongen.Asked, 0, len(questions))
	for _, q := range questions {
		if q.Answered {
			out = append(out, questiongen.Asked{Question: q.Question, Score: q.Score})
		}
	}
	return out
}

// Complete finalizes a session whose last answer signaled completion.
// Calling it again on a completed session returns the stored report.
func (s *Service) Complete(ctx context.Context, sessionID string) (*ReportResult, error) {
	sess, st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == StatusCompleted && sess.Report != nil {
		return reportResult(sess), nil
	}
	if st == nil || sess.Status != StatusInProgress {
		return nil, ErrSessionNotActive
	}
	if st.Phase != PhaseComplete {
		return nil, ErrSessionNotComplete
	}

	rep, err := s.reports.Synthesize(ctx, report.Input{
		Role:          sess.Role,
		Difficulty:    sess.Difficulty,
		InterviewType: sess.InterviewType,
		Entries:       sess.entries(),
	})
	if err != nil {
		return nil, &GenerationError{Op: "generate report", Err: err}
	}

	completedAt := s.now()
	updated := *sess
	updated.Report = rep
	updated.Status = StatusCompleted
	updated.CompletedAt = &completedAt
	if err := s.sessions.Save(ctx, &updated); err != nil {
		return nil, &PersistenceError{Op: "save session", Err: err}
	}

	s.dropState(ctx, sess.ID)
	s.logger.Info("interview completed", "session", sess.ID,
		"overall", rep.OverallScore, "percentage", rep.PercentageScore)
	return reportResult(&updated), nil
}

// Abandon marks an in-progress session abandoned and drops its state.
func (s *Service) Abandon(ctx context.Context, sessionID string) error {
	sess, _, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.Status != StatusInProgress {
		return ErrSessionNotActive
	}

	updated := *sess
	updated.Status = StatusAbandoned
	if err := s.sessions.Save(ctx, &updated); err != nil {
		return &PersistenceError{Op: "save session", Err: err}
	}
	s.dropState(ctx, sess.ID)
	s.logger.Info("interview abandoned", "session", sess.ID)
	return nil
}

// dropState deletes the state after the session write succeeded. A stale
// entry is harmless because the session status already rejects it.
func (s *Service) dropState(ctx context.Context, sessionID string) {
	if err := s.states.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to delete session state", "session", sessionID, "error", err)
	}
}

// Get returns the persisted session.
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	sess, _, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// State returns the live decision state, or nil for a finished session.
func (s *Service) State(ctx context.Context, sessionID string) (*SessionState, error) {
	_, st, err := s.load(ctx, sessionID)
	return st, err
}

// ListCompleted returns completed sessions, newest first. A limit of zero
// or less uses DefaultListLimit.
func (s *Service) ListCompleted(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	out, err := s.sessions.ListCompleted(ctx, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "list sessions", Err: err}
	}
	return out, nil
}

func reportResult(sess *Session) *ReportResult {
	res := &ReportResult{
		SessionID:     sess.ID,
		Role:          sess.Role,
		Difficulty:    sess.Difficulty,
		InterviewType: sess.InterviewType,
		Duration:      sess.Duration,
		Questions:     sess.Questions,
	}
	if sess.Report != nil {
		res.Report = *sess.Report
	}
	if sess.CompletedAt != nil {
		res.CompletedAt = *sess.CompletedAt
	}
	return res
}

// IsUserError reports whether err is a rejection the caller can act on
// rather than an internal failure.
func IsUserError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSessionNotActive) ||
		errors.Is(err, ErrSessionNotComplete)
}

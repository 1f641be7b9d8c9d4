// Package interview runs adaptive mock-interview sessions: it sequences
// questions, decides on follow-ups, tracks difficulty and hands the
// answered log to the report synthesizer.
package interview

import (
	"math"
	"time"

	"github.com/abhisek/intervue/internal/difficulty"
	"github.com/abhisek/intervue/internal/report"
)

// Status is the persisted lifecycle status of a session.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusAbandoned  Status = "abandoned"
)

// Bounds on the number of main questions in a session.
const (
	MinQuestions       = 4
	MaxQuestions       = 12
	minutesPerQuestion = 2.5
)

// DefaultListLimit caps ListCompleted when no limit is given.
const DefaultListLimit = 50

// TotalQuestions derives the main-question count from a duration in minutes.
func TotalQuestions(duration float64) int {
	// Clamp as a float: huge or infinite durations overflow int.
	n := min(max(math.Floor(duration/minutesPerQuestion), MinQuestions), MaxQuestions)
	return int(n)
}

// QuestionRecord is one asked question and, once answered, its evaluation.
type QuestionRecord struct {
	Question   string  `json:"question" bson:"question"`
	Answer     string  `json:"answer" bson:"answer"`
	Answered   bool    `json:"answered" bson:"answered"`
	Score      float64 `json:"score" bson:"score"`
	Feedback   string  `json:"feedback" bson:"feedback"`
	IsFollowUp bool    `json:"isFollowUp" bson:"isFollowUp"`

	// ParentQuestionIndex points at the answered record a follow-up probes.
	ParentQuestionIndex *int `json:"parentQuestionIndex,omitempty" bson:"parentQuestionIndex,omitempty"`
}

// Session is the persisted interview record.
type Session struct {
	ID             string           `json:"sessionId" bson:"_id"`
	Role           string           `json:"role" bson:"role"`
	Difficulty     difficulty.Level `json:"difficulty" bson:"difficulty"`
	InterviewType  string           `json:"interviewType" bson:"interviewType"`
	Duration       float64          `json:"duration" bson:"duration"`
	TotalQuestions int              `json:"totalQuestions" bson:"totalQuestions"`
	Questions      []QuestionRecord `json:"questions" bson:"questions"`

	// Report holds the aggregate fields, set once on completion.
	Report *report.Report `json:"report,omitempty" bson:"report,omitempty"`

	Status      Status     `json:"status" bson:"status"`
	StartedAt   time.Time  `json:"startedAt" bson:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// SessionSummary is the listing view of a completed session.
type SessionSummary struct {
	ID              string           `json:"sessionId"`
	Role            string           `json:"role"`
	Difficulty      difficulty.Level `json:"difficulty"`
	InterviewType   string           `json:"interviewType"`
	Duration        float64          `json:"duration"`
	OverallScore    float64          `json:"overallScore"`
	PercentageScore int              `json:"percentageScore"`
	CompletedAt     time.Time        `json:"completedAt"`
}

// Summary returns the listing view of s.
func (s *Session) Summary() SessionSummary {
	sum := SessionSummary{
		ID:            s.ID,
		Role:          s.Role,
		Difficulty:    s.Difficulty,
		InterviewType: s.InterviewType,
		Duration:      s.Duration,
	}
	if s.Report != nil {
		sum.OverallScore = s.Report.OverallScore
		sum.PercentageScore = s.Report.PercentageScore
	}
	if s.CompletedAt != nil {
		sum.CompletedAt = *s.CompletedAt
	}
	return sum
}

// entries returns the answered records as report input.
func (s *Session) entries() []report.Entry {
	out := make([]report.Entry, 0, len(s.Questions))
	for _, q := range s.Questions {
		if !q.Answered {
			continue
		}
		out = append(out, report.Entry{
			Question:   q.Question,
			Answer:     q.Answer,
			Score:      q.Score,
			Feedback:   q.Feedback,
			IsFollowUp: q.IsFollowUp,
		})
	}
	return out
}

package interview

import (
	"fmt"

	"github.com/abhisek/intervue/internal/difficulty"
)

// Phase is the decision state of a live session.
type Phase string

const (
	// PhaseAwaitingAnswer means the current question has no answer yet.
	PhaseAwaitingAnswer Phase = "awaiting-answer"
	// PhaseFollowUpPending means the last answer earned the session's
	// one follow-up, which has not been asked yet.
	PhaseFollowUpPending Phase = "follow-up-pending"
	// PhaseMainPending means the next main question has not been asked yet.
	PhaseMainPending Phase = "main-pending"
	// PhaseComplete means every main question is answered and the session
	// is waiting to be finalized.
	PhaseComplete Phase = "complete"
)

// Decision thresholds.
const (
	stepUpScore          = 8
	stepDownScore        = 4
	followUpScoreLow     = 4
	followUpScoreHigh    = 7
	followUpMinAnswers   = 2
	followUpMinMainAsked = 3
)

// SessionState is the short-lived decision state of one in-progress
// session. It is kept outside the persisted Session by a StateStore.
type SessionState struct {
	SessionID            string           `json:"sessionId"`
	Phase                Phase            `json:"phase"`
	CurrentQuestionIndex int              `json:"currentQuestionIndex"`
	FollowUpUsed         bool             `json:"followUpUsed"`
	AnsweredCount        int              `json:"answeredCount"`
	MainQuestionsAsked   int              `json:"mainQuestionsAsked"`
	TotalQuestions       int              `json:"totalQuestions"`
	Declared             difficulty.Level `json:"declared"`

	// AdjustedDifficulty overrides Declared for the next main question.
	// Empty means no override.
	AdjustedDifficulty difficulty.Level `json:"adjustedDifficulty,omitempty"`
}

// NewSessionState returns the state of a session whose first question has
// just been asked.
func NewSessionState(sessionID string, declared difficulty.Level, total int) *SessionState {
	return &SessionState{
		SessionID:          sessionID,
		Phase:              PhaseAwaitingAnswer,
		MainQuestionsAsked: 1,
		TotalQuestions:     total,
		Declared:           declared,
	}
}

// EventKind identifies a state machine input.
type EventKind int

const (
	// EventAnswerEvaluated carries the score of the current question.
	EventAnswerEvaluated EventKind = iota
	// EventQuestionAsked carries the log index of the question just asked.
	EventQuestionAsked
)

// Event is one input to SessionState.Transition.
type Event struct {
	Kind  EventKind
	Score float64
	Index int
}

// AnswerEvaluated builds the event for a scored answer.
func AnswerEvaluated(score float64) Event {
	return Event{Kind: EventAnswerEvaluated, Score: score}
}

// QuestionAsked builds the event for a newly appended question.
func QuestionAsked(index int) Event {
	return Event{Kind: EventQuestionAsked, Index: index}
}

// ErrInvalidTransition reports an event the current phase does not accept.
type ErrInvalidTransition struct {
	Phase Phase
	Kind  EventKind
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid transition: event %d in phase %s", e.Kind, e.Phase)
}

// Transition applies ev to the state.
//
// An evaluated answer moves AwaitingAnswer to FollowUpPending, MainPending
// or Complete. An asked question moves either pending phase back to
// AwaitingAnswer and consumes the follow-up or counts a main question.
func (s *SessionState) Transition(ev Event) error {
	switch ev.Kind {
	case EventAnswerEvaluated:
		if s.Phase != PhaseAwaitingAnswer {
			return &ErrInvalidTransition{Phase: s.Phase, Kind: ev.Kind}
		}
		s.AnsweredCount++
		s.AdjustedDifficulty = adjustDifficulty(s.Declared, ev.Score)

		followUp := s.shouldFollowUp(ev.Score)
		switch {
		case !followUp && s.MainQuestionsAsked >= s.TotalQuestions:
			s.Phase = PhaseComplete
		case followUp:
			s.Phase = PhaseFollowUpPending
		default:
			s.Phase = PhaseMainPending
		}
		return nil

	case EventQuestionAsked:
		switch s.Phase {
		case PhaseFollowUpPending:
			s.FollowUpUsed = true
		case PhaseMainPending:
			s.MainQuestionsAsked++
		default:
			return &ErrInvalidTransition{Phase: s.Phase, Kind: ev.Kind}
		}
		s.CurrentQuestionIndex = ev.Index
		s.Phase = PhaseAwaitingAnswer
		return nil
	}
	return fmt.Errorf("unknown event kind %d", ev.Kind)
}

// shouldFollowUp is evaluated after AnsweredCount counts the new answer.
func (s *SessionState) shouldFollowUp(score float64) bool {
	if s.FollowUpUsed {
		return false
	}
	inBand := score >= followUpScoreLow && score <= followUpScoreHigh
	return (inBand && s.AnsweredCount >= followUpMinAnswers) ||
		s.MainQuestionsAsked >= followUpMinMainAsked
}

// adjustDifficulty returns the override for the next main question, or ""
// when the score is in the middle band.
func adjustDifficulty(declared difficulty.Level, score float64) difficulty.Level {
	switch {
	case score >= stepUpScore:
		return difficulty.StepUp(declared)
	case score <= stepDownScore:
		return difficulty.StepDown(declared)
	}
	return ""
}

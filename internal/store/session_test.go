package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/intervue/internal/difficulty"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/report"
)

func testSession(id string) *interview.Session {
	return &interview.Session{
		ID:             id,
		Role:           "Backend Developer",
		Difficulty:     difficulty.Mid,
		InterviewType:  "Technical",
		Duration:       15,
		TotalQuestions: 6,
		Questions:      []interview.QuestionRecord{{Question: "What is a B-tree?"}},
		Status:         interview.StatusInProgress,
		StartedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func complete(s *interview.Session, at time.Time, score float64) {
	rep := report.Fallback(score)
	s.Report = &rep
	s.Status = interview.StatusCompleted
	s.CompletedAt = &at
}

func TestSessionRepo_FindMissing(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	got, err := repo.Find(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepo_SaveAndFind(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()

	s := testSession("s1")
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Find(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Backend Developer", got.Role)
	assert.Equal(t, difficulty.Mid, got.Difficulty)
	assert.Equal(t, 15.0, got.Duration)
	assert.Equal(t, 6, got.TotalQuestions)
	assert.Equal(t, interview.StatusInProgress, got.Status)
	assert.True(t, s.StartedAt.Equal(got.StartedAt))
	assert.Nil(t, got.CompletedAt)
	assert.Nil(t, got.Report)
	assert.Equal(t, s.Questions, got.Questions)
}

func TestSessionRepo_SaveReplaces(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()

	s := testSession("s1")
	require.NoError(t, repo.Save(ctx, s))

	parent := 0
	s.Questions[0].Answer = "A balanced tree."
	s.Questions[0].Answered = true
	s.Questions[0].Score = 6
	s.Questions = append(s.Questions, interview.QuestionRecord{
		Question:            "Why balanced?",
		IsFollowUp:          true,
		ParentQuestionIndex: &parent,
	})
	complete(s, time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), 6)
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Find(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, 6.0, got.Questions[0].Score)
	require.NotNil(t, got.Questions[1].ParentQuestionIndex)
	assert.Equal(t, 0, *got.Questions[1].ParentQuestionIndex)
	assert.Equal(t, interview.StatusCompleted, got.Status)
	require.NotNil(t, got.Report)
	assert.Equal(t, 60, got.Report.PercentageScore)
	assert.Equal(t, report.Fallback(6).Strengths, got.Report.Strengths)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, s.CompletedAt.Equal(*got.CompletedAt))
}

func TestSessionRepo_ListCompleted(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "new", "mid"} {
		s := testSession(id)
		offsets := []time.Duration{time.Hour, 3 * time.Hour, 2 * time.Hour}
		complete(s, base.Add(offsets[i]), float64(5+i))
		require.NoError(t, repo.Save(ctx, s))
	}
	require.NoError(t, repo.Save(ctx, testSession("live")))

	list, err := repo.ListCompleted(ctx, 50)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "mid", list[1].ID)
	assert.Equal(t, "old", list[2].ID)
	assert.Equal(t, 60, list[0].PercentageScore)
	assert.Equal(t, 6.0, list[0].OverallScore)
	assert.Equal(t, difficulty.Mid, list[0].Difficulty)
	assert.True(t, list[0].CompletedAt.Equal(base.Add(3*time.Hour)))

	list, err = repo.ListCompleted(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// TestSessionRepo_WithService drives a full interview through the SQLite
// repository.
func TestSessionRepo_WithService(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	svc := interview.NewService(interview.Deps{
		Sessions:  repo,
		Evaluator: fixedEvaluator{},
		Questions: &numberedQuestions{},
		Reports:   fallbackReports{},
	})
	ctx := context.Background()

	start, err := svc.Start(ctx, interview.StartInput{Role: "SRE", Difficulty: "Senior", InterviewType: "Technical", Duration: 10})
	require.NoError(t, err)
	for {
		res, err := svc.SubmitAnswer(ctx, start.SessionID, "answer")
		require.NoError(t, err)
		if res.IsComplete {
			break
		}
	}
	rep, err := svc.Complete(ctx, start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 50, rep.PercentageScore)

	list, err := svc.ListCompleted(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, start.SessionID, list[0].ID)
}

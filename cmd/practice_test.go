package cmd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/intervue/internal/app"
	"github.com/abhisek/intervue/internal/config"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/llm"
)

func openTestApp(t *testing.T, mock *llm.MockProvider) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Store.Path = filepath.Join(t.TempDir(), "intervue.db")
	cfg.State.Backend = config.StateMemory

	a, err := app.Open(context.Background(), app.Options{Config: cfg, Provider: mock})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func eval(score float64) llm.MockResponse {
	return llm.JSONResponse(map[string]any{"score": score, "feedback": fmt.Sprintf("Scored %.0f.", score)})
}

func TestPractice_FullSession(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.TextResponse("Q1: What is a goroutine?"),
		eval(9), llm.TextResponse("How do channels work?"),
		eval(9), llm.TextResponse("What does sync.WaitGroup do?"),
		eval(9), llm.TextResponse("When would you use a buffered channel instead?"),
		eval(9), llm.TextResponse("How do you cancel work with context?"),
		eval(9),
		llm.JSONResponse(map[string]any{
			"overallScore":    9,
			"percentageScore": 90,
			"strengths":       []string{"Precise concurrency vocabulary"},
			"improvements":    []string{"Mention trade-offs"},
			"sampleAnswers":   []any{},
			"suggestedTopics": []string{"Memory model"},
		}),
	)
	a := openTestApp(t, mock)

	input := "first answer\n\nsecond\nanswer spans lines\n\nthird\n\nfourth\n\nfifth\n"
	var out bytes.Buffer
	err := practice(context.Background(), a.Service, interview.StartInput{
		Role: "Backend Engineer", Difficulty: "Mid", InterviewType: "Technical", Duration: 10,
	}, strings.NewReader(input), &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "What is a goroutine?")
	assert.Contains(t, got, "Question 3 (Follow-up) of 4")
	assert.Contains(t, got, "Question 4 of 4")
	assert.Contains(t, got, "Interview Report")
	assert.Contains(t, got, "(90%)")
	assert.Contains(t, got, "Memory model")
	assert.Equal(t, 11, mock.CallCount())

	list, err := a.Service.ListCompleted(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 90, list[0].PercentageScore)

	sess, err := a.Service.Get(context.Background(), list[0].ID)
	require.NoError(t, err)
	require.Len(t, sess.Questions, 5)
	assert.Equal(t, "second\nanswer spans lines", sess.Questions[1].Answer)
}

func TestPractice_StopsAtEOF(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.TextResponse("What is a goroutine?"),
		eval(6), llm.TextResponse("How do channels work?"),
	)
	a := openTestApp(t, mock)

	var out bytes.Buffer
	err := practice(context.Background(), a.Service, interview.StartInput{
		Role: "SRE", Difficulty: "Junior", InterviewType: "Technical", Duration: 10,
	}, strings.NewReader("only answer\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Resume with: intervue answer")
	assert.NotContains(t, out.String(), "Interview Report")

	st, err := a.Service.State(context.Background(), sessionIDFrom(t, out.String()))
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, 1, st.AnsweredCount)
}

func TestPractice_GenerationFailureKeepsQuestion(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.TextResponse("What is a goroutine?"),
		eval(9),
		llm.MockResponse{Err: &llm.ErrServiceUnavailable{}},
	)
	a := openTestApp(t, mock)

	var out bytes.Buffer
	err := practice(context.Background(), a.Service, interview.StartInput{
		Role: "SRE", Difficulty: "Junior", InterviewType: "Technical", Duration: 10,
	}, strings.NewReader("answer\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), llm.ServiceUnavailableMessage)
}

func TestReadAnswer(t *testing.T) {
	sc := bufio.NewScanner(strings.NewReader("\n\n  line one\nline two\n\nnext\n"))
	var out bytes.Buffer

	a, ok := readAnswer(sc, &out)
	require.True(t, ok)
	assert.Equal(t, "  line one\nline two", a)

	a, ok = readAnswer(sc, &out)
	require.True(t, ok)
	assert.Equal(t, "next", a)

	_, ok = readAnswer(sc, &out)
	assert.False(t, ok)
}

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

func sessionIDFrom(t *testing.T, out string) string {
	t.Helper()
	id := uuidPattern.FindString(out)
	if id == "" {
		t.Fatal("no session id in output")
	}
	return id
}

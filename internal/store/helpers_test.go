package store

import (
	"context"
	"fmt"

	"github.com/abhisek/intervue/internal/evaluation"
	"github.com/abhisek/intervue/internal/questiongen"
	"github.com/abhisek/intervue/internal/report"
)

type fixedEvaluator struct{}

func (fixedEvaluator) Evaluate(context.Context, evaluation.Input) (*evaluation.Result, error) {
	return &evaluation.Result{Score: 5, Feedback: "ok"}, nil
}

type numberedQuestions struct{ n int }

func (q *numberedQuestions) MainQuestion(context.Context, questiongen.MainInput) (string, error) {
	q.n++
	return fmt.Sprintf("question %d", q.n), nil
}

func (q *numberedQuestions) FollowUp(context.Context, questiongen.FollowUpInput) (string, error) {
	q.n++
	return fmt.Sprintf("follow-up %d", q.n), nil
}

type fallbackReports struct{}

func (fallbackReports) Synthesize(_ context.Context, in report.Input) (*report.Report, error) {
	rep := report.Fallback(report.MeanScore(in.Entries))
	return &rep, nil
}

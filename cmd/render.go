package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/ui/components"
	"github.com/abhisek/intervue/internal/ui/theme"
)

const barWidth = 40

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printQuestion(w io.Writer, label string, total int, question string) {
	header := fmt.Sprintf("Question %s of %d", label, total)
	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Title.Render(header))
	fmt.Fprintln(w, theme.Card.Render(theme.Body.Render(question)))
}

func printEvaluation(w io.Writer, ev interview.Evaluation) {
	fmt.Fprintln(w, theme.Label.Render("Score:")+" "+theme.Score(ev.Score))
	fmt.Fprintln(w, theme.Hint.Render(ev.Feedback))
}

func printAnswerResult(w io.Writer, sessionID string, res *interview.AnswerResult) {
	printEvaluation(w, res.Evaluation)
	if res.IsComplete {
		fmt.Fprintln(w)
		fmt.Fprintln(w, theme.Strong.Render("Interview complete."),
			theme.Subtitle.Render(fmt.Sprintf("%d answers over %d main questions.",
				res.TotalAnswered, res.MainQuestionsAsked)))
		fmt.Fprintln(w, theme.Hint.Render("Run: intervue report "+sessionID))
		return
	}
	printQuestion(w, res.QuestionLabel, res.TotalQuestions, res.NextQuestion)
}

func printReport(w io.Writer, r *interview.ReportResult) {
	fmt.Fprintln(w, theme.Title.Render("Interview Report"))
	fmt.Fprintln(w, theme.Subtitle.Render(fmt.Sprintf("%s · %s · %s · %s min",
		r.Role, r.Difficulty, r.InterviewType, strconv.FormatFloat(r.Duration, 'f', -1, 64))))
	fmt.Fprintln(w)

	fmt.Fprintln(w, components.ScoreBar("Overall", r.OverallScore, barWidth),
		theme.Subtitle.Render(fmt.Sprintf("(%d%%)", r.PercentageScore)))

	printList(w, "Strengths", r.Strengths)
	printList(w, "Areas for Improvement", r.Improvements)

	if len(r.Questions) > 0 {
		fmt.Fprintln(w, theme.Section.Render("Questions"))
		n := 0
		for _, q := range r.Questions {
			if !q.Answered {
				continue
			}
			var label string
			if q.IsFollowUp {
				label = fmt.Sprintf("Q%d+", n)
			} else {
				n++
				label = fmt.Sprintf("Q%d", n)
			}
			fmt.Fprintln(w, components.ScoreBar(fmt.Sprintf("%-4s", label), q.Score, barWidth))
			fmt.Fprintln(w, "  "+theme.Body.Render(q.Question))
		}
	}

	if len(r.SampleAnswers) > 0 {
		fmt.Fprintln(w, theme.Section.Render("Sample Answers"))
		for _, s := range r.SampleAnswers {
			fmt.Fprintln(w, theme.Label.Render("Q: ")+theme.Body.Render(s.Question))
			if s.OriginalAnswer != "" {
				fmt.Fprintln(w, theme.Hint.Render("Your answer: "+s.OriginalAnswer))
			}
			fmt.Fprintln(w, theme.Card.Render(theme.Body.Render(s.ImprovedAnswer)))
		}
	}

	printList(w, "Suggested Topics", r.SuggestedTopics)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, theme.Section.Render(title))
	for _, it := range items {
		fmt.Fprintln(w, "  • "+theme.Body.Render(it))
	}
}

func printSummaries(w io.Writer, list []interview.SessionSummary) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No completed interviews yet.")
		return
	}
	fmt.Fprintf(w, "%-36s  %-16s  %-20s  %-6s  %-10s  %6s  %s\n",
		"ID", "Completed", "Role", "Level", "Type", "Score", "%")
	fmt.Fprintln(w, strings.Repeat("─", 114))
	for _, s := range list {
		fmt.Fprintf(w, "%-36s  %-16s  %-20s  %-6s  %-10s  %6.1f  %d%%\n",
			s.ID,
			s.CompletedAt.Local().Format("2006-01-02 15:04"),
			truncate(s.Role, 20),
			s.Difficulty,
			truncate(s.InterviewType, 10),
			s.OverallScore,
			s.PercentageScore,
		)
	}
}

func printSession(w io.Writer, s *interview.Session) {
	fmt.Fprintln(w, theme.Title.Render("Session "+s.ID))
	fmt.Fprintf(w, "Role:       %s\n", s.Role)
	fmt.Fprintf(w, "Difficulty: %s\n", s.Difficulty)
	fmt.Fprintf(w, "Type:       %s\n", s.InterviewType)
	fmt.Fprintf(w, "Duration:   %s min (%d main questions)\n",
		strconv.FormatFloat(s.Duration, 'f', -1, 64), s.TotalQuestions)
	fmt.Fprintf(w, "Status:     %s\n", s.Status)
	fmt.Fprintf(w, "Started:    %s\n", s.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if s.CompletedAt != nil {
		fmt.Fprintf(w, "Completed:  %s\n", s.CompletedAt.Local().Format("2006-01-02 15:04:05"))
	}
	if s.Report != nil {
		fmt.Fprintf(w, "Score:      %.1f/10 (%d%%)\n", s.Report.OverallScore, s.Report.PercentageScore)
	}

	for i, q := range s.Questions {
		kind := "Main"
		if q.IsFollowUp {
			kind = "Follow-up"
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, theme.Label.Render(fmt.Sprintf("#%d %s", i+1, kind)), theme.Body.Render(q.Question))
		if !q.Answered {
			fmt.Fprintln(w, theme.Hint.Render("  (awaiting answer)"))
			continue
		}
		fmt.Fprintln(w, "  A: "+q.Answer)
		fmt.Fprintln(w, "  "+theme.Score(q.Score)+" "+theme.Hint.Render(q.Feedback))
	}
}

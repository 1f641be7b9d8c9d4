package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/ui/components"
	"github.com/abhisek/intervue/internal/ui/theme"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run an interactive interview in the terminal",
	Long: "Run an interactive interview. Type your answer and finish it with an empty line.\n" +
		"Press Ctrl+D to stop; the session can be resumed with `intervue answer`.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := startInput(cmd)
		if err != nil {
			return err
		}

		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		return practice(cmd.Context(), a.Service, in, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// practice drives one session from start to report, reading answers from r.
func practice(ctx context.Context, svc *interview.Service, in interview.StartInput, r io.Reader, w io.Writer) error {
	start, err := svc.Start(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, theme.Subtitle.Render("Session "+start.SessionID))
	printQuestion(w, "1", start.TotalQuestions, start.Question)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	total := start.TotalQuestions
	for {
		answer, ok := readAnswer(sc, w)
		if !ok {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, theme.Hint.Render("Stopped. Resume with: intervue answer "+start.SessionID))
			return nil
		}

		res, err := svc.SubmitAnswer(ctx, start.SessionID, answer)
		var genErr *interview.GenerationError
		if errors.As(err, &genErr) {
			// The session is unchanged; the same question can be answered again.
			fmt.Fprintln(w, theme.Weak.Render(genErr.UserMessage()))
			continue
		}
		if err != nil {
			return err
		}

		printEvaluation(w, res.Evaluation)
		if res.IsComplete {
			break
		}
		fmt.Fprintln(w, components.NewProgressBar("Progress",
			float64(res.QuestionNumber-1)/float64(total), true, barWidth).View())
		printQuestion(w, res.QuestionLabel, res.TotalQuestions, res.NextQuestion)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Hint.Render("Generating your report..."))
	rep, err := svc.Complete(ctx, start.SessionID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	printReport(w, rep)
	return nil
}

// readAnswer collects lines until an empty line. It reports false at end
// of input with nothing typed.
func readAnswer(sc *bufio.Scanner, w io.Writer) (string, bool) {
	fmt.Fprint(w, theme.Label.Render("> "))
	var lines []string
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

func init() {
	addStartFlags(practiceCmd)
}

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/intervue/internal/interview"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an interview and print the first question",
	Long:  "Start an interview and print the first question. Continue it with `intervue answer <session-id>`.",
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

		res, err := a.Service.Start(cmd.Context(), in)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if asJSON(cmd) {
			return printJSON(w, res)
		}
		fmt.Fprintln(w, "Session:", res.SessionID)
		printQuestion(w, "1", res.TotalQuestions, res.Question)
		return nil
	},
}

var answerCmd = &cobra.Command{
	Use:   "answer <session-id> [answer...]",
	Short: "Submit an answer to the current question",
	Long:  "Submit an answer to the current question. With no answer arguments the answer is read from stdin.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answer := strings.Join(args[1:], " ")
		if len(args) == 1 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			answer = strings.TrimSpace(string(data))
		}

		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Service.SubmitAnswer(cmd.Context(), args[0], answer)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if asJSON(cmd) {
			return printJSON(w, res)
		}
		printAnswerResult(w, args[0], res)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <session-id>",
	Short: "Finalize a finished interview and print its report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Service.Complete(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if asJSON(cmd) {
			return printJSON(w, res)
		}
		printReport(w, res)
		return nil
	},
}

func startInput(cmd *cobra.Command) (interview.StartInput, error) {
	role, _ := cmd.Flags().GetString("role")
	level, _ := cmd.Flags().GetString("difficulty")
	kind, _ := cmd.Flags().GetString("type")
	duration, _ := cmd.Flags().GetFloat64("duration")
	if strings.TrimSpace(role) == "" {
		return interview.StartInput{}, fmt.Errorf("--role is required")
	}
	return interview.StartInput{
		Role:          role,
		Difficulty:    level,
		InterviewType: kind,
		Duration:      duration,
	}, nil
}

func addStartFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("role", "r", "", "Role being interviewed for (e.g. \"Backend Engineer\")")
	cmd.Flags().StringP("difficulty", "d", "Mid", "Seniority: Junior, Mid, Senior or Lead")
	cmd.Flags().StringP("type", "t", "Technical", "Interview type (e.g. Technical, Behavioral, System Design)")
	cmd.Flags().Float64P("duration", "m", 10, "Interview length in minutes (one main question per 2.5 min, 4 to 12)")
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func init() {
	addStartFlags(startCmd)
	for _, c := range []*cobra.Command{startCmd, answerCmd, reportCmd} {
		c.Flags().Bool("json", false, "Print the result as JSON")
	}
}

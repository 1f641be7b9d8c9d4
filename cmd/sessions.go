package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List and inspect interview sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List completed interviews, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.Service.ListCompleted(cmd.Context(), limit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if asJSON(cmd) {
			return printJSON(w, list)
		}
		printSummaries(w, list)
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session with every question and answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Service.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if asJSON(cmd) {
			return printJSON(w, sess)
		}
		printSession(w, sess)
		return nil
	},
}

var sessionsAbandonCmd = &cobra.Command{
	Use:   "abandon <session-id>",
	Short: "Abandon an in-progress interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service.Abandon(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Abandoned", args[0])
		return nil
	},
}

func init() {
	sessionsListCmd.Flags().IntP("limit", "n", 0, "Number of sessions to show (default 50)")
	sessionsListCmd.Flags().Bool("json", false, "Print the result as JSON")
	sessionsShowCmd.Flags().Bool("json", false, "Print the result as JSON")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsAbandonCmd)
}

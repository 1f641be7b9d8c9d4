package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/intervue/internal/app"
	"github.com/abhisek/intervue/internal/config"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all interview sessions and LLM events",
	Long:  "Delete every session and LLM event from the SQLite store and remove the live session state file. MongoDB data is left untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprint(w, "This permanently deletes all interview history. Continue? [y/N] ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(w, "Aborted.")
				return nil
			}
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset store: %w", err)
		}

		if cfg.State.Backend == config.StateBolt {
			path := cfg.State.Path
			if path == "" {
				if path, err = app.StatePath(); err != nil {
					return err
				}
			}
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("remove state file: %w", err)
			}
		}

		fmt.Fprintln(w, "All interview data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

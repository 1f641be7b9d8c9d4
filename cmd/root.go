package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/intervue/internal/app"
	"github.com/abhisek/intervue/internal/config"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "intervue",
	Short:         "AI mock interviewer",
	Long:          "Intervue runs adaptive mock interviews in the terminal: role-specific questions, scored answers, follow-ups and a final report.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	err := rootCmd.Execute()
	switch {
	case err == nil:
	case interview.IsUserError(err):
		fmt.Fprintln(os.Stderr, err)
	default:
		fmt.Fprintln(os.Stderr, "Error:", userMessage(err))
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/intervue/config.yaml)")
	flags.String("db", "", "Path to SQLite database file (overrides INTERVUE_DB env var)")
	flags.String("store", "", "Session store backend: sqlite or mongo")
	flags.String("state", "", "Session state backend: bolt or memory")
	flags.BoolP("verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies command-line overrides,
// which take precedence over the file and the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Path = p
	}
	if b, _ := cmd.Flags().GetString("store"); b != "" {
		cfg.Store.Backend = b
	}
	if b, _ := cmd.Flags().GetString("state"); b != "" {
		cfg.State.Backend = b
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then INTERVUE_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}

// openApp loads configuration and opens the interview service.
func openApp(cmd *cobra.Command, requireLLM bool) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	a, err := app.Open(cmd.Context(), app.Options{
		Config:     cfg,
		RequireLLM: requireLLM,
		Logger:     newLogger(cmd),
	})
	if err != nil {
		return nil, err
	}
	if a.LLMErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", a.LLMErr)
		fmt.Fprintln(cmd.ErrOrStderr(), "AI features will be unavailable.")
	}
	return a, nil
}

// userMessage maps service errors to what the candidate should see.
func userMessage(err error) string {
	var genErr *interview.GenerationError
	if errors.As(err, &genErr) {
		return genErr.UserMessage()
	}
	return err.Error()
}

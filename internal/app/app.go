// Package app wires the interview service to its configured storage and
// LLM provider.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/intervue/internal/config"
	"github.com/abhisek/intervue/internal/evaluation"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/llm"
	"github.com/abhisek/intervue/internal/questiongen"
	"github.com/abhisek/intervue/internal/report"
	"github.com/abhisek/intervue/internal/store"
)

// Options configures Open.
type Options struct {
	Config config.Config

	// Provider replaces the configured LLM provider when set.
	Provider llm.Provider

	// RequireLLM makes Open fail when no provider can be built. Otherwise
	// the service starts and every generation call reports the cause.
	RequireLLM bool

	Logger *slog.Logger
}

// App holds the opened resources.
type App struct {
	Store    *store.Store
	Service  *interview.Service
	Provider llm.Provider

	// LLMErr is why the configured provider could not be built, if it
	// could not.
	LLMErr error

	closers []func() error
}

// Open opens the SQLite store, the configured session and state backends
// and the LLM provider, then builds the interview service on top of them.
func Open(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	a := &App{}
	ok := false
	defer func() {
		if !ok {
			_ = a.Close()
		}
	}()

	dbPath, err := resolvePath(cfg.Store.Path, store.DefaultDBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.Store = st
	a.closers = append(a.closers, st.Close)

	sessions, err := a.openSessions(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	states, err := a.openStates(cfg.State)
	if err != nil {
		return nil, err
	}

	provider := opts.Provider
	if provider == nil {
		provider, err = llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			if opts.RequireLLM {
				return nil, fmt.Errorf("LLM provider not configured: %w", err)
			}
			a.LLMErr = err
			provider = unavailable{err: err}
		}
	}
	a.Provider = provider

	a.Service = interview.NewService(interview.Deps{
		Sessions:  sessions,
		States:    states,
		Evaluator: evaluation.New(provider, evaluation.DefaultConfig(), logger),
		Questions: questiongen.New(provider, questiongen.DefaultConfig()),
		Reports:   report.NewSynthesizer(provider, report.DefaultConfig(), logger),
		Logger:    logger,
	})

	ok = true
	return a, nil
}

func (a *App) openSessions(ctx context.Context, cfg config.StoreConfig) (interview.SessionRepo, error) {
	if cfg.Backend != config.StoreMongo {
		return a.Store.SessionRepo(), nil
	}
	repo, err := store.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error {
		return repo.Close(context.Background())
	})
	return repo, nil
}

func (a *App) openStates(cfg config.StateConfig) (interview.StateStore, error) {
	if cfg.Backend != config.StateBolt {
		return interview.NewMemoryStateStore(), nil
	}
	path, err := resolvePath(cfg.Path, StatePath)
	if err != nil {
		return nil, fmt.Errorf("resolve state path: %w", err)
	}
	states, err := store.OpenStateStore(path)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, states.Close)
	return states, nil
}

// StatePath is the default bbolt state file.
func StatePath() (string, error) {
	return store.DataPath("state.db")
}

func resolvePath(path string, fallback func() (string, error)) (string, error) {
	if path == "" {
		return fallback()
	}
	return path, store.EnsureDir(path)
}

// Close releases everything Open acquired, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// unavailable stands in for a provider that could not be configured.
type unavailable struct {
	err error
}

func (u unavailable) Generate(context.Context, llm.Request) (*llm.Response, error) {
	return nil, fmt.Errorf("LLM provider not configured: %w", u.err)
}

func (unavailable) ModelID() string { return "" }

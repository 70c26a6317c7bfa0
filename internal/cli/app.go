// Package cli wires configuration, logging, persistence and the challenge
// programs behind the prepkit command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/prepkit/internal/api"
	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/config"
	"github.com/idilsaglam/prepkit/internal/logging"
	"github.com/idilsaglam/prepkit/internal/state"
	"github.com/idilsaglam/prepkit/internal/store/jsonstore"
	"github.com/idilsaglam/prepkit/internal/tui"
	"github.com/idilsaglam/prepkit/internal/ui"
)

// Exit codes: 0 ok, 1 runtime error, 2 usage error.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// UsageError marks bad input: unknown commands, wrong arguments, unknown
// challenges and out-of-range indexes.
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *UsageError
	switch {
	case errors.As(err, &ue),
		errors.Is(err, challenge.ErrNotFound),
		errors.Is(err, state.ErrNotFound),
		errors.Is(err, state.ErrEmptyTitle):
		return ExitUsage
	}
	// cobra reports these as plain errors
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") {
		return ExitUsage
	}
	return ExitError
}

// App holds what every command shares once the config is loaded.
type App struct {
	Out, Err io.Writer

	// NewFetcher and RunProgram are swapped out in tests.
	NewFetcher func(cfg config.APIConfig, log *slog.Logger) api.Fetcher
	RunProgram func(f *tui.Frame) error

	cfgFile  string
	root     *cobra.Command
	cfg      *config.Config
	log      *slog.Logger
	logClose io.Closer
	store    *state.Store
	file     *jsonstore.File
}

func NewApp(stdout, stderr io.Writer) *App {
	return &App{
		Out: stdout,
		Err: stderr,
		NewFetcher: func(cfg config.APIConfig, log *slog.Logger) api.Fetcher {
			return api.NewClient(cfg, &http.Client{}, log)
		},
		RunProgram: tui.Run,
	}
}

// Run executes args and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	return NewApp(stdout, stderr).Run(args)
}

func (a *App) Run(args []string) int {
	root := a.Command()
	root.SetArgs(args)
	err := root.Execute()
	if ferr := a.finish(); err == nil {
		err = ferr
	}
	if err != nil {
		ui.Fail(a.Err, err.Error())
	}
	return ExitCode(err)
}

// setup loads the config and the state file before any command runs.
func (a *App) setup() error {
	v := config.NewViper(a.cfgFile)
	if err := config.BindFlags(v, a.root.PersistentFlags(), config.FlagKeys); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	log, closer, err := logging.New(logging.Options{
		File:   cfg.Log.File,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return err
	}
	a.log, a.logClose = log, closer
	if used := v.ConfigFileUsed(); used != "" {
		a.log.Debug("config loaded", "file", used)
	}

	a.store = state.NewStore(nil)
	if cfg.StateFile != "" {
		a.file = jsonstore.New(cfg.StateFile)
		if err := a.file.LoadInto(a.store); err != nil {
			return fmt.Errorf("load state: %w", err)
		}
		a.log.Debug("state loaded", "file", cfg.StateFile,
			"todos", len(a.store.Todos()), "countries", len(a.store.SavedCountries()))
	}
	return nil
}

// finish persists the store and closes the log file.
func (a *App) finish() error {
	var errs []error
	if a.file != nil {
		saved, err := a.file.SaveFrom(a.store)
		if err != nil {
			errs = append(errs, fmt.Errorf("save state: %w", err))
		} else if saved {
			a.log.Debug("state saved", "file", a.file.Path)
		}
	}
	if a.logClose != nil {
		errs = append(errs, a.logClose.Close())
		a.logClose = nil
	}
	return errors.Join(errs...)
}

func (a *App) deps(cmd *cobra.Command) tui.Deps {
	return tui.Deps{
		Ctx:      cmd.Context(),
		API:      a.NewFetcher(a.cfg.API, a.log),
		Store:    a.store,
		Log:      a.log,
		Tick:     a.cfg.Stopwatch.Tick,
		PageSize: a.cfg.Country.PageSize,
	}
}

func (a *App) start(cmd *cobra.Command, e challenge.Entry, level challenge.Level) error {
	f, err := tui.New(e, level, a.deps(cmd))
	if err != nil {
		return err
	}
	a.log.Info("start challenge", "route", e.Route(level))
	if err := a.RunProgram(f); err != nil {
		return fmt.Errorf("run %s: %w", e.Route(level), err)
	}
	return nil
}

// persistenceHint warns that store changes will not outlive the process.
func (a *App) persistenceHint() {
	if a.file == nil {
		t := ui.Current()
		fmt.Fprintln(a.Err, t.Muted.Render("Hint: set state_file in .prepkit.yml to keep changes between runs"))
	}
}

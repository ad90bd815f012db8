package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/markdownql/internal/config"
	"github.com/dgallion1/markdownql/internal/executor"
	"github.com/dgallion1/markdownql/internal/metrics"
	"github.com/dgallion1/markdownql/internal/pipeline"
	"github.com/dgallion1/markdownql/internal/shell"
)

// errQueryFailed is returned after the failure has already been printed.
var errQueryFailed = errors.New("query failed")

type app struct {
	cfg config.Config
	dir string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errQueryFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Load()}

	root := &cobra.Command{
		Use:           "markdownql",
		Short:         "Query markdown documents with a small SQL-like language",
		Long:          "Starts an interactive shell. Example query: SELECT headings, text \"TODO\" FROM \"notes.md\"",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.Traversal = strings.ToLower(a.cfg.Traversal)
			a.cfg.Output = strings.ToLower(a.cfg.Output)
			a.cfg.LogLevel = strings.ToLower(a.cfg.LogLevel)
			return a.cfg.Validate()
		},
		RunE: a.runShell,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfg.Traversal, "traversal", a.cfg.Traversal, "where headings and paragraphs are found: deep or root")
	pf.StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "result format: text or json")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn or error")
	pf.BoolVar(&a.cfg.GFM, "gfm", a.cfg.GFM, "enable GitHub-flavoured markdown extensions")
	pf.Int64Var(&a.cfg.MaxFileBytes, "max-file-bytes", a.cfg.MaxFileBytes, "largest document that will be read, in bytes (must be positive)")
	pf.StringVar(&a.dir, "dir", "", "base directory for relative FROM paths (default: working directory)")

	root.Flags().StringVar(&a.cfg.Prompt, "prompt", a.cfg.Prompt, "interactive prompt")
	root.Flags().StringVar(&a.cfg.HistoryFile, "history", a.cfg.HistoryFile, "history file; empty disables history")
	root.Flags().IntVar(&a.cfg.HistoryLimit, "history-limit", a.cfg.HistoryLimit, "maximum saved history entries")

	root.AddCommand(newQueryCmd(a), newServeCmd(a))
	return root
}

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "query <query>",
		Short:   "Run a single query and print the result",
		Example: `  markdownql query 'SELECT * FROM "README.md"'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := a.shellLogger()
			sh := shell.New(a.runner(log, nil, false), a.cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if !sh.Exec(cmd.Context(), strings.Join(args, " ")) {
				return errQueryFailed
			}
			return nil
		},
	}
}

func (a *app) runShell(cmd *cobra.Command, args []string) error {
	log := a.shellLogger()
	sh := shell.New(a.runner(log, nil, false), a.cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return shell.Interactive(cmd.Context(), sh, a.cfg.HistoryFile, a.cfg.HistoryLimit)
}

// runner builds the query pipeline. confine limits FROM paths to a.dir.
func (a *app) runner(log *slog.Logger, m *metrics.Metrics, confine bool) *pipeline.Runner {
	exec := executor.New(a.cfg, log)
	exec.Dir = a.dir
	exec.Confine = confine
	// A nil *Metrics must not become a non-nil Observer.
	if m == nil {
		return pipeline.NewRunner(exec, log, nil)
	}
	return pipeline.NewRunner(exec, log, m)
}

// shellLogger writes text logs to stderr so they stay out of query output.
func (a *app) shellLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: a.cfg.Level(slog.LevelWarn),
	}))
}

// Package shell implements the interactive query loop.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/dgallion1/markdownql/internal/config"
	"github.com/dgallion1/markdownql/internal/pipeline"
)

// LineReader reads one line of input per prompt. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Shell reads queries, runs them and prints results or stage-labelled
// failures. A failed query never ends the loop.
type Shell struct {
	runner *pipeline.Runner
	prompt string
	output string
	out    io.Writer
	errOut io.Writer
}

// New creates a shell printing results to out and failures to errOut.
func New(runner *pipeline.Runner, cfg config.Config, out, errOut io.Writer) *Shell {
	return &Shell{
		runner: runner,
		prompt: cfg.Prompt,
		output: cfg.Output,
		out:    out,
		errOut: errOut,
	}
}

// Run prompts until exit, quit, Ctrl-C, Ctrl-D or a read error. Only a read
// error is returned.
func (s *Shell) Run(ctx context.Context, lr LineReader) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := lr.Prompt(s.prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			fmt.Fprintln(s.out, "CTRL-C")
			return nil
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out, "CTRL-D")
			return nil
		case err != nil:
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "exit" || trimmed == "quit" {
			return nil
		}
		if trimmed == "" {
			continue
		}
		lr.AppendHistory(line)
		s.Exec(ctx, line)
	}
}

// Exec runs a single query and reports whether it succeeded.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	run, err := s.runner.Run(ctx, line)
	if err != nil {
		fmt.Fprintln(s.errOut, err)
		return false
	}
	if err := PrintResult(s.out, run.Result, s.output); err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return false
	}
	return true
}

// Interactive runs the shell on the terminal with line editing. History is
// loaded from historyFile before the loop and saved after it; an empty
// historyFile disables persistence.
func Interactive(ctx context.Context, s *Shell, historyFile string, historyLimit int) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if historyFile != "" {
		if err := LoadHistory(line, historyFile); err != nil {
			fmt.Fprintln(s.out, "No previous history.")
		}
	}

	runErr := s.Run(ctx, line)

	if historyFile != "" {
		if err := SaveHistory(line, historyFile, historyLimit); err != nil {
			fmt.Fprintf(s.errOut, "Error saving history: %v\n", err)
		}
	}
	return runErr
}

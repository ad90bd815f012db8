package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/markdownql/internal/executor"
	"github.com/dgallion1/markdownql/internal/lexer"
	"github.com/dgallion1/markdownql/internal/query"
)

// Observer receives stage timings and results. metrics.Metrics implements it.
type Observer interface {
	ObserveStage(stage Stage, elapsed time.Duration, err error)
	ObserveResult(result *executor.QueryResult)
}

// Runner takes one query string through tokenize, parse and execute.
type Runner struct {
	exec *executor.Executor
	log  *slog.Logger
	obs  Observer
}

// NewRunner creates a runner. obs may be nil.
func NewRunner(exec *executor.Executor, log *slog.Logger, obs Observer) *Runner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{exec: exec, log: log, obs: obs}
}

// Run processes input and stops at the first failing stage. The returned
// Run is never nil; on failure the error is a *StageError.
func (r *Runner) Run(ctx context.Context, input string) (*Run, error) {
	now := time.Now()
	run := &Run{
		ID:        uuid.NewString(),
		Input:     input,
		Status:    StatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	log := r.log.With("query_id", run.ID)

	// Phase 1: Tokenize
	var tokens []lexer.Token
	err := r.stage(ctx, run, StageTokenize, func() (err error) {
		tokens, err = lexer.Tokenize(input)
		return err
	})
	if err != nil {
		return r.fail(log, run, err)
	}

	// Phase 2: Parse
	var q *query.Query
	err = r.stage(ctx, run, StageParse, func() (err error) {
		q, err = query.Parse(tokens)
		return err
	})
	if err != nil {
		return r.fail(log, run, err)
	}
	run.Query = q.String()

	// Phase 3: Execute
	var result *executor.QueryResult
	err = r.stage(ctx, run, StageExecute, func() (err error) {
		result, err = r.exec.Execute(q)
		return err
	})
	if err != nil {
		return r.fail(log, run, err)
	}

	run.Result = result
	run.setStatus(StatusCompleted)
	if r.obs != nil {
		r.obs.ObserveResult(result)
	}
	log.Info("query completed",
		"query", run.Query,
		"headings", len(result.Headings),
		"paragraphs", len(result.Paragraphs),
		"matching_text", len(result.MatchingText),
		"duration_ms", run.UpdatedAt.Sub(run.CreatedAt).Milliseconds(),
	)
	return run, nil
}

func (r *Runner) stage(ctx context.Context, run *Run, stage Stage, fn func() error) error {
	run.Stage = stage
	if err := ctx.Err(); err != nil {
		if r.obs != nil {
			r.obs.ObserveStage(stage, 0, err)
		}
		return &StageError{Stage: stage, Err: err}
	}

	start := time.Now()
	err := fn()
	if r.obs != nil {
		r.obs.ObserveStage(stage, time.Since(start), err)
	}
	if err != nil {
		return &StageError{Stage: stage, Err: err}
	}
	return nil
}

func (r *Runner) fail(log *slog.Logger, run *Run, err error) (*Run, error) {
	run.Error = err.Error()
	run.setStatus(StatusFailed)
	log.Info("query failed", "stage", run.Stage, "error", err)
	return run, err
}

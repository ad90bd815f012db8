package pipeline

import "fmt"

// Stage names one step of query processing.
type Stage string

const (
	StageTokenize Stage = "tokenize"
	StageParse    Stage = "parse"
	StageExecute  Stage = "execute"
)

// Label is the prefix used when a failure of this stage is shown to a user.
func (s Stage) Label() string {
	switch s {
	case StageTokenize:
		return "Tokenization error"
	case StageParse:
		return "Error parsing query"
	case StageExecute:
		return "Query execution error"
	default:
		return string(s) + " error"
	}
}

// StageError records which stage of a run failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage.Label(), e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

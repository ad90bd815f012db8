package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/dgallion1/markdownql/internal/executor"
)

// RunStatus represents the state of a query run.
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Run tracks a single query from input to result.
type Run struct {
	ID     string    `json:"query_id"`
	Input  string    `json:"input"`
	Query  string    `json:"query,omitempty"`
	Status RunStatus `json:"status"`
	Stage  Stage     `json:"stage"`
	Error  string    `json:"error,omitempty"`

	Result *executor.QueryResult `json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Run) setStatus(status RunStatus) {
	r.Status = status
	r.UpdatedAt = time.Now()
}

// RunStore is a thread-safe in-memory registry of finished runs with TTL
// eviction.
type RunStore struct {
	mu   sync.Mutex
	runs map[string]*Run
	ttl  time.Duration
}

func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{
		runs: make(map[string]*Run),
		ttl:  ttl,
	}
}

func (s *RunStore) Put(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

// Get returns a copy of the run, or nil if it is unknown or expired.
func (s *RunStore) Get(id string) *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok || s.expired(run, time.Now()) {
		return nil
	}
	cp := *run
	return &cp
}

// Len returns the number of stored runs, expired ones included.
func (s *RunStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs)
}

// Cleanup removes expired runs.
func (s *RunStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, run := range s.runs {
		if s.expired(run, now) {
			delete(s.runs, id)
		}
	}
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (s *RunStore) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}

func (s *RunStore) expired(run *Run, now time.Time) bool {
	return now.Sub(run.UpdatedAt) > s.ttl
}

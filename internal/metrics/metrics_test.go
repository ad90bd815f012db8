package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dgallion1/markdownql/internal/executor"
	"github.com/dgallion1/markdownql/internal/pipeline"
)

func TestObserveStage(t *testing.T) {
	m := New()

	m.ObserveStage(pipeline.StageTokenize, time.Millisecond, nil)
	m.ObserveStage(pipeline.StageParse, time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(m.StagesTotal.WithLabelValues("tokenize", "ok")); got != 1 {
		t.Errorf("expected 1 ok tokenize run, got %v", got)
	}
	if got := testutil.ToFloat64(m.StagesTotal.WithLabelValues("parse", "error")); got != 1 {
		t.Errorf("expected 1 failed parse run, got %v", got)
	}
	if got := testutil.ToFloat64(m.QueriesTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("expected 1 failed query, got %v", got)
	}
	if got := testutil.CollectAndCount(m.StageDuration); got != 2 {
		t.Errorf("expected 2 duration series, got %d", got)
	}
}

func TestObserveResult(t *testing.T) {
	m := New()
	m.ObserveResult(&executor.QueryResult{
		Headings:     []string{"a", "b"},
		Paragraphs:   []string{"c"},
		MatchingText: []string{},
	})

	if got := testutil.ToFloat64(m.QueriesTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("expected 1 ok query, got %v", got)
	}
	if got := testutil.ToFloat64(m.ResultItems.WithLabelValues("headings")); got != 2 {
		t.Errorf("expected 2 headings, got %v", got)
	}
	if got := testutil.ToFloat64(m.ResultItems.WithLabelValues("paragraphs")); got != 1 {
		t.Errorf("expected 1 paragraph, got %v", got)
	}
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveResult(&executor.QueryResult{})
	if got := testutil.ToFloat64(b.QueriesTotal.WithLabelValues("ok")); got != 0 {
		t.Errorf("expected registries to be independent, got %v", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveStage(pipeline.StageExecute, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `markdownql_stage_runs_total{stage="execute",status="ok"} 1`) {
		t.Errorf("expected stage counter in exposition, got:\n%s", body)
	}
}

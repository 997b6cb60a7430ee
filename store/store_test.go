package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := Run{ID: "run-1", Model: "gemini-2.0-flash", Dataset: "tasksource/lsat-lr"}
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].ID != "run-1" || runs[0].Model != "gemini-2.0-flash" {
		t.Errorf("run = %+v", runs[0])
	}
	if runs[0].CreatedAt == "" {
		t.Error("CreatedAt not populated")
	}
}

func TestOutcomeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateRun(ctx, Run{ID: "run-1"}); err != nil {
		t.Fatal(err)
	}

	o := Outcome{
		RunID:       "run-1",
		ProblemID:   "pt1-q4",
		QuestionRaw: "flaw in the reasoning",
		Category:    "Flaw",
		Predicted:   "B",
		GroundTruth: "A",
		Correct:     false,
		APIError:    false,
		RawResponse: "1. Argument Breakdown: ...",
	}
	id, err := s.SaveOutcome(ctx, o)
	if err != nil {
		t.Fatalf("SaveOutcome: %v", err)
	}
	if id == 0 {
		t.Error("LastInsertId = 0")
	}

	got, err := s.ListOutcomes(ctx, "run-1")
	if err != nil {
		t.Fatalf("ListOutcomes: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(got))
	}
	if got[0].ProblemID != "pt1-q4" || got[0].Predicted != "B" || got[0].Correct {
		t.Errorf("outcome = %+v", got[0])
	}
	if got[0].RawResponse != o.RawResponse {
		t.Errorf("RawResponse = %q", got[0].RawResponse)
	}
}

func TestListOutcomesAcrossRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, runID := range []string{"run-1", "run-2"} {
		if err := s.CreateRun(ctx, Run{ID: runID}); err != nil {
			t.Fatal(err)
		}
		if _, err := s.SaveOutcome(ctx, Outcome{RunID: runID, ProblemID: "p"}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.ListOutcomes(ctx, "")
	if err != nil {
		t.Fatalf("ListOutcomes: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d outcomes, want 2", len(all))
	}

	one, err := s.ListOutcomes(ctx, "run-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 1 || one[0].RunID != "run-2" {
		t.Errorf("filtered outcomes = %+v", one)
	}
}

func TestListOutcomesUnknownRun(t *testing.T) {
	s := newTestStore(t)
	got, err := s.ListOutcomes(context.Background(), "nope")
	if err != nil {
		t.Fatalf("ListOutcomes: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d outcomes, want 0", len(got))
	}
}

func TestClosedStore(t *testing.T) {
	s := newTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.CreateRun(context.Background(), Run{ID: "x"}); err != ErrClosed {
		t.Errorf("CreateRun on closed store = %v, want ErrClosed", err)
	}
	if _, err := s.ListOutcomes(context.Background(), ""); err != ErrClosed {
		t.Errorf("ListOutcomes on closed store = %v, want ErrClosed", err)
	}
	// Double close is a no-op.
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

// Package store persists per-problem outcomes in SQLite so historical
// runs can be re-analyzed without re-querying the LLM.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ErrClosed is returned when operating on a closed store.
var ErrClosed = errors.New("store: closed")

// Run identifies one batch execution.
type Run struct {
	ID        string `json:"id"`
	Model     string `json:"model"`
	Dataset   string `json:"dataset"`
	CreatedAt string `json:"created_at"`
}

// Outcome is one stored per-problem result row.
type Outcome struct {
	ID          int64  `json:"id"`
	RunID       string `json:"run_id"`
	ProblemID   string `json:"problem_id"`
	QuestionRaw string `json:"question_raw"`
	Category    string `json:"category"`
	Predicted   string `json:"predicted"`
	GroundTruth string `json:"ground_truth"`
	Correct     bool   `json:"correct"`
	APIError    bool   `json:"api_error"`
	RawResponse string `json:"raw_response,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Store wraps the SQLite database for all reasonmap persistence.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at the given path and
// initialises the schema.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close shuts the store down. Safe to call twice.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// CreateRun records a new batch run.
func (s *Store) CreateRun(ctx context.Context, run Run) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, model, dataset) VALUES (?, ?, ?)`,
		run.ID, run.Model, run.Dataset)
	if err != nil {
		return fmt.Errorf("creating run: %w", err)
	}
	return nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, model, dataset, created_at FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Model, &r.Dataset, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// SaveOutcome inserts one outcome row and returns its ID.
func (s *Store) SaveOutcome(ctx context.Context, o Outcome) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes
		 (run_id, problem_id, question_raw, category, predicted, ground_truth, correct, api_error, raw_response)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.RunID, o.ProblemID, o.QuestionRaw, o.Category, o.Predicted,
		o.GroundTruth, o.Correct, o.APIError, o.RawResponse)
	if err != nil {
		return 0, fmt.Errorf("saving outcome: %w", err)
	}
	return res.LastInsertId()
}

// ListOutcomes returns stored outcomes in insertion order. An empty
// runID returns outcomes across all runs.
func (s *Store) ListOutcomes(ctx context.Context, runID string) ([]Outcome, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	query := `SELECT id, run_id, problem_id, question_raw, category, predicted,
	                 ground_truth, correct, api_error, raw_response, created_at
	          FROM outcomes`
	args := []interface{}{}
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var o Outcome
		if err := rows.Scan(&o.ID, &o.RunID, &o.ProblemID, &o.QuestionRaw, &o.Category,
			&o.Predicted, &o.GroundTruth, &o.Correct, &o.APIError, &o.RawResponse, &o.CreatedAt); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

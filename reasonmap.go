// Package reasonmap extracts structured reasoning maps from an LLM's
// step-by-step answers to LSAT logical-reasoning problems and
// aggregates the outcomes into an error-pattern report.
//
// The per-problem pipeline is: prompt the model, segment its free-text
// response into labeled blocks, build a linear chain graph from the
// blocks, grade the stated answer against the ground-truth label, and
// export the graph for rendering. Outcomes are persisted so historical
// runs can be re-analyzed without new LLM calls.
package reasonmap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bbiangul/reasonmap/dataset"
	"github.com/bbiangul/reasonmap/eval"
	"github.com/bbiangul/reasonmap/graph"
	"github.com/bbiangul/reasonmap/llm"
	"github.com/bbiangul/reasonmap/segment"
	"github.com/bbiangul/reasonmap/store"
)

// Engine is the main entry point for the reasoning-map pipeline.
type Engine interface {
	// Process runs one problem end-to-end: query the LLM, segment the
	// response, build the reasoning map, and grade the answer. It does
	// not persist anything; Run does.
	Process(ctx context.Context, p dataset.Problem) (*Result, error)

	// Run processes a batch of problems with bounded concurrency,
	// writes map files, persists outcomes, and returns the aggregated
	// report. One problem's failure never aborts the batch: transport
	// errors are recorded as API-error outcomes.
	Run(ctx context.Context, problems []dataset.Problem) (*RunResult, error)

	// Analyze recomputes the report from stored outcomes. An empty
	// runID analyzes all runs.
	Analyze(ctx context.Context, runID string) (*eval.Report, error)

	// Store returns the underlying store for diagnostic access.
	Store() *store.Store

	// Close cleanly shuts down the engine.
	Close() error
}

// Result is the outcome of processing a single problem.
type Result struct {
	Problem dataset.Problem
	RawText string
	Blocks  []segment.Block
	Graph   *graph.Graph
	Outcome eval.OutcomeRecord

	// Graded is false when the problem carries no answer key; such
	// problems still get maps but are excluded from statistics.
	Graded bool
}

// RunResult is the outcome of a batch run.
type RunResult struct {
	RunID   string
	Results []*Result
	Report  *eval.Report
}

type engine struct {
	cfg  Config
	chat llm.Provider
	st   *store.Store
}

// Option customizes engine construction.
type Option func(*engine)

// WithProvider overrides the chat provider built from config.
func WithProvider(p llm.Provider) Option {
	return func(e *engine) { e.chat = p }
}

// New creates an Engine from configuration.
func New(cfg Config, opts ...Option) (Engine, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConfig().Concurrency
	}

	e := &engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}

	if e.chat == nil {
		p, err := llm.NewProvider(cfg.Chat)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		e.chat = p
	}

	st, err := store.New(cfg.ResolveDBPath())
	if err != nil {
		return nil, err
	}
	e.st = st
	return e, nil
}

func (e *engine) Store() *store.Store { return e.st }

func (e *engine) Close() error { return e.st.Close() }

// ---------------------------------------------------------------------------
// Per-problem pipeline
// ---------------------------------------------------------------------------

func (e *engine) Process(ctx context.Context, p dataset.Problem) (*Result, error) {
	resp, err := e.chat.Chat(ctx, llm.ChatRequest{
		Model:       e.cfg.Chat.Model,
		Messages:    promptMessages(p),
		Temperature: e.cfg.Temperature,
		MaxTokens:   e.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: problem %s: %v", ErrLLMRequestFailed, p.ID, err)
	}

	blocks := segment.Segment(resp.Content)
	if segment.Degraded(blocks) {
		slog.Warn("reasonmap: degraded parse, no recognized headings", "problem", p.ID)
	}

	predicted := ""
	if c, ok := segment.Conclusion(blocks); ok {
		predicted = extractAnswer(c.Text)
	}

	truth := p.Answer()
	correct := truth != "" && predicted == truth

	g := graph.Build(p.ID, blocks, correct)
	if truth == "" {
		// No answer key: the conclusion node exists but cannot be graded.
		g.Terminal = graph.StatusUnknown
	}

	return &Result{
		Problem: p,
		RawText: resp.Content,
		Blocks:  blocks,
		Graph:   g,
		Graded:  truth != "",
		Outcome: eval.OutcomeRecord{
			ProblemID:   p.ID,
			QuestionRaw: p.Question,
			Predicted:   predicted,
			GroundTruth: truth,
		},
	}, nil
}

// ---------------------------------------------------------------------------
// Batch run
// ---------------------------------------------------------------------------

func (e *engine) Run(ctx context.Context, problems []dataset.Problem) (*RunResult, error) {
	if len(problems) == 0 {
		return nil, ErrNoProblems
	}

	runID := uuid.New().String()
	if err := e.st.CreateRun(ctx, store.Run{
		ID:    runID,
		Model: e.cfg.Chat.Model,
	}); err != nil {
		return nil, err
	}

	slog.Info("reasonmap: starting run",
		"run", runID,
		"problems", len(problems),
		"concurrency", e.cfg.Concurrency,
	)

	results := make([]*Result, len(problems))
	sem := make(chan struct{}, e.cfg.Concurrency)
	var wg sync.WaitGroup

	for i, p := range problems {
		wg.Add(1)
		go func(i int, p dataset.Problem) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := e.Process(ctx, p)
			if err != nil {
				slog.Warn("reasonmap: problem failed", "problem", p.ID, "error", err)
				// Problems without an answer key stay out of statistics
				// even when the request itself failed.
				res = &Result{
					Problem: p,
					Graded:  p.Answer() != "",
					Outcome: eval.OutcomeRecord{
						ProblemID:   p.ID,
						QuestionRaw: p.Question,
						GroundTruth: p.Answer(),
						APIError:    true,
					},
				}
			}
			results[i] = res
		}(i, p)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Persist outcomes and write map files in input order so runs are
	// reproducible row-for-row.
	var records []eval.OutcomeRecord
	for _, res := range results {
		if res.Graph != nil && !res.Graph.Empty() {
			if err := e.writeMap(res); err != nil {
				slog.Warn("reasonmap: writing map failed", "problem", res.Problem.ID, "error", err)
			}
		}
		if !res.Graded {
			continue
		}
		records = append(records, res.Outcome)
		if _, err := e.st.SaveOutcome(ctx, store.Outcome{
			RunID:       runID,
			ProblemID:   res.Outcome.ProblemID,
			QuestionRaw: res.Outcome.QuestionRaw,
			Category:    string(eval.Categorize(res.Outcome.QuestionRaw)),
			Predicted:   res.Outcome.Predicted,
			GroundTruth: res.Outcome.GroundTruth,
			Correct:     res.Outcome.Correct(),
			APIError:    res.Outcome.APIError,
			RawResponse: res.RawText,
		}); err != nil {
			return nil, err
		}
	}

	report := eval.Aggregate(records)
	slog.Info("reasonmap: run complete",
		"run", runID,
		"successful", report.Successful,
		"accuracy", fmt.Sprintf("%.2f", report.Accuracy),
	)

	return &RunResult{RunID: runID, Results: results, Report: report}, nil
}

// writeMap exports a result's graph as DOT and Mermaid files named by
// problem ID.
func (e *engine) writeMap(res *Result) error {
	dir := e.cfg.OutputDir
	if dir == "" {
		dir = "maps"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	base := filepath.Join(dir, sanitizeID(res.Problem.ID)+"_map")
	if err := os.WriteFile(base+".dot", []byte(res.Graph.DrawDOT()), 0o644); err != nil {
		return err
	}
	return os.WriteFile(base+".mmd", []byte(res.Graph.DrawMermaid()), 0o644)
}

// sanitizeID makes a problem ID safe for use in a file name.
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, id)
}

// ---------------------------------------------------------------------------
// Historical analysis
// ---------------------------------------------------------------------------

func (e *engine) Analyze(ctx context.Context, runID string) (*eval.Report, error) {
	outcomes, err := e.st.ListOutcomes(ctx, runID)
	if err != nil {
		return nil, err
	}
	if len(outcomes) == 0 && runID != "" {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return eval.Aggregate(OutcomeRecords(outcomes)), nil
}

// OutcomeRecords converts stored outcome rows into analysis records.
func OutcomeRecords(outcomes []store.Outcome) []eval.OutcomeRecord {
	records := make([]eval.OutcomeRecord, len(outcomes))
	for i, o := range outcomes {
		records[i] = eval.OutcomeRecord{
			ProblemID:   o.ProblemID,
			QuestionRaw: o.QuestionRaw,
			Predicted:   o.Predicted,
			GroundTruth: o.GroundTruth,
			APIError:    o.APIError,
		}
	}
	return records
}

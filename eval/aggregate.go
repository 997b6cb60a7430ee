package eval

import (
	"sort"
	"strings"
)

// OutcomeRecord is the per-problem result handed in by the driver.
// Read-only input to analysis.
type OutcomeRecord struct {
	ProblemID   string `json:"problem_id"`
	QuestionRaw string `json:"question_raw"` // raw question-type string or stem
	Predicted   string `json:"predicted"`    // empty when no answer was extracted
	GroundTruth string `json:"ground_truth"`
	APIError    bool   `json:"api_error"`
}

// Correct reports whether the predicted answer matches ground truth,
// case-insensitively and ignoring surrounding whitespace. An empty
// prediction never counts as correct.
func (r OutcomeRecord) Correct() bool {
	p := strings.TrimSpace(r.Predicted)
	if p == "" {
		return false
	}
	return strings.EqualFold(p, strings.TrimSpace(r.GroundTruth))
}

// CategoryCount is one row of the failure table.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Report holds the aggregated statistics for one batch of outcomes.
// It is recomputed fresh from the full record sequence on every run.
type Report struct {
	TotalProcessed int     `json:"total_processed"`
	APIErrors      int     `json:"api_errors"`
	Successful     int     `json:"successful"`
	Correct        int     `json:"correct"`
	Incorrect      int     `json:"incorrect"`
	Accuracy       float64 `json:"accuracy"` // correct/successful, 0 when successful == 0

	// Failures counts incorrect answers per category, descending by
	// count with name as tiebreak. Categories with zero failures are
	// omitted: the report only shows error patterns that occurred.
	Failures []CategoryCount `json:"failures"`
}

// FailureCount returns the failure count for a category, 0 if absent.
func (r *Report) FailureCount(c Category) int {
	for _, f := range r.Failures {
		if f.Category == c {
			return f.Count
		}
	}
	return 0
}

// Aggregate folds a full outcome sequence into one Report. It performs
// no I/O and is deterministic: the same multiset of records always
// yields the same report, regardless of input order.
func Aggregate(records []OutcomeRecord) *Report {
	r := &Report{TotalProcessed: len(records)}
	failures := make(map[Category]int)

	for _, rec := range records {
		if rec.APIError {
			r.APIErrors++
			continue
		}
		r.Successful++
		if rec.Correct() {
			r.Correct++
		} else {
			r.Incorrect++
			failures[Categorize(rec.QuestionRaw)]++
		}
	}

	if r.Successful > 0 {
		r.Accuracy = float64(r.Correct) / float64(r.Successful)
	}

	for c, n := range failures {
		r.Failures = append(r.Failures, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(r.Failures, func(i, j int) bool {
		if r.Failures[i].Count != r.Failures[j].Count {
			return r.Failures[i].Count > r.Failures[j].Count
		}
		return r.Failures[i].Category < r.Failures[j].Category
	})

	return r
}

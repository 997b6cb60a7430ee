package eval

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Categorizer
// ---------------------------------------------------------------------------

func TestCategorize(t *testing.T) {
	tests := []struct {
		raw  string
		want Category
	}{
		{"The argument is most vulnerable to criticism on the grounds that", CategoryFlaw},
		{"Which one of the following is an assumption required by the argument?", CategoryAssumption},
		{"Which one of the following most accurately describes the method of reasoning?", CategoryMethod},
		{"Which one of the following, if true, most strengthens the argument?", CategoryStrengthen},
		{"Which one of the following, if true, most weakens the argument?", CategoryWeaken},
		{"If the statements above are true, which one of the following must be true?", CategoryInference},
		{"Which one of the following arguments is most similar to the argument above?", CategoryParallel},
		{"Which one of the following most accurately expresses the main conclusion?", CategoryMainPoint},
		{"Which one of the following principles underlies the argument above?", CategoryPrinciple},
		{"Which one of the following, if true, does most to explain the discrepancy?", CategoryResolve},
		{"Flaw in the reasoning", CategoryFlaw},
		{"something entirely unrelated", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		if got := Categorize(tt.raw); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCategorizeMethodBeatsOverlap(t *testing.T) {
	// "method of reasoning" must win over any lower-priority keyword the
	// same stem also contains.
	raw := "Describe the method of reasoning; does the argument weaken its own premise?"
	if got := Categorize(raw); got != CategoryMethod {
		t.Errorf("Categorize = %q, want %q", got, CategoryMethod)
	}
}

func TestCategorizePunctuationInsensitive(t *testing.T) {
	if got := Categorize("FLAW?!"); got != CategoryFlaw {
		t.Errorf("Categorize = %q, want %q", got, CategoryFlaw)
	}
}

// TestCategorizeHelpsTo pins the "helps to" keyword to Strengthen:
// support-seeking stems phrased without the word "strengthen" still
// land in the Strengthen category.
func TestCategorizeHelpsTo(t *testing.T) {
	if got := Categorize("most helps to support the conclusion"); got != CategoryStrengthen {
		t.Errorf("Categorize = %q, want %q", got, CategoryStrengthen)
	}
}

// ---------------------------------------------------------------------------
// Aggregator
// ---------------------------------------------------------------------------

func TestAggregateEndToEnd(t *testing.T) {
	records := []OutcomeRecord{
		{ProblemID: "1", QuestionRaw: "flaw in the argument", Predicted: "A", GroundTruth: "A"},
		{ProblemID: "2", QuestionRaw: "flaw in the argument", Predicted: "B", GroundTruth: "A"},
		{ProblemID: "3", QuestionRaw: "assumption required", Predicted: "C", GroundTruth: "C"},
		{ProblemID: "4", QuestionRaw: "must be true", Predicted: "D", GroundTruth: "E", APIError: true},
	}

	r := Aggregate(records)

	if r.TotalProcessed != 4 {
		t.Errorf("TotalProcessed = %d, want 4", r.TotalProcessed)
	}
	if r.APIErrors != 1 {
		t.Errorf("APIErrors = %d, want 1", r.APIErrors)
	}
	if r.Successful != 3 {
		t.Errorf("Successful = %d, want 3", r.Successful)
	}
	if r.Correct != 2 || r.Incorrect != 1 {
		t.Errorf("Correct/Incorrect = %d/%d, want 2/1", r.Correct, r.Incorrect)
	}
	if math.Abs(r.Accuracy-2.0/3.0) > 1e-9 {
		t.Errorf("Accuracy = %f, want 0.6667", r.Accuracy)
	}
	if len(r.Failures) != 1 {
		t.Fatalf("Failures = %+v, want exactly one category", r.Failures)
	}
	if r.Failures[0].Category != CategoryFlaw || r.Failures[0].Count != 1 {
		t.Errorf("Failures[0] = %+v, want {Flaw 1}", r.Failures[0])
	}
	if r.FailureCount(CategoryAssumption) != 0 {
		t.Error("zero-failure category present in report")
	}
}

func TestAggregateEmpty(t *testing.T) {
	r := Aggregate(nil)
	if r.Accuracy != 0 {
		t.Errorf("Accuracy = %f, want 0 for zero successful records", r.Accuracy)
	}
	if r.TotalProcessed != 0 || r.Successful != 0 {
		t.Errorf("counts = %+v, want all zero", r)
	}
}

func TestAggregateAllAPIErrors(t *testing.T) {
	records := []OutcomeRecord{
		{ProblemID: "1", APIError: true},
		{ProblemID: "2", APIError: true},
	}
	r := Aggregate(records)
	if r.Successful != 0 || r.Accuracy != 0 {
		t.Errorf("Successful=%d Accuracy=%f, want 0/0", r.Successful, r.Accuracy)
	}
	if len(r.Failures) != 0 {
		t.Errorf("API errors must not count as category failures: %+v", r.Failures)
	}
}

func TestAggregateOrderInvariant(t *testing.T) {
	records := []OutcomeRecord{
		{ProblemID: "1", QuestionRaw: "weaken", Predicted: "A", GroundTruth: "B"},
		{ProblemID: "2", QuestionRaw: "flaw", Predicted: "A", GroundTruth: "B"},
		{ProblemID: "3", QuestionRaw: "weaken", Predicted: "A", GroundTruth: "B"},
	}
	reversed := []OutcomeRecord{records[2], records[1], records[0]}

	a, b := Aggregate(records), Aggregate(reversed)
	if len(a.Failures) != len(b.Failures) {
		t.Fatalf("failure tables differ in length: %+v vs %+v", a.Failures, b.Failures)
	}
	for i := range a.Failures {
		if a.Failures[i] != b.Failures[i] {
			t.Errorf("failure row %d differs: %+v vs %+v", i, a.Failures[i], b.Failures[i])
		}
	}
	// Descending count, name tiebreak.
	if a.Failures[0].Category != CategoryWeaken || a.Failures[0].Count != 2 {
		t.Errorf("Failures[0] = %+v, want {Weaken 2}", a.Failures[0])
	}
}

func TestOutcomeCorrectComparison(t *testing.T) {
	tests := []struct {
		predicted, truth string
		want             bool
	}{
		{"A", "A", true},
		{"a", "A", true},
		{" B ", "B", true},
		{"", "A", false},
		{"B", "A", false},
	}
	for _, tt := range tests {
		rec := OutcomeRecord{Predicted: tt.predicted, GroundTruth: tt.truth}
		if got := rec.Correct(); got != tt.want {
			t.Errorf("Correct(%q, %q) = %v, want %v", tt.predicted, tt.truth, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Output
// ---------------------------------------------------------------------------

func TestPrintReport(t *testing.T) {
	r := Aggregate([]OutcomeRecord{
		{ProblemID: "1", QuestionRaw: "flaw", Predicted: "A", GroundTruth: "B"},
		{ProblemID: "2", QuestionRaw: "assumption", Predicted: "C", GroundTruth: "C"},
	})

	var buf bytes.Buffer
	PrintReport(&buf, r)
	out := buf.String()

	for _, want := range []string{
		"Total problems processed: 2",
		"Accuracy: 50.00%",
		"Flaw (failed 1 time(s))",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteOutcomesCSV(t *testing.T) {
	records := []OutcomeRecord{
		{ProblemID: "pt-1", QuestionRaw: "weaken", Predicted: "A", GroundTruth: "B"},
	}

	var buf bytes.Buffer
	if err := WriteOutcomesCSV(&buf, records); err != nil {
		t.Fatalf("WriteOutcomesCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "problem_id,category,predicted,ground_truth,correct,api_error" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "pt-1,Weaken,A,B,false,false" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteXLSX(t *testing.T) {
	r := Aggregate([]OutcomeRecord{
		{ProblemID: "1", QuestionRaw: "flaw", Predicted: "A", GroundTruth: "B"},
	})

	path := t.TempDir() + "/report.xlsx"
	if err := WriteXLSX(path, r); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
}

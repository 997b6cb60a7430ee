// Package eval turns per-problem outcomes into an error-pattern report:
// it categorizes question stems into a closed LSAT taxonomy and folds
// outcome records into summary statistics.
package eval

import "strings"

// Category is one fixed LSAT question-type label.
type Category string

const (
	CategoryFlaw       Category = "Flaw"
	CategoryAssumption Category = "Assumption"
	CategoryMethod     Category = "Method of Reasoning"
	CategoryStrengthen Category = "Strengthen"
	CategoryWeaken     Category = "Weaken"
	CategoryInference  Category = "Inference (Must Be True)"
	CategoryParallel   Category = "Parallel Reasoning"
	CategoryMainPoint  Category = "Main Point"
	CategoryPrinciple  Category = "Principle"
	CategoryResolve    Category = "Resolve/Reconcile"
	CategoryOther      Category = "Other/Unclassified"
)

// categoryRules is the explicit priority order for keyword matching.
// First match wins. Longer, more specific phrases sit above shorter
// overlapping ones ("method of reasoning" must never lose to a generic
// rule further down), so reordering entries changes behavior.
var categoryRules = []struct {
	keywords []string
	category Category
}{
	{[]string{"method of reasoning"}, CategoryMethod},
	{[]string{"flaw", "vulnerable to criticism"}, CategoryFlaw},
	{[]string{"assumption"}, CategoryAssumption},
	{[]string{"strengthen", "supports", "helps to"}, CategoryStrengthen},
	{[]string{"weaken", "casts doubt"}, CategoryWeaken},
	{[]string{"infer", "must be true"}, CategoryInference},
	{[]string{"parallel", "similar to"}, CategoryParallel},
	{[]string{"main point", "main conclusion"}, CategoryMainPoint},
	{[]string{"principle"}, CategoryPrinciple},
	{[]string{"reconcile", "explain the discrepancy"}, CategoryResolve},
	{[]string{"accurately describes", "method"}, CategoryMethod},
}

// Categorize maps a raw question-type string (or question stem) to
// exactly one Category. It is pure and total: every input, including
// the empty string, resolves; unmatched input falls back to
// CategoryOther.
func Categorize(raw string) Category {
	q := normalize(raw)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

// normalize lowercases and strips punctuation so keyword matching is
// insensitive to surface variation ("Flaw?" vs "flaw").
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

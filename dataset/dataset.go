// Package dataset loads LSAT logical-reasoning problems from the
// HuggingFace datasets server, local JSON files, or prep-book PDFs.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Problem is one multiple-choice logical-reasoning problem.
type Problem struct {
	ID       string   `json:"id_string"`
	Context  string   `json:"context"`
	Question string   `json:"question"`
	Options  []string `json:"answers"`
	// Label is the 0-based index of the correct option, or -1 when the
	// source carries no answer key (PDF extraction).
	Label int `json:"label"`
}

// Answer returns the ground-truth answer letter ("A".."E"), or ""
// when the label is unknown or out of range.
func (p Problem) Answer() string {
	if p.Label < 0 || p.Label >= len(p.Options) || p.Label > 25 {
		return ""
	}
	return string(rune('A' + p.Label))
}

// OptionsText formats the choices as lettered lines for prompting.
func (p Problem) OptionsText() string {
	var sb strings.Builder
	for i, opt := range p.Options {
		fmt.Fprintf(&sb, "(%c): %s\n", rune('A'+i), opt)
	}
	return sb.String()
}

// jsonRow tolerates both field spellings seen in exported copies of the
// dataset ("answers" per the HF schema, "options" in some dumps).
type jsonRow struct {
	ID       string   `json:"id_string"`
	Context  string   `json:"context"`
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	Options  []string `json:"options"`
	Label    *int     `json:"label"`
}

func (r jsonRow) toProblem(i int) Problem {
	p := Problem{
		ID:       r.ID,
		Context:  r.Context,
		Question: r.Question,
		Options:  r.Answers,
		Label:    -1,
	}
	if len(p.Options) == 0 {
		p.Options = r.Options
	}
	if r.Label != nil {
		p.Label = *r.Label
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("problem-%d", i)
	}
	return p
}

// LoadJSON reads problems from a local JSON file holding an array of
// dataset rows.
func LoadJSON(path string) ([]Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}

	var rows []jsonRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing dataset file: %w", err)
	}

	problems := make([]Problem, 0, len(rows))
	for i, r := range rows {
		problems = append(problems, r.toProblem(i))
	}
	return problems, nil
}

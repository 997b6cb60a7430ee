package dataset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// questionMarker matches numbered question starts in prep-book text,
// e.g. "Question 12" or "12." at the beginning of a line.
var questionMarker = regexp.MustCompile(`(?mi)^\s*(?:question\s+)?(\d{1,3})\.?\s`)

// optionMarker matches lettered answer choices: "(A)", "A.", "A)".
var optionMarker = regexp.MustCompile(`(?m)^\s*\(?([A-E])[.)]\s*`)

// LoadPDF extracts problems from an LSAT prep PDF. Page text is pulled
// with the pdf library and split on numbered-question markers; lettered
// lines inside each span become the answer choices. PDFs carry no
// answer key, so Label is -1 and the problems are usable for map
// generation but not for grading.
func LoadPDF(path string) ([]Problem, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	problems := splitProblems(text.String(), strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if len(problems) == 0 {
		return nil, fmt.Errorf("no problems found in %s", path)
	}
	return problems, nil
}

// splitProblems cuts extracted text into problems at question markers.
func splitProblems(text, source string) []Problem {
	marks := questionMarker.FindAllStringSubmatchIndex(text, -1)
	var problems []Problem

	for i, m := range marks {
		start := m[1] // end of the marker line prefix
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		span := strings.TrimSpace(text[start:end])
		if span == "" {
			continue
		}

		number := text[m[2]:m[3]]
		p := parseProblemSpan(span)
		p.ID = fmt.Sprintf("%s-q%s", source, number)
		p.Label = -1
		if p.Question != "" && len(p.Options) >= 2 {
			problems = append(problems, p)
		}
	}
	return problems
}

// parseProblemSpan separates a question span into stimulus/question text
// and lettered options.
func parseProblemSpan(span string) Problem {
	var p Problem

	opts := optionMarker.FindAllStringSubmatchIndex(span, -1)
	if len(opts) == 0 {
		p.Question = span
		return p
	}

	p.Question = strings.TrimSpace(span[:opts[0][0]])
	for i, m := range opts {
		end := len(span)
		if i+1 < len(opts) {
			end = opts[i+1][0]
		}
		opt := strings.TrimSpace(span[m[1]:end])
		if opt != "" {
			p.Options = append(p.Options, opt)
		}
	}
	return p
}

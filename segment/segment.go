// Package segment splits a free-form LLM reasoning response into an
// ordered sequence of typed blocks. Recognition is heuristic: an ordered
// list of heading rules is evaluated top-to-bottom and unparseable input
// degrades to a single unknown block rather than failing.
package segment

import (
	"regexp"
	"strings"
)

// Kind classifies a reasoning block.
type Kind string

const (
	KindContext           Kind = "context"
	KindArgumentBreakdown Kind = "argument_breakdown"
	KindStep              Kind = "step"
	KindFinalConclusion   Kind = "final_conclusion"
	KindUnknown           Kind = "unknown"
)

// Block is one labeled span of the response text. Blocks are immutable
// once returned by Segment.
type Block struct {
	Kind    Kind   `json:"kind"`
	Index   int    `json:"index"`   // position in the segmented sequence, from 0
	Heading string `json:"heading"` // heading title as written, "" for headless text
	Text    string `json:"text"`    // trimmed body text
}

// ---------------------------------------------------------------------------
// Heading recognition
// ---------------------------------------------------------------------------

// labelRules map recognized heading titles to block kinds. Rules are
// evaluated in order; more specific titles come first. The original
// prompt's "Question Analysis" and "Strategic Evaluation" sections are
// intermediate reasoning, so they map to KindStep.
var labelRules = []struct {
	re   *regexp.Regexp
	kind Kind
}{
	{regexp.MustCompile(`(?i)^(?:problem\s+)?context\b`), KindContext},
	{regexp.MustCompile(`(?i)^argument\s+breakdown\b`), KindArgumentBreakdown},
	{regexp.MustCompile(`(?i)^final\s+conclusion\b`), KindFinalConclusion},
	{regexp.MustCompile(`(?i)^question\s+analysis\b`), KindStep},
	{regexp.MustCompile(`(?i)^strategic\s+evaluation\b`), KindStep},
	{regexp.MustCompile(`(?i)^step\s*\d*\b`), KindStep},
}

// numberedPrefix matches "1.", "2)", "10." style heading numbering.
var numberedPrefix = regexp.MustCompile(`^\d{1,3}[.)]\s*`)

// markdownPrefix matches "#", "##", ... heading markers.
var markdownPrefix = regexp.MustCompile(`^#{1,6}\s+`)

// maxTitleLen bounds how long a colon-delimited title may be and still
// count as a heading; longer prefixes are ordinary prose.
const maxTitleLen = 40

// heading is a recognized heading line.
type heading struct {
	kind      Kind
	title     string
	remainder string // text on the heading line after the title
}

// parseHeading reports whether a line is a heading and, if so, its kind,
// title, and any same-line body text.
func parseHeading(line string) (heading, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return heading{}, false
	}

	shaped := false
	if m := markdownPrefix.FindString(s); m != "" {
		s = strings.TrimSpace(s[len(m):])
		shaped = true
	}
	if m := numberedPrefix.FindString(s); m != "" {
		s = strings.TrimSpace(s[len(m):])
		shaped = true
	}
	s = strings.Trim(s, "*")

	title := s
	remainder := ""
	hasColon := false
	if i := strings.Index(s, ":"); i >= 0 {
		title = strings.Trim(strings.TrimSpace(s[:i]), "*")
		remainder = strings.TrimSpace(strings.TrimLeft(s[i+1:], "* "))
		hasColon = true
	}

	for _, rule := range labelRules {
		if rule.re.MatchString(title) {
			// A bare label match mid-prose is not a heading: require a
			// structural cue (numbering, markdown marker, or a short
			// colon-delimited title) or the line being only the label.
			if shaped || (hasColon && len(title) <= maxTitleLen) || title == s {
				return heading{kind: rule.kind, title: title, remainder: remainder}, true
			}
		}
	}

	// Heading-shaped but unrecognized titles become steps.
	if shaped && len(title) <= maxTitleLen {
		return heading{kind: KindStep, title: title, remainder: remainder}, true
	}

	return heading{}, false
}

// ---------------------------------------------------------------------------
// Segmentation
// ---------------------------------------------------------------------------

// Segment splits a response into ordered blocks. It never fails: text
// with no recognized headings yields a single KindUnknown block holding
// the whole (trimmed) input, and empty heading-delimited blocks are
// dropped. Only the first Final Conclusion heading keeps its kind;
// later ones are demoted to steps, since the conclusion is reasoned
// toward rather than restated.
func Segment(text string) []Block {
	lines := strings.Split(text, "\n")

	var blocks []Block
	var cur *Block
	var body []string
	sawHeading := false
	sawConclusion := false

	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = strings.TrimSpace(strings.Join(body, "\n"))
		if cur.Text != "" {
			blocks = append(blocks, *cur)
		}
		cur = nil
		body = nil
	}

	for _, line := range lines {
		h, ok := parseHeading(line)
		if !ok {
			body = append(body, line)
			continue
		}

		if !sawHeading {
			// Leading text before the first heading, if non-trivial,
			// becomes an unknown block.
			lead := strings.TrimSpace(strings.Join(body, "\n"))
			if lead != "" {
				blocks = append(blocks, Block{Kind: KindUnknown, Text: lead})
			}
			body = nil
			sawHeading = true
		} else {
			flush()
		}

		if h.kind == KindFinalConclusion {
			if sawConclusion {
				h.kind = KindStep
			}
			sawConclusion = true
		}

		cur = &Block{Kind: h.kind, Heading: h.title}
		if h.remainder != "" {
			body = append(body, h.remainder)
		}
	}
	flush()

	if !sawHeading {
		// Degraded parse: keep everything as one unknown block so the
		// caller can still inspect the raw response.
		return []Block{{Kind: KindUnknown, Index: 0, Text: strings.TrimSpace(text)}}
	}

	for i := range blocks {
		blocks[i].Index = i
	}
	return blocks
}

// Degraded reports whether a segmentation is the no-headings fallback:
// nothing but unknown blocks.
func Degraded(blocks []Block) bool {
	for _, b := range blocks {
		if b.Kind != KindUnknown {
			return false
		}
	}
	return true
}

// Conclusion returns the final-conclusion block, if present.
func Conclusion(blocks []Block) (Block, bool) {
	for _, b := range blocks {
		if b.Kind == KindFinalConclusion {
			return b, true
		}
	}
	return Block{}, false
}

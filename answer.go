package reasonmap

import "regexp"

// answerLetter finds a standalone answer letter in conclusion text,
// tolerating "(A)", "A.", "A:" and bare "A" forms.
var answerLetter = regexp.MustCompile(`\b\(?([A-E])\)?[:.]?\b`)

// extractAnswer pulls the first answer letter (A-E) out of a
// final-conclusion block. Returns "" when no letter is found.
func extractAnswer(conclusion string) string {
	m := answerLetter.FindStringSubmatch(conclusion)
	if m == nil {
		return ""
	}
	return m[1]
}

package reasonmap

import (
	"fmt"

	"github.com/bbiangul/reasonmap/dataset"
	"github.com/bbiangul/reasonmap/llm"
)

// systemPrompt instructs the model to answer in the four-section format
// the segmenter recognizes. The section titles here and the segmenter's
// heading rules must stay in sync.
const systemPrompt = `You are a master logician.
Core Principle: The "type" of question (e.g., Flaw, Assumption) dictates the strategy.

Output Format:
1. Argument Breakdown: Premises and Conclusion.
2. Question Analysis: Identify the question type and strategy.
3. Strategic Evaluation: Analyze each choice based on the strategy.
4. Final Conclusion: State the correct answer letter.`

// promptMessages builds the chat messages for one problem.
func promptMessages(p dataset.Problem) []llm.Message {
	user := fmt.Sprintf("Context: %s\nQuestion: %s\nChoices:\n%s",
		p.Context, p.Question, p.OptionsText())
	return []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user},
	}
}

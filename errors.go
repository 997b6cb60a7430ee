package reasonmap

import "errors"

var (
	// ErrNoProblems is returned when a dataset source yields zero problems.
	ErrNoProblems = errors.New("reasonmap: no problems loaded")

	// ErrLLMRequestFailed is returned when an LLM request fails after retries.
	ErrLLMRequestFailed = errors.New("reasonmap: LLM request failed")

	// ErrRunNotFound is returned when a run ID has no stored outcomes.
	ErrRunNotFound = errors.New("reasonmap: run not found")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("reasonmap: invalid configuration")
)

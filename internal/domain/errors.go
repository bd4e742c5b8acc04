package domain

import "errors"

// Sentinel errors shared across the pipeline. Callers test with errors.Is.
var (
	// ErrNoProvider indicates every candidate model failed construction or
	// call; no script was written or run.
	ErrNoProvider = errors.New("no model candidate available")

	// ErrRunTimeout indicates the child process exceeded the wall-clock
	// bound and was terminated. No ExecutionResult exists in this case.
	ErrRunTimeout = errors.New("script execution timed out")

	// ErrPreviewUnavailable indicates the drawing preview could not be
	// rendered. Never fatal to the surrounding flow.
	ErrPreviewUnavailable = errors.New("preview unavailable")

	// ErrMissingCredential indicates the model's API key environment
	// variable is unset. There is deliberately no built-in default key.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrExecutionBlocked indicates the guardrail refused to run the
	// generated script.
	ErrExecutionBlocked = errors.New("execution blocked by guardrail")
)

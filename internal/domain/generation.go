package domain

import (
	"context"
	"time"
)

// GenerationRequest captures a single natural-language generation attempt.
// The category is assigned once by the classifier and is immutable afterwards.
type GenerationRequest struct {
	Context       context.Context
	ID            string
	Prompt        string
	Category      Category
	ModelOverride string
	SkipExecution bool
	Debug         bool
	CreatedAt     time.Time
}

// GenerationResponse is the canonical result propagated back to the CLI.
type GenerationResponse struct {
	ID         string
	Category   Category
	ModelUsed  string
	Code       string
	SourcePath string
	Execution  *ExecutionResult
	Outputs    []OutputFile
	Warnings   []string
	FromCache  bool
}

// ExecutionResult wraps details from the script runner. It is produced once
// per run and consumed immediately for reporting and the history entry.
type ExecutionResult struct {
	ExitCode   int
	Stdout     string
	Stderr     string
	Success    bool
	DurationMS int64
}

// OutputFile describes a recognized artifact discovered in the workspace.
type OutputFile struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

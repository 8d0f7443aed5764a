// Package parsererror defines the error taxonomy for the analysis pipeline.
package parsererror

import "fmt"

// ExtractionError represents a failure to obtain transactions from a
// statement: unsupported input, an unreachable extraction service, or
// content no pattern could parse.
type ExtractionError struct {
	Source string // "remote", "lines", "input"
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed (%s): %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed (%s): %s", e.Source, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// AnalysisError wraps any unrecovered failure surfaced to the caller of the
// orchestrator. Callers get a single failure, never a partial result.
type AnalysisError struct {
	Stage string
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed at %s: %v", e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

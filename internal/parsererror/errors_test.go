package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ExtractionError{Source: "remote", Reason: "service unreachable", Err: cause}

	assert.Contains(t, err.Error(), "remote")
	assert.Contains(t, err.Error(), "service unreachable")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestExtractionErrorWithoutCause(t *testing.T) {
	err := &ExtractionError{Source: "input", Reason: "no input provided"}

	assert.Contains(t, err.Error(), "no input provided")
	assert.NoError(t, err.Unwrap())
}

func TestAnalysisErrorUnwrapsToExtractionError(t *testing.T) {
	inner := &ExtractionError{Source: "remote", Reason: "service returned status 500"}
	err := &AnalysisError{Stage: "extraction", Err: inner}

	assert.Contains(t, err.Error(), "extraction")

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, "remote", extractErr.Source)
}

func TestAnalysisErrorThroughWrapping(t *testing.T) {
	err := fmt.Errorf("analyze failed: %w", &AnalysisError{
		Stage: "input",
		Err:   &ExtractionError{Source: "input", Reason: "no input provided"},
	})

	var analysisErr *AnalysisError
	require.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, "input", analysisErr.Stage)
}

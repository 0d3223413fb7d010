package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLIError_Error verifies the message format with and without an
// underlying error.
func TestCLIError_Error(t *testing.T) {
	plain := NewCLIError(ExitNoProviderFound, "no provider found")
	assert.Equal(t, "no provider found", plain.Error())

	wrapped := WrapCLIError(ExitMalformedConfig, "bad config", fmt.Errorf("line 3"))
	assert.Equal(t, "bad config: line 3", wrapped.Error())
}

// TestCLIError_Unwrap verifies errors.Is/errors.As traversal through a
// wrapped CLIError.
func TestCLIError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("yaml: unmarshal failed")
	err := WrapCLIError(ExitMalformedConfig, "bad config", inner)

	assert.ErrorIs(t, err, inner)

	var cliErr *CLIError
	require.True(t, errors.As(error(err), &cliErr))
	assert.Equal(t, ExitMalformedConfig, cliErr.Code)
}

// TestExitCodes verifies the documented exit code values stay stable —
// scripts depend on them.
func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitCode(0), ExitSuccess)
	assert.Equal(t, ExitCode(1), ExitGeneralError)
	assert.Equal(t, ExitCode(2), ExitNoProviderFound)
	assert.Equal(t, ExitCode(3), ExitMalformedConfig)
	assert.Equal(t, ExitCode(4), ExitMissingEnvVariable)
	assert.Equal(t, ExitCode(5), ExitDockerNotRunning)
}

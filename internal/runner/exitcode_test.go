package runner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 1}
	assert.Equal(t, "exit code 1", err.Error())

	// Verify errors.As works for type matching.
	var exitErr *ExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
}

func TestExitErrorWraps(t *testing.T) {
	cause := errors.New("scan: boom")
	err := &ExitError{Code: 2, Err: cause}
	assert.Equal(t, "scan: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("plain")))
	assert.Equal(t, 3, ExitCode(&ExitError{Code: 3}))
	assert.Equal(t, 1, ExitCode(&ExitError{}))
}

func TestGuardReturnsError(t *testing.T) {
	want := errors.New("failed")
	assert.Equal(t, want, Guard(func() error { return want }))
	assert.NoError(t, Guard(func() error { return nil }))
}

func TestGuardRecoversPanic(t *testing.T) {
	err := Guard(func() error { panic("nil map") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal error")
	assert.Contains(t, err.Error(), "nil map")
	assert.Equal(t, 1, ExitCode(err))
}

package runner

import (
	"errors"
	"fmt"

	"github.com/sourcegraph/conc/panics"
)

// ExitError carries the process exit code for a failed run. Using a typed
// error instead of os.Exit ensures deferred cleanup runs.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to a process exit code: 0 for
// nil, the carried code for an ExitError, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}
	return 1
}

// Guard runs fn and turns a panic into an ExitError with code 1, so a bug in
// one stage still ends the run with an error line instead of a stack dump.
func Guard(fn func() error) error {
	var (
		pc  panics.Catcher
		err error
	)
	pc.Try(func() { err = fn() })
	if r := pc.Recovered(); r != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("internal error: %w", r.AsError())}
	}
	return err
}

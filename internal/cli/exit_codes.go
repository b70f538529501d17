package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/docpulse/docpulse/internal/errors"
)

// Exit codes for the docpulse CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitRuntimeFailure indicates a pipeline or publishing failure
	ExitRuntimeFailure = 1

	// ExitConfigInvalid indicates invalid configuration
	ExitConfigInvalid = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingPrerequisites indicates required files or state are missing
	ExitMissingPrerequisites = 4
)

// ExitError carries a specific process exit code through the cobra error
// path.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// asExitError reports whether err wraps an ExitError and assigns it.
func asExitError(err error, target **ExitError) bool {
	return errors.As(err, target)
}

// ExitCode extracts the process exit code for an Execute error. Structured
// CLI errors map through their category; anything else is a runtime failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfigInvalid
		case clierrors.Prerequisite:
			return ExitMissingPrerequisites
		}
	}
	return ExitRuntimeFailure
}

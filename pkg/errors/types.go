package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for scripting integration.
const (
	// ExitSuccess indicates the run completed.
	ExitSuccess = 0

	// ExitFailure indicates the run aborted on an error.
	ExitFailure = 2

	// ExitConfigError indicates an invalid or unreadable configuration.
	ExitConfigError = 3
)

// ExitError represents command termination with a specific exit code.
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitConfigError,
//	    Message: "failed to load config",
//	    Err:     err,
//	}
type ExitError struct {
	// Code is the process exit status.
	Code int

	// Message overrides the underlying error text when set.
	Message string

	// Err is the cause, may be nil.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise the underlying error's
// message, or a default message naming the exit code.
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and cause.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with a formatted message.
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// Parameters:
//   - err: The error returned by a command, may be nil
//
// Returns:
//   - int: ExitSuccess for nil, the ExitError's code when one is wrapped,
//     ExitFailure otherwise
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}

// IsExitError checks if err wraps an ExitError and returns it.
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// CommandError describes an external command whose result could not be used.
//
// Fields:
//   - Command: Command line as configured
//   - ExitCode: Process exit status, -1 when the process never exited normally
//   - Output: Trimmed diagnostic output (stderr, or stdout when stderr is empty)
//   - Err: Underlying cause
type CommandError struct {
	Command  string
	ExitCode int
	Output   string
	Err      error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("command %q", e.Command))
	if e.ExitCode >= 0 {
		sb.WriteString(fmt.Sprintf(" exited with status %d", e.ExitCode))
	} else {
		sb.WriteString(" failed")
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		sb.WriteString(": ")
		sb.WriteString(firstLine(out))
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsCommandError checks if err wraps a CommandError and returns it.
func IsCommandError(err error) (*CommandError, bool) {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr, true
	}
	return nil, false
}

// UnknownWorkspaceError is returned when a report row names a workspace that
// is not part of the resolved workspace mapping.
type UnknownWorkspaceError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownWorkspaceError) Error() string {
	return fmt.Sprintf("workspace %q is not part of this project", e.Name)
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}

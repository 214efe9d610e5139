package gemini

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	ErrAlreadyStarted = errors.New("process already started")
	ErrNotStarted     = errors.New("process not started")
)

// WorkspaceNotFoundError indicates the requested working directory does
// not exist. The check runs before any process is spawned.
type WorkspaceNotFoundError struct {
	Path string
}

func (e *WorkspaceNotFoundError) Error() string {
	return fmt.Sprintf("workspace directory does not exist: %s", e.Path)
}

// CLINotFoundError indicates the Gemini CLI binary was not found on PATH.
type CLINotFoundError struct {
	Cause error
	Path  string
}

func (e *CLINotFoundError) Error() string {
	return fmt.Sprintf("gemini CLI not found at %q: %v", e.Path, e.Cause)
}

func (e *CLINotFoundError) Unwrap() error {
	return e.Cause
}

// ProcessError represents a process-level failure, typically a refused
// spawn.
type ProcessError struct {
	Cause   error
	Message string
}

func (e *ProcessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("process error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("process error: %s", e.Message)
}

func (e *ProcessError) Unwrap() error {
	return e.Cause
}

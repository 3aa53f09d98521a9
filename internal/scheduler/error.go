package scheduler

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrNoDialect indicates the engine was built without a scheduler dialect
	ErrNoDialect = errors.New("no scheduler dialect configured")

	// ErrUnknownDialect indicates a dialect name that is not supported
	ErrUnknownDialect = errors.New("unknown scheduler dialect")

	// ErrSchedulerNotFound indicates the qsub client was not found
	ErrSchedulerNotFound = errors.New("scheduler binary not found in PATH")

	// ErrEmptyGraph indicates there is nothing to submit
	ErrEmptyGraph = errors.New("graph has no nodes")
)

// PreconditionError reports a malformed graph handed to SubmitGraph.
// Nothing has been written when it is returned.
type PreconditionError struct {
	Node   int    // Offending node index (-1 when not node specific)
	Reason string // What is wrong
}

func (e *PreconditionError) Error() string {
	if e.Node >= 0 {
		return fmt.Sprintf("invalid graph at node %d: %s", e.Node, e.Reason)
	}
	return fmt.Sprintf("invalid graph: %s", e.Reason)
}

// ScriptCreationError represents an error creating a batch or master script
type ScriptCreationError struct {
	JobName string // Job variable name, or "submit_jobs" for the master script
	Path    string // Script path
	Err     error  // Underlying error
}

func (e *ScriptCreationError) Error() string {
	return fmt.Sprintf("failed to create script for job %s at %s: %v",
		e.JobName, e.Path, e.Err)
}

func (e *ScriptCreationError) Unwrap() error {
	return e.Err
}

// InvocationError represents a failed run of the master submission script
type InvocationError struct {
	Cmd    string // Full command that was executed
	Output string // Combined stdout/stderr
	Err    error  // Underlying error
}

func (e *InvocationError) Error() string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("submission script failed: %s: %v", e.Cmd, e.Err))
	if out := strings.TrimSpace(e.Output); out != "" {
		msg.WriteString("\nOutput: ")
		msg.WriteString(out)
	}
	return msg.String()
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewPreconditionError creates a new PreconditionError
func NewPreconditionError(node int, format string, a ...interface{}) *PreconditionError {
	return &PreconditionError{
		Node:   node,
		Reason: fmt.Sprintf(format, a...),
	}
}

// NewScriptCreationError creates a new ScriptCreationError
func NewScriptCreationError(jobName string, path string, err error) *ScriptCreationError {
	return &ScriptCreationError{
		JobName: jobName,
		Path:    path,
		Err:     err,
	}
}

// NewInvocationError creates a new InvocationError
func NewInvocationError(cmd string, output string, err error) *InvocationError {
	return &InvocationError{
		Cmd:    cmd,
		Output: output,
		Err:    err,
	}
}

// IsPreconditionError checks if an error is a PreconditionError
func IsPreconditionError(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// IsScriptCreationError checks if an error is a ScriptCreationError
func IsScriptCreationError(err error) bool {
	var se *ScriptCreationError
	return errors.As(err, &se)
}

// IsInvocationError checks if an error is an InvocationError
func IsInvocationError(err error) bool {
	var ie *InvocationError
	return errors.As(err, &ie)
}

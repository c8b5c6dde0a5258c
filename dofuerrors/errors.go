// Package dofuerrors defines the error kinds dofu's core surfaces to callers,
// per the taxonomy in spec.md section 7: errors that must be told apart by
// kind (so the CLI can choose an exit code and a message shape) rather than
// by string-matching.
package dofuerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// UserError reports bad input discovered before any side effect happened:
// an unknown module name, a duplicate registration, a dependency cycle.
type UserError struct {
	Msg string
}

func (e *UserError) Error() string { return e.Msg }

// NewUserError builds a UserError, formatting like fmt.Errorf.
func NewUserError(format string, args ...interface{}) error {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// EnvironmentError reports that the host can't satisfy a requirement: no
// platform in a PackageRequirement's table matches, no configured backend is
// available, or a command probe failed when it was required to succeed.
type EnvironmentError struct {
	Msg string
}

func (e *EnvironmentError) Error() string { return e.Msg }

func NewEnvironmentError(format string, args ...interface{}) error {
	return &EnvironmentError{Msg: fmt.Sprintf(format, args...)}
}

// ExternalCommandFailure wraps a non-zero exit from git, a package backend,
// or an arbitrary shell invocation.
type ExternalCommandFailure struct {
	Cmdline string
	Stderr  string
	Cause   error
}

func (e *ExternalCommandFailure) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command failed: %s: %s", e.Cmdline, e.Stderr)
	}
	return fmt.Sprintf("command failed: %s", e.Cmdline)
}

func (e *ExternalCommandFailure) Unwrap() error { return e.Cause }

func NewExternalCommandFailure(cmdline, stderr string, cause error) error {
	return &ExternalCommandFailure{Cmdline: cmdline, Stderr: stderr, Cause: cause}
}

// FilesystemPreconditionError reports that the Ensure protocol (spec.md
// section 4.8) exhausted its strategy without satisfying its condition.
type FilesystemPreconditionError struct {
	Action string
	Reason string
}

func (e *FilesystemPreconditionError) Error() string {
	return fmt.Sprintf("Failed to %s: %s", e.Action, e.Reason)
}

func NewFilesystemPreconditionError(action, reason string) error {
	return &FilesystemPreconditionError{Action: action, Reason: reason}
}

// JournalCorruption reports that the persisted equipment.yaml could not be
// deserialized.
type JournalCorruption struct {
	Path  string
	Cause error
}

func (e *JournalCorruption) Error() string {
	return fmt.Sprintf("journal at %s is corrupt: %s", e.Path, e.Cause)
}

func (e *JournalCorruption) Unwrap() error { return e.Cause }

func NewJournalCorruption(path string, cause error) error {
	return &JournalCorruption{Path: path, Cause: cause}
}

// InternalInvariantViolation is an assert-style error: a transaction was
// reopened after commit, a rollback cursor pointed outside the record slice,
// and similar states that should be structurally impossible.
type InternalInvariantViolation struct {
	Msg string
}

func (e *InternalInvariantViolation) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.Msg)
}

func NewInternalInvariantViolation(format string, args ...interface{}) error {
	return &InternalInvariantViolation{Msg: fmt.Sprintf(format, args...)}
}

// Wrap and Wrapf re-export github.com/pkg/errors so callers only need to
// import this package at call sites that also construct a typed error.
var (
	Wrap  = errors.Wrap
	Wrapf = errors.Wrapf
	Cause = errors.Cause
	New   = errors.New
)

// Package command implements spec.md section 4.4: the UndoableCommand sum
// type and its ten concrete variants. Grounded on golang-dep's
// "fix/manifest" ops style (struct-per-operation, exec method, recorded
// bookkeeping fields) generalized from dependency-file edits to
// filesystem/shell mutations.
package command

import "github.com/limoiie/dofu/capability"

// SpecTuple is the value-identity of a command's declared intent, used to
// find the common prefix between a journaled command sequence and a
// newly declared one (spec.md section 4.7). It excludes any bookkeeping
// filled in at exec time.
type SpecTuple [5]string

// UndoableCommand is the common contract every concrete command variant
// implements. exec/undo never panic or return a Go error for a failed
// underlying operation — failures are captured in the ExecutionResult
// itself (stderr carries the reason), per spec.md section 3's
// "failures... are always captured as a failed result" rule.
type UndoableCommand interface {
	// Kind names the wire discriminator tag for this variant.
	Kind() string
	// Exec performs the command. It always returns a result, even on
	// failure (Ok()==false); it never panics.
	Exec(fs capability.FsOps) capability.ExecutionResult
	// Undo reverses Exec's effect, if Exec recorded that it did anything.
	// Returns a successful result (Ok()==true) when there is nothing to undo.
	Undo(fs capability.FsOps) capability.ExecutionResult
	// Cmdline renders a human-readable, display-only description.
	Cmdline() string
	// SpecTuple is the value-identity used for step matching across
	// runs; it must exclude any bookkeeping set during Exec.
	SpecTuple() SpecTuple
}

// Package transaction implements spec.md section 4.6: an ordered journal
// of executed UndoableCommands with a status machine and a rollback
// cursor, so a partially-applied sequence can be unwound precisely.
//
// Grounded on golang-dep's SafeWriter/txn_writer.go scoped-commit shape
// (stage work, commit or roll back as a unit), generalized from a single
// file-write transaction to a sequence of arbitrary undoable commands.
package transaction

import (
	"github.com/limoiie/dofu/capability"
	"github.com/limoiie/dofu/command"
	"github.com/limoiie/dofu/dofuerrors"
)

// Status is the lifecycle state of a Transaction, per spec.md section 3.
type Status int

const (
	Pristine Status = iota
	Started
	Committed
	RolledBack
	Failed
	FailedRollback
)

func (s Status) String() string {
	switch s {
	case Pristine:
		return "PRISTINE"
	case Started:
		return "STARTED"
	case Committed:
		return "COMMITTED"
	case RolledBack:
		return "ROLLED_BACK"
	case Failed:
		return "FAILED"
	case FailedRollback:
		return "FAILED_ROLLBACK"
	default:
		return "UNKNOWN"
	}
}

// ParseStatus parses Status.String()'s output back into a Status.
func ParseStatus(s string) Status {
	switch s {
	case "STARTED":
		return Started
	case "COMMITTED":
		return Committed
	case "ROLLED_BACK":
		return RolledBack
	case "FAILED":
		return Failed
	case "FAILED_ROLLBACK":
		return FailedRollback
	default:
		return Pristine
	}
}

// Transaction is an ordered list of executed commands plus enough state
// to roll them back precisely on failure (spec.md section 3).
type Transaction struct {
	CommitID string
	Records  []command.UndoableCommand
	Status   Status

	// RollbackCursor is -1 when no record has been rolled back yet;
	// otherwise it is the index of the last record that *was* rolled
	// back.
	RollbackCursor int
}

// New starts a fresh transaction for the given module commit id.
func New(commitID string) *Transaction {
	return &Transaction{CommitID: commitID, Status: Started, RollbackCursor: -1}
}

// EffectLen is the number of records still reflecting currently applied
// effects: every record, unless a rollback has happened, in which case
// everything from the cursor onward has been undone.
func (t *Transaction) EffectLen() int {
	if t.RollbackCursor == -1 {
		return len(t.Records)
	}
	return t.RollbackCursor
}

// EffectRecords is Records[:EffectLen()].
func (t *Transaction) EffectRecords() []command.UndoableCommand {
	return t.Records[:t.EffectLen()]
}

// Append records a successfully executed command. It is only valid while
// Status is Started.
func (t *Transaction) Append(cmd command.UndoableCommand) error {
	if t.Status != Started {
		return dofuerrors.NewInternalInvariantViolation(
			"cannot append to a transaction in state %s", t.Status)
	}
	t.Records = append(t.Records, cmd)
	return nil
}

// Commit marks the transaction as successfully completed.
func (t *Transaction) Commit() error {
	if t.Status != Started {
		return dofuerrors.NewInternalInvariantViolation(
			"cannot commit a transaction in state %s", t.Status)
	}
	t.Status = Committed
	return nil
}

// Rollback undoes every effect-still-applied record from the end
// backwards, advancing RollbackCursor after each success. On the first
// failing undo it sets FailedRollback and returns the error, leaving the
// cursor at the last record that was undone successfully, so EffectLen
// still covers the record that failed and a later rollback retries it.
// The terminal status on a clean unwind is Failed, never RolledBack,
// whichever caller triggered the rollback (spec.md section 8: a
// rolled-back transaction's status is FAILED, or FAILED_ROLLBACK if undo
// itself failed).
func (t *Transaction) Rollback(fs capability.FsOps) error {
	t.Status = Failed
	for i := t.EffectLen() - 1; i >= 0; i-- {
		res := t.Records[i].Undo(fs)
		if !res.Ok() {
			t.Status = FailedRollback
			return dofuerrors.NewExternalCommandFailure(res.Cmdline, res.Stderr, nil)
		}
		t.RollbackCursor = i
	}
	return nil
}

// RollbackLazily returns an iterator-like closure that undoes one record
// per call, in the same reverse order as Rollback, so callers (the sync
// algorithm) can interleave rollback steps with forward execution of a
// new transaction. The returned function returns (done=true) once there
// is nothing left to undo, and returns an error (with done=true) on the
// first failing undo.
func (t *Transaction) RollbackLazily(fs capability.FsOps) func() (done bool, err error) {
	i := t.EffectLen() - 1
	started := false
	return func() (bool, error) {
		if !started {
			t.Status = Failed
			started = true
		}
		if i < 0 {
			return true, nil
		}
		res := t.Records[i].Undo(fs)
		if !res.Ok() {
			t.Status = FailedRollback
			return true, dofuerrors.NewExternalCommandFailure(res.Cmdline, res.Stderr, nil)
		}
		t.RollbackCursor = i
		i--
		return i < 0, nil
	}
}

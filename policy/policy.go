// Package policy implements spec.md section 4.8: the Strategy/Options/
// dry-run state machine that governs every destructive filesystem
// precondition. Grounded on the teacher's Ctx/flag-parsing split
// (context.go, cmd/dep/main.go's process-wide verbose flag) generalized
// into an explicit value threaded through capability constructors, per
// spec.md section 9's design note that Options must never be read via
// ambient access during an operation.
package policy

import "github.com/limoiie/dofu/dofuerrors"

// Strategy is the policy governing how a destructive filesystem
// precondition gets resolved when it does not already hold.
type Strategy int

const (
	// QUIT fails immediately, surfacing a FilesystemPreconditionError.
	QUIT Strategy = iota
	// FORCE takes the overwriting remedy (delete the conflicting path).
	FORCE
	// AUTO takes the non-intrusive remedy (move the conflicting path aside).
	AUTO
	// ASK prompts the user to pick a strategy, then dispatches recursively.
	ASK
)

func (s Strategy) String() string {
	switch s {
	case QUIT:
		return "quit"
	case FORCE:
		return "force"
	case AUTO:
		return "auto"
	case ASK:
		return "ask"
	default:
		return "unknown"
	}
}

// ParseStrategy parses one of "ask", "force", "auto", "quit".
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "ask":
		return ASK, nil
	case "force":
		return FORCE, nil
	case "auto":
		return AUTO, nil
	case "quit":
		return QUIT, nil
	default:
		return 0, dofuerrors.NewUserError("unknown strategy %q", s)
	}
}

// Options is a process-wide configuration value. It is constructed once at
// CLI entry and never mutated thereafter; the core never reads it from a
// package-level global, only from an explicit parameter or field.
type Options struct {
	DryRun   bool
	Strategy Strategy
}

// Default returns the CLI's default Options: no dry-run, QUIT strategy.
func Default() Options {
	return Options{DryRun: false, Strategy: QUIT}
}

// Condition is a precondition the Ensure protocol checks before allowing a
// destructive filesystem operation to proceed.
type Condition interface {
	// Holds reports whether the condition is currently satisfied.
	Holds() (bool, error)
	// Describe names the condition for error messages, e.g. "path exists".
	Describe() string
}

// Remedy performs the side effect that would make a Condition hold, under a
// specific decided Strategy. AUTO and FORCE each have one concrete remedy;
// ASK resolves to one of them via a Chooser before a remedy runs.
type Remedy interface {
	// Force performs the overwriting remedy.
	Force() error
	// Auto performs the non-intrusive remedy.
	Auto() error
}

// Chooser lets the ASK strategy ask the user to pick a concrete strategy
// when a precondition does not hold. It is implemented by the adapter
// capability.NewStrategyChooser builds around a capability.Prompt; declared here (rather than imported from capability)
// to avoid a dependency cycle, since capability constructors take an
// Options value.
type Chooser interface {
	ChooseStrategy(action string) (Strategy, error)
}

// Ensure runs the Condition/Strategy state machine described in spec.md
// section 4.8. action names the operation for error messages (e.g.
// "symlink /a to /b"). In dry-run mode, Ensure returns success without
// performing any remedy, so the wrapped operation also no-ops.
func Ensure(opts Options, action string, cond Condition, remedy Remedy, chooser Chooser) error {
	ok, err := cond.Holds()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	if opts.DryRun {
		return nil
	}

	switch opts.Strategy {
	case QUIT:
		return dofuerrors.NewFilesystemPreconditionError(action, cond.Describe()+" does not hold")
	case FORCE:
		if err := remedy.Force(); err != nil {
			return err
		}
		return recheck(action, cond)
	case AUTO:
		if err := remedy.Auto(); err != nil {
			return err
		}
		return recheck(action, cond)
	case ASK:
		chosen, err := chooser.ChooseStrategy(action)
		if err != nil {
			return err
		}
		if chosen == ASK {
			// TRY-AGAIN: re-run Ensure with the same options, which checks
			// the condition again and, if it still fails, asks again.
			return Ensure(opts, action, cond, remedy, chooser)
		}
		return Ensure(Options{DryRun: opts.DryRun, Strategy: chosen}, action, cond, remedy, chooser)
	default:
		return dofuerrors.NewInternalInvariantViolation("unknown strategy %v", opts.Strategy)
	}
}

func recheck(action string, cond Condition) error {
	ok, err := cond.Holds()
	if err != nil {
		return err
	}
	if !ok {
		return dofuerrors.NewFilesystemPreconditionError(action, cond.Describe()+" still does not hold after remedy")
	}
	return nil
}

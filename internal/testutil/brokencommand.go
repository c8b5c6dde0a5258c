package testutil

import (
	"github.com/limoiie/dofu/capability"
	"github.com/limoiie/dofu/command"
)

// BrokenCommand is a command.UndoableCommand whose Exec always fails, for
// exercising mid-transaction rollback (spec.md section 8's partial-failure
// scenario: Mkdir/Symlink/BrokenCmd).
type BrokenCommand struct {
	Name   string
	Undone *bool
}

func (c *BrokenCommand) Kind() string { return "broken" }

func (c *BrokenCommand) Exec(capability.FsOps) capability.ExecutionResult {
	return capability.Failuref(c.Name, "this command always fails")
}

func (c *BrokenCommand) Undo(capability.FsOps) capability.ExecutionResult {
	if c.Undone != nil {
		*c.Undone = true
	}
	return capability.Success("undo: "+c.Name, "")
}

func (c *BrokenCommand) Cmdline() string { return c.Name }

func (c *BrokenCommand) SpecTuple() command.SpecTuple {
	return command.SpecTuple{"broken", c.Name, "", "", ""}
}

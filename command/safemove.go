package command

import (
	"fmt"

	"github.com/limoiie/dofu/capability"
)

// SafeMove moves Src to Dst if Src exists; otherwise it succeeds without
// doing anything. Unlike Move, a missing source is not an error.
type SafeMove struct {
	Src, Dst string
	Moved    bool
}

func (c *SafeMove) Kind() string { return "safe_move" }

func (c *SafeMove) Cmdline() string { return fmt.Sprintf("safe-mv %s %s", c.Src, c.Dst) }

func (c *SafeMove) SpecTuple() SpecTuple {
	return SpecTuple{"safe_move", c.Src, c.Dst, "", ""}
}

func (c *SafeMove) Exec(fs capability.FsOps) capability.ExecutionResult {
	cmdline := c.Cmdline()
	exists, err := fs.Exists(c.Src)
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	if !exists {
		c.Moved = false
		return capability.Success(cmdline, "source absent, skipped")
	}
	if err := fs.Move(c.Src, c.Dst); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	c.Moved = true
	return capability.Success(cmdline, "")
}

func (c *SafeMove) Undo(fs capability.FsOps) capability.ExecutionResult {
	cmdline := "undo: " + c.Cmdline()
	if !c.Moved {
		return capability.Success(cmdline, "nothing to undo")
	}
	if err := fs.Move(c.Dst, c.Src); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

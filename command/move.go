package command

import (
	"fmt"

	"github.com/limoiie/dofu/capability"
)

// Move requires Src to exist; Dst's absence is enforced by the active
// Strategy via fs.EnsureAbsent before Src is moved to Dst.
type Move struct {
	Src, Dst string
	RealDst  string
}

func (c *Move) Kind() string { return "move" }

func (c *Move) Cmdline() string { return fmt.Sprintf("mv %s %s", c.Src, c.Dst) }

func (c *Move) SpecTuple() SpecTuple {
	return SpecTuple{"move", c.Src, c.Dst, "", ""}
}

func (c *Move) Exec(fs capability.FsOps) capability.ExecutionResult {
	cmdline := c.Cmdline()
	if exists, _ := fs.Exists(c.Src); !exists {
		return capability.Failuref(cmdline, "source %s does not exist", c.Src)
	}
	if err := fs.EnsureAbsent(c.Dst, cmdline); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	if err := fs.Move(c.Src, c.Dst); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	c.RealDst = c.Dst
	return capability.Success(cmdline, "")
}

func (c *Move) Undo(fs capability.FsOps) capability.ExecutionResult {
	cmdline := "undo: " + c.Cmdline()
	if c.RealDst == "" {
		return capability.Success(cmdline, "nothing to undo")
	}
	if err := fs.Move(c.RealDst, c.Src); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

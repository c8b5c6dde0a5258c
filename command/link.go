package command

import (
	"fmt"

	"github.com/limoiie/dofu/capability"
)

// Link creates a hard link at Dst pointing to Src. Same precondition
// policy as Symlink but with no idempotency shortcut (spec.md section
// 4.4: "otherwise identical policy to Symlink but no idempotency
// shortcut").
type Link struct {
	Src, Dst string
	RealDst  string
}

func (c *Link) Kind() string { return "link" }

func (c *Link) Cmdline() string { return fmt.Sprintf("ln %s %s", c.Src, c.Dst) }

func (c *Link) SpecTuple() SpecTuple {
	return SpecTuple{"link", c.Src, c.Dst, "", ""}
}

func (c *Link) Exec(fs capability.FsOps) capability.ExecutionResult {
	cmdline := c.Cmdline()
	if exists, _ := fs.Exists(c.Src); !exists {
		return capability.Failuref(cmdline, "source %s does not exist", c.Src)
	}
	if err := fs.EnsureAbsent(c.Dst, cmdline); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	if err := fs.Link(c.Src, c.Dst); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	c.RealDst = c.Dst
	return capability.Success(cmdline, "")
}

func (c *Link) Undo(fs capability.FsOps) capability.ExecutionResult {
	cmdline := "undo: " + c.Cmdline()
	if c.RealDst == "" {
		return capability.Success(cmdline, "nothing to undo")
	}
	if err := fs.Unlink(c.RealDst); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

package command

import (
	"fmt"

	"github.com/limoiie/dofu/capability"
)

// Symlink creates a symbolic link at Dst pointing to Src. Idempotent: if
// Dst is already a symlink pointing to Src, Exec succeeds without
// recording anything to undo.
type Symlink struct {
	Src, Dst string
	// RealDst is set to Dst iff this Exec actually created the link (so
	// Undo knows whether there is anything to unlink).
	RealDst string
}

func (c *Symlink) Kind() string { return "symlink" }

func (c *Symlink) Cmdline() string { return fmt.Sprintf("ln -s %s %s", c.Src, c.Dst) }

func (c *Symlink) SpecTuple() SpecTuple {
	return SpecTuple{"symlink", c.Src, c.Dst, "", ""}
}

func (c *Symlink) Exec(fs capability.FsOps) capability.ExecutionResult {
	cmdline := c.Cmdline()

	isLink, target, err := fs.IsSymlink(c.Dst)
	if err == nil && isLink && target == c.Src {
		c.RealDst = ""
		return capability.Success(cmdline, "already linked")
	}

	if exists, _ := fs.Exists(c.Src); !exists {
		return capability.Failuref(cmdline, "source %s does not exist", c.Src)
	}
	if err := fs.EnsureAbsent(c.Dst, cmdline); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	if err := fs.Symlink(c.Src, c.Dst); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	c.RealDst = c.Dst
	return capability.Success(cmdline, "")
}

func (c *Symlink) Undo(fs capability.FsOps) capability.ExecutionResult {
	cmdline := "undo: " + c.Cmdline()
	if c.RealDst == "" {
		return capability.Success(cmdline, "nothing to undo")
	}
	if err := fs.Unlink(c.RealDst); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

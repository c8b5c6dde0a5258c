package command

import (
	"fmt"
	"os"

	"github.com/limoiie/dofu/capability"
)

// ChSh changes the user's login shell to Shell (resolved to an absolute
// path) if it differs from $SHELL.
type ChSh struct {
	Shell string

	// OriginShell records the previous $SHELL value when Exec actually
	// changed it; empty means no change was needed.
	OriginShell string
}

func (c *ChSh) Kind() string { return "chsh" }

func (c *ChSh) Cmdline() string { return fmt.Sprintf("chsh -s %s", c.Shell) }

func (c *ChSh) SpecTuple() SpecTuple {
	return SpecTuple{"chsh", c.Shell, "", "", ""}
}

func (c *ChSh) Exec(fs capability.FsOps) capability.ExecutionResult {
	cmdline := c.Cmdline()
	resolved, err := fs.CommandPath(c.Shell)
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}

	current := os.Getenv("SHELL")
	if current == resolved {
		c.OriginShell = ""
		return capability.Success(cmdline, "already the login shell")
	}

	if err := fs.CheckCall(fmt.Sprintf("chsh -s %s", resolved)); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	c.OriginShell = current
	return capability.Success(cmdline, "")
}

func (c *ChSh) Undo(fs capability.FsOps) capability.ExecutionResult {
	cmdline := "undo: " + c.Cmdline()
	if c.OriginShell == "" {
		return capability.Success(cmdline, "nothing to undo")
	}
	if err := fs.CheckCall(fmt.Sprintf("chsh -s %s", c.OriginShell)); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

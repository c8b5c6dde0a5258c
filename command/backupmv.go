package command

import (
	"fmt"

	"github.com/limoiie/dofu/capability"
)

// BackupMv moves Path aside to a free backup name if it exists, else is a
// no-op.
type BackupMv struct {
	Path string
	// BackupPath is recorded when Exec actually moved Path; empty means
	// Path did not exist at Exec time.
	BackupPath string
}

func (c *BackupMv) Kind() string { return "backup_mv" }

func (c *BackupMv) Cmdline() string { return fmt.Sprintf("backup-mv %s", c.Path) }

func (c *BackupMv) SpecTuple() SpecTuple {
	return SpecTuple{"backup_mv", c.Path, "", "", ""}
}

func (c *BackupMv) Exec(fs capability.FsOps) capability.ExecutionResult {
	cmdline := c.Cmdline()
	exists, err := fs.Exists(c.Path)
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	if !exists {
		c.BackupPath = ""
		return capability.Success(cmdline, "nothing to back up")
	}
	backup, err := fs.BackupPath(c.Path, ".dofu.bak")
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	if err := fs.Move(c.Path, backup); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	c.BackupPath = backup
	return capability.Success(cmdline, "")
}

func (c *BackupMv) Undo(fs capability.FsOps) capability.ExecutionResult {
	cmdline := "undo: " + c.Cmdline()
	if c.BackupPath == "" {
		return capability.Success(cmdline, "nothing to undo")
	}
	if err := fs.Move(c.BackupPath, c.Path); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

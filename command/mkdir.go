package command

import (
	"fmt"
	"path/filepath"

	"github.com/limoiie/dofu/capability"
)

// Mkdir creates Path and any missing parent directories (mkdir -p
// semantics). Undo walks back up removing the directories it created,
// stopping at the nearest ancestor that already existed.
type Mkdir struct {
	Path string
	// LastExistPath is the nearest existing ancestor of Path observed at
	// Exec time, or "" if Path itself already existed.
	LastExistPath string
}

func (c *Mkdir) Kind() string { return "mkdir" }

func (c *Mkdir) Cmdline() string { return fmt.Sprintf("mkdir -p %s", c.Path) }

func (c *Mkdir) SpecTuple() SpecTuple {
	return SpecTuple{"mkdir", c.Path, "", "", ""}
}

// nearestExistingAncestor walks up from path (exclusive) until it finds a
// directory that exists, per fs.Exists.
func nearestExistingAncestor(fs capability.FsOps, path string) (string, error) {
	cur := filepath.Dir(path)
	for {
		exists, err := fs.Exists(cur)
		if err != nil {
			return "", err
		}
		if exists {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return cur, nil
		}
		cur = parent
	}
}

func (c *Mkdir) Exec(fs capability.FsOps) capability.ExecutionResult {
	cmdline := c.Cmdline()
	alreadyExists, err := fs.Exists(c.Path)
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	if alreadyExists {
		c.LastExistPath = ""
		if err := fs.MkdirAll(c.Path); err != nil {
			return capability.Failuref(cmdline, "%s", err)
		}
		return capability.Success(cmdline, "already exists")
	}

	ancestor, err := nearestExistingAncestor(fs, c.Path)
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	if err := fs.MkdirAll(c.Path); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	c.LastExistPath = ancestor
	return capability.Success(cmdline, "")
}

func (c *Mkdir) Undo(fs capability.FsOps) capability.ExecutionResult {
	cmdline := "undo: " + c.Cmdline()
	if c.LastExistPath == "" {
		return capability.Success(cmdline, "nothing to undo")
	}
	cur := c.Path
	for cur != c.LastExistPath {
		isDir, err := fs.IsDir(cur)
		if err != nil {
			return capability.Failuref(cmdline, "%s", err)
		}
		if !isDir {
			break
		}
		if err := fs.Rmdir(cur); err != nil {
			return capability.Failuref(cmdline, "%s", err)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return capability.Success(cmdline, "")
}

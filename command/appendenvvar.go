package command

import (
	"fmt"
	"regexp"

	"github.com/limoiie/dofu/capability"
	"github.com/limoiie/dofu/dofuerrors"
)

var exportLineRe = regexp.MustCompile(`^export\s+([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)

// AppendEnvVar ensures an `export VarName=Value` line exists in Path
// (an rc file), inserting it after the last existing export if none
// names VarName yet, or updating VarName's own line in place otherwise.
type AppendEnvVar struct {
	VarName, Value, Path string

	// Changed records whether Exec actually modified the file (false
	// when the variable already held Value).
	Changed bool
	// HadPrevious and PreviousValue record what Undo should restore.
	HadPrevious   bool
	PreviousValue string
}

func (c *AppendEnvVar) Kind() string { return "append_env_var" }

func (c *AppendEnvVar) Cmdline() string {
	return fmt.Sprintf("append-env-var %s=%s in %s", c.VarName, c.Value, c.Path)
}

func (c *AppendEnvVar) SpecTuple() SpecTuple {
	return SpecTuple{"append_env_var", c.VarName, c.Value, c.Path, ""}
}

func (c *AppendEnvVar) Exec(fs capability.FsOps) capability.ExecutionResult {
	cmdline := c.Cmdline()
	content, err := fs.ReadFile(c.Path)
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	lines, trailingNewline := splitKeepTrailingNewline(content)

	lastAnyExportIdx := -1
	lastVarIdx := -1
	lastVarValue := ""
	for i, line := range lines {
		if m := exportLineRe.FindStringSubmatch(line); m != nil {
			lastAnyExportIdx = i
			if m[1] == c.VarName {
				lastVarIdx = i
				lastVarValue = m[2]
			}
		}
	}

	if lastVarIdx >= 0 && lastVarValue == c.Value {
		c.Changed = false
		return capability.Success(cmdline, "already set")
	}

	newLine := fmt.Sprintf("export %s=%s", c.VarName, c.Value)
	if lastVarIdx >= 0 {
		c.HadPrevious = true
		c.PreviousValue = lastVarValue
		lines[lastVarIdx] = newLine
	} else {
		c.HadPrevious = false
		c.PreviousValue = ""
		if lastAnyExportIdx >= 0 {
			lines = insertLine(lines, lastAnyExportIdx+1, newLine)
		} else {
			lines = insertLine(lines, 0, newLine)
		}
	}
	c.Changed = true

	if err := fs.WriteFile(c.Path, joinWithTrailingNewline(lines, trailingNewline)); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

func (c *AppendEnvVar) Undo(fs capability.FsOps) capability.ExecutionResult {
	cmdline := "undo: " + c.Cmdline()
	if !c.Changed {
		return capability.Success(cmdline, "nothing to undo")
	}
	content, err := fs.ReadFile(c.Path)
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	lines, trailingNewline := splitKeepTrailingNewline(content)

	idx := -1
	for i, line := range lines {
		if m := exportLineRe.FindStringSubmatch(line); m != nil && m[1] == c.VarName && m[2] == c.Value {
			idx = i
			break
		}
	}
	if idx < 0 {
		return capability.Failuref(cmdline, "%s", dofuerrors.NewInternalInvariantViolation(
			"append_env_var undo: no export line for %s=%s found in %s", c.VarName, c.Value, c.Path))
	}

	if c.HadPrevious {
		lines[idx] = fmt.Sprintf("export %s=%s", c.VarName, c.PreviousValue)
	} else {
		lines = append(lines[:idx], lines[idx+1:]...)
	}

	if err := fs.WriteFile(c.Path, joinWithTrailingNewline(lines, trailingNewline)); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

func insertLine(lines []string, at int, line string) []string {
	lines = append(lines, "")
	copy(lines[at+1:], lines[at:])
	lines[at] = line
	return lines
}

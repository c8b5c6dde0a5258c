package command

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/limoiie/dofu/capability"
)

var pathExportLineRe = regexp.MustCompile(`^export\s+PATH="(.*)"$`)

const pathExportMaxLineLen = 80

// AppendEnvVarPath inserts NewPath into the last `export PATH="..."` line
// of RcPath's $PATH token list, unless it is already present. If the
// rewritten line would exceed 80 characters, it instead appends a fresh
// `export PATH="$PATH:<path>"` line.
type AppendEnvVarPath struct {
	NewPath, RcPath string

	Noop bool
	// LineIndex is the index (at Exec time) of either the rewritten
	// existing line or the freshly inserted line.
	LineIndex       int
	ModifiedExisting bool
	OriginalLine    string
	InsertedNewLine bool
}

func (c *AppendEnvVarPath) Kind() string { return "append_env_var_path" }

func (c *AppendEnvVarPath) Cmdline() string {
	return fmt.Sprintf("append-path %s to PATH in %s", c.NewPath, c.RcPath)
}

func (c *AppendEnvVarPath) SpecTuple() SpecTuple {
	return SpecTuple{"append_env_var_path", c.NewPath, c.RcPath, "", ""}
}

func (c *AppendEnvVarPath) Exec(fs capability.FsOps) capability.ExecutionResult {
	cmdline := c.Cmdline()
	content, err := fs.ReadFile(c.RcPath)
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	lines, trailingNewline := splitKeepTrailingNewline(content)

	lastIdx := -1
	var tokens []string
	for i, line := range lines {
		if m := pathExportLineRe.FindStringSubmatch(line); m != nil {
			lastIdx = i
			tokens = strings.Split(m[1], ":")
		}
	}
	if lastIdx < 0 {
		return capability.Failuref(cmdline, "no export PATH line found in %s", c.RcPath)
	}

	for _, t := range tokens {
		if t == c.NewPath {
			c.Noop = true
			return capability.Success(cmdline, "already on PATH")
		}
	}

	pathIdx := -1
	for i, t := range tokens {
		if t == "$PATH" {
			pathIdx = i
			break
		}
	}

	var newTokens []string
	if pathIdx <= 0 {
		newTokens = append(append([]string{}, tokens...), c.NewPath)
	} else {
		newTokens = append(append([]string{}, tokens[:pathIdx]...), c.NewPath)
		newTokens = append(newTokens, tokens[pathIdx:]...)
	}
	candidate := fmt.Sprintf(`export PATH="%s"`, strings.Join(newTokens, ":"))

	if len(candidate) <= pathExportMaxLineLen {
		c.ModifiedExisting = true
		c.OriginalLine = lines[lastIdx]
		c.LineIndex = lastIdx
		lines[lastIdx] = candidate
	} else {
		newLine := fmt.Sprintf(`export PATH="$PATH:%s"`, c.NewPath)
		lines = insertLine(lines, lastIdx+1, newLine)
		c.InsertedNewLine = true
		c.LineIndex = lastIdx + 1
	}

	if err := fs.WriteFile(c.RcPath, joinWithTrailingNewline(lines, trailingNewline)); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

func (c *AppendEnvVarPath) Undo(fs capability.FsOps) capability.ExecutionResult {
	cmdline := "undo: " + c.Cmdline()
	if c.Noop {
		return capability.Success(cmdline, "nothing to undo")
	}
	content, err := fs.ReadFile(c.RcPath)
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	lines, trailingNewline := splitKeepTrailingNewline(content)

	if c.InsertedNewLine {
		if c.LineIndex >= len(lines) {
			return capability.Failuref(cmdline, "recorded line index %d out of range", c.LineIndex)
		}
		lines = append(lines[:c.LineIndex], lines[c.LineIndex+1:]...)
	} else if c.ModifiedExisting {
		if c.LineIndex >= len(lines) {
			return capability.Failuref(cmdline, "recorded line index %d out of range", c.LineIndex)
		}
		lines[c.LineIndex] = c.OriginalLine
	}

	if err := fs.WriteFile(c.RcPath, joinWithTrailingNewline(lines, trailingNewline)); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

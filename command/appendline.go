package command

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/limoiie/dofu/capability"
	"github.com/limoiie/dofu/dofuerrors"
)

// AppendLine replaces the first line of Path matching Pattern with Repl,
// or appends Repl as a new line if no line matches.
type AppendLine struct {
	Path, Pattern, Repl string
	// ReplacedLine is the original line that was overwritten, or "" if
	// Repl was appended fresh.
	ReplacedLine string
}

func (c *AppendLine) Kind() string { return "append_line" }

func (c *AppendLine) Cmdline() string {
	return fmt.Sprintf("append-line %s /%s/ -> %q", c.Path, c.Pattern, c.Repl)
}

func (c *AppendLine) SpecTuple() SpecTuple {
	return SpecTuple{"append_line", c.Path, c.Pattern, c.Repl, ""}
}

func splitKeepTrailingNewline(content string) ([]string, bool) {
	hadTrailingNewline := strings.HasSuffix(content, "\n")
	trimmed := strings.TrimSuffix(content, "\n")
	if trimmed == "" {
		return nil, hadTrailingNewline
	}
	return strings.Split(trimmed, "\n"), hadTrailingNewline
}

func joinWithTrailingNewline(lines []string, trailingNewline bool) string {
	out := strings.Join(lines, "\n")
	if trailingNewline {
		out += "\n"
	}
	return out
}

func (c *AppendLine) Exec(fs capability.FsOps) capability.ExecutionResult {
	cmdline := c.Cmdline()
	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return capability.Failuref(cmdline, "invalid pattern %q: %s", c.Pattern, err)
	}

	content, err := fs.ReadFile(c.Path)
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	lines, hadTrailingNewline := splitKeepTrailingNewline(content)

	matched := -1
	for i, line := range lines {
		if re.MatchString(line) {
			matched = i
			break
		}
	}

	if matched >= 0 {
		c.ReplacedLine = lines[matched]
		lines[matched] = c.Repl
	} else {
		c.ReplacedLine = ""
		lines = append(lines, c.Repl)
		hadTrailingNewline = true
	}

	if err := fs.WriteFile(c.Path, joinWithTrailingNewline(lines, hadTrailingNewline)); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

func (c *AppendLine) Undo(fs capability.FsOps) capability.ExecutionResult {
	cmdline := "undo: " + c.Cmdline()
	content, err := fs.ReadFile(c.Path)
	if err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	lines, hadTrailingNewline := splitKeepTrailingNewline(content)

	idx := -1
	for i, line := range lines {
		if strings.HasPrefix(line, c.Repl) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return capability.Failuref(cmdline, "%s", dofuerrors.NewInternalInvariantViolation(
			"append_line undo: no line starting with %q found in %s", c.Repl, c.Path))
	}

	if c.ReplacedLine == "" {
		lines = append(lines[:idx], lines[idx+1:]...)
	} else {
		lines[idx] = c.ReplacedLine
	}

	if err := fs.WriteFile(c.Path, joinWithTrailingNewline(lines, hadTrailingNewline)); err != nil {
		return capability.Failuref(cmdline, "%s", err)
	}
	return capability.Success(cmdline, "")
}

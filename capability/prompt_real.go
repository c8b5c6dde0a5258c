package capability

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/limoiie/dofu/dofuerrors"
)

// realPrompt is a plain bufio-based chooser. No prompt/TUI library is
// exercised anywhere in the retrieved example pack (checked by grep across
// every repo under _examples/), so this is the stdlib-justified
// implementation spec.md section 4.1 calls for; golang.org/x/term (seen
// used for terminal handling in si/tools/si and silexa/tools/silexa) is
// wired in to detect a non-interactive session: there Choose returns the
// preselection and Confirm returns the default, without reading input.
type realPrompt struct {
	in  io.Reader
	out io.Writer
	fd  int
}

// NewPrompt constructs the production Prompt capability, reading from
// os.Stdin and writing to os.Stdout.
func NewPrompt() Prompt {
	return &realPrompt{in: os.Stdin, out: os.Stdout, fd: int(os.Stdin.Fd())}
}

func (p *realPrompt) interactive() bool {
	return term.IsTerminal(p.fd)
}

func (p *realPrompt) Choose(items []string, header string, selected []string) ([]string, error) {
	if !p.interactive() {
		return selected, nil
	}

	fmt.Fprintln(p.out, header)
	selectedSet := make(map[string]bool, len(selected))
	for _, s := range selected {
		selectedSet[s] = true
	}
	for i, item := range items {
		mark := " "
		if selectedSet[item] {
			mark = "*"
		}
		fmt.Fprintf(p.out, "  [%s] %d) %s\n", mark, i+1, item)
	}
	fmt.Fprint(p.out, "Enter comma-separated numbers (blank keeps the preselection): ")

	reader := bufio.NewReader(p.in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, dofuerrors.Wrap(err, "reading prompt input")
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return selected, nil
	}

	var chosen []string
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		idx, err := strconv.Atoi(tok)
		if err != nil || idx < 1 || idx > len(items) {
			return nil, dofuerrors.NewUserError("invalid selection %q", tok)
		}
		chosen = append(chosen, items[idx-1])
	}
	return chosen, nil
}

func (p *realPrompt) Confirm(body string, def bool) (bool, error) {
	if !p.interactive() {
		return def, nil
	}

	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s] ", body, hint)

	reader := bufio.NewReader(p.in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, dofuerrors.Wrap(err, "reading prompt input")
	}
	line = strings.ToLower(strings.TrimSpace(line))
	switch line {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, dofuerrors.NewUserError("unrecognized confirmation %q", line)
	}
}

package command

import (
	"testing"

	"github.com/limoiie/dofu/internal/testutil"
)

func TestChShNoOpWhenAlreadyLoginShell(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")
	fs := testutil.NewFakeFsOps()
	fs.Commands["zsh"] = true
	c := &ChSh{Shell: "zsh"}

	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if c.OriginShell != "" {
		t.Fatalf("expected no origin shell recorded, got %q", c.OriginShell)
	}
}

func TestChShChangesAndUndoesLoginShell(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")
	fs := testutil.NewFakeFsOps()
	fs.Commands["zsh"] = true
	c := &ChSh{Shell: "zsh"}

	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if c.OriginShell != "/bin/bash" {
		t.Fatalf("OriginShell = %q, want /bin/bash", c.OriginShell)
	}

	undo := c.Undo(fs)
	if !undo.Ok() {
		t.Fatalf("undo failed: %+v", undo)
	}
}

func TestChShFailsWhenShellNotOnPath(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")
	fs := testutil.NewFakeFsOps()
	c := &ChSh{Shell: "fish"}

	res := c.Exec(fs)
	if res.Ok() {
		t.Fatal("expected failure when the target shell is not resolvable")
	}
}

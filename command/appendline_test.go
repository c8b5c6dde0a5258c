package command

import (
	"testing"

	"github.com/limoiie/dofu/internal/testutil"
)

func TestAppendLineAppendsWhenNoMatch(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/rc"] = "alpha\nbeta\n"

	c := &AppendLine{Path: "/rc", Pattern: `^source .*common-zshrc`, Repl: "source ~/.common-zshrc"}
	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %s", res.Stderr)
	}
	if c.ReplacedLine != "" {
		t.Fatalf("ReplacedLine = %q, want empty when appending fresh", c.ReplacedLine)
	}
	want := "alpha\nbeta\nsource ~/.common-zshrc\n"
	if fs.Files["/rc"] != want {
		t.Fatalf("content = %q, want %q", fs.Files["/rc"], want)
	}
}

func TestAppendLineReplacesMatchingLine(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/rc"] = "alpha\nsource ~/.old-zshrc\nbeta\n"

	c := &AppendLine{Path: "/rc", Pattern: `^source .*zshrc`, Repl: "source ~/.common-zshrc"}
	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %s", res.Stderr)
	}
	if c.ReplacedLine != "source ~/.old-zshrc" {
		t.Fatalf("ReplacedLine = %q, want %q", c.ReplacedLine, "source ~/.old-zshrc")
	}
	want := "alpha\nsource ~/.common-zshrc\nbeta\n"
	if fs.Files["/rc"] != want {
		t.Fatalf("content = %q, want %q", fs.Files["/rc"], want)
	}
}

func TestAppendLineExecUndoRoundTrip(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	original := "alpha\nsource ~/.old-zshrc\nbeta\n"
	fs.Files["/rc"] = original

	c := &AppendLine{Path: "/rc", Pattern: `^source .*zshrc`, Repl: "source ~/.common-zshrc"}
	if !c.Exec(fs).Ok() {
		t.Fatal("exec failed")
	}
	if !c.Undo(fs).Ok() {
		t.Fatal("undo failed")
	}
	if fs.Files["/rc"] != original {
		t.Fatalf("content after undo = %q, want original %q", fs.Files["/rc"], original)
	}
}

func TestAppendLineReplaceRoundTripPreservesMissingTrailingNewline(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	original := "alpha\nsource ~/.old-zshrc\nbeta"
	fs.Files["/rc"] = original

	c := &AppendLine{Path: "/rc", Pattern: `^source .*zshrc`, Repl: "source ~/.common-zshrc"}
	if !c.Exec(fs).Ok() {
		t.Fatal("exec failed")
	}
	want := "alpha\nsource ~/.common-zshrc\nbeta"
	if fs.Files["/rc"] != want {
		t.Fatalf("content = %q, want %q (no trailing newline should be introduced)", fs.Files["/rc"], want)
	}
	if !c.Undo(fs).Ok() {
		t.Fatal("undo failed")
	}
	if fs.Files["/rc"] != original {
		t.Fatalf("content after undo = %q, want byte-exact original %q", fs.Files["/rc"], original)
	}
}

func TestAppendLineUndoOfFreshAppendRemovesLine(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	original := "alpha\nbeta\n"
	fs.Files["/rc"] = original

	c := &AppendLine{Path: "/rc", Pattern: `^source .*zshrc`, Repl: "source ~/.common-zshrc"}
	if !c.Exec(fs).Ok() {
		t.Fatal("exec failed")
	}
	if !c.Undo(fs).Ok() {
		t.Fatal("undo failed")
	}
	if fs.Files["/rc"] != original {
		t.Fatalf("content after undo = %q, want original %q", fs.Files["/rc"], original)
	}
}

package command

import (
	"testing"

	"github.com/limoiie/dofu/internal/testutil"
)

func TestMoveFailsWhenSourceMissing(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	c := &Move{Src: "/src", Dst: "/dst"}

	res := c.Exec(fs)
	if res.Ok() {
		t.Fatal("expected failure when source is absent")
	}
}

func TestMoveExecAndUndo(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/src"] = "content"
	c := &Move{Src: "/src", Dst: "/dst"}

	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if _, ok := fs.Files["/src"]; ok {
		t.Fatal("expected source to be vacated")
	}
	if fs.Files["/dst"] != "content" {
		t.Fatal("expected content to land at dst")
	}

	undo := c.Undo(fs)
	if !undo.Ok() {
		t.Fatalf("undo failed: %+v", undo)
	}
	if fs.Files["/src"] != "content" {
		t.Fatal("expected undo to move content back to src")
	}
}

func TestMoveQuitsWhenDestinationExists(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/src"] = "content"
	fs.Files["/dst"] = "existing"
	c := &Move{Src: "/src", Dst: "/dst"}

	res := c.Exec(fs)
	if res.Ok() {
		t.Fatal("expected the default quit strategy to fail when destination exists")
	}
	if fs.Files["/src"] != "content" {
		t.Fatal("expected source to remain untouched when the precondition fails")
	}
}

package command

import (
	"testing"

	"github.com/limoiie/dofu/internal/testutil"
)

func TestSafeMoveSkipsWhenSourceAbsent(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	c := &SafeMove{Src: "/src", Dst: "/dst"}

	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if c.Moved {
		t.Fatal("expected Moved to stay false when source is absent")
	}

	undo := c.Undo(fs)
	if !undo.Ok() {
		t.Fatalf("undo failed: %+v", undo)
	}
}

func TestSafeMoveExecAndUndo(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/src"] = "content"
	c := &SafeMove{Src: "/src", Dst: "/dst"}

	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if !c.Moved {
		t.Fatal("expected Moved to be true")
	}
	if fs.Files["/dst"] != "content" {
		t.Fatal("expected content at dst")
	}

	undo := c.Undo(fs)
	if !undo.Ok() {
		t.Fatalf("undo failed: %+v", undo)
	}
	if fs.Files["/src"] != "content" {
		t.Fatal("expected undo to restore content at src")
	}
}

package command

import (
	"testing"

	"github.com/limoiie/dofu/internal/testutil"
)

func TestMkdirCreatesMissingParents(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	c := &Mkdir{Path: "/home/u/.config/app/sub"}

	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if !fs.Dirs["/home/u/.config/app/sub"] {
		t.Fatal("expected target directory to exist")
	}
	if c.LastExistPath == "" {
		t.Fatal("expected LastExistPath to record the nearest pre-existing ancestor")
	}
}

func TestMkdirAlreadyExistsRecordsNoUndo(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Dirs["/home/u/.config/app"] = true
	c := &Mkdir{Path: "/home/u/.config/app"}

	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if c.LastExistPath != "" {
		t.Fatalf("expected empty LastExistPath when already existing, got %q", c.LastExistPath)
	}

	undo := c.Undo(fs)
	if !undo.Ok() {
		t.Fatalf("undo failed: %+v", undo)
	}
	if !fs.Dirs["/home/u/.config/app"] {
		t.Fatal("expected the pre-existing directory to survive undo")
	}
}

func TestMkdirUndoRemovesOnlyCreatedDirectories(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Dirs["/home/u"] = true
	c := &Mkdir{Path: "/home/u/.config/app"}

	if res := c.Exec(fs); !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if c.LastExistPath != "/home/u" {
		t.Fatalf("LastExistPath = %q, want /home/u", c.LastExistPath)
	}

	if res := c.Undo(fs); !res.Ok() {
		t.Fatalf("undo failed: %+v", res)
	}
	if fs.Dirs["/home/u/.config/app"] || fs.Dirs["/home/u/.config"] {
		t.Fatal("expected created directories to be removed by undo")
	}
	if !fs.Dirs["/home/u"] {
		t.Fatal("expected the pre-existing ancestor to survive undo")
	}
}

package command

import (
	"testing"

	"github.com/limoiie/dofu/internal/testutil"
)

func TestSymlinkExecAndUndo(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/src"] = "hi"

	c := &Symlink{Src: "/src", Dst: "/dst"}
	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %s", res.Stderr)
	}
	if target, ok := fs.Symlinks["/dst"]; !ok || target != "/src" {
		t.Fatalf("expected /dst -> /src symlink, got %v", fs.Symlinks)
	}
	if c.RealDst != "/dst" {
		t.Fatalf("RealDst = %q, want /dst", c.RealDst)
	}

	undoRes := c.Undo(fs)
	if !undoRes.Ok() {
		t.Fatalf("undo failed: %s", undoRes.Stderr)
	}
	if _, ok := fs.Symlinks["/dst"]; ok {
		t.Fatal("expected symlink to be removed after undo")
	}
}

func TestSymlinkIsIdempotent(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/src"] = "hi"
	fs.Symlinks["/dst"] = "/src"

	c := &Symlink{Src: "/src", Dst: "/dst"}
	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %s", res.Stderr)
	}
	if c.RealDst != "" {
		t.Fatalf("RealDst = %q, want empty for a no-op exec", c.RealDst)
	}
	// Undo of a no-op exec must also be a no-op: it must not remove the
	// preexisting link.
	undoRes := c.Undo(fs)
	if !undoRes.Ok() {
		t.Fatalf("undo failed: %s", undoRes.Stderr)
	}
	if target, ok := fs.Symlinks["/dst"]; !ok || target != "/src" {
		t.Fatal("expected preexisting symlink to survive undo of a no-op exec")
	}
}

func TestSymlinkFailsWhenSourceMissing(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	c := &Symlink{Src: "/src", Dst: "/dst"}
	if c.Exec(fs).Ok() {
		t.Fatal("expected exec to fail when source does not exist")
	}
}

func TestSymlinkQuitStrategyFailsOnExistingDestination(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/src"] = "hi"
	fs.Files["/dst"] = "conflict"
	fs.Strategy = "quit"

	c := &Symlink{Src: "/src", Dst: "/dst"}
	if c.Exec(fs).Ok() {
		t.Fatal("expected exec to fail under quit strategy when destination exists")
	}
}

func TestSymlinkForceStrategyOverwritesDestination(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/src"] = "hi"
	fs.Files["/dst"] = "conflict"
	fs.Strategy = "force"

	c := &Symlink{Src: "/src", Dst: "/dst"}
	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %s", res.Stderr)
	}
	if target, ok := fs.Symlinks["/dst"]; !ok || target != "/src" {
		t.Fatalf("expected /dst -> /src symlink after force overwrite, got %v", fs.Symlinks)
	}
}

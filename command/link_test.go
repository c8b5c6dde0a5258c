package command

import (
	"testing"

	"github.com/limoiie/dofu/internal/testutil"
)

func TestLinkFailsWhenSourceMissing(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	c := &Link{Src: "/src", Dst: "/dst"}

	res := c.Exec(fs)
	if res.Ok() {
		t.Fatal("expected failure when source is absent")
	}
}

func TestLinkQuitsWhenDestinationExists(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/src"] = "content"
	fs.Files["/dst"] = "existing"
	c := &Link{Src: "/src", Dst: "/dst"}

	res := c.Exec(fs)
	if res.Ok() {
		t.Fatal("expected the default quit strategy to fail when destination exists")
	}
}

func TestLinkExecAndUndo(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/src"] = "content"
	c := &Link{Src: "/src", Dst: "/dst"}

	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if c.RealDst != "/dst" {
		t.Fatalf("RealDst = %q, want /dst", c.RealDst)
	}
	if fs.Files["/dst"] != "content" {
		t.Fatal("expected the link target's content to appear at dst")
	}

	undo := c.Undo(fs)
	if !undo.Ok() {
		t.Fatalf("undo failed: %+v", undo)
	}
}

func TestLinkForceStrategyRemovesConflict(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Strategy = "force"
	fs.Files["/src"] = "content"
	fs.Files["/dst"] = "stale"
	c := &Link{Src: "/src", Dst: "/dst"}

	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if fs.Files["/dst"] != "content" {
		t.Fatal("expected the force strategy to clear the conflict and link through")
	}
}

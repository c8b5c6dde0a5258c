package command

import (
	"testing"

	"github.com/limoiie/dofu/internal/testutil"
)

func TestBackupMvNoOpWhenAbsent(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	c := &BackupMv{Path: "/home/u/.zplug"}

	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if c.BackupPath != "" {
		t.Fatalf("expected no backup path recorded, got %q", c.BackupPath)
	}
}

func TestBackupMvMovesExistingPathAside(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	fs.Files["/home/u/.zplug"] = "stuff"
	c := &BackupMv{Path: "/home/u/.zplug"}

	res := c.Exec(fs)
	if !res.Ok() {
		t.Fatalf("exec failed: %+v", res)
	}
	if c.BackupPath != "/home/u/.zplug.dofu.bak" {
		t.Fatalf("BackupPath = %q, want /home/u/.zplug.dofu.bak", c.BackupPath)
	}
	if _, ok := fs.Files["/home/u/.zplug"]; ok {
		t.Fatal("expected original path to be vacated")
	}
	if fs.Files["/home/u/.zplug.dofu.bak"] != "stuff" {
		t.Fatal("expected contents to be preserved at the backup path")
	}

	undo := c.Undo(fs)
	if !undo.Ok() {
		t.Fatalf("undo failed: %+v", undo)
	}
	if fs.Files["/home/u/.zplug"] != "stuff" {
		t.Fatal("expected undo to restore the original path")
	}
}

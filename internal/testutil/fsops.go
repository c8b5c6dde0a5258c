// Package testutil provides in-memory fakes for dofu's capability
// interfaces, so tests can exercise the core engine deterministically
// without touching the real filesystem, git, or package managers
// (spec.md section 4.1's testing guidance; grounded on golang-dep's
// gps/_testdata fixture style generalized into live fakes rather than
// static fixtures, since dofu's capabilities are behavioral, not data).
package testutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/limoiie/dofu/capability"
	"github.com/limoiie/dofu/dofuerrors"
)

// FakeFsOps is an in-memory FsOps: Files holds regular file contents,
// Dirs holds directories that exist, Symlinks maps a path to its link
// target. DryRun, when true, makes every mutating method a no-op that
// appends to Log instead of touching the maps.
type FakeFsOps struct {
	Files    map[string]string
	Dirs     map[string]bool
	Symlinks map[string]string
	Commands map[string]bool

	DryRun bool
	Log    []string

	// Strategy drives EnsureAbsent, mirroring policy.Strategy without
	// importing the policy package's Chooser machinery: "quit" (default)
	// fails if the path exists, "force" removes it, "auto" moves it aside.
	Strategy string
}

// NewFakeFsOps builds an empty FakeFsOps.
func NewFakeFsOps() *FakeFsOps {
	return &FakeFsOps{
		Files:    make(map[string]string),
		Dirs:     make(map[string]bool),
		Symlinks: make(map[string]string),
		Commands: make(map[string]bool),
		Strategy: "quit",
	}
}

func (f *FakeFsOps) logf(format string, args ...interface{}) {
	f.Log = append(f.Log, fmt.Sprintf(format, args...))
}

func (f *FakeFsOps) Exists(path string) (bool, error) {
	if _, ok := f.Files[path]; ok {
		return true, nil
	}
	if f.Dirs[path] {
		return true, nil
	}
	if _, ok := f.Symlinks[path]; ok {
		return true, nil
	}
	return false, nil
}

func (f *FakeFsOps) IsDir(path string) (bool, error) {
	return f.Dirs[path], nil
}

func (f *FakeFsOps) IsSymlink(path string) (bool, string, error) {
	target, ok := f.Symlinks[path]
	return ok, target, nil
}

func (f *FakeFsOps) Copy(src, dst string) error {
	if f.DryRun {
		f.logf("copy %s to %s", src, dst)
		return nil
	}
	if content, ok := f.Files[src]; ok {
		f.Files[dst] = content
		return nil
	}
	if f.Dirs[src] {
		f.Dirs[dst] = true
		return nil
	}
	return dofuerrors.NewEnvironmentError("fake fs: %s does not exist", src)
}

func (f *FakeFsOps) Link(src, dst string) error {
	if f.DryRun {
		f.logf("link %s to %s", src, dst)
		return nil
	}
	content, ok := f.Files[src]
	if !ok {
		return dofuerrors.NewEnvironmentError("fake fs: %s does not exist", src)
	}
	f.Files[dst] = content
	return nil
}

func (f *FakeFsOps) Symlink(src, dst string) error {
	if f.DryRun {
		f.logf("symlink %s to %s", dst, src)
		return nil
	}
	f.Symlinks[dst] = src
	return nil
}

func (f *FakeFsOps) Unlink(path string) error {
	if f.DryRun {
		f.logf("unlink %s", path)
		return nil
	}
	delete(f.Symlinks, path)
	return nil
}

func (f *FakeFsOps) MkdirAll(path string) error {
	if f.DryRun {
		f.logf("mkdir -p %s", path)
		return nil
	}
	for p := path; p != "." && p != "/" && p != ""; p = filepath.Dir(p) {
		f.Dirs[p] = true
	}
	return nil
}

func (f *FakeFsOps) Move(src, dst string) error {
	if f.DryRun {
		f.logf("move %s to %s", src, dst)
		return nil
	}
	if content, ok := f.Files[src]; ok {
		delete(f.Files, src)
		f.Files[dst] = content
		return nil
	}
	if f.Dirs[src] {
		delete(f.Dirs, src)
		f.Dirs[dst] = true
		return nil
	}
	return dofuerrors.NewEnvironmentError("fake fs: %s does not exist", src)
}

func (f *FakeFsOps) Remove(path string) error {
	if f.DryRun {
		f.logf("remove %s", path)
		return nil
	}
	delete(f.Files, path)
	return nil
}

func (f *FakeFsOps) Rmdir(path string) error {
	if f.DryRun {
		f.logf("rmdir %s", path)
		return nil
	}
	delete(f.Dirs, path)
	return nil
}

func (f *FakeFsOps) RmTree(path string) error {
	if f.DryRun {
		f.logf("remove tree %s", path)
		return nil
	}
	prefix := strings.TrimSuffix(path, "/") + "/"
	for p := range f.Files {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(f.Files, p)
		}
	}
	for p := range f.Dirs {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(f.Dirs, p)
		}
	}
	return nil
}

func (f *FakeFsOps) BackupPath(p, suffix string) (string, error) {
	candidate := p + suffix
	for {
		exists, _ := f.Exists(candidate)
		if !exists {
			return candidate, nil
		}
		candidate += suffix
	}
}

func (f *FakeFsOps) GuardFileUpdate(path string, fn func(tmpPath string) error) error {
	tmp := path + ".dofu.tmp"
	if err := fn(tmp); err != nil {
		delete(f.Files, tmp)
		return err
	}
	if f.DryRun {
		delete(f.Files, tmp)
		f.logf("rename %s to %s", tmp, path)
		return nil
	}
	content, ok := f.Files[tmp]
	if !ok {
		return dofuerrors.NewInternalInvariantViolation("guarded update did not write %s", tmp)
	}
	delete(f.Files, tmp)
	f.Files[path] = content
	return nil
}

func (f *FakeFsOps) CommandPath(cmd string) (string, error) {
	if f.Commands[cmd] {
		return "/usr/bin/" + cmd, nil
	}
	return "", dofuerrors.NewEnvironmentError("command %q not found on PATH", cmd)
}

func (f *FakeFsOps) DoCommandsExist(cmds ...string) bool {
	for _, c := range cmds {
		if !f.Commands[c] {
			return false
		}
	}
	return true
}

func (f *FakeFsOps) Run(sh string) (capability.ExecutionResult, error) {
	return capability.Success(sh, ""), nil
}

func (f *FakeFsOps) CheckCall(sh string) error {
	if f.DryRun {
		f.logf("run %q", sh)
		return nil
	}
	return nil
}

func (f *FakeFsOps) CheckOutput(sh string) (string, error) {
	return "", nil
}

func (f *FakeFsOps) ReadFile(path string) (string, error) {
	return f.Files[path], nil
}

func (f *FakeFsOps) WriteFile(path, content string) error {
	if f.DryRun {
		f.logf("write %d bytes to %s", len(content), path)
		return nil
	}
	f.Files[path] = content
	return nil
}

// EnsureAbsent is a deterministic stand-in for the real policy.Ensure state
// machine: it supports "quit"/"force"/"auto" via f.Strategy, skipping the
// ASK/Chooser branch since tests drive strategy directly.
func (f *FakeFsOps) EnsureAbsent(path, action string) error {
	exists, _ := f.Exists(path)
	if !exists {
		return nil
	}
	if f.DryRun {
		return nil
	}
	switch f.Strategy {
	case "force":
		if f.Dirs[path] {
			return f.RmTree(path)
		}
		return f.Remove(path)
	case "auto":
		backup, err := f.BackupPath(path, ".dofu.bak")
		if err != nil {
			return err
		}
		return f.Move(path, backup)
	default:
		return dofuerrors.NewFilesystemPreconditionError(action, path+" is absent does not hold")
	}
}

// SortedFilePaths returns every tracked regular-file path, sorted, for
// deterministic test assertions.
func (f *FakeFsOps) SortedFilePaths() []string {
	out := make([]string, 0, len(f.Files))
	for p := range f.Files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

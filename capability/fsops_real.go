package capability

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/karrick/godirwalk"
	shutil "github.com/termie/go-shutil"
	"github.com/theckman/go-flock"

	"github.com/limoiie/dofu/dofuerrors"
	dofulog "github.com/limoiie/dofu/log"
	"github.com/limoiie/dofu/policy"
)

// realFsOps is the production FsOps, grounded on golang-dep's
// internal/fs package (CopyDir, RenameWithFallback, IsDir, IsSymlink) and
// gps/filesystem.go, with copy/move semantics delegated to
// github.com/termie/go-shutil and fast tree walks delegated to
// github.com/karrick/godirwalk.
type realFsOps struct {
	opts    policy.Options
	log     *dofulog.Logger
	chooser policy.Chooser
}

// NewFsOps constructs the production FsOps capability. chooser backs the
// ASK strategy; pass capability.NewStrategyChooser(prompt).
func NewFsOps(opts policy.Options, logger *dofulog.Logger, chooser policy.Chooser) FsOps {
	return &realFsOps{opts: opts, log: logger, chooser: chooser}
}

func (f *realFsOps) logDryRun(action string, args ...interface{}) {
	f.log.Infof("[dry-run] would "+action, args...)
}

func (f *realFsOps) Copy(src, dst string) error {
	if f.opts.DryRun {
		f.logDryRun("copy %s to %s", src, dst)
		return nil
	}
	isDir, err := f.IsDir(src)
	if err != nil {
		return dofuerrors.Wrapf(err, "stat %s", src)
	}
	if isDir {
		if err := shutil.CopyTree(src, dst, nil); err != nil {
			return dofuerrors.Wrapf(err, "copy tree %s to %s", src, dst)
		}
		return nil
	}
	if _, err := shutil.Copy(src, dst, false); err != nil {
		return dofuerrors.Wrapf(err, "copy %s to %s", src, dst)
	}
	return nil
}

func (f *realFsOps) Link(src, dst string) error {
	if f.opts.DryRun {
		f.logDryRun("hard link %s to %s", src, dst)
		return nil
	}
	if err := os.Link(src, dst); err != nil {
		return dofuerrors.Wrapf(err, "link %s to %s", src, dst)
	}
	return nil
}

func (f *realFsOps) Symlink(src, dst string) error {
	if f.opts.DryRun {
		f.logDryRun("symlink %s to %s", dst, src)
		return nil
	}
	if err := os.Symlink(src, dst); err != nil {
		return dofuerrors.Wrapf(err, "symlink %s to %s", dst, src)
	}
	return nil
}

func (f *realFsOps) Unlink(path string) error {
	if f.opts.DryRun {
		f.logDryRun("unlink %s", path)
		return nil
	}
	if err := os.Remove(path); err != nil {
		return dofuerrors.Wrapf(err, "unlink %s", path)
	}
	return nil
}

func (f *realFsOps) MkdirAll(path string) error {
	if f.opts.DryRun {
		f.logDryRun("mkdir -p %s", path)
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return dofuerrors.Wrapf(err, "mkdir -p %s", path)
	}
	return nil
}

func (f *realFsOps) Move(src, dst string) error {
	if f.opts.DryRun {
		f.logDryRun("move %s to %s", src, dst)
		return nil
	}
	if err := renameWithFallback(src, dst); err != nil {
		return dofuerrors.Wrapf(err, "move %s to %s", src, dst)
	}
	return nil
}

func (f *realFsOps) Remove(path string) error {
	if f.opts.DryRun {
		f.logDryRun("remove %s", path)
		return nil
	}
	if err := os.Remove(path); err != nil {
		return dofuerrors.Wrapf(err, "remove %s", path)
	}
	return nil
}

func (f *realFsOps) Rmdir(path string) error {
	if f.opts.DryRun {
		f.logDryRun("rmdir %s", path)
		return nil
	}
	if err := os.Remove(path); err != nil {
		return dofuerrors.Wrapf(err, "rmdir %s", path)
	}
	return nil
}

func (f *realFsOps) RmTree(path string) error {
	if f.opts.DryRun {
		n := countFilesUnder(path)
		f.logDryRun("remove %s (%d files)", path, n)
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return dofuerrors.Wrapf(err, "remove tree %s", path)
	}
	return nil
}

// countFilesUnder walks path with godirwalk purely to size a dry-run
// report; errors are swallowed since this is advisory logging only.
func countFilesUnder(path string) int {
	n := 0
	_ = godirwalk.Walk(path, &godirwalk.Options{
		Callback: func(_ string, _ *godirwalk.Dirent) error {
			n++
			return nil
		},
		Unsorted:            true,
		FollowSymbolicLinks: false,
	})
	return n
}

func (f *realFsOps) BackupPath(p, suffix string) (string, error) {
	candidate := p + suffix
	for {
		exists, err := f.Exists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate += suffix
	}
}

func (f *realFsOps) GuardFileUpdate(path string, fn func(tmpPath string) error) (err error) {
	tmp := path
	for i := 0; ; i++ {
		cand := path + ".dofu.tmp"
		if i > 0 {
			cand = path + strings.Repeat(".tmp", i+1)
		}
		if _, statErr := os.Stat(cand); os.IsNotExist(statErr) {
			tmp = cand
			break
		}
	}

	lockPath := path + ".lock"
	fl := flock.NewFlock(lockPath)
	if err := fl.Lock(); err != nil {
		return dofuerrors.Wrapf(err, "locking journal %s", lockPath)
	}
	defer fl.Unlock()

	if err := fn(tmp); err != nil {
		os.Remove(tmp)
		return err
	}

	if f.opts.DryRun {
		os.Remove(tmp)
		f.logDryRun("rename %s to %s", tmp, path)
		return nil
	}

	if err := renameWithFallback(tmp, path); err != nil {
		os.Remove(tmp)
		return dofuerrors.Wrapf(err, "committing guarded update of %s", path)
	}
	return nil
}

func (f *realFsOps) CommandPath(cmd string) (string, error) {
	p, err := exec.LookPath(cmd)
	if err != nil {
		return "", dofuerrors.NewEnvironmentError("command %q not found on PATH", cmd)
	}
	return p, nil
}

func (f *realFsOps) DoCommandsExist(cmds ...string) bool {
	for _, c := range cmds {
		if _, err := exec.LookPath(c); err != nil {
			return false
		}
	}
	return true
}

func (f *realFsOps) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, dofuerrors.Wrapf(err, "stat %s", path)
}

func (f *realFsOps) IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, dofuerrors.Wrapf(err, "stat %s", path)
	}
	return info.IsDir(), nil
}

func (f *realFsOps) IsSymlink(path string) (bool, string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, "", nil
		}
		return false, "", dofuerrors.Wrapf(err, "lstat %s", path)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false, "", nil
	}
	target, err := os.Readlink(path)
	if err != nil {
		return false, "", dofuerrors.Wrapf(err, "readlink %s", path)
	}
	return true, target, nil
}

func (f *realFsOps) Run(sh string) (ExecutionResult, error) {
	cmd := exec.Command("sh", "-c", sh)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	retcode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			retcode = exitErr.ExitCode()
		} else {
			return ExecutionResult{}, dofuerrors.Wrapf(err, "running %s", sh)
		}
	}
	return ExecutionResult{
		Cmdline: sh,
		Retcode: retcode,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}, nil
}

func (f *realFsOps) CheckCall(sh string) error {
	if f.opts.DryRun {
		f.logDryRun("run %q", sh)
		return nil
	}
	res, err := f.Run(sh)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return dofuerrors.NewExternalCommandFailure(sh, res.Stderr, nil)
	}
	return nil
}

func (f *realFsOps) CheckOutput(sh string) (string, error) {
	if f.opts.DryRun {
		f.logDryRun("run %q", sh)
		return "", nil
	}
	res, err := f.Run(sh)
	if err != nil {
		return "", err
	}
	if !res.Ok() {
		return "", dofuerrors.NewExternalCommandFailure(sh, res.Stderr, nil)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// pathAbsentCondition is the policy.Condition "path does not exist".
type pathAbsentCondition struct {
	fs   *realFsOps
	path string
}

func (c pathAbsentCondition) Holds() (bool, error) {
	exists, err := c.fs.Exists(c.path)
	return !exists, err
}

func (c pathAbsentCondition) Describe() string {
	return c.path + " is absent"
}

// pathAbsentRemedy makes pathAbsentCondition hold: FORCE deletes the
// conflicting path outright, AUTO moves it aside to a ".dofu.bak" backup
// (the suffix repeated until the name is free) so no data is lost.
type pathAbsentRemedy struct {
	fs   *realFsOps
	path string
}

func (r pathAbsentRemedy) Force() error {
	isDir, err := r.fs.IsDir(r.path)
	if err != nil {
		return err
	}
	if isDir {
		return r.fs.RmTree(r.path)
	}
	return r.fs.Remove(r.path)
}

func (r pathAbsentRemedy) Auto() error {
	backup, err := r.fs.BackupPath(r.path, ".dofu.bak")
	if err != nil {
		return err
	}
	return r.fs.Move(r.path, backup)
}

func (f *realFsOps) EnsureAbsent(path, action string) error {
	cond := pathAbsentCondition{fs: f, path: path}
	remedy := pathAbsentRemedy{fs: f, path: path}
	return policy.Ensure(f.opts, action, cond, remedy, f.chooser)
}

func (f *realFsOps) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", dofuerrors.Wrapf(err, "reading %s", path)
	}
	return string(data), nil
}

func (f *realFsOps) WriteFile(path, content string) error {
	if f.opts.DryRun {
		f.logDryRun("write %d bytes to %s", len(content), path)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return dofuerrors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// renameWithFallback renames src to dst, falling back to copy+remove when
// the rename fails across filesystems/devices, grounded on golang-dep's
// internal/fs.RenameWithFallback.
func renameWithFallback(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	// EXDEV: cross-device rename. Fall back to copy+remove via go-shutil.
	isDir := false
	if info, statErr := os.Stat(src); statErr == nil {
		isDir = info.IsDir()
	}
	if isDir {
		if cpErr := shutil.CopyTree(src, dst, nil); cpErr != nil {
			return err
		}
	} else {
		if _, cpErr := shutil.Copy(src, dst, false); cpErr != nil {
			return err
		}
	}
	return os.RemoveAll(src)
}

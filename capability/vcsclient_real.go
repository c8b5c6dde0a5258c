package capability

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Masterminds/vcs"

	"github.com/limoiie/dofu/dofuerrors"
	dofulog "github.com/limoiie/dofu/log"
	"github.com/limoiie/dofu/policy"
)

// realVcsClient shells out to git exactly as spec.md section 6 specifies,
// grounded on golang-dep's vcs_repo.go: plain os/exec invocations wrapped
// in github.com/Masterminds/vcs's error types so failures carry the same
// local/remote distinction the teacher's wrapper does.
type realVcsClient struct {
	opts policy.Options
	log  *dofulog.Logger
}

// NewVcsClient constructs the production VcsClient capability.
func NewVcsClient(opts policy.Options, logger *dofulog.Logger) VcsClient {
	return &realVcsClient{opts: opts, log: logger}
}

func (c *realVcsClient) run(cwd string, args ...string) (string, error) {
	cmdline := "git " + strings.Join(args, " ")
	if c.opts.DryRun {
		c.log.Infof("[dry-run] would run %q", cmdline)
		return "", nil
	}
	cmd := exec.Command("git", args...)
	cmd.Dir = cwd
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", dofuerrors.NewExternalCommandFailure(cmdline, stderr.String(), vcs.NewRemoteError("git command failed", err, stderr.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

func (c *realVcsClient) Clone(opts CloneOptions, url, path string) error {
	args := []string{"clone"}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	if opts.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(opts.Depth))
	}
	if opts.Submodules {
		args = append(args, "--recurse-submodules")
	}
	args = append(args, url, path)
	_, err := c.run("", args...)
	return err
}

func (c *realVcsClient) Fetch(path, remote, branch string) error {
	_, err := c.run(path, "fetch", remote, branch)
	return err
}

func (c *realVcsClient) Checkout(path, revision string) error {
	_, err := c.run(path, "checkout", revision)
	return err
}

func (c *realVcsClient) RemoteGetURL(path, remoteName string) (string, error) {
	return c.run(path, "remote", "get-url", remoteName)
}

func (c *realVcsClient) DefaultBranch(path string) (string, error) {
	out, err := c.run(path, "symbolic-ref", "refs/remotes/origin/HEAD", "--short")
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(out, "origin/"), nil
}

func (c *realVcsClient) LastCommitID(path, revision, relpath string) (string, error) {
	args := []string{"log", "-1", "--pretty=%H"}
	if revision != "" {
		args = append(args, revision)
	}
	if relpath != "" {
		args = append(args, "--", relpath)
	}
	return c.run(path, args...)
}

// NormalizeRepoURL normalizes a git remote URL to "https://host/user/repo":
// strips a trailing slash, drops a ".git" suffix, and rewrites
// "git@host:user/repo" and "http://..." forms, per spec.md section 3.
func (c *realVcsClient) NormalizeRepoURL(url string) string {
	return NormalizeRepoURL(url)
}

// NormalizeRepoURL is exported standalone so GitRepoRequirement can
// normalize a URL at construction time without needing a VcsClient.
func NormalizeRepoURL(url string) string {
	u := strings.TrimSpace(url)
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, ".git")

	if strings.HasPrefix(u, "git@") {
		// git@host:user/repo -> https://host/user/repo
		rest := strings.TrimPrefix(u, "git@")
		if idx := strings.Index(rest, ":"); idx >= 0 {
			host := rest[:idx]
			path := rest[idx+1:]
			u = fmt.Sprintf("https://%s/%s", host, path)
		}
	} else if strings.HasPrefix(u, "http://") {
		u = "https://" + strings.TrimPrefix(u, "http://")
	} else if strings.HasPrefix(u, "ssh://git@") {
		u = "https://" + strings.TrimPrefix(u, "ssh://git@")
	}

	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, ".git")
	return u
}

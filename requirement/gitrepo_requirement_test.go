package requirement

import (
	"testing"

	"github.com/limoiie/dofu/internal/testutil"
)

func TestNewGitRepoRequirementNormalizesURL(t *testing.T) {
	req := NewGitRepoRequirement("git@github.com:user/repo.git", "/home/u/.dot", "", "", 0, false)
	want := "https://github.com/user/repo"
	if req.URL != want {
		t.Fatalf("URL = %q, want %q", req.URL, want)
	}
}

func TestGitRepoRequirementEqualKeysByURLOnly(t *testing.T) {
	a := NewGitRepoRequirement("https://github.com/user/repo", "/a", "main", "", 0, false)
	b := NewGitRepoRequirement("https://github.com/user/repo", "/b", "dev", "deadbeef", 1, true)
	if !a.Equal(b) {
		t.Fatal("expected Equal to key solely on normalized URL")
	}
}

func TestGitRepoRequirementIsSatisfied(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	vcs := testutil.NewFakeVcsClient()
	req := NewGitRepoRequirement("https://github.com/user/repo", "/home/u/.dot/plug", "", "", 0, false)

	if req.IsSatisfied(fs, vcs) {
		t.Fatal("expected unsatisfied before the path is cloned")
	}

	if err := req.Install(vcs); err != nil {
		t.Fatalf("install: %v", err)
	}
	fs.Dirs[req.Path] = true

	if !req.IsSatisfied(fs, vcs) {
		t.Fatal("expected satisfied once cloned with a matching origin")
	}
}

func TestGitRepoRequirementInstallChecksOutPinnedCommit(t *testing.T) {
	vcs := testutil.NewFakeVcsClient()
	req := NewGitRepoRequirement("https://github.com/user/repo", "/home/u/.dot/plug", "", "deadbeef", 0, false)
	if err := req.Install(vcs); err != nil {
		t.Fatalf("install: %v", err)
	}
	repo, ok := vcs.Repos[req.Path]
	if !ok {
		t.Fatal("expected repo to be recorded")
	}
	if repo.Revision != "deadbeef" {
		t.Fatalf("revision = %q, want deadbeef", repo.Revision)
	}
}

func TestGitRepoRequirementUninstallNoopsOnMissingPath(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	req := NewGitRepoRequirement("https://github.com/user/repo", "/home/u/.dot/plug", "", "", 0, false)
	if err := req.Uninstall(fs); err != nil {
		t.Fatalf("expected no-op uninstall to succeed, got %v", err)
	}
}

func TestGitRepoRequirementUninstallRemovesTree(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	req := NewGitRepoRequirement("https://github.com/user/repo", "/home/u/.dot/plug", "", "", 0, false)
	fs.Dirs[req.Path] = true
	fs.Files[req.Path+"/README.md"] = "hi"

	if err := req.Uninstall(fs); err != nil {
		t.Fatalf("uninstall: %v", err)
	}
	if fs.Dirs[req.Path] {
		t.Fatal("expected path to be removed")
	}
	if _, ok := fs.Files[req.Path+"/README.md"]; ok {
		t.Fatal("expected nested file to be removed")
	}
}

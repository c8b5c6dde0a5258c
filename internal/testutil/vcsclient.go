package testutil

import (
	"github.com/limoiie/dofu/capability"
	"github.com/limoiie/dofu/dofuerrors"
)

// FakeRepo is the in-memory state of one cloned repository.
type FakeRepo struct {
	OriginURL string
	Revision  string
}

// FakeVcsClient is an in-memory VcsClient keyed by local path.
type FakeVcsClient struct {
	Repos map[string]*FakeRepo
	// Clones counts Clone invocations per url, for assertions that a
	// repeated sync does not reclone.
	Clones map[string]int
}

func NewFakeVcsClient() *FakeVcsClient {
	return &FakeVcsClient{Repos: make(map[string]*FakeRepo), Clones: make(map[string]int)}
}

func (v *FakeVcsClient) Clone(opts capability.CloneOptions, url, path string) error {
	v.Clones[url]++
	rev := opts.Branch
	if rev == "" {
		rev = "main"
	}
	v.Repos[path] = &FakeRepo{OriginURL: url, Revision: rev}
	return nil
}

func (v *FakeVcsClient) Fetch(path, remote, branch string) error {
	if _, ok := v.Repos[path]; !ok {
		return dofuerrors.NewEnvironmentError("fake vcs: no repo at %s", path)
	}
	return nil
}

func (v *FakeVcsClient) Checkout(path, revision string) error {
	r, ok := v.Repos[path]
	if !ok {
		return dofuerrors.NewEnvironmentError("fake vcs: no repo at %s", path)
	}
	r.Revision = revision
	return nil
}

func (v *FakeVcsClient) RemoteGetURL(path, remoteName string) (string, error) {
	r, ok := v.Repos[path]
	if !ok {
		return "", dofuerrors.NewEnvironmentError("fake vcs: no repo at %s", path)
	}
	return r.OriginURL, nil
}

func (v *FakeVcsClient) DefaultBranch(path string) (string, error) {
	return "main", nil
}

func (v *FakeVcsClient) LastCommitID(path, revision, relpath string) (string, error) {
	r, ok := v.Repos[path]
	if !ok {
		return "", dofuerrors.NewEnvironmentError("fake vcs: no repo at %s", path)
	}
	return r.Revision, nil
}

func (v *FakeVcsClient) NormalizeRepoURL(url string) string {
	return capability.NormalizeRepoURL(url)
}

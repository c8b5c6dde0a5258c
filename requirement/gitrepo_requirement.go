package requirement

import (
	"github.com/limoiie/dofu/capability"
	"github.com/limoiie/dofu/dofuerrors"
)

// GitRepoRequirement declares a git repository clone destination, per
// spec.md section 3.
type GitRepoRequirement struct {
	URL        string
	Path       string
	Branch     string
	CommitID   string
	Depth      int
	Submodules bool
}

// NewGitRepoRequirement builds a GitRepoRequirement, normalizing url in
// the constructor (spec.md section 4.3's "__post_init__ normalizes url").
func NewGitRepoRequirement(url, path, branch, commitID string, depth int, submodules bool) GitRepoRequirement {
	return GitRepoRequirement{
		URL:        capability.NormalizeRepoURL(url),
		Path:       path,
		Branch:     branch,
		CommitID:   commitID,
		Depth:      depth,
		Submodules: submodules,
	}
}

// Equal is the value-equality used to key existing gitrepo installations
// by url (spec.md section 4.7).
func (r GitRepoRequirement) Equal(other GitRepoRequirement) bool {
	return r.URL == other.URL
}

// IsSatisfied reports whether Path is a directory whose origin remote
// equals the normalized URL; any error is treated as unsatisfied.
func (r GitRepoRequirement) IsSatisfied(fs capability.FsOps, vcs capability.VcsClient) bool {
	isDir, err := fs.IsDir(r.Path)
	if err != nil || !isDir {
		return false
	}
	origin, err := vcs.RemoteGetURL(r.Path, "origin")
	if err != nil {
		return false
	}
	return capability.NormalizeRepoURL(origin) == r.URL
}

// Install clones the repository and, if CommitID is pinned, checks it
// out.
func (r GitRepoRequirement) Install(vcs capability.VcsClient) error {
	opts := capability.CloneOptions{Branch: r.Branch, Depth: r.Depth, Submodules: r.Submodules}
	if err := vcs.Clone(opts, r.URL, r.Path); err != nil {
		return dofuerrors.Wrapf(err, "cloning %s into %s", r.URL, r.Path)
	}
	if r.CommitID != "" {
		if err := vcs.Checkout(r.Path, r.CommitID); err != nil {
			return dofuerrors.Wrapf(err, "checking out %s in %s", r.CommitID, r.Path)
		}
	}
	return nil
}

// Update fetches and checks out the declared branch (or the remote's
// default branch), then pins to CommitID if declared.
func (r GitRepoRequirement) Update(vcs capability.VcsClient) error {
	branch := r.Branch
	if branch == "" {
		b, err := vcs.DefaultBranch(r.Path)
		if err != nil {
			return dofuerrors.Wrapf(err, "resolving default branch of %s", r.Path)
		}
		branch = b
	}
	if err := vcs.Fetch(r.Path, "origin", branch); err != nil {
		return dofuerrors.Wrapf(err, "fetching %s in %s", branch, r.Path)
	}
	if err := vcs.Checkout(r.Path, branch); err != nil {
		return dofuerrors.Wrapf(err, "checking out %s in %s", branch, r.Path)
	}
	if r.CommitID != "" {
		if err := vcs.Checkout(r.Path, r.CommitID); err != nil {
			return dofuerrors.Wrapf(err, "checking out pinned commit %s in %s", r.CommitID, r.Path)
		}
	}
	return nil
}

// Uninstall removes Path if it exists, else is a no-op.
func (r GitRepoRequirement) Uninstall(fs capability.FsOps) error {
	exists, err := fs.Exists(r.Path)
	if err != nil {
		return dofuerrors.Wrapf(err, "checking %s", r.Path)
	}
	if !exists {
		return nil
	}
	return fs.RmTree(r.Path)
}

package capability

// CloneOptions configures a clone, mirroring GitRepoRequirement's optional
// fields (spec.md section 3).
type CloneOptions struct {
	Branch     string
	Depth      int
	Submodules bool
}

// VcsClient is the only capability that shells out to git, per spec.md
// section 4.1. Grounded on golang-dep's vcs_repo.go, itself built on
// github.com/Masterminds/vcs.
type VcsClient interface {
	Clone(opts CloneOptions, url, path string) error
	Fetch(path, remote, branch string) error
	Checkout(path, revision string) error
	RemoteGetURL(path, remoteName string) (string, error)
	DefaultBranch(path string) (string, error)
	LastCommitID(path, revision, relpath string) (string, error)
	NormalizeRepoURL(url string) string
}

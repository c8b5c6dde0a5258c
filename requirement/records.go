package requirement

// PackageInstallationRecord tracks one installed package: which backend
// (if any) installed it, and whether it was already present on PATH when
// first observed (spec.md section 3). UsedExisting==true records are
// never uninstalled on removal (invariant 3).
type PackageInstallationRecord struct {
	Requirement  PackageRequirement
	Backend      string // "" means no backend was tracked (pre-existing or untracked)
	UsedExisting bool
}

// GitRepoInstallationRecord tracks one cloned repository.
type GitRepoInstallationRecord struct {
	Requirement  GitRepoRequirement
	UsedExisting bool
}

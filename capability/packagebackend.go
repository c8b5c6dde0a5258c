package capability

// PackageSpec names a package and an optional version, mirroring
// PackageRequirement.spec in spec.md section 3.
type PackageSpec struct {
	Package string
	Version string
}

// PackageBackend is a concrete package-manager integration (apt, brew,
// cargo, go, pacman, scoop, choco, yum, bob-nvim, curl-sh), selected via the
// platform registry. Grounded on original_source's package_manager.py
// (PackageManager ABC: install/uninstall/is_available).
type PackageBackend interface {
	// Name identifies the backend for logging and journal persistence,
	// e.g. "apt".
	Name() string
	Install(spec PackageSpec) error
	Uninstall(spec PackageSpec) error
	Update(spec PackageSpec) error
	IsAvailable() bool
}

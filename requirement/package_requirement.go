// Package requirement implements spec.md section 4.3: the two declarative
// requirement kinds (PackageRequirement, GitRepoRequirement) the equipment
// manager reconciles against installed state.
package requirement

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver"

	"github.com/limoiie/dofu/capability"
	"github.com/limoiie/dofu/dofuerrors"
	"github.com/limoiie/dofu/platform"
)

// BackendLookup resolves a symbolic backend name (as named in a
// platform.Table entry) to a concrete capability.PackageBackend. The
// backend package's Registry satisfies this.
type BackendLookup interface {
	Get(name string) (capability.PackageBackend, bool)
}

// PackageRequirement declares a package and the probe command used to
// detect its presence, per spec.md section 3.
type PackageRequirement struct {
	Spec      capability.PackageSpec
	Command   string
	Platforms platform.Table
}

// NewPackageRequirement builds a PackageRequirement.
func NewPackageRequirement(pkg, version, command string, platforms platform.Table) PackageRequirement {
	return PackageRequirement{
		Spec:      capability.PackageSpec{Package: pkg, Version: version},
		Command:   command,
		Platforms: platforms,
	}
}

// IsSatisfied reports whether the probe command exists on PATH.
func (r PackageRequirement) IsSatisfied(fs capability.FsOps) bool {
	return fs.DoCommandsExist(r.Command)
}

// Equal is the value-equality PackageRequirement uses for matching
// existing installation records across syncs (spec.md section 4.7's
// "matches req by value equality").
func (r PackageRequirement) Equal(other PackageRequirement) bool {
	return r.Spec.Package == other.Spec.Package &&
		r.Spec.Version == other.Spec.Version &&
		r.Command == other.Command
}

// SatisfiesVersionConstraint checks an installed version string against
// r.Spec.Version when the latter is a semver constraint (e.g. ">=1.2.0"),
// rather than an exact pin. Backends that cannot report an installed
// version have no use for this; it exists for probes that can.
func (r PackageRequirement) SatisfiesVersionConstraint(installed string) (bool, error) {
	if r.Spec.Version == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(r.Spec.Version)
	if err != nil {
		// Not a constraint expression; fall back to exact string match.
		return installed == r.Spec.Version, nil
	}
	v, err := semver.NewVersion(installed)
	if err != nil {
		return false, dofuerrors.Wrapf(err, "parsing installed version %q", installed)
	}
	return c.Check(v), nil
}

// Install resolves the backend to use via the platform table and invokes
// it, per spec.md section 4.2's iterate-in-order, try-each-on-a-list,
// accumulate-failures rule. Returns the name of the backend that
// succeeded.
func (r PackageRequirement) Install(lookup BackendLookup) (string, error) {
	backends, ok := r.Platforms.FirstMatch()
	if !ok {
		return "", dofuerrors.NewEnvironmentError(
			"no platform in the table matches the running host (declared: %v)", r.Platforms.DeclaredPlatforms())
	}

	var failures []string
	for _, name := range backends {
		b, ok := lookup.Get(name)
		if !ok {
			failures = append(failures, fmt.Sprintf("%s: backend not registered", name))
			continue
		}
		if !b.IsAvailable() {
			failures = append(failures, fmt.Sprintf("%s: not available on this host", name))
			continue
		}
		if err := b.Install(r.Spec); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %s", name, err))
			continue
		}
		return name, nil
	}
	return "", dofuerrors.NewEnvironmentError(
		"could not install %s with any of [%s]: %s", r.Spec.Package, strings.Join(backends, ", "), strings.Join(failures, "; "))
}

// Update invokes backend.update(spec) on the named backend.
func (r PackageRequirement) Update(lookup BackendLookup, backendName string) error {
	if backendName == "" {
		return nil
	}
	b, ok := lookup.Get(backendName)
	if !ok {
		return dofuerrors.NewEnvironmentError("backend %q no longer registered", backendName)
	}
	return b.Update(r.Spec)
}

// Uninstall invokes backend.uninstall(spec); a null backend name is a
// no-op, per spec.md section 4.3.
func (r PackageRequirement) Uninstall(lookup BackendLookup, backendName string) error {
	if backendName == "" {
		return nil
	}
	b, ok := lookup.Get(backendName)
	if !ok {
		return dofuerrors.NewEnvironmentError("backend %q no longer registered", backendName)
	}
	return b.Uninstall(r.Spec)
}

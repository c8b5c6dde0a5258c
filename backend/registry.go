// Package backend implements spec.md section 4.1's concrete PackageBackend
// integrations: apt, brew, cargo, go, pacman, scoop, choco, yum, bob-nvim,
// curl-sh. Each is a thin shell-out grounded on original_source's
// package_manager.py subclasses (AptPackageManager, CargoPackageManager,
// BobNvimPackageManager, CurlShPackageManager gave the exact command
// lines; the rest generalize the same shape).
package backend

import (
	"fmt"

	"github.com/limoiie/dofu/capability"
)

// shellBackend is the common shape every concrete backend shares: an
// install/uninstall/update command template and an availability probe.
type shellBackend struct {
	name      string
	fs        capability.FsOps
	probeCmds []string
	install   func(spec capability.PackageSpec) string
	uninstall func(spec capability.PackageSpec) string
	update    func(spec capability.PackageSpec) string
}

func (b *shellBackend) Name() string { return b.name }

func (b *shellBackend) Install(spec capability.PackageSpec) error {
	return b.fs.CheckCall(b.install(spec))
}

func (b *shellBackend) Uninstall(spec capability.PackageSpec) error {
	if b.uninstall == nil {
		return nil
	}
	return b.fs.CheckCall(b.uninstall(spec))
}

func (b *shellBackend) Update(spec capability.PackageSpec) error {
	if b.update == nil {
		return b.Install(spec)
	}
	return b.fs.CheckCall(b.update(spec))
}

func (b *shellBackend) IsAvailable() bool {
	return b.fs.DoCommandsExist(b.probeCmds...)
}

func versioned(pkg, version string) string {
	if version == "" {
		return pkg
	}
	return fmt.Sprintf("%s=%s", pkg, version)
}

// NewApt builds the apt PackageBackend.
func NewApt(fs capability.FsOps) capability.PackageBackend {
	return &shellBackend{
		name: "apt", fs: fs, probeCmds: []string{"apt"},
		install:   func(s capability.PackageSpec) string { return fmt.Sprintf("sudo apt install -y %s", versioned(s.Package, s.Version)) },
		uninstall: func(s capability.PackageSpec) string { return fmt.Sprintf("sudo apt remove -y %s", s.Package) },
		update:    func(s capability.PackageSpec) string { return fmt.Sprintf("sudo apt install --only-upgrade -y %s", s.Package) },
	}
}

// NewBrew builds the brew PackageBackend.
func NewBrew(fs capability.FsOps) capability.PackageBackend {
	return &shellBackend{
		name: "brew", fs: fs, probeCmds: []string{"brew"},
		install:   func(s capability.PackageSpec) string { return fmt.Sprintf("brew install %s", versioned(s.Package, s.Version)) },
		uninstall: func(s capability.PackageSpec) string { return fmt.Sprintf("brew uninstall %s", s.Package) },
		update:    func(s capability.PackageSpec) string { return fmt.Sprintf("brew upgrade %s", s.Package) },
	}
}

// NewCargo builds the cargo PackageBackend.
func NewCargo(fs capability.FsOps) capability.PackageBackend {
	return &shellBackend{
		name: "cargo", fs: fs, probeCmds: []string{"cargo"},
		install:   func(s capability.PackageSpec) string { return fmt.Sprintf("cargo install %s", s.Package) },
		uninstall: func(s capability.PackageSpec) string { return fmt.Sprintf("cargo uninstall %s", s.Package) },
		update:    func(s capability.PackageSpec) string { return fmt.Sprintf("cargo install --force %s", s.Package) },
	}
}

// NewGo builds the go (go install) PackageBackend.
func NewGo(fs capability.FsOps) capability.PackageBackend {
	return &shellBackend{
		name: "go", fs: fs, probeCmds: []string{"go"},
		install: func(s capability.PackageSpec) string {
			v := s.Version
			if v == "" {
				v = "latest"
			}
			return fmt.Sprintf("go install %s@%s", s.Package, v)
		},
		// go has no uninstall beyond removing the built binary; left nil
		// so uninstall is a no-op, matching spec.md's null-backend rule for
		// backends without a meaningful removal.
	}
}

// NewPacman builds the pacman PackageBackend.
func NewPacman(fs capability.FsOps) capability.PackageBackend {
	return &shellBackend{
		name: "pacman", fs: fs, probeCmds: []string{"pacman"},
		install:   func(s capability.PackageSpec) string { return fmt.Sprintf("sudo pacman -S --noconfirm %s", versioned(s.Package, s.Version)) },
		uninstall: func(s capability.PackageSpec) string { return fmt.Sprintf("sudo pacman -R --noconfirm %s", s.Package) },
		update:    func(s capability.PackageSpec) string { return fmt.Sprintf("sudo pacman -S --noconfirm %s", s.Package) },
	}
}

// NewScoop builds the scoop PackageBackend (Windows).
func NewScoop(fs capability.FsOps) capability.PackageBackend {
	return &shellBackend{
		name: "scoop", fs: fs, probeCmds: []string{"scoop"},
		install:   func(s capability.PackageSpec) string { return fmt.Sprintf("scoop install %s", versioned(s.Package, s.Version)) },
		uninstall: func(s capability.PackageSpec) string { return fmt.Sprintf("scoop uninstall %s", s.Package) },
		update:    func(s capability.PackageSpec) string { return fmt.Sprintf("scoop update %s", s.Package) },
	}
}

// NewChoco builds the choco PackageBackend (Windows).
func NewChoco(fs capability.FsOps) capability.PackageBackend {
	return &shellBackend{
		name: "choco", fs: fs, probeCmds: []string{"choco"},
		install:   func(s capability.PackageSpec) string { return fmt.Sprintf("choco install -y %s", versioned(s.Package, s.Version)) },
		uninstall: func(s capability.PackageSpec) string { return fmt.Sprintf("choco uninstall -y %s", s.Package) },
		update:    func(s capability.PackageSpec) string { return fmt.Sprintf("choco upgrade -y %s", s.Package) },
	}
}

// NewYum builds the yum PackageBackend.
func NewYum(fs capability.FsOps) capability.PackageBackend {
	return &shellBackend{
		name: "yum", fs: fs, probeCmds: []string{"yum"},
		install:   func(s capability.PackageSpec) string { return fmt.Sprintf("sudo yum install -y %s", versioned(s.Package, s.Version)) },
		uninstall: func(s capability.PackageSpec) string { return fmt.Sprintf("sudo yum remove -y %s", s.Package) },
		update:    func(s capability.PackageSpec) string { return fmt.Sprintf("sudo yum update -y %s", s.Package) },
	}
}

// NewBobNvim builds the bob-nvim PackageBackend, grounded directly on
// original_source's BobNvimPackageManager ("bob use latest" /
// "bob uninstall latest").
func NewBobNvim(fs capability.FsOps) capability.PackageBackend {
	return &shellBackend{
		name: "bob-nvim", fs: fs, probeCmds: []string{"bob"},
		install:   func(s capability.PackageSpec) string { return "bob use latest" },
		uninstall: func(s capability.PackageSpec) string { return "bob uninstall latest" },
	}
}

// CurlShSpec extends PackageSpec for the curl-sh backend: the install and
// uninstall shell scripts aren't derivable from a package name, so they're
// carried on the requirement itself (package_manager.py's
// CurlShPackageManager carries them as dataclass fields).
type CurlShSpec struct {
	InstallScript   string
	UninstallScript string
}

// NewCurlSh builds the curl-sh PackageBackend, grounded on
// original_source's CurlShPackageManager. install/uninstall scripts come
// from the CurlShSpec the caller closes over, since unlike every other
// backend there's no package-name-derived command line.
func NewCurlSh(fs capability.FsOps, spec CurlShSpec) capability.PackageBackend {
	return &shellBackend{
		name: "curl-sh", fs: fs, probeCmds: []string{"curl", "sh"},
		install:   func(capability.PackageSpec) string { return spec.InstallScript },
		uninstall: func(capability.PackageSpec) string { return spec.UninstallScript },
	}
}

// Registry looks backends up by name, as PackageRequirement's platform
// table references them symbolically (spec.md section 4.2).
type Registry struct {
	fs       capability.FsOps
	builders map[string]func(capability.FsOps) capability.PackageBackend
}

// NewRegistry builds the standard backend registry.
func NewRegistry(fs capability.FsOps) *Registry {
	return &Registry{
		fs: fs,
		builders: map[string]func(capability.FsOps) capability.PackageBackend{
			"apt":      NewApt,
			"brew":     NewBrew,
			"cargo":    NewCargo,
			"go":       NewGo,
			"pacman":   NewPacman,
			"scoop":    NewScoop,
			"choco":    NewChoco,
			"yum":      NewYum,
			"bob-nvim": NewBobNvim,
		},
	}
}

// Get constructs the named backend, or reports false if unknown.
func (r *Registry) Get(name string) (capability.PackageBackend, bool) {
	b, ok := r.builders[name]
	if !ok {
		return nil, false
	}
	return b(r.fs), true
}

// RegisterCurlSh adds a curl-sh backend instance under the given symbolic
// name, since curl-sh needs a CurlShSpec the generic builder map can't
// supply.
func (r *Registry) RegisterCurlSh(name string, spec CurlShSpec) {
	r.builders[name] = func(fs capability.FsOps) capability.PackageBackend {
		return NewCurlSh(fs, spec)
	}
}

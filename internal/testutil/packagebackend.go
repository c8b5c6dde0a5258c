package testutil

import "github.com/limoiie/dofu/capability"

// FakePackageBackend is an in-memory PackageBackend that records every
// install/uninstall/update call it receives.
type FakePackageBackend struct {
	BackendName string
	Available   bool
	Installed   map[string]string // package -> version

	InstallCalls   []capability.PackageSpec
	UninstallCalls []capability.PackageSpec
	UpdateCalls    []capability.PackageSpec
}

func NewFakePackageBackend(name string) *FakePackageBackend {
	return &FakePackageBackend{BackendName: name, Available: true, Installed: make(map[string]string)}
}

func (b *FakePackageBackend) Name() string { return b.BackendName }

func (b *FakePackageBackend) Install(spec capability.PackageSpec) error {
	b.InstallCalls = append(b.InstallCalls, spec)
	b.Installed[spec.Package] = spec.Version
	return nil
}

func (b *FakePackageBackend) Uninstall(spec capability.PackageSpec) error {
	b.UninstallCalls = append(b.UninstallCalls, spec)
	delete(b.Installed, spec.Package)
	return nil
}

func (b *FakePackageBackend) Update(spec capability.PackageSpec) error {
	b.UpdateCalls = append(b.UpdateCalls, spec)
	b.Installed[spec.Package] = spec.Version
	return nil
}

func (b *FakePackageBackend) IsAvailable() bool { return b.Available }

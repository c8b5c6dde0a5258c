package testutil

import "github.com/limoiie/dofu/capability"

// FakeBackendLookup is a minimal requirement.BackendLookup implementation
// over a fixed set of named fakes.
type FakeBackendLookup struct {
	Backends map[string]capability.PackageBackend
}

func NewFakeBackendLookup() *FakeBackendLookup {
	return &FakeBackendLookup{Backends: make(map[string]capability.PackageBackend)}
}

func (l *FakeBackendLookup) Get(name string) (capability.PackageBackend, bool) {
	b, ok := l.Backends[name]
	return b, ok
}

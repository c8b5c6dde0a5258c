package requirement

import (
	"testing"

	"github.com/limoiie/dofu/internal/testutil"
	"github.com/limoiie/dofu/platform"
)

func anyTable(backends ...string) platform.Table {
	return platform.Table{{Platform: platform.ANY, Backends: backends}}
}

func TestPackageRequirementIsSatisfied(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	req := NewPackageRequirement("zsh", "", "zsh", anyTable("apt"))
	if req.IsSatisfied(fs) {
		t.Fatal("expected unsatisfied before the probe command exists")
	}
	fs.Commands["zsh"] = true
	if !req.IsSatisfied(fs) {
		t.Fatal("expected satisfied once the probe command exists")
	}
}

func TestPackageRequirementEqualIgnoresPlatforms(t *testing.T) {
	a := NewPackageRequirement("zsh", "1.0", "zsh", anyTable("apt"))
	b := NewPackageRequirement("zsh", "1.0", "zsh", anyTable("brew", "curl-sh"))
	if !a.Equal(b) {
		t.Fatal("expected Equal to ignore differing platform tables")
	}
	c := NewPackageRequirement("zsh", "2.0", "zsh", anyTable("apt"))
	if a.Equal(c) {
		t.Fatal("expected Equal to distinguish differing versions")
	}
}

func TestSatisfiesVersionConstraint(t *testing.T) {
	req := NewPackageRequirement("zsh", ">=5.0.0", "zsh", anyTable("apt"))
	ok, err := req.SatisfiesVersionConstraint("5.8.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected 5.8.1 to satisfy >=5.0.0")
	}
	ok, err = req.SatisfiesVersionConstraint("4.3.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected 4.3.0 to not satisfy >=5.0.0")
	}
}

func TestSatisfiesVersionConstraintFallsBackToExactMatch(t *testing.T) {
	req := NewPackageRequirement("zsh", "latest", "zsh", anyTable("apt"))
	ok, err := req.SatisfiesVersionConstraint("latest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected exact-match fallback to succeed")
	}
}

func TestInstallTriesEachBackendInOrder(t *testing.T) {
	lookup := testutil.NewFakeBackendLookup()
	failing := testutil.NewFakePackageBackend("brew")
	failing.Available = false
	lookup.Backends["brew"] = failing
	working := testutil.NewFakePackageBackend("apt")
	lookup.Backends["apt"] = working

	req := NewPackageRequirement("zsh", "", "zsh", anyTable("brew", "apt"))
	used, err := req.Install(lookup)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if used != "apt" {
		t.Fatalf("used backend = %q, want apt", used)
	}
	if len(working.InstallCalls) != 1 {
		t.Fatalf("expected one install call on apt, got %d", len(working.InstallCalls))
	}
}

func TestInstallFailsWhenNoPlatformMatches(t *testing.T) {
	lookup := testutil.NewFakeBackendLookup()
	req := NewPackageRequirement("zsh", "", "zsh", platform.Table{})
	if _, err := req.Install(lookup); err == nil {
		t.Fatal("expected install to fail with an empty platform table")
	}
}

func TestUninstallNoopsOnEmptyBackendName(t *testing.T) {
	lookup := testutil.NewFakeBackendLookup()
	req := NewPackageRequirement("zsh", "", "zsh", anyTable("apt"))
	if err := req.Uninstall(lookup, ""); err != nil {
		t.Fatalf("expected no-op uninstall to succeed, got %v", err)
	}
}

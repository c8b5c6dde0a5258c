package equipment

import (
	"testing"

	"github.com/limoiie/dofu/command"
	dofulog "github.com/limoiie/dofu/log"
	"github.com/limoiie/dofu/internal/testutil"
	"github.com/limoiie/dofu/module"
	"github.com/limoiie/dofu/platform"
	"github.com/limoiie/dofu/requirement"
)

func newTestManager(t *testing.T, reg *module.Registry, fs *testutil.FakeFsOps, vcs *testutil.FakeVcsClient, backends *testutil.FakeBackendLookup) *Manager {
	t.Helper()
	logger := dofulog.New(&discard{}, dofulog.Error)
	mgr, err := NewManager(reg, backends, fs, vcs, logger, "/cache/.persistence/equipment.yaml")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return mgr
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func anyTable(backends ...string) platform.Table {
	return platform.Table{{Platform: platform.ANY, Backends: backends}}
}

func TestEquipInstallsDeclaredPackage(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	vcs := testutil.NewFakeVcsClient()
	backends := testutil.NewFakeBackendLookup()
	apt := testutil.NewFakePackageBackend("apt")
	backends.Backends["apt"] = apt

	reg := module.NewRegistry()
	mod := module.Module{
		Name: "zsh",
		Packages: []requirement.PackageRequirement{
			requirement.NewPackageRequirement("zsh", "", "zsh", anyTable("apt")),
		},
	}
	if err := reg.Register(mod); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	mgr := newTestManager(t, reg, fs, vcs, backends)
	if err := mgr.Equip([]string{"zsh"}); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if len(apt.InstallCalls) != 1 {
		t.Fatalf("expected one install call, got %d", len(apt.InstallCalls))
	}
	meta, ok := mgr.MetaByName("zsh")
	if !ok || meta.Status != module.Installed {
		t.Fatalf("expected zsh to be INSTALLED, got %+v", meta)
	}
}

func TestReSyncIsIdempotentAndDoesNotReinstall(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	vcs := testutil.NewFakeVcsClient()
	backends := testutil.NewFakeBackendLookup()
	apt := testutil.NewFakePackageBackend("apt")
	backends.Backends["apt"] = apt

	reg := module.NewRegistry()
	mod := module.Module{
		Name: "zsh",
		Packages: []requirement.PackageRequirement{
			requirement.NewPackageRequirement("zsh", "", "zsh", anyTable("apt")),
		},
	}
	reg.Register(mod)
	reg.Validate()

	mgr := newTestManager(t, reg, fs, vcs, backends)
	if err := mgr.Sync([]string{"zsh"}); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	// The first sync's Install call makes the probe command appear on
	// PATH in a real host; simulate that so the second sync sees it
	// satisfied and skips reinstalling.
	fs.Commands["zsh"] = true

	if err := mgr.Sync([]string{"zsh"}); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if len(apt.InstallCalls) != 1 {
		t.Fatalf("expected exactly one install call across two syncs, got %d", len(apt.InstallCalls))
	}
}

func TestSyncRespectsDependencyOrder(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	vcs := testutil.NewFakeVcsClient()
	backends := testutil.NewFakeBackendLookup()

	reg := module.NewRegistry()
	reg.Register(module.Module{Name: "a"})
	reg.Register(module.Module{Name: "b", Requires: []string{"a"}})
	reg.Register(module.Module{Name: "c", Requires: []string{"b"}})
	if err := reg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	mgr := newTestManager(t, reg, fs, vcs, backends)
	if err := mgr.Equip([]string{"c"}); err != nil {
		t.Fatalf("equip: %v", err)
	}
	for _, name := range []string{"a", "b", "c"} {
		meta, ok := mgr.MetaByName(name)
		if !ok || meta.Status != module.Installed {
			t.Fatalf("expected %s to be INSTALLED via transitive equip, got %+v", name, meta)
		}
	}
}

func TestEquipRollsBackOnCommandFailure(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	vcs := testutil.NewFakeVcsClient()
	backends := testutil.NewFakeBackendLookup()

	mkdirUndone := false
	mkdir := &command.Mkdir{Path: "/home/u/.config/app"}
	broken := &testutil.BrokenCommand{Name: "broken-step"}
	_ = mkdirUndone

	reg := module.NewRegistry()
	reg.Register(module.Module{
		Name:     "app",
		Commands: []command.UndoableCommand{mkdir, broken},
	})
	reg.Validate()

	mgr := newTestManager(t, reg, fs, vcs, backends)
	err := mgr.Equip([]string{"app"})
	if err == nil {
		t.Fatal("expected equip to fail when a command's Exec fails")
	}
	meta, ok := mgr.MetaByName("app")
	if !ok || meta.Status != module.Broken {
		t.Fatalf("expected app to be BROKEN after a failed command, got %+v", meta)
	}
	// Mkdir's effect should have been rolled back: the directory it
	// created must no longer exist.
	if fs.Dirs["/home/u/.config/app"] {
		t.Fatal("expected Mkdir's effect to be rolled back after the transaction failed")
	}
}

func TestPlanReportsInstallThenOkWithoutMutatingState(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	vcs := testutil.NewFakeVcsClient()
	backends := testutil.NewFakeBackendLookup()
	apt := testutil.NewFakePackageBackend("apt")
	backends.Backends["apt"] = apt

	reg := module.NewRegistry()
	reg.Register(module.Module{
		Name: "zsh",
		Packages: []requirement.PackageRequirement{
			requirement.NewPackageRequirement("zsh", "", "zsh", anyTable("apt")),
		},
	})
	reg.Validate()

	mgr := newTestManager(t, reg, fs, vcs, backends)

	before, err := mgr.Plan([]string{"zsh"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(before) != 1 || len(before[0].Packages) != 1 || before[0].Packages[0].Action != ActionInstall {
		t.Fatalf("expected a pending install action, got %+v", before)
	}
	if len(apt.InstallCalls) != 0 {
		t.Fatal("expected Plan to never call Install")
	}
	if _, ok := mgr.MetaByName("zsh"); ok {
		t.Fatal("expected Plan to leave the journal untouched")
	}

	if err := mgr.Equip([]string{"zsh"}); err != nil {
		t.Fatalf("equip: %v", err)
	}
	fs.Commands["zsh"] = true

	after, err := mgr.Plan([]string{"zsh"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if after[0].Packages[0].Action != ActionOK {
		t.Fatalf("expected an already-satisfied action after equip, got %+v", after[0].Packages[0])
	}
}

func TestRemoveUninstallsNewlyInstalledPackagesButNotUsedExisting(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	vcs := testutil.NewFakeVcsClient()
	backends := testutil.NewFakeBackendLookup()
	apt := testutil.NewFakePackageBackend("apt")
	backends.Backends["apt"] = apt
	fs.Commands["tmux"] = true // preexisting, so equip will mark UsedExisting

	reg := module.NewRegistry()
	reg.Register(module.Module{
		Name: "tmux",
		Packages: []requirement.PackageRequirement{
			requirement.NewPackageRequirement("tmux", "", "tmux", anyTable("apt")),
		},
	})
	reg.Validate()

	mgr := newTestManager(t, reg, fs, vcs, backends)
	if err := mgr.Equip([]string{"tmux"}); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if err := mgr.Remove([]string{"tmux"}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(apt.UninstallCalls) != 0 {
		t.Fatalf("expected no uninstall calls for a used-existing package, got %d", len(apt.UninstallCalls))
	}
	if _, ok := mgr.MetaByName("tmux"); ok {
		t.Fatal("expected meta to be cleared after remove")
	}
}

package persistence

import (
	"testing"

	"github.com/limoiie/dofu/command"
	"github.com/limoiie/dofu/internal/testutil"
	"github.com/limoiie/dofu/module"
	"github.com/limoiie/dofu/platform"
	"github.com/limoiie/dofu/requirement"
	"github.com/limoiie/dofu/transaction"
)

func TestLoadOnMissingFileReturnsEmptyMap(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	got, err := Load(fs, "/cache/.persistence/equipment.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := testutil.NewFakeFsOps()
	path := "/cache/.persistence/equipment.yaml"

	meta := module.NewEquipmentMetaInfo("zsh")
	meta.Status = module.Installed
	meta.PackageInstallations = []requirement.PackageInstallationRecord{
		{
			Requirement: requirement.NewPackageRequirement("zsh", ">=5.0", "zsh", platform.Table{
				{Platform: platform.ANY, Backends: []string{"apt"}},
			}),
			Backend:      "apt",
			UsedExisting: false,
		},
	}
	meta.GitRepoInstallations = []requirement.GitRepoInstallationRecord{
		{
			Requirement:  requirement.NewGitRepoRequirement("https://github.com/u/zplug", "/home/u/.zplug", "master", "", 0, false),
			UsedExisting: false,
		},
	}
	txn := transaction.New("deadbeef")
	txn.Append(&command.Symlink{Src: "/src", Dst: "/dst", RealDst: "/dst"})
	txn.Append(&command.AppendLine{Path: "/rc", Pattern: "^x", Repl: "y", ReplacedLine: "x"})
	txn.Commit()
	meta.Transactions = []*transaction.Transaction{txn}

	input := map[string]*module.EquipmentMetaInfo{"zsh": meta}
	if err := Save(fs, path, input); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(fs, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := loaded["zsh"]
	if !ok {
		t.Fatal("expected zsh entry to round-trip")
	}
	if got.Status != module.Installed {
		t.Fatalf("status = %v, want INSTALLED", got.Status)
	}
	if len(got.PackageInstallations) != 1 || got.PackageInstallations[0].Backend != "apt" {
		t.Fatalf("package installations did not round-trip: %+v", got.PackageInstallations)
	}
	if len(got.GitRepoInstallations) != 1 || got.GitRepoInstallations[0].Requirement.URL != "https://github.com/u/zplug" {
		t.Fatalf("gitrepo installations did not round-trip: %+v", got.GitRepoInstallations)
	}
	if len(got.Transactions) != 1 || len(got.Transactions[0].Records) != 2 {
		t.Fatalf("expected one transaction with two records, got %+v", got.Transactions)
	}
	if got.Transactions[0].Records[0].Kind() != "symlink" || got.Transactions[0].Records[1].Kind() != "append_line" {
		t.Fatalf("command kinds did not round-trip: %+v", got.Transactions[0].Records)
	}
}

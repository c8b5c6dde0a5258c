package module

import "testing"

const sampleTOML = `
name = "zsh"
requires = ["git"]
last_commit_id = "deadbeef"

[[packages]]
package = "zsh"
version = ">=5.0"
command = "zsh"

  [[packages.platforms]]
  platform = "linux"
  backends = ["apt", "pacman"]

  [[packages.platforms]]
  platform = "macos"
  backends = ["brew"]

[[gitrepos]]
url = "https://github.com/zplug/zplug.git"
path = "/home/u/.zplug"
branch = "master"

[[commands]]
kind = "mkdir"
path = "/home/u/.config/app"

[[commands]]
kind = "symlink"
src = "/home/u/.config/app/conf"
dst = "/home/u/.app.conf"
`

func TestLoadFromTOMLParsesFullModule(t *testing.T) {
	mod, err := LoadFromTOML([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("LoadFromTOML: %v", err)
	}
	if mod.Name != "zsh" || mod.LastCommitID != "deadbeef" {
		t.Fatalf("unexpected module identity: %+v", mod)
	}
	if len(mod.Requires) != 1 || mod.Requires[0] != "git" {
		t.Fatalf("requires = %v", mod.Requires)
	}
	if len(mod.Packages) != 1 || mod.Packages[0].Spec.Package != "zsh" {
		t.Fatalf("packages = %+v", mod.Packages)
	}
	if len(mod.Packages[0].Platforms) != 2 {
		t.Fatalf("expected 2 platform rows, got %+v", mod.Packages[0].Platforms)
	}
	if len(mod.GitRepos) != 1 || mod.GitRepos[0].URL != "https://github.com/zplug/zplug" {
		t.Fatalf("gitrepos = %+v", mod.GitRepos)
	}
	if len(mod.Commands) != 2 || mod.Commands[0].Kind() != "mkdir" || mod.Commands[1].Kind() != "symlink" {
		t.Fatalf("commands = %+v", mod.Commands)
	}
}

func TestLoadFromTOMLRejectsMissingName(t *testing.T) {
	if _, err := LoadFromTOML([]byte(`requires = ["git"]`)); err == nil {
		t.Fatal("expected an error for a module with no name")
	}
}

func TestLoadFromTOMLRejectsUnknownCommandKind(t *testing.T) {
	doc := `
name = "broken"
[[commands]]
kind = "teleport"
`
	if _, err := LoadFromTOML([]byte(doc)); err == nil {
		t.Fatal("expected an error for an unrecognized command kind")
	}
}

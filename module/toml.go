package module

import (
	"github.com/pelletier/go-toml"

	"github.com/limoiie/dofu/command"
	"github.com/limoiie/dofu/dofuerrors"
	"github.com/limoiie/dofu/platform"
	"github.com/limoiie/dofu/requirement"
)

// tomlModule mirrors Module's declarative surface as a TOML document, so
// a module catalog (an external collaborator, spec §1) can be authored
// without writing Go, the same way golang-dep's Gopkg.toml lets a project
// declare constraints without writing Go.
type tomlModule struct {
	Name         string   `toml:"name"`
	Requires     []string `toml:"requires"`
	LastCommitID string   `toml:"last_commit_id"`

	Packages []tomlPackage `toml:"packages"`
	GitRepos []tomlGitRepo `toml:"gitrepos"`
	Commands []tomlCommand `toml:"commands"`
}

type tomlPackage struct {
	Package   string           `toml:"package"`
	Version   string           `toml:"version"`
	Command   string           `toml:"command"`
	Platforms []tomlPlatformRow `toml:"platforms"`
}

type tomlPlatformRow struct {
	Platform string   `toml:"platform"`
	Backends []string `toml:"backends"`
}

type tomlGitRepo struct {
	URL        string `toml:"url"`
	Path       string `toml:"path"`
	Branch     string `toml:"branch"`
	CommitID   string `toml:"commit_id"`
	Depth      int    `toml:"depth"`
	Submodules bool   `toml:"submodules"`
}

// tomlCommand declares one command.UndoableCommand by Kind()-discriminated
// fields, using the same Kind() strings as persistence/codec.go's wire
// shape. Field names follow the wire too, except append_env_var_path,
// which takes its directory from `value` and its rc file from `path`.
type tomlCommand struct {
	Kind string `toml:"kind"`

	Src     string `toml:"src"`
	Dst     string `toml:"dst"`
	Path    string `toml:"path"`
	Pattern string `toml:"pattern"`
	Repl    string `toml:"repl"`
	VarName string `toml:"var_name"`
	Value   string `toml:"value"`
	Shell   string `toml:"shell"`
}

func parsePlatform(name string) (platform.Platform, error) {
	switch name {
	case "", "any":
		return platform.ANY, nil
	case "linux":
		return platform.LINUX, nil
	case "macos":
		return platform.MACOS, nil
	case "windows":
		return platform.WINDOWS, nil
	default:
		return 0, dofuerrors.NewUserError("unknown platform %q", name)
	}
}

func (p tomlPlatformRow) toEntry() (platform.Entry, error) {
	pl, err := parsePlatform(p.Platform)
	if err != nil {
		return platform.Entry{}, err
	}
	return platform.Entry{Platform: pl, Backends: p.Backends}, nil
}

func (c tomlCommand) toCommand() (command.UndoableCommand, error) {
	switch c.Kind {
	case "symlink":
		return &command.Symlink{Src: c.Src, Dst: c.Dst}, nil
	case "link":
		return &command.Link{Src: c.Src, Dst: c.Dst}, nil
	case "move":
		return &command.Move{Src: c.Src, Dst: c.Dst}, nil
	case "safe_move":
		return &command.SafeMove{Src: c.Src, Dst: c.Dst}, nil
	case "mkdir":
		return &command.Mkdir{Path: c.Path}, nil
	case "backup_mv":
		return &command.BackupMv{Path: c.Path}, nil
	case "chsh":
		return &command.ChSh{Shell: c.Shell}, nil
	case "append_line":
		return &command.AppendLine{Path: c.Path, Pattern: c.Pattern, Repl: c.Repl}, nil
	case "append_env_var":
		return &command.AppendEnvVar{VarName: c.VarName, Value: c.Value, Path: c.Path}, nil
	case "append_env_var_path":
		return &command.AppendEnvVarPath{NewPath: c.Value, RcPath: c.Path}, nil
	default:
		return nil, dofuerrors.NewUserError("unknown command kind %q", c.Kind)
	}
}

// LoadFromTOML parses data (a single module's TOML document) into a
// Module, resolving its packages/gitrepos/commands sections into the
// same requirement.PackageRequirement/GitRepoRequirement/
// command.UndoableCommand values a Go-literal catalog would build by
// hand. It performs no filesystem I/O itself — callers read data via
// whatever capability.FsOps they already hold.
func LoadFromTOML(data []byte) (Module, error) {
	var doc tomlModule
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Module{}, dofuerrors.NewUserError("parsing module TOML: %s", err)
	}
	if doc.Name == "" {
		return Module{}, dofuerrors.NewUserError("module TOML is missing a name")
	}

	mod := Module{
		Name:         doc.Name,
		Requires:     doc.Requires,
		LastCommitID: doc.LastCommitID,
	}

	for _, p := range doc.Packages {
		table := make(platform.Table, 0, len(p.Platforms))
		for _, row := range p.Platforms {
			entry, err := row.toEntry()
			if err != nil {
				return Module{}, err
			}
			table = append(table, entry)
		}
		mod.Packages = append(mod.Packages, requirement.NewPackageRequirement(
			p.Package, p.Version, p.Command, table))
	}

	for _, g := range doc.GitRepos {
		mod.GitRepos = append(mod.GitRepos, requirement.NewGitRepoRequirement(
			g.URL, g.Path, g.Branch, g.CommitID, g.Depth, g.Submodules))
	}

	for _, c := range doc.Commands {
		cmd, err := c.toCommand()
		if err != nil {
			return Module{}, err
		}
		mod.Commands = append(mod.Commands, cmd)
	}

	return mod, nil
}

// Package module implements spec.md section 4.5: the dependency-graph
// registry over declared Module values, plus (in meta.go) the persisted
// per-module equipment metadata the equipment manager reconciles.
//
// Grounded on golang-dep's gps package-graph handling, generalized from
// an import-graph over Go packages to a much smaller dependency graph
// over named, user-declared modules.
package module

import (
	"github.com/limoiie/dofu/command"
	"github.com/limoiie/dofu/requirement"
)

// Module is the static declaration of one unit of desired state: a name,
// its three ordered requirement/command sequences, and the modules it
// depends on (spec.md section 3).
type Module struct {
	Name     string
	Packages []requirement.PackageRequirement
	GitRepos []requirement.GitRepoRequirement
	Commands []command.UndoableCommand
	Requires []string

	// LastCommitID identifies the VCS revision of the file that declared
	// this module, used as the transaction commit_id recorded on every
	// equip of this module (spec.md section 3: "(name, last_commit_id)"
	// is a module version's identity).
	LastCommitID string
}

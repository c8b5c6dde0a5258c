package module

import (
	"github.com/limoiie/dofu/command"
	"github.com/limoiie/dofu/requirement"
	"github.com/limoiie/dofu/transaction"
)

// Status is a module's equipment lifecycle state, per spec.md section 3.
type Status int

const (
	Pristine Status = iota
	Installed
	Removed
	Broken
)

func (s Status) String() string {
	switch s {
	case Pristine:
		return "PRISTINE"
	case Installed:
		return "INSTALLED"
	case Removed:
		return "REMOVED"
	case Broken:
		return "BROKEN"
	default:
		return "UNKNOWN"
	}
}

// ParseStatus parses Status.String()'s output back into a Status.
func ParseStatus(s string) Status {
	switch s {
	case "INSTALLED":
		return Installed
	case "REMOVED":
		return Removed
	case "BROKEN":
		return Broken
	default:
		return Pristine
	}
}

// EquipmentMetaInfo is the persisted record of everything dofu has done
// for one module: which packages/repos it tracks and every transaction
// of commands it has executed (spec.md section 3).
type EquipmentMetaInfo struct {
	ModuleName string

	PackageInstallations []requirement.PackageInstallationRecord
	GitRepoInstallations []requirement.GitRepoInstallationRecord
	Transactions         []*transaction.Transaction

	Status Status
}

// NewEquipmentMetaInfo builds a fresh, PRISTINE meta record.
func NewEquipmentMetaInfo(moduleName string) *EquipmentMetaInfo {
	return &EquipmentMetaInfo{ModuleName: moduleName, Status: Pristine}
}

// InstalledHashcode is the commit_id of the first transaction (the
// initial equip).
func (m *EquipmentMetaInfo) InstalledHashcode() string {
	if len(m.Transactions) == 0 {
		return ""
	}
	return m.Transactions[0].CommitID
}

// UpdatedHashcode is the commit_id of the most recent transaction.
func (m *EquipmentMetaInfo) UpdatedHashcode() string {
	if len(m.Transactions) == 0 {
		return ""
	}
	return m.Transactions[len(m.Transactions)-1].CommitID
}

// Commands concatenates the effect_records of every transaction in
// order — the view the sync algorithm diffs a newly declared command
// sequence against (spec.md section 3 and 4.7).
func (m *EquipmentMetaInfo) Commands() []command.UndoableCommand {
	var out []command.UndoableCommand
	for _, t := range m.Transactions {
		out = append(out, t.EffectRecords()...)
	}
	return out
}

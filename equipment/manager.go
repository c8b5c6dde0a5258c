// Package equipment implements spec.md section 4.7: the synchronizer
// that reconciles declared modules against installed state, executing
// undoable commands through a transaction and persisting the journal
// after every externally invoked operation.
//
// Grounded on golang-dep's cmd/dep solve-then-write pipeline (resolve,
// then atomically persist Gopkg.lock via SafeWriter), generalized here
// from a single dependency solve to the full equip/remove/sync
// lifecycle over three kinds of declared state.
package equipment

import (
	"github.com/limoiie/dofu/capability"
	"github.com/limoiie/dofu/command"
	"github.com/limoiie/dofu/dofuerrors"
	dofulog "github.com/limoiie/dofu/log"
	"github.com/limoiie/dofu/module"
	"github.com/limoiie/dofu/persistence"
	"github.com/limoiie/dofu/requirement"
	"github.com/limoiie/dofu/transaction"
)

// Manager is the ModuleEquipmentManager of spec.md section 3: a map from
// module name to its persisted meta info, loaded on start and saved
// atomically after each sync/equip/remove.
type Manager struct {
	registry *module.Registry
	backends requirement.BackendLookup
	fs       capability.FsOps
	vcs      capability.VcsClient
	log      *dofulog.Logger

	journalPath string
	meta        map[string]*module.EquipmentMetaInfo
}

// NewManager constructs a Manager, loading the journal at journalPath
// (an empty meta map if it does not yet exist).
func NewManager(
	registry *module.Registry,
	backends requirement.BackendLookup,
	fs capability.FsOps,
	vcs capability.VcsClient,
	log *dofulog.Logger,
	journalPath string,
) (*Manager, error) {
	meta, err := persistence.Load(fs, journalPath)
	if err != nil {
		return nil, err
	}
	return &Manager{
		registry: registry, backends: backends, fs: fs, vcs: vcs, log: log,
		journalPath: journalPath, meta: meta,
	}, nil
}

// save persists the journal unconditionally, per spec.md section 4.7's
// "whether or not the operation succeeded" rule. Any error from the
// operation itself takes precedence over a save error in the returned
// value, but a save failure is always logged.
func (mgr *Manager) save(opErr error) error {
	if err := persistence.Save(mgr.fs, mgr.journalPath, mgr.meta); err != nil {
		mgr.log.Errorf("failed to persist journal: %s", err)
		if opErr == nil {
			return err
		}
	}
	return opErr
}

func (mgr *Manager) currentlyEquipped() []string {
	var out []string
	for name, m := range mgr.meta {
		if m.Status == module.Installed {
			out = append(out, name)
		}
	}
	return out
}

func setMinus(a []string, b map[string]bool) []string {
	var out []string
	for _, n := range a {
		if !b[n] {
			out = append(out, n)
		}
	}
	return out
}

// Sync reconciles the host so that exactly `names` (and their
// dependencies) are equipped: anything currently equipped and not in the
// equip blueprint is removed first, then the equip blueprint is applied.
func (mgr *Manager) Sync(names []string) error {
	equipBlueprint, err := mgr.registry.ResolveEquipBlueprint(names)
	if err != nil {
		return mgr.save(err)
	}

	equipSet := make(map[string]bool, len(equipBlueprint))
	for _, n := range equipBlueprint {
		equipSet[n] = true
	}
	toRemove := setMinus(mgr.currentlyEquipped(), equipSet)

	removeBlueprint, err := mgr.registry.ResolveRemoveBlueprint(toRemove)
	if err != nil {
		return mgr.save(err)
	}

	var opErr error
	if opErr = mgr.removeModules(removeBlueprint); opErr == nil {
		opErr = mgr.equipModules(equipBlueprint)
	}
	return mgr.save(opErr)
}

// Equip applies only the forward half: resolve_equip_blueprint(names)
// then equip each in order.
func (mgr *Manager) Equip(names []string) error {
	blueprint, err := mgr.registry.ResolveEquipBlueprint(names)
	if err != nil {
		return mgr.save(err)
	}
	return mgr.save(mgr.equipModules(blueprint))
}

// Remove applies only the remove half: resolve_remove_blueprint(names)
// then remove each in order.
func (mgr *Manager) Remove(names []string) error {
	blueprint, err := mgr.registry.ResolveRemoveBlueprint(names)
	if err != nil {
		return mgr.save(err)
	}
	return mgr.save(mgr.removeModules(blueprint))
}

func (mgr *Manager) metaFor(name string) *module.EquipmentMetaInfo {
	m, ok := mgr.meta[name]
	if !ok {
		m = module.NewEquipmentMetaInfo(name)
	}
	return m
}

// equipModules runs the three sub-reconciliations for each module in
// blueprint order, marking it BROKEN (and re-raising) on any failure
// while still recording whatever meta state was reached.
func (mgr *Manager) equipModules(blueprint []string) error {
	for _, name := range blueprint {
		mod, err := mgr.registry.ModuleByName(name)
		if err != nil {
			return err
		}
		meta := mgr.metaFor(name)
		mgr.meta[name] = meta

		if err := mgr.syncPackagesStep(mod, meta); err != nil {
			meta.Status = module.Broken
			return err
		}
		if err := mgr.syncGitReposStep(mod, meta); err != nil {
			meta.Status = module.Broken
			return err
		}
		if err := mgr.syncCommandsStep(mod, meta); err != nil {
			meta.Status = module.Broken
			return err
		}
		meta.Status = module.Installed
	}
	return nil
}

// removeModules calls removeOneStep for each module in blueprint order.
func (mgr *Manager) removeModules(blueprint []string) error {
	for _, name := range blueprint {
		meta, ok := mgr.meta[name]
		if !ok {
			continue
		}
		if err := mgr.removeOneStep(meta); err != nil {
			meta.Status = module.Broken
			return err
		}
		meta.Status = module.Removed
		delete(mgr.meta, name)
	}
	return nil
}

// syncPackagesStep reconciles meta.PackageInstallations against
// mod.Packages, per spec.md section 4.7.
func (mgr *Manager) syncPackagesStep(mod module.Module, meta *module.EquipmentMetaInfo) error {
	declared := make([]requirement.PackageRequirement, len(mod.Packages))
	copy(declared, mod.Packages)

	declaredSet := func(r requirement.PackageRequirement) bool {
		for _, d := range declared {
			if d.Equal(r) {
				return true
			}
		}
		return false
	}

	var kept []requirement.PackageInstallationRecord
	for _, inst := range meta.PackageInstallations {
		if !declaredSet(inst.Requirement) || !inst.Requirement.IsSatisfied(mgr.fs) {
			if !inst.UsedExisting && inst.Backend != "" {
				if err := inst.Requirement.Uninstall(mgr.backends, inst.Backend); err != nil {
					return err
				}
			}
			continue
		}
		kept = append(kept, inst)
	}
	meta.PackageInstallations = kept

	for _, req := range declared {
		matched := -1
		for i, inst := range meta.PackageInstallations {
			if inst.Requirement.Equal(req) {
				matched = i
				break
			}
		}
		if matched >= 0 {
			if !meta.PackageInstallations[matched].Requirement.IsSatisfied(mgr.fs) {
				backendUsed, err := req.Install(mgr.backends)
				if err != nil {
					return err
				}
				meta.PackageInstallations[matched] = requirement.PackageInstallationRecord{
					Requirement: req, Backend: backendUsed, UsedExisting: false,
				}
			}
			continue
		}

		if req.IsSatisfied(mgr.fs) {
			meta.PackageInstallations = append(meta.PackageInstallations, requirement.PackageInstallationRecord{
				Requirement: req, Backend: "", UsedExisting: true,
			})
			continue
		}
		backendUsed, err := req.Install(mgr.backends)
		if err != nil {
			return err
		}
		meta.PackageInstallations = append(meta.PackageInstallations, requirement.PackageInstallationRecord{
			Requirement: req, Backend: backendUsed, UsedExisting: false,
		})
	}
	return nil
}

// syncGitReposStep reconciles meta.GitRepoInstallations against
// mod.GitRepos, per spec.md section 4.7.
func (mgr *Manager) syncGitReposStep(mod module.Module, meta *module.EquipmentMetaInfo) error {
	declared := make([]requirement.GitRepoRequirement, len(mod.GitRepos))
	copy(declared, mod.GitRepos)

	byURL := func(url string) (requirement.GitRepoRequirement, bool) {
		for _, d := range declared {
			if d.URL == url {
				return d, true
			}
		}
		return requirement.GitRepoRequirement{}, false
	}

	var kept []requirement.GitRepoInstallationRecord
	for _, inst := range meta.GitRepoInstallations {
		declaredReq, stillDeclared := byURL(inst.Requirement.URL)
		satisfied := inst.Requirement.IsSatisfied(mgr.fs, mgr.vcs)
		if !stillDeclared || !satisfied {
			if err := inst.Requirement.Uninstall(mgr.fs); err != nil {
				return err
			}
			continue
		}
		if declaredReq.Path != inst.Requirement.Path {
			if err := mgr.fs.Move(inst.Requirement.Path, declaredReq.Path); err != nil {
				return err
			}
			inst.Requirement.Path = declaredReq.Path
		}
		kept = append(kept, inst)
	}
	meta.GitRepoInstallations = kept

	for _, req := range declared {
		matched := -1
		for i, inst := range meta.GitRepoInstallations {
			if inst.Requirement.URL == req.URL {
				matched = i
				break
			}
		}
		if matched >= 0 {
			existing := meta.GitRepoInstallations[matched]
			if existing.Requirement.IsSatisfied(mgr.fs, mgr.vcs) {
				if err := existing.Requirement.Update(mgr.vcs); err != nil {
					return err
				}
				continue
			}
			if err := req.Install(mgr.vcs); err != nil {
				return err
			}
			meta.GitRepoInstallations[matched] = requirement.GitRepoInstallationRecord{
				Requirement: req, UsedExisting: false,
			}
			continue
		}

		if req.IsSatisfied(mgr.fs, mgr.vcs) {
			meta.GitRepoInstallations = append(meta.GitRepoInstallations, requirement.GitRepoInstallationRecord{
				Requirement: req, UsedExisting: true,
			})
			continue
		}
		if err := req.Install(mgr.vcs); err != nil {
			return err
		}
		meta.GitRepoInstallations = append(meta.GitRepoInstallations, requirement.GitRepoInstallationRecord{
			Requirement: req, UsedExisting: false,
		})
	}
	return nil
}

// commonPrefixLen returns how many leading commands of `have` and `want`
// share the same SpecTuple.
func commonPrefixLen(have, want []command.UndoableCommand) int {
	n := len(have)
	if len(want) < n {
		n = len(want)
	}
	i := 0
	for i < n && have[i].SpecTuple() == want[i].SpecTuple() {
		i++
	}
	return i
}

// syncCommandsStep diffs the journaled command sequence against the
// newly declared one, keeping their common prefix, rolling back the
// journaled surplus, and executing the declared surplus in a fresh
// transaction, per spec.md section 4.7.
func (mgr *Manager) syncCommandsStep(mod module.Module, meta *module.EquipmentMetaInfo) error {
	journaled := meta.Commands()
	declared := mod.Commands

	prefix := commonPrefixLen(journaled, declared)
	surplusJournaled := journaled[prefix:]
	surplusDeclared := declared[prefix:]

	if len(surplusJournaled) > 0 {
		if err := mgr.rollbackSurplus(meta, len(surplusJournaled)); err != nil {
			return err
		}
	}

	if len(surplusDeclared) == 0 {
		return nil
	}

	txn := transaction.New(mod.LastCommitID)
	for _, cmd := range surplusDeclared {
		res := cmd.Exec(mgr.fs)
		if !res.Ok() {
			// The failed command itself is never appended: only records
			// whose Exec already succeeded are part of the journal,
			// matching original_source's raise-before-append ordering.
			rollErr := txn.Rollback(mgr.fs)
			meta.Transactions = append(meta.Transactions, txn)
			if rollErr != nil {
				return rollErr
			}
			return dofuerrors.NewExternalCommandFailure(res.Cmdline, res.Stderr, nil)
		}
		if err := txn.Append(cmd); err != nil {
			return err
		}
	}
	if err := txn.Commit(); err != nil {
		return err
	}
	meta.Transactions = append(meta.Transactions, txn)
	return nil
}

// rollbackSurplus undoes `count` trailing journaled commands across
// meta.Transactions, newest-first, interleaving each transaction's
// rollback_lazily with the next until count undo steps have happened.
func (mgr *Manager) rollbackSurplus(meta *module.EquipmentMetaInfo, count int) error {
	remaining := count
	for i := len(meta.Transactions) - 1; i >= 0 && remaining > 0; i-- {
		txn := meta.Transactions[i]
		if txn.EffectLen() == 0 {
			continue
		}
		step := txn.RollbackLazily(mgr.fs)
		for remaining > 0 {
			done, err := step()
			if err != nil {
				return err
			}
			remaining--
			if done {
				break
			}
		}
	}
	return nil
}

// removeOneStep rolls back every transaction newest-to-oldest, then
// uninstalls gitrepo records newest-first, then package records
// newest-first, honoring UsedExisting.
func (mgr *Manager) removeOneStep(meta *module.EquipmentMetaInfo) error {
	for i := len(meta.Transactions) - 1; i >= 0; i-- {
		if err := meta.Transactions[i].Rollback(mgr.fs); err != nil {
			return err
		}
	}
	for i := len(meta.GitRepoInstallations) - 1; i >= 0; i-- {
		if err := meta.GitRepoInstallations[i].Requirement.Uninstall(mgr.fs); err != nil {
			return err
		}
	}
	for i := len(meta.PackageInstallations) - 1; i >= 0; i-- {
		inst := meta.PackageInstallations[i]
		if inst.UsedExisting {
			continue
		}
		if err := inst.Requirement.Uninstall(mgr.backends, inst.Backend); err != nil {
			return err
		}
	}
	return nil
}

// MetaByName returns the persisted meta info for name, if any.
func (mgr *Manager) MetaByName(name string) (*module.EquipmentMetaInfo, bool) {
	m, ok := mgr.meta[name]
	return m, ok
}

// EquippedNames lists every module currently INSTALLED.
func (mgr *Manager) EquippedNames() []string {
	return mgr.currentlyEquipped()
}

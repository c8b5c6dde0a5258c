package equipment

import (
	"github.com/limoiie/dofu/command"
	"github.com/limoiie/dofu/module"
)

// Action describes what Plan would do to a single declared requirement
// without actually doing it.
type Action string

const (
	ActionOK      Action = "ok"
	ActionInstall Action = "install"
	ActionUpdate  Action = "update"
)

// ItemPlan names one declared requirement and the Action Plan predicts
// for it.
type ItemPlan struct {
	Name   string
	Action Action
}

// ModulePlan is the read-only preview of what equipping a single module
// would do: which packages/git repos would be installed versus already
// satisfied, and which declared commands would run because they are not
// yet in the journal.
type ModulePlan struct {
	Module   string
	Packages []ItemPlan
	GitRepos []ItemPlan
	Commands []string
}

// Plan computes, for each module resolve_equip_blueprint(names) would
// touch, what sync would do — without installing anything, cloning
// anything, or executing a single command. This is the read-only
// counterpart original_source's inspect.py ran ahead of every apply,
// backing `list --explain`; --dry-run does not use it.
func (mgr *Manager) Plan(names []string) ([]ModulePlan, error) {
	blueprint, err := mgr.registry.ResolveEquipBlueprint(names)
	if err != nil {
		return nil, err
	}

	plans := make([]ModulePlan, 0, len(blueprint))
	for _, name := range blueprint {
		mod, err := mgr.registry.ModuleByName(name)
		if err != nil {
			return nil, err
		}
		meta, hasMeta := mgr.meta[name]

		plans = append(plans, ModulePlan{
			Module:   name,
			Packages: mgr.planPackages(mod, meta, hasMeta),
			GitRepos: mgr.planGitRepos(mod, meta, hasMeta),
			Commands: mgr.planCommands(mod, meta, hasMeta),
		})
	}
	return plans, nil
}

func (mgr *Manager) planPackages(mod module.Module, meta *module.EquipmentMetaInfo, hasMeta bool) []ItemPlan {
	out := make([]ItemPlan, 0, len(mod.Packages))
	for _, req := range mod.Packages {
		action := ActionInstall
		if hasMeta {
			for _, inst := range meta.PackageInstallations {
				if inst.Requirement.Equal(req) && inst.Requirement.IsSatisfied(mgr.fs) {
					action = ActionOK
					break
				}
			}
		}
		if action == ActionInstall && req.IsSatisfied(mgr.fs) {
			action = ActionOK
		}
		out = append(out, ItemPlan{Name: req.Spec.Package, Action: action})
	}
	return out
}

func (mgr *Manager) planGitRepos(mod module.Module, meta *module.EquipmentMetaInfo, hasMeta bool) []ItemPlan {
	out := make([]ItemPlan, 0, len(mod.GitRepos))
	for _, req := range mod.GitRepos {
		action := ActionInstall
		if hasMeta {
			for _, inst := range meta.GitRepoInstallations {
				if inst.Requirement.URL == req.URL && inst.Requirement.IsSatisfied(mgr.fs, mgr.vcs) {
					action = ActionUpdate
					break
				}
			}
		}
		if action == ActionInstall && req.IsSatisfied(mgr.fs, mgr.vcs) {
			action = ActionUpdate
		}
		out = append(out, ItemPlan{Name: req.URL, Action: action})
	}
	return out
}

func (mgr *Manager) planCommands(mod module.Module, meta *module.EquipmentMetaInfo, hasMeta bool) []string {
	var journaled []command.UndoableCommand
	if hasMeta {
		journaled = meta.Commands()
	}
	prefix := commonPrefixLen(journaled, mod.Commands)

	out := make([]string, 0, len(mod.Commands)-prefix)
	for _, cmd := range mod.Commands[prefix:] {
		out = append(out, cmd.Cmdline())
	}
	return out
}

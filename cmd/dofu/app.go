// Package main is the dofu CLI: subcommands equip/remove/sync/list over
// the core equipment engine, wired to the production capabilities and a
// default module catalog. Grounded on hashmap-kz-katomik's cmd/ package
// (cobra.Command construction, flags pushed into their own section) and
// golang-dep's cmd/dep (verbose/loglevel global flags, exit-code
// discipline on main.go).
package main

import (
	"fmt"
	"os"

	"github.com/limoiie/dofu/backend"
	"github.com/limoiie/dofu/capability"
	"github.com/limoiie/dofu/dofuenv"
	"github.com/limoiie/dofu/equipment"
	dofulog "github.com/limoiie/dofu/log"
	"github.com/limoiie/dofu/module"
	"github.com/limoiie/dofu/examples"
	"github.com/limoiie/dofu/policy"
)

// globalFlags mirrors the three process-wide flags spec.md section 6
// names: --dry-run, --strategy, --loglevel.
type globalFlags struct {
	dryRun   bool
	strategy string
	loglevel string
}

// app bundles everything a subcommand needs once the global flags are
// parsed: the equipment manager, the module registry (for blueprint
// previews in `list`), and the logger.
type app struct {
	manager  *equipment.Manager
	registry *module.Registry
	prompt   capability.Prompt
	log      *dofulog.Logger
}

func buildApp(flags globalFlags) (*app, error) {
	level, err := dofulog.ParseLevel(flags.loglevel)
	if err != nil {
		return nil, err
	}
	logger := dofulog.New(os.Stderr, level)

	strategy, err := policy.ParseStrategy(flags.strategy)
	if err != nil {
		return nil, err
	}
	opts := policy.Options{DryRun: flags.dryRun, Strategy: strategy}

	prompt := capability.NewPrompt()
	chooser := capability.NewStrategyChooser(prompt)
	fs := capability.NewFsOps(opts, logger, chooser)
	vcs := capability.NewVcsClient(opts, logger)

	projectRoot, err := dofuenv.ProjectRoot("")
	if err != nil {
		return nil, err
	}
	cacheRoot, err := dofuenv.CacheRoot(projectRoot)
	if err != nil {
		return nil, err
	}
	persistenceRoot, err := dofuenv.PersistenceRoot(cacheRoot)
	if err != nil {
		return nil, err
	}
	journalPath := dofuenv.EquipmentPersistenceFile(persistenceRoot)

	backends := backend.NewRegistry(fs)
	registry := module.NewRegistry()
	if err := examples.RegisterAll(registry, backends, projectRoot); err != nil {
		return nil, err
	}

	mgr, err := equipment.NewManager(registry, backends, fs, vcs, logger, journalPath)
	if err != nil {
		return nil, err
	}

	return &app{manager: mgr, registry: registry, prompt: prompt, log: logger}, nil
}

// resolveNames opens an interactive chooser when names is empty, offered
// over candidates and preselected with seed, per the calling
// subcommand's semantics (spec.md section 6). Explicitly given names are
// used as-is.
func (a *app) resolveNames(names []string, candidates []string, header string, seed []string) ([]string, error) {
	if len(names) > 0 {
		return names, nil
	}
	return a.prompt.Choose(candidates, header, seed)
}

// without returns names with every entry in excluded removed, preserving
// order.
func without(names, excluded []string) []string {
	drop := make(map[string]bool, len(excluded))
	for _, n := range excluded {
		drop[n] = true
	}
	var out []string
	for _, n := range names {
		if !drop[n] {
			out = append(out, n)
		}
	}
	return out
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "dofu: "+err.Error())
	os.Exit(1)
}

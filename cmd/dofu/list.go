package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aquasecurity/table"
	"github.com/spf13/cobra"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var explain bool

	listCmd := &cobra.Command{
		Use:   "list [names...]",
		Short: "List registered modules and their equipment status.",
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := buildApp(*flags)
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = a.registry.Names()
			}

			if explain {
				return runExplain(a, names)
			}

			t := table.New(os.Stdout)
			t.SetHeaders("Module", "Status", "Packages", "Git repos", "Transactions")
			for _, name := range names {
				mod, err := a.registry.ModuleByName(name)
				if err != nil {
					return err
				}
				status := "PRISTINE"
				packages, repos, txns := len(mod.Packages), len(mod.GitRepos), 0
				if meta, ok := a.manager.MetaByName(name); ok {
					status = meta.Status.String()
					packages = len(meta.PackageInstallations)
					repos = len(meta.GitRepoInstallations)
					txns = len(meta.Transactions)
				}
				t.AddRow(name, status, strconv.Itoa(packages), strconv.Itoa(repos), strconv.Itoa(txns))
			}
			t.Render()
			return nil
		},
	}

	listCmd.Flags().BoolVar(&explain, "explain", false, "Show what equipping each module would do, without doing it.")
	return listCmd
}

// runExplain prints equipment.Manager.Plan's read-only preview for each
// name: which packages/git repos are already satisfied versus would be
// installed, and which declared commands are not yet journaled.
func runExplain(a *app, names []string) error {
	plans, err := a.manager.Plan(names)
	if err != nil {
		return err
	}
	for _, p := range plans {
		fmt.Printf("%s:\n", p.Module)
		for _, pkg := range p.Packages {
			fmt.Printf("  package %-20s %s\n", pkg.Name, pkg.Action)
		}
		for _, repo := range p.GitRepos {
			fmt.Printf("  gitrepo %-20s %s\n", repo.Name, repo.Action)
		}
		for _, c := range p.Commands {
			fmt.Printf("  command would run: %s\n", c)
		}
	}
	return nil
}

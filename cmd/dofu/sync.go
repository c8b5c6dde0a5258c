package main

import "github.com/spf13/cobra"

func newSyncCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [names...]",
		Short: "Make exactly the named modules (and their dependencies) equipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*flags)
			if err != nil {
				return err
			}
			equipped := a.manager.EquippedNames()
			names, err := a.resolveNames(args, a.registry.Names(), "Choose modules to sync:", equipped)
			if err != nil {
				return err
			}
			return a.manager.Sync(names)
		},
	}
}

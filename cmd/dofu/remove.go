package main

import "github.com/spf13/cobra"

func newRemoveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [names...]",
		Short: "Remove the named modules and their dependents.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*flags)
			if err != nil {
				return err
			}
			equipped := a.manager.EquippedNames()
			names, err := a.resolveNames(args, equipped, "Choose modules to remove:", nil)
			if err != nil {
				return err
			}
			return a.manager.Remove(names)
		},
	}
}

package main

import "github.com/spf13/cobra"

func newEquipCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "equip [names...]",
		Short: "Equip the named modules and their dependencies.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*flags)
			if err != nil {
				return err
			}
			candidates := without(a.registry.Names(), a.manager.EquippedNames())
			names, err := a.resolveNames(args, candidates, "Choose modules to equip:", nil)
			if err != nil {
				return err
			}
			return a.manager.Equip(names)
		},
	}
}

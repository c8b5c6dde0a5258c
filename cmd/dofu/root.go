package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	flags := globalFlags{strategy: "quit", loglevel: "info"}

	root := &cobra.Command{
		Use:           "dofu",
		Short:         "A declarative dotfiles and environment equipper.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.BoolVar(&flags.dryRun, "dry-run", false, "Log intended actions without changing anything.")
	pf.StringVar(&flags.strategy, "strategy", "quit", "One of ask, force, auto, quit.")
	pf.StringVar(&flags.loglevel, "loglevel", "info", "One of debug, info, warn, error, fatal.")

	root.AddCommand(newEquipCmd(&flags))
	root.AddCommand(newRemoveCmd(&flags))
	root.AddCommand(newSyncCmd(&flags))
	root.AddCommand(newListCmd(&flags))
	return root
}

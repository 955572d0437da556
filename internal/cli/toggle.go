package cli

import (
	"github.com/spf13/cobra"
)

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <index>",
		Aliases: []string{"done"},
		Short:   "Flip the done flag of an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.ToggleAt(index); err != nil {
				return err
			}

			it, err := store.Item(index)
			if err != nil {
				return err
			}
			return a.writeItem(cmd.OutOrStdout(), "Toggled", index, it)
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Long: `Remove deletes the item at index. Items after it move up by one, so
indexes shown by an earlier "todoapp list" may no longer match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}

			// Capture the item first; it is gone after RemoveAt.
			it, err := store.Item(index)
			if err != nil {
				return err
			}
			if err := store.RemoveAt(index); err != nil {
				return err
			}
			return a.writeItem(cmd.OutOrStdout(), "Removed", index, it)
		},
	}
}

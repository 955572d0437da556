package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Append a todo item",
		Long: `Add appends a new, not-done item to the end of the list. Arguments are
joined with single spaces and trimmed; empty text is rejected.

Example:
  todoapp add Buy milk
  todoapp add "Write report" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			if err := store.Add(strings.Join(args, " ")); err != nil {
				return err
			}

			index := store.Count() - 1
			it, err := store.Item(index)
			if err != nil {
				return err
			}
			return a.writeItem(cmd.OutOrStdout(), "Added", index, it)
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todoapp/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Edit the list interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The TUI loads the list itself so a broken file is reported
			// on screen instead of aborting.
			store, err := a.newStore()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), store)
		},
	}
}

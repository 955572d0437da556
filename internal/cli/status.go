package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the total and done counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), statusView{
					Total: store.Count(),
					Done:  store.DoneCount(),
					Path:  store.Path(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), statusLine(store))
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Rewrite the todo file from its current contents",
		Long: `Save loads the list and writes it back. Every other command already
saves after each change; save is useful after switching backends or to
normalize a hand-edited file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d todo(s) to %s\n", store.Count(), store.Path())
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todoapp/pkg/todo"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show all todo items in order",
		Long: `List prints every item with its 0-based index, followed by the totals.

With --json the output is the persisted representation: an array of
{"text", "done"} objects.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), store.Items())
			}
			printItemTable(cmd.OutOrStdout(), store)
			return nil
		},
	}
}

// printItemTable prints items in a human-readable table format.
func printItemTable(w io.Writer, store *todo.Store) {
	if store.Count() == 0 {
		fmt.Fprintln(w, "No todos.")
		fmt.Fprintln(w, statusLine(store))
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for i, it := range store.Items() {
		fmt.Fprintf(tw, "%d\t%s\n", i, it.Display())
	}
	tw.Flush()

	// Print output, trimming trailing whitespace from each line
	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}

	fmt.Fprintln(w, statusLine(store))
}

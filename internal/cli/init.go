package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todoapp/internal/paths"
	"github.com/mesh-intelligence/todoapp/internal/storage"
	"github.com/mesh-intelligence/todoapp/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the application directory and an empty todo list",
		Long: `Init creates the configuration and data directories, a default
config.yaml, and an empty todo list when none exists. Existing todos are
left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.storageConfig()
			if err != nil {
				return err
			}
			if err := paths.EnsureDir(cfg.DataDir); err != nil {
				return fmt.Errorf("%w: %w", types.ErrIO, err)
			}

			st, err := storage.Open(cfg)
			if err != nil {
				return err
			}

			created := false
			if _, err := st.Read(); err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
				if err := st.Write(nil); err != nil {
					return err
				}
				created = true
			}
			a.log.Info().Str("path", st.Location()).Bool("created", created).Msg("init")

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "todoapp initialized")
			fmt.Fprintln(out, "  config:", a.configDir)
			fmt.Fprintln(out, "  data:  ", st.Location())
			return nil
		},
	}
}

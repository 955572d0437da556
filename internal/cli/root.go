// Package cli implements the todoapp command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/todoapp/internal/logging"
	"github.com/mesh-intelligence/todoapp/internal/paths"
	"github.com/mesh-intelligence/todoapp/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errInvalidArg marks command-line arguments that cannot be parsed.
var errInvalidArg = errors.New("invalid argument")

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app carries per-invocation state from PersistentPreRunE to subcommands.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
	log       zerolog.Logger
}

// NewRootCmd creates the top-level "todoapp" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "todoapp",
		Short: "A small personal todo list",
		Long: `todoapp keeps an ordered list of todo items in a JSON file under the
per-user application directory. Every change is saved immediately.

Items are addressed by their 0-based position as shown by "todoapp list".`,
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: <user-config-dir>/TodoApp)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: <user-config-dir>/TodoApp)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error, off (default: warn)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newToggleCmd(a))
	root.AddCommand(newRemoveCmd(a))
	root.AddCommand(newSaveCmd(a))
	root.AddCommand(newStatusCmd(a))
	root.AddCommand(newTUICmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "todoapp:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps an error to a process exit code: bad input is a user
// error, storage failures are system errors.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrIO), errors.Is(err, types.ErrFormat):
		return exitSysError
	default:
		return exitUserError
	}
}

// setup resolves the config directory, loads config.yaml and builds the
// logger. The version command needs none of it.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("%w: resolve config dir: %w", types.ErrIO, err)
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	level := a.flags.logLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}

	a.configDir = configDir
	a.cfg = cfg
	a.log = logging.NewConsole(cmd.ErrOrStderr(), level)
	a.log.Debug().Str("config_dir", configDir).Msg("config loaded")
	return nil
}

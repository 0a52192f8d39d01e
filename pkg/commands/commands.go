package commands

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"tableflip.dev/tabler/pkg/app"
	"tableflip.dev/tabler/pkg/commands/options"
	"tableflip.dev/tabler/pkg/store"
)

var (
	global = &options.GlobalOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tabler",
		Short: options.Wrap80("Load, refresh and export remote dashboard tables on the command line."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if termenv.EnvNoColor() {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
	}

	options.AddGlobalArgs(cmd, global)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addDashboards(topLevel)
	addForget(topLevel)
	addLoad(topLevel)
	addRefresh(topLevel)
	addExport(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// service resolves configuration from files, env and cmd's flags and wires
// the backend and the saved ranges.
func service(cmd *cobra.Command) (*app.Service, error) {
	cfg, err := store.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(os.Stderr, cfg.Debug())
	slog.SetDefault(logger)

	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, p, logger)
}

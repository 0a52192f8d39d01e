package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tabler/pkg/commands/options"
	"tableflip.dev/tabler/pkg/runner/dashboards"
	"tableflip.dev/tabler/pkg/store"
)

func addDashboards(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "dashboards",
		Aliases: []string{"ls"},
		Short:   "List the dashboards and the range each last used.",
		Example: `
tabler dashboards
tabler dashboards -o json
`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return oo.ValidateList()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig(cmd.Flags())
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return oo.HandleError(err)
			}
			s := dashboards.List{
				Persistence: p,
				JSON:        oo.JSON(),
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddListOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addForget(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "forget <dashboard>",
		Short: "Forget the range a dashboard last used.",
		Example: `
tabler forget movies
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dashboardCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			s := dashboards.Forget{
				Dashboard:   args[0],
				Persistence: p,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tabler/pkg/commands/options"
	"tableflip.dev/tabler/pkg/runner/load"
	"tableflip.dev/tabler/pkg/runner/refresh"
)

func addLoad(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "load <dashboard>",
		Short: "Fetch the rows a dashboard backend currently holds.",
		Example: `
tabler load movies --from 1990 --to 1995
tabler load crypto -o markdown
tabler load banks --from 2019 -o json
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dashboardCompletions,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return oo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			s := load.Load{
				App:       svc,
				Dashboard: args[0],
				From:      fo.From,
				To:        fo.To,
				Views:     oo.Views(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addRefresh(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "refresh <dashboard>",
		Short: "Ask the backend to scrape or fetch fresh data, then show it.",
		Long: options.Wrap80(`Trigger the backend refresh of a dashboard and show the rows it holds
afterwards. A failed refresh is reported but the stored rows are still shown.`),
		Example: `
tabler refresh movies --from 2000 --to 2005
tabler refresh crypto
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dashboardCompletions,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return oo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			s := refresh.Refresh{
				App:       svc,
				Dashboard: args[0],
				From:      fo.From,
				To:        fo.To,
				Views:     oo.Views(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

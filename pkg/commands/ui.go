package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tabler/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui <dashboard>",
		Short: "open the text-based user interface",
		Example: `
tabler ui movies
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dashboardCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service(cmd)
			if err != nil {
				return err
			}
			i := ui.UI{App: svc, Dashboard: args[0]}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

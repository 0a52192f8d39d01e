package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tabler/pkg/commands/options"
	"tableflip.dev/tabler/pkg/printers"
	"tableflip.dev/tabler/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	var (
		format   string
		dir      string
		printURL bool
	)

	cmd := &cobra.Command{
		Use:   "export <dashboard>",
		Short: "Download a dashboard export file.",
		Example: `
tabler export movies --format xlsx --from 1990 --to 1995
tabler export crypto --format csv --dir ~/Downloads
tabler export movies --format csv --print-url
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dashboardCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service(cmd)
			if err != nil {
				return err
			}
			s := export.Export{
				App:       svc,
				Dashboard: args[0],
				Format:    format,
				From:      fo.From,
				To:        fo.To,
				Dir:       dir,
				PrintURL:  printURL,
				Notifier:  &printers.PrettyPrint{},
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddFilterArgs(cmd, fo)
	cmd.Flags().StringVarP(&format, "format", "f", "", "Export format, defaults to the first one the dashboard offers.")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to save into, defaults to the configured download_dir.")
	cmd.Flags().BoolVar(&printURL, "print-url", false, "Print the export URL instead of downloading it.")
	_ = cmd.RegisterFlagCompletionFunc("format", formatCompletions)

	topLevel.AddCommand(cmd)
}

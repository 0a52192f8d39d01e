package options

import (
	"github.com/spf13/cobra"
)

// FilterOptions holds the raw year bounds. Validation happens in the
// presenter so every front end reports the same errors.
type FilterOptions struct {
	From string
	To   string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		"First year of the range. Defaults to the last range used, or the current year.")
	cmd.Flags().StringVar(&o.To, "to", "",
		"Last year of the range. Defaults to the last range used, or the current year.")
}

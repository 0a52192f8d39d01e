// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tabler/pkg/store"
)

// GlobalOptions are the persistent flags that override configuration.
type GlobalOptions struct {
	BaseURL string
	Timeout string
	State   string
	Debug   bool
}

// AddGlobalArgs registers the persistent configuration flags. Their names
// match the keys store.LoadConfig binds.
func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&o.BaseURL, "base-url", store.DefaultBaseURL,
		"Base URL of the dashboard backend.")
	cmd.PersistentFlags().StringVar(&o.Timeout, "timeout", store.DefaultTimeout.String(),
		"Timeout for each backend request.")
	cmd.PersistentFlags().StringVar(&o.State, "state", store.DefaultPath,
		"Directory that remembers the last range per dashboard.")
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false,
		"Log every backend request.")
}

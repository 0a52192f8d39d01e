package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}

	if override := os.Getenv("TABLER_CONFIG_PATH"); override != "" {
		fmt.Fprintln(out, "TABLER_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Fprintln(out, "TABLER_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig(nil)
		if err != nil {
			return err
		}
	}

	if f := n.Config.File(); f != "" {
		fmt.Fprintln(out, "Config.file: ", f)
	}
	fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	fmt.Fprintln(out, "Config.base_url: ", n.Config.BaseURL())
	fmt.Fprintln(out, "Config.timeout: ", n.Config.Timeout())
	fmt.Fprintln(out, "Config.download_dir: ", n.Config.DownloadDir())

	if n.Persistence == nil {
		return fmt.Errorf("Failed to create persistence object.")
	}

	fmt.Fprintf(out, "Saved ranges:\n")
	ranges := n.Persistence.Ranges(ctx)
	found := 0
	for _, name := range dashboard.Names() {
		r, ok := ranges[name]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %s: %s\n", name, r)
		found++
	}

	if found == 0 {
		fmt.Fprintf(out, "  %s\n", "no saved ranges")
	}

	return nil
}

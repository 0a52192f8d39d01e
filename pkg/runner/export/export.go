package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/tabler/pkg/app"
	"tableflip.dev/tabler/pkg/presenter"
	"tableflip.dev/tabler/pkg/remote"
)

// Export requests a file export and either downloads it or prints its URL.
type Export struct {
	App       *app.Service
	Dashboard string
	Format    string
	From      string
	To        string
	Dir       string
	PrintURL  bool
	Notifier  presenter.Notifier
	Out       io.Writer
}

func (n *Export) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}
	return os.Stdout
}

func (n *Export) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not export, no service")
	}
	d, err := n.App.Dashboard(n.Dashboard)
	if err != nil {
		return err
	}
	format := n.Format
	if format == "" {
		if len(d.Exports) == 0 {
			return fmt.Errorf("%s does not support exports", d.Name)
		}
		format = d.Exports[0].Format
	}

	var nav presenter.Navigator = remote.URLPrinter{Out: n.out()}
	if !n.PrintURL {
		nav = n.App.Downloader(n.Dir, func(path string) {
			_, _ = color.New(color.FgGreen).Fprintf(n.out(), "Saved %s\n", path)
		})
	}

	p := n.App.Presenter(d, app.Views{Notifier: n.Notifier, Navigator: nav}, n.App.Bounds(ctx, d, n.From, n.To))
	_, err = p.Export(ctx, format)
	return err
}

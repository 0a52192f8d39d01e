package ui

import (
	"context"
	"errors"

	"tableflip.dev/tabler/pkg/app"
	"tableflip.dev/tabler/pkg/tui"
)

// UI opens the interactive view of one dashboard.
type UI struct {
	App       *app.Service
	Dashboard string
}

func (d *UI) Do(ctx context.Context) error {
	if d.App == nil {
		return errors.New("can not open ui, no service")
	}
	dash, err := d.App.Dashboard(d.Dashboard)
	if err != nil {
		return err
	}
	return tui.Run(ctx, d.App, dash)
}

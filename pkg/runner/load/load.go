package load

import (
	"context"
	"errors"

	"tableflip.dev/tabler/pkg/app"
)

// Load fetches the stored collection of a dashboard and renders it.
type Load struct {
	App       *app.Service
	Dashboard string
	From      string
	To        string
	Views     app.Views
}

func (n *Load) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not load, no service")
	}
	d, err := n.App.Dashboard(n.Dashboard)
	if err != nil {
		return err
	}
	p := n.App.Presenter(d, n.Views, n.App.Bounds(ctx, d, n.From, n.To))
	return p.Load(ctx)
}

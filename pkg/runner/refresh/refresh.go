package refresh

import (
	"context"
	"errors"

	"tableflip.dev/tabler/pkg/app"
)

// Refresh asks the backend to scrape or fetch fresh data, then renders what
// it holds. A failed trigger still renders and is returned after.
type Refresh struct {
	App       *app.Service
	Dashboard string
	From      string
	To        string
	Views     app.Views
}

func (n *Refresh) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not refresh, no service")
	}
	d, err := n.App.Dashboard(n.Dashboard)
	if err != nil {
		return err
	}
	p := n.App.Presenter(d, n.Views, n.App.Bounds(ctx, d, n.From, n.To))
	return p.Refresh(ctx)
}

// Package dashboards contains runners that list and reset dashboards.
package dashboards

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/filter"
	"tableflip.dev/tabler/pkg/printers"
	"tableflip.dev/tabler/pkg/store"
)

// List prints every dashboard.
type List struct {
	Persistence store.Persistence
	JSON        bool
	Out         io.Writer
}

type listing struct {
	dashboard.Dashboard
	LastFrom int `json:"lastFrom,omitempty"`
	LastTo   int `json:"lastTo,omitempty"`
}

// Do executes the listing.
func (l *List) Do(ctx context.Context) error {
	out := l.Out
	if out == nil {
		out = os.Stdout
	}
	saved := map[string]filter.Range{}
	if l.Persistence != nil {
		saved = l.Persistence.Ranges(ctx)
	}

	if !l.JSON {
		pp := printers.PrettyPrint{Out: out}
		pp.Dashboards(dashboard.Defaults(), saved)
		return nil
	}

	all := make([]listing, 0, len(dashboard.Defaults()))
	for _, d := range dashboard.Defaults() {
		item := listing{Dashboard: d}
		if r, ok := saved[d.Name]; ok {
			item.LastFrom, item.LastTo = r.From, r.To
		}
		all = append(all, item)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(all)
}

// Forget drops the remembered range of a dashboard.
type Forget struct {
	Dashboard   string
	Persistence store.Persistence
}

// Do executes the reset.
func (f *Forget) Do(ctx context.Context) error {
	if f.Persistence == nil {
		return errors.New("can not forget, no persistence")
	}
	d, err := dashboard.ForName(f.Dashboard)
	if err != nil {
		return err
	}
	return f.Persistence.Forget(d.Name)
}

// Package presenter drives one remote table: it validates the year filter,
// triggers backend refreshes, fetches the stored collection and hands the
// rendered model to a surface.
package presenter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/filter"
	"tableflip.dev/tabler/pkg/record"
	"tableflip.dev/tabler/pkg/remote"
	"tableflip.dev/tabler/pkg/render"
)

// ErrSuperseded is returned by a sequence that a newer one replaced before
// it could finish. Superseded sequences never touch the surface.
var ErrSuperseded = errors.New("superseded by a newer request")

// Presenter is a TablePresenter for a single dashboard.
type Presenter struct {
	d       dashboard.Dashboard
	backend Backend

	surface   Surface
	indicator Indicator
	notifier  Notifier
	navigator Navigator
	input     Input
	onFilter  func(filter.Range)
	now       func() time.Time
	logger    *slog.Logger

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	loading bool
	model   render.Model
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithSurface sets where tables are drawn.
func WithSurface(s Surface) Option { return func(p *Presenter) { p.surface = s } }

// WithIndicator sets the loading indicator.
func WithIndicator(i Indicator) Option { return func(p *Presenter) { p.indicator = i } }

// WithNotifier sets the user notification channel.
func WithNotifier(n Notifier) Option { return func(p *Presenter) { p.notifier = n } }

// WithNavigator sets what follows export URLs.
func WithNavigator(n Navigator) Option { return func(p *Presenter) { p.navigator = n } }

// WithInput sets where the year bounds are read from.
func WithInput(i Input) Option { return func(p *Presenter) { p.input = i } }

// WithClock overrides the time source used for validation.
func WithClock(now func() time.Time) Option { return func(p *Presenter) { p.now = now } }

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option { return func(p *Presenter) { p.logger = l } }

// OnFilter is called with every range that passed validation.
func OnFilter(fn func(filter.Range)) Option { return func(p *Presenter) { p.onFilter = fn } }

// New creates a presenter for d.
func New(d dashboard.Dashboard, backend Backend, opts ...Option) *Presenter {
	p := &Presenter{
		d:       d,
		backend: backend,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.surface == nil {
		p.surface = discard{}
	}
	if p.indicator == nil {
		p.indicator = discard{}
	}
	if p.notifier == nil {
		p.notifier = discard{}
	}
	if p.navigator == nil {
		p.navigator = discard{}
	}
	return p
}

// Dashboard is the dashboard this presenter drives.
func (p *Presenter) Dashboard() dashboard.Dashboard { return p.d }

// Model is the last model written to the surface.
func (p *Presenter) Model() render.Model {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.model
}

// Loading reports whether a sequence is in flight.
func (p *Presenter) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// ReadFilter parses the current input. It never panics; any problem is
// reported as an error wrapping filter.ErrInvalidRange.
func (p *Presenter) ReadFilter() (filter.Range, error) {
	if p.input == nil {
		return filter.Range{}, fmt.Errorf("%w: no year input configured", filter.ErrInvalidRange)
	}
	from, to := p.input.Bounds()
	return filter.Parse(from, to, p.now())
}

func (p *Presenter) rangeFor(needed bool) (*filter.Range, error) {
	if !needed {
		return nil, nil
	}
	r, err := p.ReadFilter()
	if err != nil {
		p.mu.Lock()
		p.notifier.Notify(Notice{Level: LevelError, Message: "Please enter a valid year range: " + err.Error()})
		p.mu.Unlock()
		return nil, err
	}
	if p.onFilter != nil {
		p.onFilter(r)
	}
	return &r, nil
}

// begin starts a new generation, cancelling whatever was in flight, and
// returns a cleanup that clears the loading flag if nothing newer started.
func (p *Presenter) begin(parent context.Context) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(parent)

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.gen++
	gen := p.gen
	p.cancel = cancel
	p.loading = true
	p.indicator.SetLoading(true)
	p.mu.Unlock()

	return ctx, gen, func() {
		cancel()
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.gen != gen {
			return
		}
		p.cancel = nil
		p.loading = false
		p.indicator.SetLoading(false)
	}
}

func (p *Presenter) stale(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen != gen
}

func (p *Presenter) commit(gen uint64, m render.Model) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return false
	}
	p.model = m
	p.surface.Replace(m)
	return true
}

func (p *Presenter) notify(gen uint64, n Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return
	}
	p.notifier.Notify(n)
}

// Load fetches the stored collection and renders it.
func (p *Presenter) Load(ctx context.Context) error {
	r, err := p.rangeFor(p.d.List.Ranged)
	if err != nil {
		return err
	}
	ctx, gen, done := p.begin(ctx)
	defer done()

	return p.fetchAndRender(ctx, gen, r)
}

// Refresh triggers the backend and then renders whatever it holds. A failed
// trigger is reported but the fetch still runs.
func (p *Presenter) Refresh(ctx context.Context) error {
	ranged := p.d.List.Ranged || (p.d.Trigger != nil && p.d.Trigger.Ranged)
	r, err := p.rangeFor(ranged)
	if err != nil {
		return err
	}
	ctx, gen, done := p.begin(ctx)
	defer done()

	var triggerErr error
	if p.d.Trigger != nil {
		p.logger.Debug("triggering refresh", "dashboard", p.d.Name, "range", r)
		res, err := p.backend.Trigger(ctx, p.d, r)
		if p.stale(gen) {
			return ErrSuperseded
		}
		if err != nil {
			triggerErr = fmt.Errorf("refresh %s: %w", p.d.Name, err)
			p.notify(gen, Notice{Level: LevelError, Message: "Refresh failed: " + err.Error()})
		} else {
			p.notify(gen, Notice{Level: LevelInfo, Message: acknowledge(res)})
		}
	}

	if err := p.fetchAndRender(ctx, gen, r); err != nil {
		return errors.Join(triggerErr, err)
	}
	return triggerErr
}

func acknowledge(res remote.TriggerResult) string {
	switch {
	case res.Items != nil || res.Count > 0:
		return fmt.Sprintf("Refresh complete. Found or updated %d records.", res.Count)
	case res.Summary != "":
		return "Refresh complete: " + res.Summary
	}
	return "Refresh complete."
}

func (p *Presenter) fetchAndRender(ctx context.Context, gen uint64, r *filter.Range) error {
	p.logger.Debug("fetching collection", "dashboard", p.d.Name, "range", r)
	recs, err := p.backend.Fetch(ctx, p.d, r)
	if p.stale(gen) {
		return ErrSuperseded
	}
	if err != nil {
		p.notify(gen, Notice{Level: LevelError, Message: fmt.Sprintf("Failed to load %s: %v", p.d.Title, err)})
		p.commit(gen, render.Failure(p.d, err))
		return fmt.Errorf("load %s: %w", p.d.Name, err)
	}
	if !p.commit(gen, render.Build(p.d, recs)) {
		return ErrSuperseded
	}
	return nil
}

// Render replaces the surface with recs, superseding any sequence in flight.
func (p *Presenter) Render(recs []record.Record) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
	gen := p.gen
	if p.loading {
		p.loading = false
		p.indicator.SetLoading(false)
	}
	p.mu.Unlock()

	p.commit(gen, render.Build(p.d, recs))
}

// Export hands the download URL for format to the navigator and returns it.
// The presenter does not observe the downloaded file.
func (p *Presenter) Export(ctx context.Context, format string) (string, error) {
	e, err := p.d.Export(format)
	if err != nil {
		p.mu.Lock()
		p.notifier.Notify(Notice{Level: LevelError, Message: err.Error()})
		p.mu.Unlock()
		return "", err
	}
	r, err := p.rangeFor(e.Ranged)
	if err != nil {
		return "", err
	}
	u, err := p.backend.ExportURL(p.d, e.Format, r)
	if err != nil {
		return "", err
	}
	p.logger.Debug("export requested", "dashboard", p.d.Name, "url", u)
	if err := p.navigator.Navigate(ctx, u); err != nil {
		p.mu.Lock()
		p.notifier.Notify(Notice{Level: LevelError, Message: "Export failed: " + err.Error()})
		p.mu.Unlock()
		return u, fmt.Errorf("export %s: %w", p.d.Name, err)
	}
	return u, nil
}

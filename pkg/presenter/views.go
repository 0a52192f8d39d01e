package presenter

import (
	"context"

	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/filter"
	"tableflip.dev/tabler/pkg/record"
	"tableflip.dev/tabler/pkg/remote"
	"tableflip.dev/tabler/pkg/render"
)

// Backend is the REST boundary a presenter drives.
type Backend interface {
	Trigger(ctx context.Context, d dashboard.Dashboard, r *filter.Range) (remote.TriggerResult, error)
	Fetch(ctx context.Context, d dashboard.Dashboard, r *filter.Range) ([]record.Record, error)
	ExportURL(d dashboard.Dashboard, format string, r *filter.Range) (string, error)
}

// Surface shows a table. Every call fully replaces what was shown before.
type Surface interface {
	Replace(m render.Model)
}

// Indicator shows whether a sequence is running.
type Indicator interface {
	SetLoading(loading bool)
}

// Notifier surfaces acknowledgments and failures to the user.
type Notifier interface {
	Notify(n Notice)
}

// Navigator hands an export URL to whatever can follow it.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
}

// Input supplies the raw year bounds as typed by the user.
type Input interface {
	Bounds() (from, to string)
}

// Level is the severity of a notice.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a user facing message.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Bounds is a fixed Input.
type Bounds struct {
	From string
	To   string
}

// Bounds implements Input.
func (b Bounds) Bounds() (string, string) { return b.From, b.To }

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(render.Model)

// Replace implements Surface.
func (f SurfaceFunc) Replace(m render.Model) { f(m) }

// IndicatorFunc adapts a function to Indicator.
type IndicatorFunc func(bool)

// SetLoading implements Indicator.
func (f IndicatorFunc) SetLoading(b bool) { f(b) }

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

type discard struct{}

func (discard) Replace(render.Model)                   {}
func (discard) SetLoading(bool)                        {}
func (discard) Notify(Notice)                          {}
func (discard) Navigate(context.Context, string) error { return nil }

package printers

import (
	"encoding/json"
	"io"
	"os"

	"tableflip.dev/tabler/pkg/presenter"
	"tableflip.dev/tabler/pkg/render"
)

// JSON writes models to Out and notices to Err, one JSON document each.
type JSON struct {
	Out io.Writer
	Err io.Writer
}

func (j *JSON) encode(w io.Writer, fallback io.Writer, v any) {
	if w == nil {
		w = fallback
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// Replace implements presenter.Surface.
func (j *JSON) Replace(m render.Model) { j.encode(j.Out, os.Stdout, m) }

// Notify implements presenter.Notifier.
func (j *JSON) Notify(n presenter.Notice) { j.encode(j.Err, os.Stderr, n) }

package printers

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"tableflip.dev/tabler/pkg/render"
)

// Format selects a document flavour.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Document renders tables as HTML or Markdown.
type Document struct {
	Out    io.Writer
	Format Format
}

// Replace implements presenter.Surface.
func (d *Document) Replace(m render.Model) {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	_, _ = fmt.Fprintln(out, d.Render(m))
}

// Render returns the document text for m.
func (d *Document) Render(m render.Model) string {
	t := table.NewWriter()
	t.SetTitle(m.Title)
	t.Style().HTML.CSSClass = "tabler-table"

	header := make(table.Row, 0, len(m.Headers))
	configs := make([]table.ColumnConfig, 0, len(m.Headers))
	for i, h := range m.Headers {
		header = append(header, h.Text)
		align := text.AlignLeft
		if h.Align == render.AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: align})
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for _, row := range m.Rows {
		r := make(table.Row, len(m.Headers))
		for i := range r {
			r[i] = ""
		}
		for i, c := range row.Cells {
			if i < len(r) {
				r[i] = c.Text
			}
		}
		t.AppendRow(r)
	}

	switch d.Format {
	case FormatMarkdown:
		return t.RenderMarkdown()
	default:
		return t.RenderHTML()
	}
}

package render

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/record"
)

var money = message.NewPrinter(language.AmericanEnglish)

// Build formats every record for d. An empty collection yields the
// dashboard's placeholder row.
func Build(d dashboard.Dashboard, recs []record.Record) Model {
	if len(recs) == 0 {
		return Empty(d)
	}
	m := skeleton(d)
	m.Rows = make([]Row, 0, len(recs))
	for _, rec := range recs {
		row := Row{Cells: make([]Cell, 0, len(d.Columns))}
		for _, col := range d.Columns {
			row.Cells = append(row.Cells, FormatCell(col, rec, d.Placeholder))
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

// Empty is the model for a successful but empty collection.
func Empty(d dashboard.Dashboard) Model {
	m := skeleton(d)
	m.Notice = NoticeEmpty
	m.Rows = []Row{{Span: true, Cells: []Cell{{Text: d.EmptyMessage, Tone: ToneNotice}}}}
	return m
}

// Failure is the model shown when the collection could not be loaded.
func Failure(d dashboard.Dashboard, err error) Model {
	m := skeleton(d)
	m.Notice = NoticeError
	m.Rows = []Row{{Span: true, Cells: []Cell{{Text: "Failed to load: " + err.Error(), Tone: ToneError}}}}
	return m
}

func skeleton(d dashboard.Dashboard) Model {
	m := Model{Title: d.Title, Headers: make([]Header, 0, len(d.Columns))}
	for _, col := range d.Columns {
		m.Headers = append(m.Headers, Header{Text: col.Header, Align: alignFor(col.Kind)})
	}
	return m
}

func alignFor(k dashboard.Kind) Align {
	switch k {
	case dashboard.Number, dashboard.Fixed, dashboard.Percent, dashboard.Money:
		return AlignRight
	}
	return AlignLeft
}

// FormatCell applies the column rule to one record field.
func FormatCell(col dashboard.Column, rec record.Record, placeholder string) Cell {
	c := Cell{Align: alignFor(col.Kind)}
	v, ok := rec.Value(col.Field)
	if !ok {
		c.Text = placeholder
		return c
	}
	raw := record.Text(v)

	switch col.Kind {
	case dashboard.Fixed:
		if f, ok := rec.Float(col.Field); ok {
			c.Text = strconv.FormatFloat(f, 'f', col.Precision, 64)
			return c
		}
	case dashboard.Money:
		if f, ok := rec.Float(col.Field); ok {
			c.Text = money.Sprintf("%.2f", f)
			return c
		}
	case dashboard.Percent:
		if strings.TrimSpace(raw) == "" {
			c.Text = placeholder
			return c
		}
		c.Text = raw + "%"
		c.Tone = ToneNeutral
		if f, ok := rec.Float(col.Field); ok {
			switch {
			case f > 0:
				c.Tone = TonePositive
			case f < 0:
				c.Tone = ToneNegative
			}
		}
		return c
	}

	if raw == "" {
		raw = placeholder
	}
	c.Text = raw
	return c
}

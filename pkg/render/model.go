// Package render turns records into a toolkit-neutral table model. Nothing in
// here touches a terminal, a document or the network.
package render

// Align is the horizontal alignment of a cell.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Tone decorates a cell, e.g. the sign of a percentage.
type Tone string

const (
	ToneNone     Tone = ""
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
	ToneNotice   Tone = "notice"
	ToneError    Tone = "error"
)

// Notice classifies a model that carries no records.
type Notice string

const (
	NoticeNone  Notice = ""
	NoticeEmpty Notice = "empty"
	NoticeError Notice = "error"
)

// Cell is one formatted value.
type Cell struct {
	Text  string `json:"text"`
	Align Align  `json:"align,omitempty"`
	Tone  Tone   `json:"tone,omitempty"`
}

// Row is an ordered list of cells. A spanning row has a single cell that
// covers every column.
type Row struct {
	Cells []Cell `json:"cells"`
	Span  bool   `json:"span,omitempty"`
}

// Header is a column title.
type Header struct {
	Text  string `json:"text"`
	Align Align  `json:"align,omitempty"`
}

// Model is everything a surface needs to draw a table.
type Model struct {
	Title   string   `json:"title"`
	Headers []Header `json:"headers"`
	Rows    []Row    `json:"rows"`
	Notice  Notice   `json:"notice,omitempty"`
}

// Records is the number of record rows, excluding placeholder rows.
func (m Model) Records() int {
	if m.Notice != NoticeNone {
		return 0
	}
	return len(m.Rows)
}

// Texts returns the cell text grid.
func (m Model) Texts() [][]string {
	out := make([][]string, 0, len(m.Rows))
	for _, r := range m.Rows {
		line := make([]string, 0, len(r.Cells))
		for _, c := range r.Cells {
			line = append(line, c.Text)
		}
		out = append(out, line)
	}
	return out
}

// HeaderTexts returns the header titles.
func (m Model) HeaderTexts() []string {
	out := make([]string, 0, len(m.Headers))
	for _, h := range m.Headers {
		out = append(out, h.Text)
	}
	return out
}

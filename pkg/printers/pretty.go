package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/tabler/pkg/presenter"
	"tableflip.dev/tabler/pkg/render"
)

// PrettyPrint draws tables for a terminal. It implements presenter.Surface,
// presenter.Indicator and presenter.Notifier.
type PrettyPrint struct {
	Out io.Writer
	Err io.Writer
	// MaxCellWidth truncates long cells; zero disables truncation.
	MaxCellWidth int
	// Interactive overrides terminal detection for the loading line.
	Interactive *bool

	// shown is set while a loading line sits on the terminal.
	shown bool
}

var (
	titleStyle    = color.New(color.Bold, color.Underline)
	headerStyle   = color.New(color.Bold)
	countStyle    = color.New(color.Faint)
	noticeStyle   = color.New(color.Faint, color.Italic)
	errorStyle    = color.New(color.FgRed)
	positiveStyle = color.New(color.FgGreen)
	negativeStyle = color.New(color.FgRed)
	okStyle       = color.New(color.FgHiGreen)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) err() io.Writer {
	if pp.Err != nil {
		return pp.Err
	}
	return color.Error
}

func (pp *PrettyPrint) interactive() bool {
	if pp.Interactive != nil {
		return *pp.Interactive
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// TitleWithCount prints the table title and how many records it holds.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	w := pp.out()
	_, _ = titleStyle.Fprint(w, title)
	_, _ = countStyle.Fprintf(w, " - %d", count)
	switch count {
	case 1:
		_, _ = countStyle.Fprintln(w, " record")
	default:
		_, _ = countStyle.Fprintln(w, " records")
	}
}

// Replace implements presenter.Surface.
func (pp *PrettyPrint) Replace(m render.Model) {
	pp.clearLoading()
	w := pp.out()
	pp.TitleWithCount(m.Title, m.Records())

	tbl := uitable.New()
	tbl.Separator = "  "

	header := make([]interface{}, 0, len(m.Headers))
	for _, h := range m.Headers {
		header = append(header, headerStyle.Sprint(h.Text))
	}
	tbl.AddRow(header...)

	for _, row := range m.Rows {
		if row.Span {
			c := row.Cells[0]
			tbl.AddRow(toneStyle(c.Tone).Sprint(c.Text))
			continue
		}
		cells := make([]interface{}, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, toneStyle(c.Tone).Sprint(pp.fit(c.Text)))
		}
		tbl.AddRow(cells...)
	}
	for i, h := range m.Headers {
		if h.Align == render.AlignRight {
			tbl.RightAlign(i)
		}
	}

	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")
}

func (pp *PrettyPrint) fit(s string) string {
	if pp.MaxCellWidth <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(pp.MaxCellWidth), "…")
}

func toneStyle(t render.Tone) *color.Color {
	switch t {
	case render.TonePositive:
		return positiveStyle
	case render.ToneNegative:
		return negativeStyle
	case render.ToneNotice:
		return noticeStyle
	case render.ToneError:
		return errorStyle
	}
	return color.New()
}

// SetLoading implements presenter.Indicator.
func (pp *PrettyPrint) SetLoading(loading bool) {
	if !loading {
		pp.clearLoading()
		return
	}
	w := pp.err()
	_, _ = countStyle.Fprint(w, "Loading data...")
	if pp.interactive() {
		pp.shown = true
		return
	}
	_, _ = fmt.Fprintln(w)
}

// clearLoading erases an interactive loading line before anything else is
// written over it.
func (pp *PrettyPrint) clearLoading() {
	if !pp.shown {
		return
	}
	pp.shown = false
	_, _ = fmt.Fprint(pp.err(), "\r\033[K")
}

// Notify implements presenter.Notifier.
func (pp *PrettyPrint) Notify(n presenter.Notice) {
	pp.clearLoading()
	w := pp.err()
	msg := strings.TrimSpace(n.Message)
	switch n.Level {
	case presenter.LevelError:
		_, _ = errorStyle.Fprintln(w, "✗ "+msg)
	default:
		_, _ = okStyle.Fprintln(w, "✓ "+msg)
	}
}

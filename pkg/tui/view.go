package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/tabler/pkg/presenter"
	"tableflip.dev/tabler/pkg/render"
	"tableflip.dev/tabler/pkg/tui/theme"
)

const maxCellWidth = 40

// View renders the inputs, the table and the footer.
func (m Model) View() string {
	if m.helpText != "" {
		return m.helpText + "\n" + m.theme.Footer.Help.Render("? close help")
	}
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.dash.Title))
	b.WriteString("\n")

	if m.dash.Ranged() {
		from, to := m.theme.Input.Blurred, m.theme.Input.Blurred
		if m.focus == focusFrom {
			from = m.theme.Input.Focused
		} else {
			to = m.theme.Input.Focused
		}
		inputs := lipgloss.JoinHorizontal(lipgloss.Center,
			m.theme.Input.Label.Render("From "), from.Render(m.from.View()),
			m.theme.Input.Label.Render("  To "), to.Render(m.to.View()),
		)
		b.WriteString(inputs)
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Table.Frame.Render(renderTable(m.table, m.theme.Table)))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) footer() string {
	lines := make([]string, 0, 3)
	if m.loading {
		lines = append(lines, m.theme.Footer.Loading.Render("Loading data..."))
	}
	switch m.notice.Level {
	case presenter.LevelError:
		lines = append(lines, m.theme.Footer.Error.Render("✗ "+m.notice.Message))
	case presenter.LevelInfo:
		lines = append(lines, m.theme.Footer.Info.Render("✓ "+m.notice.Message))
	}
	lines = append(lines, m.theme.Footer.Help.Render(m.help()))
	return strings.Join(lines, "\n")
}

func (m Model) help() string {
	keys := []string{"l load"}
	if m.dash.Trigger != nil {
		keys = append(keys, "r refresh")
	}
	if f := m.nextFormat(); f != "" {
		keys = append(keys, "e export "+f)
	}
	if m.dash.Ranged() {
		keys = append(keys, "tab switch year")
	}
	keys = append(keys, "? help", "q quit")
	return strings.Join(keys, " • ")
}

func fit(s string) string {
	if lipgloss.Width(s) <= maxCellWidth {
		return s
	}
	return truncate.StringWithTail(s, maxCellWidth, "…")
}

func renderTable(m render.Model, th theme.TableTheme) string {
	widths := make([]int, len(m.Headers))
	for i, h := range m.Headers {
		widths[i] = lipgloss.Width(h.Text)
	}
	for _, row := range m.Rows {
		if row.Span {
			continue
		}
		for i, c := range row.Cells {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(fit(c.Text)))
			}
		}
	}

	lines := make([]string, 0, len(m.Rows)+1)
	header := make([]string, len(m.Headers))
	for i, h := range m.Headers {
		header[i] = th.Header.Render(pad(h.Text, widths[i], h.Align))
	}
	lines = append(lines, strings.Join(header, "  "))

	for _, row := range m.Rows {
		if row.Span {
			text := ""
			if len(row.Cells) > 0 {
				text = row.Cells[0].Text
			}
			style := th.Notice
			if m.Notice == render.NoticeError {
				style = th.Error
			}
			lines = append(lines, style.Render(text))
			continue
		}
		cells := make([]string, 0, len(row.Cells))
		for i, c := range row.Cells {
			if i >= len(widths) {
				break
			}
			cells = append(cells, toneStyle(c.Tone, th).Render(pad(fit(c.Text), widths[i], c.Align)))
		}
		lines = append(lines, strings.Join(cells, "  "))
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int, align render.Align) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if align == render.AlignRight {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

func toneStyle(t render.Tone, th theme.TableTheme) lipgloss.Style {
	switch t {
	case render.TonePositive:
		return th.Positive
	case render.ToneNegative:
		return th.Negative
	case render.ToneNeutral:
		return th.Neutral
	}
	return th.Cell
}

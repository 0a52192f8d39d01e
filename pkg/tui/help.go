package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tabler/pkg/dashboard"
)

var helpFrame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

// helpMarkdown documents the keys and the columns of d.
func helpMarkdown(d dashboard.Dashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n## Keys\n\n", d.Title)
	b.WriteString("- `l` or `enter` load the stored rows\n")
	if d.Trigger != nil {
		b.WriteString("- `r` refresh from the source, then reload\n")
	}
	if formats := d.Formats(); len(formats) > 0 {
		fmt.Fprintf(&b, "- `e` export, cycling through %s\n", strings.Join(formats, ", "))
	}
	if d.Ranged() {
		b.WriteString("- `tab` switch between the From and To years\n")
	}
	b.WriteString("- `?` toggle this help\n")
	b.WriteString("- `q` or `esc` quit\n\n## Columns\n\n")
	for _, c := range d.Columns {
		fmt.Fprintf(&b, "- **%s** %s\n", c.Header, c.Kind)
	}
	return b.String()
}

// renderHelp renders the help overlay for d wrapped at width.
func renderHelp(d dashboard.Dashboard, width int) string {
	wrap := max(width-helpFrame.GetHorizontalFrameSize(), 20)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "help unavailable: " + err.Error()
	}
	content, err := renderer.Render(helpMarkdown(d))
	if err != nil {
		return "help unavailable: " + err.Error()
	}
	return helpFrame.Render(strings.Trim(stripANSI(content), "\n"))
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

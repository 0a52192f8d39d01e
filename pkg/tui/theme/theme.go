package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	accentHex   = "#FF5FD7"
	positiveHex = "#00D787"
	negativeHex = "#FF5F5F"
)

// dim blends hex towards black by amount, in Lab space so hues stay put.
func dim(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendLab(colorful.Color{}, amount).Clamped().Hex()
}

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Title  lipgloss.Style
	Input  InputTheme
	Table  TableTheme
	Footer FooterTheme
}

// InputTheme styles the year range inputs.
type InputTheme struct {
	Label   lipgloss.Style
	Focused lipgloss.Style
	Blurred lipgloss.Style
}

// TableTheme styles the rendered table.
type TableTheme struct {
	Frame    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Neutral  lipgloss.Style
	Notice   lipgloss.Style
	Error    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help    lipgloss.Style
	Status  lipgloss.Style
	Loading lipgloss.Style
	Info    lipgloss.Style
	Error   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(accentHex)).
			Bold(true),
		Input: InputTheme{
			Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Focused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(accentHex)).Padding(0, 1),
			Blurred: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(dim(accentHex, 0.6))).Padding(0, 1),
		},
		Table: TableTheme{
			Frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
			Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
			Cell:     lipgloss.NewStyle(),
			Positive: lipgloss.NewStyle().Foreground(lipgloss.Color(positiveHex)),
			Negative: lipgloss.NewStyle().Foreground(lipgloss.Color(negativeHex)),
			Neutral:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Notice:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(dim(negativeHex, 0.2))),
		},
		Footer: FooterTheme{
			Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(dim(positiveHex, 0.2))),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(negativeHex)).Bold(true),
		},
	}
}

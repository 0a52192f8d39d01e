// Package tui is the interactive Bubble Tea view of a single dashboard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tabler/pkg/app"
	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/presenter"
	"tableflip.dev/tabler/pkg/render"
	"tableflip.dev/tabler/pkg/tui/theme"
)

const (
	focusFrom = iota
	focusTo
)

type exportedMsg struct {
	format string
	url    string
	err    error
}

// Model contains UI state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	dash      dashboard.Dashboard
	presenter *presenter.Presenter
	sender    *sender
	years     *years

	from  textinput.Model
	to    textinput.Model
	focus int

	table   render.Model
	loading bool
	notice  presenter.Notice
	format  int
	width   int

	// helpText is the rendered help overlay, empty while it is closed.
	helpText string

	theme theme.Theme
}

func yearInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "YYYY"
	ti.CharLimit = 4
	ti.Prompt = ""
	ti.SetValue(value)
	return ti
}

// New creates a UI for d backed by svc. Presenter callbacks are dropped
// until the model is attached to a program.
func New(ctx context.Context, svc *app.Service, d dashboard.Dashboard) Model {
	ctx, cancel := context.WithCancel(ctx)
	snd := &sender{}
	yrs := &years{}

	def := svc.DefaultBounds(ctx, d)
	yrs.set(def.From, def.To)

	nav := svc.Downloader("", func(path string) {
		snd.Notify(presenter.Notice{Level: presenter.LevelInfo, Message: "Saved " + path})
	})

	m := Model{
		ctx:    ctx,
		cancel: cancel,
		dash:   d,
		sender: snd,
		years:  yrs,
		from:   yearInput(def.From),
		to:     yearInput(def.To),
		table:  render.Empty(d),
		theme:  theme.Default(),
	}
	m.presenter = svc.Presenter(d, app.Views{
		Surface:   snd,
		Indicator: snd,
		Notifier:  snd,
		Navigator: nav,
	}, yrs)
	m.from.Focus()
	return m
}

// Init loads the table.
func (m Model) Init() tea.Cmd {
	return m.run(m.presenter.Load)
}

func (m Model) run(seq func(context.Context) error) tea.Cmd {
	m.years.set(strings.TrimSpace(m.from.Value()), strings.TrimSpace(m.to.Value()))
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{err: seq(ctx)}
	}
}

func (m Model) export(format string) tea.Cmd {
	m.years.set(strings.TrimSpace(m.from.Value()), strings.TrimSpace(m.to.Value()))
	ctx, p := m.ctx, m.presenter
	return func() tea.Msg {
		u, err := p.Export(ctx, format)
		return exportedMsg{format: format, url: u, err: err}
	}
}

// nextFormat is the export the next press of e will request.
func (m Model) nextFormat() string {
	formats := m.dash.Formats()
	if len(formats) == 0 {
		return ""
	}
	return formats[m.format%len(formats)]
}

func (m *Model) setFocus(f int) {
	m.focus = f
	if f == focusFrom {
		m.from.Focus()
		m.to.Blur()
		return
	}
	m.to.Focus()
	m.from.Blur()
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tableMsg:
		m.table = msg.model
	case loadingMsg:
		m.loading = msg.loading
	case noticeMsg:
		m.notice = msg.notice
	case doneMsg:
		if msg.err != nil && !errors.Is(msg.err, presenter.ErrSuperseded) && m.notice.Message == "" {
			m.notice = presenter.Notice{Level: presenter.LevelError, Message: msg.err.Error()}
		}
	case exportedMsg:
		if msg.err == nil {
			m.notice = presenter.Notice{Level: presenter.LevelInfo, Message: fmt.Sprintf("Export %s requested", msg.format)}
		}
	case tea.KeyPressMsg:
		if m.helpText != "" {
			switch msg.String() {
			case "ctrl+c":
				m.cancel()
				return m, tea.Quit
			case "?", "q", "esc":
				m.helpText = ""
			}
			return m, nil
		}
		switch msg.String() {
		case "?":
			width := m.width
			if width <= 0 {
				width = 80
			}
			m.helpText = renderHelp(m.dash, width)
		case "q", "esc", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case "l", "enter":
			m.notice = presenter.Notice{}
			cmds = append(cmds, m.run(m.presenter.Load))
		case "r":
			m.notice = presenter.Notice{}
			cmds = append(cmds, m.run(m.presenter.Refresh))
		case "e":
			format := m.nextFormat()
			if format == "" {
				m.notice = presenter.Notice{Level: presenter.LevelError, Message: m.dash.Title + " has no exports"}
				break
			}
			m.format++
			cmds = append(cmds, m.export(format))
		case "tab", "shift+tab":
			if m.focus == focusFrom {
				m.setFocus(focusTo)
			} else {
				m.setFocus(focusFrom)
			}
		default:
			if !m.dash.Ranged() {
				break
			}
			var cmd tea.Cmd
			if m.focus == focusFrom {
				m.from, cmd = m.from.Update(msg)
			} else {
				m.to, cmd = m.to.Update(msg)
			}
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// Run launches the UI for d.
func Run(ctx context.Context, svc *app.Service, d dashboard.Dashboard) error {
	m := New(ctx, svc, d)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	m.sender.set(p.Send)
	_, err := p.Run()
	return err
}

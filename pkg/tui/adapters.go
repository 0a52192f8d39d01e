package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tabler/pkg/presenter"
	"tableflip.dev/tabler/pkg/render"
)

type tableMsg struct{ model render.Model }
type loadingMsg struct{ loading bool }
type noticeMsg struct{ notice presenter.Notice }
type doneMsg struct{ err error }

// sender forwards presenter callbacks into the running program. The
// presenter calls it from command goroutines.
type sender struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (s *sender) set(fn func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = fn
}

func (s *sender) post(msg tea.Msg) {
	s.mu.Lock()
	fn := s.send
	s.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

func (s *sender) Replace(m render.Model)    { s.post(tableMsg{model: m}) }
func (s *sender) SetLoading(loading bool)   { s.post(loadingMsg{loading: loading}) }
func (s *sender) Notify(n presenter.Notice) { s.post(noticeMsg{notice: n}) }

// years holds the last values typed into the inputs so presenter goroutines
// can read them without touching the model.
type years struct {
	mu       sync.Mutex
	from, to string
}

func (y *years) set(from, to string) {
	y.mu.Lock()
	defer y.mu.Unlock()
	y.from, y.to = from, to
}

// Bounds implements presenter.Input.
func (y *years) Bounds() (string, string) {
	y.mu.Lock()
	defer y.mu.Unlock()
	return y.from, y.to
}

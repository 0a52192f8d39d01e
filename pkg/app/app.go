package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/filter"
	"tableflip.dev/tabler/pkg/presenter"
	"tableflip.dev/tabler/pkg/remote"
	"tableflip.dev/tabler/pkg/store"
)

// Service wires configuration, the backend client and saved preferences
// into presenters so the CLI, the TUI and the MCP server share one setup.
type Service struct {
	Config      store.Config
	Backend     *remote.Client
	Persistence store.Persistence
	Logger      *slog.Logger
	Now         func() time.Time
}

// Views bundles the output side of a presenter.
type Views struct {
	Surface   presenter.Surface
	Indicator presenter.Indicator
	Notifier  presenter.Notifier
	Navigator presenter.Navigator
}

// NewLogger returns a text logger on w, at debug level when debug is set.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// New builds a Service from cfg. p may be nil, in which case ranges are not
// remembered.
func New(cfg store.Config, p store.Persistence, logger *slog.Logger) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("app: no config")
	}
	if logger == nil {
		logger = slog.Default()
	}
	c, err := remote.New(cfg.BaseURL(),
		remote.WithTimeout(cfg.Timeout()),
		remote.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return &Service{
		Config:      cfg,
		Backend:     c,
		Persistence: p,
		Logger:      logger,
		Now:         time.Now,
	}, nil
}

// Dashboard resolves a dashboard by name or alias.
func (s *Service) Dashboard(name string) (dashboard.Dashboard, error) {
	return dashboard.ForName(name)
}

// DefaultBounds is the last range used for d, or the current year.
func (s *Service) DefaultBounds(ctx context.Context, d dashboard.Dashboard) presenter.Bounds {
	r := filter.Current(s.now())
	if s.Persistence != nil {
		if last, ok := s.Persistence.LastRange(ctx, d.Name); ok {
			r = last
		}
	}
	return presenter.Bounds{From: strconv.Itoa(r.From), To: strconv.Itoa(r.To)}
}

// Bounds fills whichever of from and to is empty from DefaultBounds.
func (s *Service) Bounds(ctx context.Context, d dashboard.Dashboard, from, to string) presenter.Bounds {
	def := s.DefaultBounds(ctx, d)
	if from == "" {
		from = def.From
	}
	if to == "" {
		to = def.To
	}
	return presenter.Bounds{From: from, To: to}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Presenter creates a presenter for d that remembers every valid range.
func (s *Service) Presenter(d dashboard.Dashboard, v Views, input presenter.Input) *presenter.Presenter {
	return presenter.New(d, s.Backend,
		presenter.WithSurface(v.Surface),
		presenter.WithIndicator(v.Indicator),
		presenter.WithNotifier(v.Notifier),
		presenter.WithNavigator(v.Navigator),
		presenter.WithInput(input),
		presenter.WithClock(s.now),
		presenter.WithLogger(s.Logger),
		presenter.OnFilter(func(r filter.Range) {
			if s.Persistence == nil {
				return
			}
			if err := s.Persistence.SaveRange(d.Name, r); err != nil {
				s.Logger.Warn("failed to remember range", "dashboard", d.Name, "err", err)
			}
		}),
	)
}

// Downloader is the navigator that saves exports into dir.
func (s *Service) Downloader(dir string, saved func(path string)) *remote.Downloader {
	if dir == "" && s.Config != nil {
		dir = s.Config.DownloadDir()
	}
	return &remote.Downloader{Client: s.Backend, Dir: dir, Saved: saved}
}

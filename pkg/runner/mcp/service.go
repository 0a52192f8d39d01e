// Package mcp exposes the tabler dashboards over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/tabler/pkg/app"
	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/presenter"
	"tableflip.dev/tabler/pkg/render"
	"tableflip.dev/tabler/pkg/store"
)

// Service runs presenter sequences on behalf of MCP tools. Every call gets
// its own presenter with an in-memory surface.
type Service struct {
	App *app.Service
}

// DashboardSummary describes a dashboard and what it supports.
type DashboardSummary struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Aliases     []string `json:"aliases,omitempty"`
	Ranged      bool     `json:"ranged"`
	Refreshable bool     `json:"refreshable"`
	Exports     []string `json:"exports,omitempty"`
	Columns     []string `json:"columns"`
}

// TableResult is the outcome of a load or refresh.
type TableResult struct {
	Dashboard string             `json:"dashboard"`
	From      string             `json:"from,omitempty"`
	To        string             `json:"to,omitempty"`
	Table     render.Model       `json:"table"`
	Notices   []presenter.Notice `json:"notices,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// TableRequest selects a dashboard and optional year bounds.
type TableRequest struct {
	Dashboard string
	From      string
	To        string
}

// NewService wraps s.
func NewService(s *app.Service) *Service {
	return &Service{App: s}
}

// ListDashboards summarises every known dashboard.
func (s *Service) ListDashboards() []DashboardSummary {
	out := make([]DashboardSummary, 0, len(dashboard.Defaults()))
	for _, d := range dashboard.Defaults() {
		out = append(out, summarize(d))
	}
	return out
}

// Describe summarises a single dashboard.
func (s *Service) Describe(name string) (DashboardSummary, error) {
	d, err := dashboard.ForName(name)
	if err != nil {
		return DashboardSummary{}, err
	}
	return summarize(d), nil
}

func summarize(d dashboard.Dashboard) DashboardSummary {
	cols := make([]string, 0, len(d.Columns))
	for _, c := range d.Columns {
		cols = append(cols, c.Header)
	}
	return DashboardSummary{
		Name:        d.Name,
		Title:       d.Title,
		Aliases:     d.Aliases,
		Ranged:      d.Ranged(),
		Refreshable: d.Trigger != nil,
		Exports:     d.Formats(),
		Columns:     cols,
	}
}

// Load fetches the stored collection.
func (s *Service) Load(ctx context.Context, req TableRequest) (TableResult, error) {
	return s.run(ctx, req, (*presenter.Presenter).Load)
}

// Refresh triggers the backend and then fetches.
func (s *Service) Refresh(ctx context.Context, req TableRequest) (TableResult, error) {
	return s.run(ctx, req, (*presenter.Presenter).Refresh)
}

func (s *Service) run(ctx context.Context, req TableRequest, seq func(*presenter.Presenter, context.Context) error) (TableResult, error) {
	if s.App == nil {
		return TableResult{}, errors.New("service is not configured")
	}
	d, err := s.App.Dashboard(strings.TrimSpace(req.Dashboard))
	if err != nil {
		return TableResult{}, err
	}
	bounds := s.App.Bounds(ctx, d, strings.TrimSpace(req.From), strings.TrimSpace(req.To))

	res := TableResult{Dashboard: d.Name}
	if d.Ranged() {
		res.From, res.To = bounds.From, bounds.To
	}
	rendered := false
	p := s.App.Presenter(d, app.Views{
		Surface: presenter.SurfaceFunc(func(m render.Model) {
			res.Table = m
			rendered = true
		}),
		Notifier: presenter.NotifierFunc(func(n presenter.Notice) {
			res.Notices = append(res.Notices, n)
		}),
	}, bounds)

	if err := seq(p, ctx); err != nil {
		if !rendered {
			return TableResult{}, err
		}
		res.Error = err.Error()
	}
	return res, nil
}

// ExportLink is a resolved export download URL.
type ExportLink struct {
	Dashboard string `json:"dashboard"`
	Format    string `json:"format"`
	URL       string `json:"url"`
}

// ExportURL returns the download URL for format without fetching it. An
// empty format picks the first one the dashboard offers.
func (s *Service) ExportURL(ctx context.Context, req TableRequest, format string) (ExportLink, error) {
	if s.App == nil {
		return ExportLink{}, errors.New("service is not configured")
	}
	d, err := s.App.Dashboard(strings.TrimSpace(req.Dashboard))
	if err != nil {
		return ExportLink{}, err
	}
	if len(d.Exports) == 0 {
		return ExportLink{}, fmt.Errorf("%s has no exports", d.Name)
	}
	e := d.Exports[0]
	if strings.TrimSpace(format) != "" {
		if e, err = d.Export(format); err != nil {
			return ExportLink{}, err
		}
	}
	bounds := s.App.Bounds(ctx, d, strings.TrimSpace(req.From), strings.TrimSpace(req.To))
	p := s.App.Presenter(d, app.Views{}, bounds)
	u, err := p.Export(ctx, e.Format)
	if err != nil {
		return ExportLink{}, err
	}
	return ExportLink{Dashboard: d.Name, Format: e.Format, URL: u}, nil
}

// SavedRange is the last range used on a dashboard.
type SavedRange struct {
	Dashboard string `json:"dashboard"`
	From      int    `json:"from"`
	To        int    `json:"to"`
}

// SavedRanges lists the remembered ranges, sorted by dashboard.
func (s *Service) SavedRanges(ctx context.Context) ([]SavedRange, error) {
	if s.App == nil || s.App.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	m := s.App.Persistence.Ranges(ctx)
	out := make([]SavedRange, 0, len(m))
	for _, name := range store.Names(m) {
		r := m[name]
		out = append(out, SavedRange{Dashboard: name, From: r.From, To: r.To})
	}
	return out, nil
}

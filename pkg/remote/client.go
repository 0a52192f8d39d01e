// Package remote talks to the dashboard backends over their REST boundary.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/filter"
	"tableflip.dev/tabler/pkg/record"
)

// HTTPError is a non-2xx backend response. Body is the raw response text.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ". " + body
	}
	return msg
}

// TriggerResult is what a trigger call reported. Count and Items are set
// when the backend answered with a JSON array, Summary otherwise.
type TriggerResult struct {
	Count   int             `json:"count"`
	Items   []record.Record `json:"items,omitempty"`
	Summary string          `json:"summary,omitempty"`
}

// Client is a backend connection.
type Client struct {
	base   *url.URL
	resty  *resty.Client
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.resty.SetTimeout(d)
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.resty.SetHeader("User-Agent", ua)
		}
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("remote: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("remote: base url %q needs a scheme and host", baseURL)
	}

	c := &Client{
		base:   u,
		logger: slog.Default(),
		resty: resty.New().
			SetBaseURL(u.String()).
			SetHeader("Accept", "application/json, text/plain;q=0.9, */*;q=0.8").
			SetHeader("User-Agent", "tabler"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.resty.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		c.logger.Debug("backend response",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"bytes", len(res.Body()),
			"elapsed", res.Time(),
		)
		return nil
	})
	return c, nil
}

// BaseURL is the backend root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string) (*resty.Response, error) {
	req := c.resty.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	res, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if res.IsError() || res.StatusCode() >= 300 {
		return nil, &HTTPError{
			Method:     method,
			URL:        res.Request.URL,
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
			Body:       res.String(),
		}
	}
	return res, nil
}

func query(d dashboard.Dashboard, ranged bool, r *filter.Range) map[string]string {
	if !ranged || r == nil {
		return nil
	}
	return d.Query(*r)
}

// Trigger asks the backend to repopulate its store. The range is only sent
// to dashboards whose trigger accepts one.
func (c *Client) Trigger(ctx context.Context, d dashboard.Dashboard, r *filter.Range) (TriggerResult, error) {
	if d.Trigger == nil {
		return TriggerResult{}, fmt.Errorf("%s has no refresh endpoint", d.Name)
	}
	res, err := c.do(ctx, d.Trigger.Method, d.Path(d.Trigger.Path), query(d, d.Trigger.Ranged, r))
	if err != nil {
		return TriggerResult{}, err
	}
	body := bytes.TrimSpace(res.Body())
	if len(body) > 0 && body[0] == '[' {
		items, err := record.Decode(body)
		if err != nil {
			return TriggerResult{}, err
		}
		return TriggerResult{Count: len(items), Items: items}, nil
	}
	return TriggerResult{Summary: string(body)}, nil
}

// Fetch reads the stored collection.
func (c *Client) Fetch(ctx context.Context, d dashboard.Dashboard, r *filter.Range) ([]record.Record, error) {
	res, err := c.do(ctx, d.List.Method, d.Path(d.List.Path), query(d, d.List.Ranged, r))
	if err != nil {
		return nil, err
	}
	return record.Decode(res.Body())
}

// ExportURL builds the absolute download URL for format. The same inputs
// always produce the same URL.
func (c *Client) ExportURL(d dashboard.Dashboard, format string, r *filter.Range) (string, error) {
	e, err := d.Export(format)
	if err != nil {
		return "", err
	}
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + d.ExportPath(e.Format)
	if q := query(d, e.Ranged, r); len(q) > 0 {
		vals := url.Values{}
		for k, v := range q {
			vals.Set(k, v)
		}
		u.RawQuery = vals.Encode()
	}
	return u.String(), nil
}

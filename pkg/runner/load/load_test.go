package load

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tableflip.dev/tabler/pkg/app"
	"tableflip.dev/tabler/pkg/printers"
	"tableflip.dev/tabler/pkg/render"
	"tableflip.dev/tabler/pkg/store"
)

type testConfig struct {
	url  string
	path string
}

func (t testConfig) BasePath() string       { return t.path }
func (t testConfig) BaseURL() string        { return t.url }
func (t testConfig) Timeout() time.Duration { return 5 * time.Second }
func (t testConfig) DownloadDir() string    { return t.path }
func (t testConfig) Debug() bool            { return false }
func (t testConfig) File() string           { return "" }

func TestLoadRendersJSON(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[{"title":"A","releaseYear":1991,"genres":"Drama","id":1},{"title":"B","releaseYear":1994,"genres":null,"id":2}]`)
	}))
	defer srv.Close()

	cfg := testConfig{url: srv.URL, path: t.TempDir()}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	svc, err := app.New(cfg, p, app.NewLogger(io.Discard, false))
	if err != nil {
		t.Fatalf("service: %v", err)
	}

	out := &bytes.Buffer{}
	jp := &printers.JSON{Out: out, Err: io.Discard}
	l := Load{
		App:       svc,
		Dashboard: "films",
		From:      "1990",
		To:        "1995",
		Views:     app.Views{Surface: jp, Notifier: jp},
	}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if gotQuery != "yearFrom=1990&yearTo=1995" {
		t.Fatalf("unexpected query %q", gotQuery)
	}

	var m render.Model
	if err := json.Unmarshal(out.Bytes(), &m); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	rows := m.Texts()
	if len(rows) != 2 || rows[1][2] != "" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestLoadUnknownDashboard(t *testing.T) {
	svc, err := app.New(testConfig{url: "http://localhost:1"}, nil, nil)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	l := Load{App: svc, Dashboard: "nope"}
	if err := l.Do(context.Background()); err == nil {
		t.Fatalf("expected unknown dashboard error")
	}
	if err := (&Load{}).Do(context.Background()); err == nil {
		t.Fatalf("expected error without service")
	}
}

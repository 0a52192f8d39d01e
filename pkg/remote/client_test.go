package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/filter"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New("/api"); err == nil {
		t.Fatalf("expected error for relative base url")
	}
}

func TestFetchSendsRange(t *testing.T) {
	var gotPath, gotFrom, gotTo string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFrom = r.URL.Query().Get("yearFrom")
		gotTo = r.URL.Query().Get("yearTo")
		_, _ = io.WriteString(w, `[{"title":"A","releaseYear":1991,"genres":"Drama","id":1}]`)
	})

	recs, err := c.Fetch(context.Background(), dashboard.Movies, &filter.Range{From: 1990, To: 1995})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/api/movies/load" || gotFrom != "1990" || gotTo != "1995" {
		t.Fatalf("unexpected request %s from=%s to=%s", gotPath, gotFrom, gotTo)
	}
	if len(recs) != 1 || recs[0].String("releaseYear") != "1991" {
		t.Fatalf("unexpected records %v", recs)
	}
}

func TestFetchGlobalIgnoresRange(t *testing.T) {
	var rawQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	})
	if _, err := c.Fetch(context.Background(), dashboard.Crypto, &filter.Range{From: 1990, To: 1995}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if rawQuery != "" {
		t.Fatalf("global list should not carry a query, got %q", rawQuery)
	}
}

func TestFetchErrorCarriesBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	})
	_, err := c.Fetch(context.Background(), dashboard.Crypto, nil)
	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if herr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status %d", herr.StatusCode)
	}
	if !strings.Contains(herr.Error(), "database unavailable") {
		t.Fatalf("error should include body: %q", herr.Error())
	}
}

func TestFetchBadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>oops</html>`)
	})
	_, err := c.Fetch(context.Background(), dashboard.Crypto, nil)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	var herr *HTTPError
	if errors.As(err, &herr) {
		t.Fatalf("decode failure should not be an HTTPError")
	}
}

func TestTrigger(t *testing.T) {
	tests := []struct {
		name       string
		d          dashboard.Dashboard
		body       string
		wantMethod string
		wantPath   string
		wantQuery  bool
		wantCount  int
		wantText   string
	}{
		{
			name:       "ranged array",
			d:          dashboard.Movies,
			body:       `[{"id":1},{"id":2}]`,
			wantMethod: http.MethodPost,
			wantPath:   "/api/movies/scrape",
			wantQuery:  true,
			wantCount:  2,
		},
		{
			name:       "global array",
			d:          dashboard.Crypto,
			body:       `[{"id":"90"}]`,
			wantMethod: http.MethodGet,
			wantPath:   "/api/crypto/fetch",
			wantCount:  1,
		},
		{
			name:       "plain text",
			d:          dashboard.Listings,
			body:       "Scraping started!",
			wantMethod: http.MethodGet,
			wantPath:   "/api/listings/scrape",
			wantText:   "Scraping started!",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var method, p, q string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				method, p, q = r.Method, r.URL.Path, r.URL.RawQuery
				_, _ = io.WriteString(w, tc.body)
			})
			res, err := c.Trigger(context.Background(), tc.d, &filter.Range{From: 2000, To: 2001})
			if err != nil {
				t.Fatalf("trigger: %v", err)
			}
			if method != tc.wantMethod || p != tc.wantPath {
				t.Fatalf("unexpected request %s %s", method, p)
			}
			if (q != "") != tc.wantQuery {
				t.Fatalf("unexpected query %q", q)
			}
			if res.Count != tc.wantCount || res.Summary != tc.wantText {
				t.Fatalf("unexpected result %+v", res)
			}
		})
	}
}

func TestTriggerWithoutEndpoint(t *testing.T) {
	c, err := New("http://localhost:1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Trigger(context.Background(), dashboard.Banks, nil); err == nil {
		t.Fatalf("expected error for dashboard without trigger")
	}
}

func TestExportURL(t *testing.T) {
	c, err := New("http://backend.test:8080/")
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.ExportURL(dashboard.Movies, "csv", &filter.Range{From: 2000, To: 2020})
	if err != nil {
		t.Fatalf("export url: %v", err)
	}
	want := "http://backend.test:8080/api/movies/export/csv?yearFrom=2000&yearTo=2020"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	again, _ := c.ExportURL(dashboard.Movies, "csv", &filter.Range{From: 2000, To: 2020})
	if again != got {
		t.Fatalf("export url should be deterministic")
	}

	got, err = c.ExportURL(dashboard.Crypto, "excel", &filter.Range{From: 2000, To: 2020})
	if err != nil {
		t.Fatalf("export url: %v", err)
	}
	if got != "http://backend.test:8080/api/crypto/export/excel" {
		t.Fatalf("global export should not carry a range: %s", got)
	}

	if _, err := c.ExportURL(dashboard.Movies, "pdf", nil); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestDownloaderSavesAttachment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", "attachment; filename=movies.xlsx")
		_, _ = io.WriteString(w, "xlsx-bytes")
	})
	dir := t.TempDir()
	var saved string
	d := &Downloader{Client: c, Dir: dir, Saved: func(p string) { saved = p }}

	u, err := c.ExportURL(dashboard.Movies, "xlsx", &filter.Range{From: 2000, To: 2001})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Navigate(context.Background(), u); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if saved != filepath.Join(dir, "movies.xlsx") {
		t.Fatalf("unexpected saved path %q", saved)
	}
	b, err := os.ReadFile(saved)
	if err != nil || string(b) != "xlsx-bytes" {
		t.Fatalf("unexpected file contents %q %v", b, err)
	}
}

func TestDownloaderError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad range", http.StatusBadRequest)
	})
	d := &Downloader{Client: c, Dir: t.TempDir()}
	err := d.Navigate(context.Background(), c.BaseURL()+"/api/movies/export/csv")
	var herr *HTTPError
	if !errors.As(err, &herr) || herr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestDownloaderKeepsExistingExports(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="crypto.xlsx"`)
		_, _ = io.WriteString(w, r.URL.Query().Get("n"))
	})
	dir := t.TempDir()
	d := &Downloader{Client: c, Dir: dir}
	for _, n := range []string{"first", "second"} {
		if err := d.Navigate(context.Background(), c.BaseURL()+"/api/crypto/export/excel?n="+n); err != nil {
			t.Fatalf("navigate: %v", err)
		}
	}
	for name, want := range map[string]string{"crypto.xlsx": "first", "crypto (1).xlsx": "second"} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil || string(b) != want {
			t.Fatalf("%s: got %q %v, want %q", name, b, err, want)
		}
	}
}

func TestDownloaderTruncatedBodyLeavesNoFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", "attachment; filename=movies.csv")
		w.Header().Set("Content-Length", "100")
		_, _ = io.WriteString(w, "title")
	})
	dir := t.TempDir()
	d := &Downloader{Client: c, Dir: dir}
	if err := d.Navigate(context.Background(), c.BaseURL()+"/api/movies/export/csv"); err == nil {
		t.Fatalf("expected short body error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("partial download left behind: %v", entries)
	}
}

func TestAttachmentName(t *testing.T) {
	tests := []struct {
		disposition string
		url         string
		want        string
	}{
		{`attachment; filename="cryptocurrencies.xlsx"`, "http://x/api/crypto/export/excel", "cryptocurrencies.xlsx"},
		{`attachment; filename=cryptocurrencies.xlsx`, "http://x/api/crypto/export/excel", "cryptocurrencies.xlsx"},
		{`attachment; filename=../../etc/passwd`, "http://x/api/crypto/export/excel", "passwd"},
		{`attachment; filename="a b.csv"; size=3`, "http://x/api/movies/export/csv", "a b.csv"},
		{"", "http://x/api/movies/export/csv?yearFrom=1", "movies.csv"},
		{"inline", "http://x/report.pdf", "report.pdf"},
	}
	for _, tc := range tests {
		if got := AttachmentName(tc.disposition, tc.url); got != tc.want {
			t.Fatalf("AttachmentName(%q, %q) = %q, want %q", tc.disposition, tc.url, got, tc.want)
		}
	}
}

func TestURLPrinter(t *testing.T) {
	var b strings.Builder
	if err := (URLPrinter{Out: &b}).Navigate(context.Background(), "http://x/y"); err != nil {
		t.Fatal(err)
	}
	if b.String() != "http://x/y\n" {
		t.Fatalf("unexpected output %q", b.String())
	}
}

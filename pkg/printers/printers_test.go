package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/presenter"
	"tableflip.dev/tabler/pkg/record"
	"tableflip.dev/tabler/pkg/render"
)

func movieModel() render.Model {
	return render.Build(dashboard.Movies, []record.Record{
		{"title": "A", "releaseYear": json.Number("1991"), "genres": "Drama", "id": json.Number("1")},
		{"title": "A very long title that keeps going", "releaseYear": json.Number("1992")},
	})
}

func TestPrettyReplace(t *testing.T) {
	var out bytes.Buffer
	pp := &PrettyPrint{Out: &out, MaxCellWidth: 12}
	pp.Replace(movieModel())

	got := out.String()
	for _, want := range []string{"Movies", "2 records", "Title", "Genres", "Drama", "1991", "A very long…"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "keeps going") {
		t.Fatalf("long cell should be truncated:\n%s", got)
	}
}

func TestPrettyPlaceholder(t *testing.T) {
	var out bytes.Buffer
	pp := &PrettyPrint{Out: &out}
	pp.Replace(render.Empty(dashboard.Crypto))
	if !strings.Contains(out.String(), dashboard.Crypto.EmptyMessage) {
		t.Fatalf("placeholder missing:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "0 records") {
		t.Fatalf("placeholder should count as zero records:\n%s", out.String())
	}
}

func TestPrettyLoadingAndNotices(t *testing.T) {
	var errOut bytes.Buffer
	no := false
	pp := &PrettyPrint{Err: &errOut, Interactive: &no}
	pp.SetLoading(true)
	pp.Notify(presenter.Notice{Level: presenter.LevelError, Message: "Refresh failed: 502"})
	pp.Notify(presenter.Notice{Level: presenter.LevelInfo, Message: "Refresh complete."})
	pp.SetLoading(false)

	got := errOut.String()
	want := "Loading data...\n✗ Refresh failed: 502\n✓ Refresh complete.\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrettyInteractiveLoadingIsErased(t *testing.T) {
	var term bytes.Buffer
	yes := true
	pp := &PrettyPrint{Out: &term, Err: &term, Interactive: &yes}
	pp.SetLoading(true)
	pp.Replace(movieModel())
	pp.SetLoading(false)
	pp.SetLoading(true)
	pp.Notify(presenter.Notice{Level: presenter.LevelInfo, Message: "Refresh complete."})
	pp.SetLoading(false)

	got := term.String()
	if !strings.HasPrefix(got, "Loading data...\r\033[KMovies - 2 records\n") {
		t.Fatalf("loading line not erased before the table: %q", got)
	}
	if !strings.HasSuffix(got, "Loading data...\r\033[K✓ Refresh complete.\n") {
		t.Fatalf("loading line not erased before the notice: %q", got)
	}
	if n := strings.Count(got, "\033[K"); n != 2 {
		t.Fatalf("expected two erasures, got %d in %q", n, got)
	}
}

func TestDocumentHTML(t *testing.T) {
	d := &Document{Format: FormatHTML}
	got := d.Render(movieModel())
	for _, want := range []string{"<table", "tabler-table", "Drama", "1991", "Title"} {
		if !strings.Contains(got, want) {
			t.Fatalf("html missing %q:\n%s", want, got)
		}
	}
}

func TestDocumentMarkdown(t *testing.T) {
	var out bytes.Buffer
	d := &Document{Out: &out, Format: FormatMarkdown}
	d.Replace(render.Empty(dashboard.Movies))
	got := out.String()
	if !strings.Contains(got, "|") || !strings.Contains(got, dashboard.Movies.EmptyMessage) {
		t.Fatalf("unexpected markdown:\n%s", got)
	}
}

func TestJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	j := &JSON{Out: &out, Err: &errOut}
	j.Replace(movieModel())
	j.Notify(presenter.Notice{Level: presenter.LevelInfo, Message: "ok"})

	var m render.Model
	if err := json.Unmarshal(out.Bytes(), &m); err != nil {
		t.Fatalf("model is not json: %v", err)
	}
	if len(m.Rows) != 2 || m.Rows[0].Cells[0].Text != "A" {
		t.Fatalf("unexpected model %+v", m)
	}
	if !strings.Contains(errOut.String(), `"message": "ok"`) {
		t.Fatalf("unexpected notice output %q", errOut.String())
	}
}

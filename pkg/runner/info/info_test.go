package info

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/tabler/pkg/filter"
	"tableflip.dev/tabler/pkg/store"
)

type testConfig struct{ path string }

func (t testConfig) BasePath() string       { return t.path }
func (t testConfig) BaseURL() string        { return "http://localhost:8080" }
func (t testConfig) Timeout() time.Duration { return time.Minute }
func (t testConfig) DownloadDir() string    { return "." }
func (t testConfig) Debug() bool            { return false }
func (t testConfig) File() string           { return "" }

func TestInfoListsSavedRanges(t *testing.T) {
	t.Setenv("TABLER_CONFIG_PATH", "")
	cfg := testConfig{path: t.TempDir()}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := p.SaveRange("movies", filter.Range{From: 1990, To: 1995}); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := &bytes.Buffer{}
	i := Info{Config: cfg, Persistence: p, Out: out}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"env var not set", cfg.path, "http://localhost:8080", "movies: 1990-1995"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestInfoWithoutRanges(t *testing.T) {
	cfg := testConfig{path: t.TempDir()}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	out := &bytes.Buffer{}
	i := Info{Config: cfg, Persistence: p, Out: out}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	if !strings.Contains(out.String(), "no saved ranges") {
		t.Fatalf("expected empty notice:\n%s", out.String())
	}
	if err := (&Info{Config: cfg, Out: out}).Do(context.Background()); err == nil {
		t.Fatalf("expected error without persistence")
	}
}

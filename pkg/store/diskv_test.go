package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/tabler/pkg/filter"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string       { return t.path }
func (t testConfig) BaseURL() string        { return DefaultBaseURL }
func (t testConfig) Timeout() time.Duration { return time.Second }
func (t testConfig) DownloadDir() string    { return t.path }
func (t testConfig) Debug() bool            { return false }
func (t testConfig) File() string           { return "" }

func TestPersistenceRoundTripsRanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx := context.Background()

	if _, ok := p.LastRange(ctx, "movies"); ok {
		t.Fatalf("expected no saved range")
	}
	if err := p.SaveRange("movies", filter.Range{From: 1990, To: 1995}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := p.SaveRange("Banks", filter.Range{From: 2020, To: 2020}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// a fresh handle reads what the first one wrote
	p2, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	r, ok := p2.LastRange(ctx, "movies")
	if !ok || r != (filter.Range{From: 1990, To: 1995}) {
		t.Fatalf("unexpected range %v %v", r, ok)
	}

	all := p2.Ranges(ctx)
	names := Names(all)
	if len(names) != 2 || names[0] != "banks" || names[1] != "movies" {
		t.Fatalf("unexpected names %v", names)
	}
	if _, err := os.Stat(filepath.Join(base, "ranges", "movies")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	if err := p2.Forget("movies"); err != nil {
		t.Fatalf("forget: %v", err)
	}
	if _, ok := p2.LastRange(ctx, "movies"); ok {
		t.Fatalf("range should be gone")
	}
	if err := p2.Forget("movies"); err != nil {
		t.Fatalf("forgetting twice should be a no-op: %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TABLER_CONFIG_PATH", t.TempDir())
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Timeout() != DefaultTimeout {
		t.Fatalf("unexpected timeout %v", cfg.Timeout())
	}
	if cfg.BasePath() == DefaultPath {
		t.Fatalf("path should be expanded, got %s", cfg.BasePath())
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	body := "base_url: http://backend.test:9000\ntimeout: 5s\npath: " + dir + "\n"
	if err := os.WriteFile(filepath.Join(dir, ".tabler.yaml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TABLER_CONFIG_PATH", dir)

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BaseURL() != "http://backend.test:9000" || cfg.Timeout() != 5*time.Second || cfg.BasePath() != dir {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.File() == "" {
		t.Fatalf("expected config file to be recorded")
	}
}

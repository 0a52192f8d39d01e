package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/tabler/pkg/filter"
)

// Persistence remembers the last year range used per dashboard so the next
// invocation starts where the previous one left off.
type Persistence interface {
	LastRange(ctx context.Context, dashboard string) (filter.Range, bool)
	SaveRange(dashboard string, r filter.Range) error
	Forget(dashboard string) error
	Ranges(ctx context.Context) map[string]filter.Range
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig(nil)
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      64 * 1024,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

const rangesDir = "ranges"

func (p *persistence) LastRange(_ context.Context, dashboard string) (filter.Range, bool) {
	key := toKey(dashboard)
	if !p.d.Has(key) {
		return filter.Range{}, false
	}
	r, err := p.read(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
		return filter.Range{}, false
	}
	return r, true
}

func (p *persistence) read(key string) (filter.Range, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return filter.Range{}, err
	}
	var r filter.Range
	if err := json.Unmarshal(val, &r); err != nil {
		return filter.Range{}, err
	}
	return r, nil
}

func (p *persistence) SaveRange(dashboard string, r filter.Range) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(dashboard), data)
}

func (p *persistence) Forget(dashboard string) error {
	key := toKey(dashboard)
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}

func (p *persistence) Ranges(ctx context.Context) map[string]filter.Range {
	all := make(map[string]filter.Range)
	for key := range p.d.KeysPrefix(rangesDir+"-", ctx.Done()) {
		r, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all[keyToPathTransform(key).FileName] = r
	}
	return all
}

// Names returns the sorted keys of m.
func Names(m map[string]filter.Range) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) == 1 {
		return &diskv.PathKey{FileName: parts[0]}
	}
	return &diskv.PathKey{
		Path:     []string{parts[0]},
		FileName: parts[1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `ranges-<dashboard>`
func toKey(dashboard string) string {
	return fmt.Sprintf("%s-%s", rangesDir, strings.ToLower(strings.TrimSpace(dashboard)))
}

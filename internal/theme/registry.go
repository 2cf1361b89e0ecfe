package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/san-kum/prism/internal/gradient"
	"github.com/san-kum/prism/internal/logging"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultName is the theme used when none is configured.
const DefaultName = "rainbow"

// CustomCategory holds themes loaded from user files.
const CustomCategory = "custom"

// Registry is a set of named themes grouped by category.
type Registry struct {
	mu         sync.RWMutex
	themes     map[string]Definition
	categories map[string][]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		themes:     make(map[string]Definition),
		categories: make(map[string][]string),
	}
}

// Builtin returns a registry holding the embedded catalogue. Invalid
// built-in entries are skipped and logged.
func Builtin() *Registry {
	r := NewRegistry()
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		logging.Logger().Error("read builtin themes", "err", err)
		return r
	}
	for _, e := range entries {
		category := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			logging.Logger().Warn("read builtin theme file", "file", e.Name(), "err", err)
			continue
		}
		defs, err := Parse(data)
		if err != nil {
			logging.Logger().Warn("skip builtin theme file", "file", e.Name(), "err", err)
			continue
		}
		for _, d := range defs {
			r.add(category, d)
		}
	}
	return r
}

func (r *Registry) add(category string, d Definition) {
	d.Category = category
	if old, ok := r.themes[d.Name]; ok {
		r.categories[old.Category] = remove(r.categories[old.Category], d.Name)
		if len(r.categories[old.Category]) == 0 {
			delete(r.categories, old.Category)
		}
	}
	r.themes[d.Name] = d
	r.categories[category] = append(r.categories[category], d.Name)
}

func remove(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// Add validates and registers definitions under category. Existing themes
// with the same name are replaced.
func (r *Registry) Add(category string, defs ...Definition) error {
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range defs {
		r.add(category, d)
	}
	return nil
}

// Get looks a theme up by name, case-insensitively.
func (r *Registry) Get(name string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.themes[name]; ok {
		return d, nil
	}
	key := strings.ToLower(strings.TrimSpace(name))
	for n, d := range r.themes {
		if strings.ToLower(n) == key {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
}

// Gradient compiles the named theme.
func (r *Registry) Gradient(name string) (*gradient.Gradient, error) {
	d, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return d.Compile()
}

// Names lists every theme name in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.themes))
	for n := range r.themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// List returns every definition sorted by category then name.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.themes))
	for _, d := range r.themes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.categories))
	for c := range r.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ByCategory returns the sorted theme names of one category.
func (r *Registry) ByCategory(category string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names, ok := r.categories[strings.ToLower(category)]
	if !ok {
		return nil, false
	}
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out, true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.themes)
}

// LoadFile parses a theme file and registers its themes. Themes that
// declare no category go into CustomCategory.
func (r *Registry) LoadFile(file string) ([]Definition, error) {
	defs, err := ReadFile(file)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range defs {
		cat := d.Category
		if cat == "" {
			cat = CustomCategory
		}
		r.add(cat, d)
	}
	logging.Logger().Info("loaded theme file", "file", file, "themes", len(defs))
	return defs, nil
}

// ReadFile parses a theme file without registering it.
func ReadFile(file string) ([]Definition, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("theme: read %s: %w", file, err)
	}
	defs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return defs, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, seeded with the built-in
// catalogue on first use.
func Default() *Registry {
	defaultOnce.Do(func() { defaultReg = Builtin() })
	return defaultReg
}

func Get(name string) (Definition, error)                 { return Default().Get(name) }
func GradientFor(name string) (*gradient.Gradient, error) { return Default().Gradient(name) }
func Names() []string                                     { return Default().Names() }
func List() []Definition                                  { return Default().List() }
func Categories() []string                                { return Default().Categories() }
func ByCategory(category string) ([]string, bool)         { return Default().ByCategory(category) }
func LoadFile(file string) ([]Definition, error)          { return Default().LoadFile(file) }

package screenset

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/padmenu/padmenu/dispatch"
	"github.com/padmenu/padmenu/internal/ctxlog"
	"github.com/padmenu/padmenu/menu"
	"github.com/padmenu/padmenu/mml"
	"github.com/padmenu/padmenu/screen"
	"github.com/padmenu/padmenu/store"
	"github.com/zclconf/go-cty/cty"
)

// ScreenConfig is one screen of a loaded set. Err is non-nil when the
// screen's template or seed failed to load; the rest of the set is
// unaffected.
type ScreenConfig struct {
	Name         string
	Title        string
	Source       string
	InitialFocus string
	Seed         map[string]cty.Value
	Template     *menu.Template
	Err          error
}

// Set is a loaded manifest: the screens in declaration order plus the
// entry screen name.
type Set struct {
	Path    string
	Entry   string
	Screens []*ScreenConfig

	byName map[string]*ScreenConfig
}

// Load parses a set manifest and compiles every screen template it
// references. Manifest-level problems (unparseable HCL, duplicate or
// missing names) fail the load; per-screen compile and seed problems
// are recorded on the individual ScreenConfig instead.
func Load(ctx context.Context, path string) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding screen set manifest.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse set manifest %s: %s", path, diags.Error())
	}

	var config SetConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode set manifest %s: %s", path, diags.Error())
	}
	if len(config.Screens) == 0 {
		return nil, fmt.Errorf("set manifest %s defines no screens", path)
	}

	set := &Set{
		Path:   path,
		byName: make(map[string]*ScreenConfig, len(config.Screens)),
	}
	baseDir := filepath.Dir(path)

	for _, block := range config.Screens {
		if _, exists := set.byName[block.Name]; exists {
			return nil, fmt.Errorf("set manifest %s declares screen %q twice", path, block.Name)
		}
		sc := &ScreenConfig{
			Name:         block.Name,
			Title:        block.Title,
			Source:       filepath.Join(baseDir, block.Source),
			InitialFocus: block.InitialFocus,
		}
		if block.Seed != nil {
			sc.Seed, sc.Err = decodeSeed(block.Seed.Body)
		}
		if sc.Err == nil {
			sc.Template, sc.Err = mml.CompileFile(sc.Source)
		}
		if sc.Err != nil {
			logger.Warn("Screen failed to load.", "screen", sc.Name, "error", sc.Err)
		} else {
			logger.Debug("Screen loaded.", "screen", sc.Name, "source", sc.Source, "nodes", sc.Template.Len())
		}
		set.Screens = append(set.Screens, sc)
		set.byName[block.Name] = sc
	}

	set.Entry = config.Entry
	if set.Entry == "" {
		set.Entry = set.Screens[0].Name
	}
	if _, ok := set.byName[set.Entry]; !ok {
		return nil, fmt.Errorf("set manifest %s names unknown entry screen %q", path, set.Entry)
	}

	logger.Info("🗂️ Screen set loaded.", "path", path, "screens", len(set.Screens), "entry", set.Entry)
	return set, nil
}

// decodeSeed evaluates a seed block's attributes as literal scalars.
func decodeSeed(body hcl.Body) (map[string]cty.Value, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid seed block: %s", diags.Error())
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	seed := make(map[string]cty.Value, len(attrs))
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("seed value %q must be a literal: %s", name, diags.Error())
		}
		if !store.IsScalar(val) {
			return nil, fmt.Errorf("seed value %q must be a scalar, got %s", name, val.Type().FriendlyName())
		}
		seed[name] = val
	}
	return seed, nil
}

// Screen returns the named screen config.
func (s *Set) Screen(name string) (*ScreenConfig, bool) {
	sc, ok := s.byName[name]
	return sc, ok
}

// Names returns the screen names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.Screens))
	for i, sc := range s.Screens {
		names[i] = sc.Name
	}
	return names
}

// Healthy returns the screens that loaded without error, in declaration
// order.
func (s *Set) Healthy() []*ScreenConfig {
	healthy := make([]*ScreenConfig, 0, len(s.Screens))
	for _, sc := range s.Screens {
		if sc.Err == nil {
			healthy = append(healthy, sc)
		}
	}
	return healthy
}

// Build assembles a runnable screen for every healthy entry in the set,
// registers them on a fresh manager, and requests the entry screen. The
// entry screen failing to load is an error; other broken screens are
// skipped with a warning.
func (s *Set) Build(ctx context.Context, table *dispatch.Table) (*screen.Manager, error) {
	m := screen.NewManager()
	for _, sc := range s.Healthy() {
		st := store.New()
		st.Seed(sc.Seed)
		runnable := screen.New(sc.Name, sc.Template, st, table)
		if sc.InitialFocus != "" {
			runnable.SetInitialFocus(sc.InitialFocus)
		}
		m.Add(runnable)
	}
	if m.Len() == 0 {
		return nil, fmt.Errorf("screen set %s has no loadable screens", s.Path)
	}
	if err := m.Enter(s.Entry); err != nil {
		return nil, fmt.Errorf("screen set %s: %w", s.Path, err)
	}
	return m, nil
}

package plugin

import (
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"bytemomo/barracuda/internal/domain"
)

// Settings is the plugin-selection configuration the registry filters
// with. It is loaded by the config layer and consumed here as plain
// values.
type Settings struct {
	// Enabled is an optional allow-list. When non-empty, only listed
	// plugins are active by default.
	Enabled []string
	// Disabled always wins over Enabled and over explicit requests.
	Disabled []string
	// Directories are scanned for external plugins.
	Directories []string
}

// Registry maps plugin names to their implementations. Reads during a
// scan are lock-free from the caller's point of view; Reload must not
// run concurrently with an in-flight scan (documented constraint, the
// registry does not enforce it).
type Registry struct {
	mu       sync.RWMutex
	plugins  map[string]*Plugin
	order    []string
	settings Settings
	loaders  []Loader

	// builtins is re-run on Reload so statically linked plugins
	// survive a registry reset.
	builtins func(*Registry)
}

// NewRegistry creates an empty registry with the given selection
// settings.
func NewRegistry(settings Settings) *Registry {
	return &Registry{
		plugins:  make(map[string]*Plugin),
		settings: settings,
	}
}

// Register inserts a plugin by name. A later registration under the
// same name replaces the earlier one; the original list position is
// kept and the collision is logged.
func (r *Registry) Register(p *Plugin) error {
	if p == nil || p.Runner == nil {
		return fmt.Errorf("register plugin: nil plugin or runner")
	}
	if p.Meta.Name == "" {
		return fmt.Errorf("register plugin: name is required")
	}
	if p.Meta.RiskLevel != "" && !p.Meta.RiskLevel.IsValid() {
		return fmt.Errorf("register plugin %q: invalid risk level %q", p.Meta.Name, p.Meta.RiskLevel)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.plugins[p.Meta.Name]; exists {
		log.WithField("plugin", p.Meta.Name).Warn("Plugin name collision, replacing earlier registration")
	} else {
		r.order = append(r.order, p.Meta.Name)
	}
	r.plugins[p.Meta.Name] = p
	return nil
}

// SetBuiltins stores the builtin registration hook and runs it once.
func (r *Registry) SetBuiltins(register func(*Registry)) {
	r.builtins = register
	if register != nil {
		register(r)
	}
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// List returns every registered plugin in registration order.
func (r *Registry) List() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Plugin, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.plugins[name])
	}
	return out
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ActivePlugins resolves the set of plugins one scan will execute.
//
// With requested names, each is resolved in the caller's order;
// unknown or disabled names are skipped with a warning. Without them,
// the Enabled allow-list applies when present, and the Disabled list
// always wins.
func (r *Registry) ActivePlugins(requested []string) []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	disabled := toSet(r.settings.Disabled)

	if len(requested) > 0 {
		var active []*Plugin
		for _, name := range requested {
			p, ok := r.plugins[name]
			if !ok {
				log.WithField("plugin", name).Warn("Requested plugin not found")
				continue
			}
			if _, off := disabled[name]; off {
				log.WithField("plugin", name).Warn("Requested plugin is disabled in configuration")
				continue
			}
			active = append(active, p)
		}
		return active
	}

	enabled := toSet(r.settings.Enabled)
	var active []*Plugin
	for _, name := range r.order {
		if _, off := disabled[name]; off {
			continue
		}
		if len(enabled) > 0 {
			if _, on := enabled[name]; !on {
				continue
			}
		}
		active = append(active, r.plugins[name])
	}
	return active
}

// FilterByCategory returns plugins whose category matches, compared
// case-insensitively.
func (r *Registry) FilterByCategory(category string) []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Plugin
	for _, name := range r.order {
		if strings.EqualFold(r.plugins[name].Meta.Category, category) {
			out = append(out, r.plugins[name])
		}
	}
	return out
}

// FilterByRiskLevel returns plugins with the given risk level,
// compared case-insensitively.
func (r *Registry) FilterByRiskLevel(level string) []*Plugin {
	want := domain.ParseRiskLevel(level)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Plugin
	for _, name := range r.order {
		if r.plugins[name].Meta.RiskLevel == want {
			out = append(out, r.plugins[name])
		}
	}
	return out
}

// Reload clears every registration, re-registers the builtins and
// re-runs directory discovery. Callers must not reload while a scan
// is in flight.
func (r *Registry) Reload() {
	r.mu.Lock()
	r.plugins = make(map[string]*Plugin)
	r.order = nil
	r.mu.Unlock()

	if r.builtins != nil {
		r.builtins(r)
	}
	r.Discover(r.settings.Directories)
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

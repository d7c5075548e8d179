//go:build linux || darwin || freebsd

package soplugin

import (
	"fmt"
	goplugin "plugin"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/plugin"
)

// Load opens the shared object and resolves its exported Plugin symbol.
func (l *Loader) Load(path string) (*plugin.Plugin, error) {
	so, err := goplugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", domain.ErrDiscovery, path, err)
	}

	sym, err := so.Lookup("Plugin")
	if err != nil {
		return nil, fmt.Errorf("%w: %q does not export Plugin: %v", domain.ErrDiscovery, path, err)
	}

	p, ok := sym.(*plugin.Plugin)
	if !ok {
		return nil, fmt.Errorf("%w: %q Plugin symbol has type %T, want *plugin.Plugin", domain.ErrDiscovery, path, sym)
	}
	if p.Runner == nil {
		return nil, fmt.Errorf("%w: %q Plugin has no runner", domain.ErrDiscovery, path)
	}
	return p, nil
}

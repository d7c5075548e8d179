//go:build !linux && !darwin && !freebsd

package soplugin

import (
	"fmt"
	"runtime"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/plugin"
)

// Load is unavailable on platforms without Go plugin support.
func (l *Loader) Load(path string) (*plugin.Plugin, error) {
	return nil, fmt.Errorf("%w: shared-object plugins are not supported on %s", domain.ErrDiscovery, runtime.GOOS)
}

// Package soplugin loads external plugins compiled as Go shared
// objects. A .so in a plugin directory must export a Plugin symbol of
// type plugin.Plugin, built against the same module version as the
// scanner.
package soplugin

import "path/filepath"

// Loader builds plugins from *.so files. Loading is only available on
// unix-like platforms; elsewhere Load reports the candidate as
// unsupported.
type Loader struct{}

// NewLoader creates a shared-object loader.
func NewLoader() *Loader { return &Loader{} }

// Supports reports whether path looks like a shared-object plugin.
func (l *Loader) Supports(path string) bool {
	return filepath.Ext(path) == ".so"
}

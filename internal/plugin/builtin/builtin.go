// Package builtin ships the scanner's bundled plugins. They cover the
// passive and low-risk checks most scans want without any external
// plugin directory configured.
package builtin

import (
	"bytemomo/barracuda/internal/plugin"
)

// Register adds every bundled plugin to the registry.
func Register(reg *plugin.Registry) {
	reg.Register(SecurityHeaders())
	reg.Register(CORS())
	reg.Register(InfoDisclosure())
	reg.Register(ReflectedXSS())
	reg.Register(SQLInjection())
	reg.Register(SensitivePaths())
}

// Package plugin owns the mapping from plugin name to detection module
// and the filtered views the orchestrator scans with.
package plugin

import (
	"context"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/httpx"
)

// Runner is the single capability every detection module implements:
// probe one target through the shared transport and report what it
// found. Implementations must be safe to run concurrently with other
// plugins sharing the same client.
type Runner interface {
	Run(ctx context.Context, target string, client *httpx.Client) ([]domain.Vulnerability, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, target string, client *httpx.Client) ([]domain.Vulnerability, error)

func (f RunnerFunc) Run(ctx context.Context, target string, client *httpx.Client) ([]domain.Vulnerability, error) {
	return f(ctx, target, client)
}

// Plugin pairs a detection module with its descriptor. The descriptor
// is attached at registration time and immutable afterwards.
type Plugin struct {
	Meta   domain.PluginMetadata
	Runner Runner
}

// Name returns the registry key of the plugin.
func (p *Plugin) Name() string { return p.Meta.Name }

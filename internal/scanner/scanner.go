// Package scanner drives one scan end to end: validate the target,
// resolve the active plugin set, run every plugin concurrently against
// the shared transport and aggregate their findings.
package scanner

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/httpx"
	"bytemomo/barracuda/internal/plugin"
)

// Scanner orchestrates scans. The transport instance is owned by the
// caller and passed to every plugin invocation; there are no
// process-wide singletons behind it.
type Scanner struct {
	registry *plugin.Registry
	client   *httpx.Client
	observer Observer
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithObserver replaces the default log-backed progress observer.
func WithObserver(o Observer) Option {
	return func(s *Scanner) {
		if o != nil {
			s.observer = o
		}
	}
}

// New creates a scanner over the given registry and transport.
func New(registry *plugin.Registry, client *httpx.Client, opts ...Option) *Scanner {
	s := &Scanner{
		registry: registry,
		client:   client,
		observer: LogObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// taskResult is what one plugin task hands back to the collector.
type taskResult struct {
	name  string
	vulns []domain.Vulnerability
	err   error
}

// Scan runs every active plugin against the target and returns the
// aggregated result.
//
// The target must be an absolute URL; anything else fails with
// domain.ErrInvalidTarget before any plugin work starts. With
// pluginNames, only those plugins run, in no guaranteed order. An
// empty active set is success: the result is well formed and empty.
//
// Each plugin runs in its own goroutine; a failure (error or panic)
// is caught at that task's boundary, logged, and contributes zero
// findings without disturbing the other tasks. Findings are collected
// in task completion order. The call waits for every task to finish;
// callers wanting a deadline wrap ctx.
func (s *Scanner) Scan(ctx context.Context, target string, pluginNames []string) (*domain.ScanResult, error) {
	log.WithField("target", target).Info("Starting scan")

	if !httpx.ValidateURL(target) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTarget, target)
	}

	result := domain.NewScanResult(target, httpx.Version)

	active := s.registry.ActivePlugins(pluginNames)
	if len(active) == 0 {
		log.Warn("No active plugins found for scan")
		return result, nil
	}

	used := make([]string, len(active))
	for i, p := range active {
		used[i] = p.Meta.Name
	}
	result.ScanInfo.PluginsUsed = used

	log.WithFields(log.Fields{
		"target":  target,
		"plugins": used,
	}).Info("Running plugins")

	results := make(chan taskResult, len(active))
	for _, p := range active {
		s.observer.PluginStarted(p.Meta.Name)
		go s.runPlugin(ctx, p, target, results)
	}

	failed := 0
	for range active {
		tr := <-results
		if tr.err != nil {
			failed++
			s.observer.PluginFailed(tr.name, tr.err)
			continue
		}
		s.observer.PluginCompleted(tr.name, len(tr.vulns))
		for _, v := range tr.vulns {
			result.Add(v)
		}
	}

	log.WithFields(log.Fields{
		"target":          target,
		"vulnerabilities": result.Total(),
		"plugins_failed":  failed,
	}).Info("Scan completed")
	return result, nil
}

// runPlugin executes one plugin task. Panics and errors are converted
// into a failure value here so they can never unwind the scan.
func (s *Scanner) runPlugin(ctx context.Context, p *plugin.Plugin, target string, out chan<- taskResult) {
	defer func() {
		if r := recover(); r != nil {
			out <- taskResult{
				name: p.Meta.Name,
				err:  fmt.Errorf("%w: plugin %s panicked: %v", domain.ErrPluginExecution, p.Meta.Name, r),
			}
		}
	}()

	vulns, err := p.Runner.Run(ctx, target, s.client)
	if err != nil {
		out <- taskResult{
			name: p.Meta.Name,
			err:  fmt.Errorf("%w: %s: %v", domain.ErrPluginExecution, p.Meta.Name, err),
		}
		return
	}

	// Stamp ownership so findings group correctly even when a plugin
	// leaves the fields blank.
	for i := range vulns {
		if vulns[i].PluginName == "" {
			vulns[i].PluginName = p.Meta.Name
		}
		if vulns[i].PluginCategory == "" {
			vulns[i].PluginCategory = p.Meta.Category
		}
	}
	out <- taskResult{name: p.Meta.Name, vulns: vulns}
}

// Package execplugin loads external plugins that live behind a
// subprocess boundary. A YAML manifest in a plugin directory names the
// executable; the executable receives the target URL as a flag and
// prints a JSON array of vulnerabilities on stdout.
package execplugin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/httpx"
	"bytemomo/barracuda/internal/plugin"
)

// Manifest describes one subprocess plugin.
//
// Example:
//
//	name: zap-baseline
//	description: Wraps the ZAP baseline scan
//	category: external
//	risk_level: MEDIUM
//	exec:
//	  path: ./zap-baseline.sh
//	  args: ["--quick"]
//	  timeout: 120
type Manifest struct {
	domain.PluginMetadata `yaml:",inline"`

	Exec struct {
		Path string   `yaml:"path"`
		Args []string `yaml:"args,omitempty"`
		// Timeout bounds one run, in seconds. Zero means no bound
		// beyond the scan context.
		Timeout float64 `yaml:"timeout,omitempty"`
	} `yaml:"exec"`
}

// Validate checks the manifest fields required to run the plugin.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest name is required")
	}
	if m.Exec.Path == "" {
		return fmt.Errorf("exec.path is required")
	}
	if m.RiskLevel != "" && !m.RiskLevel.IsValid() {
		return fmt.Errorf("invalid risk_level %q", m.RiskLevel)
	}
	if m.Exec.Timeout < 0 {
		return fmt.Errorf("exec.timeout must not be negative")
	}
	return nil
}

// Loader builds exec-backed plugins from *.yaml manifests.
type Loader struct{}

// NewLoader creates a manifest loader.
func NewLoader() *Loader { return &Loader{} }

// Supports reports whether path looks like a plugin manifest.
func (l *Loader) Supports(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

// Load parses the manifest and wraps its executable as a plugin.
func (l *Loader) Load(path string) (*plugin.Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read manifest %q: %v", domain.ErrDiscovery, path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parse manifest %q: %v", domain.ErrDiscovery, path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: manifest %q: %v", domain.ErrDiscovery, path, err)
	}

	execPath := m.Exec.Path
	if !filepath.IsAbs(execPath) {
		execPath = filepath.Join(filepath.Dir(path), execPath)
	}
	if m.Category == "" {
		m.Category = "external"
	}

	return &plugin.Plugin{
		Meta: m.PluginMetadata,
		Runner: &runner{
			meta:    m.PluginMetadata,
			path:    execPath,
			args:    m.Exec.Args,
			timeout: time.Duration(m.Exec.Timeout * float64(time.Second)),
		},
	}, nil
}

// runner executes the plugin binary for one target.
//
// Protocol: ./plugin <manifest args> --target <URL>, vulnerabilities
// as a JSON array on stdout, diagnostics on stderr.
type runner struct {
	meta    domain.PluginMetadata
	path    string
	args    []string
	timeout time.Duration
}

func (r *runner) Run(ctx context.Context, target string, _ *httpx.Client) ([]domain.Vulnerability, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	args := append(append([]string{}, r.args...), "--target", target)
	cmd := exec.CommandContext(ctx, r.path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("run plugin %s: %w: %s", r.meta.Name, err, stderr.String())
	}

	var vulns []domain.Vulnerability
	if err := json.Unmarshal(stdout.Bytes(), &vulns); err != nil {
		return nil, fmt.Errorf("parse output of plugin %s: %w", r.meta.Name, err)
	}

	for i := range vulns {
		if vulns[i].PluginName == "" {
			vulns[i].PluginName = r.meta.Name
		}
		if vulns[i].PluginCategory == "" {
			vulns[i].PluginCategory = r.meta.Category
		}
		vulns[i].Normalize()
	}
	return vulns, nil
}

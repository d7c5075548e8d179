// Package yamlconfig loads the scanner configuration from a YAML file
// with environment variable overrides layered on top.
package yamlconfig

import (
	"fmt"
	"time"

	"bytemomo/barracuda/internal/httpx"
	"bytemomo/barracuda/internal/plugin"
)

// ScannerSettings configures the shared HTTP transport. Durations are
// expressed in seconds so config files stay plain numbers.
type ScannerSettings struct {
	MaxConcurrentRequests int     `yaml:"max_concurrent_requests"`
	RequestTimeout        int     `yaml:"request_timeout"`
	RetryAttempts         int     `yaml:"retry_attempts"`
	DelayBetweenRequests  float64 `yaml:"delay_between_requests"`
	RequestsPerSecond     int     `yaml:"requests_per_second"`
	UserAgent             string  `yaml:"user_agent"`
	FollowRedirects       *bool   `yaml:"follow_redirects"`
	VerifySSL             *bool   `yaml:"verify_ssl"`
	Proxy                 string  `yaml:"proxy"`
}

// PluginSettings selects and locates plugins.
type PluginSettings struct {
	EnabledPlugins    []string `yaml:"enabled_plugins"`
	DisabledPlugins   []string `yaml:"disabled_plugins"`
	PluginDirectories []string `yaml:"plugin_directories"`
}

// ReportSettings controls report generation.
type ReportSettings struct {
	DefaultFormat          string `yaml:"default_format"`
	IncludeRequestResponse bool   `yaml:"include_request_response"`
	IncludePayloads        *bool  `yaml:"include_payloads"`
	MaxResponseSize        int64  `yaml:"max_response_size"`
	OutputDirectory        string `yaml:"output_directory"`
}

// LoggingSettings controls the structured logger.
type LoggingSettings struct {
	Level    string `yaml:"level"`
	FilePath string `yaml:"file_path"`
}

// Config is the root configuration document.
type Config struct {
	Scanner ScannerSettings `yaml:"scanner"`
	Plugins PluginSettings  `yaml:"plugins"`
	Reports ReportSettings  `yaml:"reports"`
	Logging LoggingSettings `yaml:"logging"`
	Debug   bool            `yaml:"debug"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	yes := true
	return &Config{
		Scanner: ScannerSettings{
			MaxConcurrentRequests: 10,
			RequestTimeout:        30,
			RetryAttempts:         3,
			DelayBetweenRequests:  0.1,
			UserAgent:             "barracuda/" + httpx.Version + " security scanner",
			FollowRedirects:       &yes,
			VerifySSL:             &yes,
		},
		Reports: ReportSettings{
			DefaultFormat:   "json",
			IncludePayloads: &yes,
			MaxResponseSize: 1 << 20,
			OutputDirectory: "./reports",
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// Validate checks ranges the rest of the program relies on.
func (c *Config) Validate() error {
	s := c.Scanner
	if s.MaxConcurrentRequests < 1 || s.MaxConcurrentRequests > 100 {
		return fmt.Errorf("scanner.max_concurrent_requests must be in [1,100], got %d", s.MaxConcurrentRequests)
	}
	if s.RequestTimeout < 1 || s.RequestTimeout > 300 {
		return fmt.Errorf("scanner.request_timeout must be in [1,300] seconds, got %d", s.RequestTimeout)
	}
	if s.RetryAttempts < 0 || s.RetryAttempts > 10 {
		return fmt.Errorf("scanner.retry_attempts must be in [0,10], got %d", s.RetryAttempts)
	}
	if s.DelayBetweenRequests < 0 || s.DelayBetweenRequests > 5 {
		return fmt.Errorf("scanner.delay_between_requests must be in [0,5] seconds, got %g", s.DelayBetweenRequests)
	}
	switch c.Reports.DefaultFormat {
	case "json", "html", "txt", "xml":
	default:
		return fmt.Errorf("reports.default_format must be one of json, html, txt, xml, got %q", c.Reports.DefaultFormat)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warning, error, got %q", c.Logging.Level)
	}
	return nil
}

// HTTPConfig translates the scanner section into transport settings.
func (c *Config) HTTPConfig() httpx.Config {
	s := c.Scanner
	cfg := httpx.Config{
		MaxConcurrentRequests: s.MaxConcurrentRequests,
		RequestTimeout:        time.Duration(s.RequestTimeout) * time.Second,
		RetryAttempts:         s.RetryAttempts,
		DelayBetweenRequests:  time.Duration(s.DelayBetweenRequests * float64(time.Second)),
		RequestsPerSecond:     s.RequestsPerSecond,
		UserAgent:             s.UserAgent,
		FollowRedirects:       s.FollowRedirects == nil || *s.FollowRedirects,
		VerifyTLS:             s.VerifySSL == nil || *s.VerifySSL,
		Proxy:                 s.Proxy,
		MaxResponseBytes:      c.Reports.MaxResponseSize,
	}
	return cfg
}

// PluginConfig translates the plugins section into registry settings.
func (c *Config) PluginConfig() plugin.Settings {
	return plugin.Settings{
		Enabled:     c.Plugins.EnabledPlugins,
		Disabled:    c.Plugins.DisabledPlugins,
		Directories: c.Plugins.PluginDirectories,
	}
}

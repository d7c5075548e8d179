// Package cli wires the cobra command tree for the barracuda binary.
package cli

import (
	"github.com/spf13/cobra"

	"bytemomo/barracuda/internal/adapter/execplugin"
	"bytemomo/barracuda/internal/adapter/logger"
	"bytemomo/barracuda/internal/adapter/soplugin"
	"bytemomo/barracuda/internal/adapter/yamlconfig"
	"bytemomo/barracuda/internal/httpx"
	"bytemomo/barracuda/internal/plugin"
	"bytemomo/barracuda/internal/plugin/builtin"
)

type rootOptions struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
}

// Execute builds the root command tree and runs the CLI.
func Execute() error {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "barracuda",
		Short:         "Pluggable web vulnerability scanner",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       httpx.Version,
	}
	rootCmd.SetVersionTemplate("barracuda version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Only log errors")

	rootCmd.AddCommand(
		newScanCmd(opts),
		newPluginsCmd(opts),
		newInitConfigCmd(),
	)

	return rootCmd.Execute()
}

// loadConfig resolves the effective configuration and points the
// logger at it. Verbosity flags win over the config file.
func loadConfig(opts *rootOptions) (*yamlconfig.Config, error) {
	cfg, err := yamlconfig.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if cfg.Debug || opts.Verbose {
		level = "debug"
	}
	if opts.Quiet {
		level = "error"
	}
	logger.Setup(level, cfg.Logging.FilePath)
	return cfg, nil
}

// buildRegistry assembles the plugin registry: builtins first, then
// whatever the configured plugin directories provide.
func buildRegistry(cfg *yamlconfig.Config) *plugin.Registry {
	reg := plugin.NewRegistry(cfg.PluginConfig())
	reg.SetLoaders(&soplugin.Loader{}, &execplugin.Loader{})
	reg.SetBuiltins(builtin.Register)
	reg.Discover(cfg.Plugins.PluginDirectories)
	return reg
}

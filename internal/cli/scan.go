package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bytemomo/barracuda/internal/adapter/report"
	"bytemomo/barracuda/internal/httpx"
	"bytemomo/barracuda/internal/scanner"
)

func newScanCmd(opts *rootOptions) *cobra.Command {
	var (
		output  string
		format  string
		plugins []string
		noSave  bool
	)

	cmd := &cobra.Command{
		Use:   "scan TARGET",
		Short: "Scan a target URL with the active plugins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Reports.DefaultFormat
			}

			client := httpx.New(cfg.HTTPConfig())
			reg := buildRegistry(cfg)

			if !client.Probe(cmd.Context(), args[0]) {
				log.WithField("target", args[0]).Warn("Target did not answer the reachability probe, scanning anyway")
			}

			display := newDisplay(cmd.OutOrStdout(), opts.Quiet)
			sc := scanner.New(reg, client, scanner.WithObserver(display))

			result, err := sc.Scan(cmd.Context(), args[0], plugins)
			if err != nil {
				return err
			}

			display.Summary(result)

			if noSave {
				return nil
			}
			gen := report.New(cfg.Reports.OutputDirectory, report.Options{
				IncludeRequestResponse: cfg.Reports.IncludeRequestResponse,
				IncludePayloads:        cfg.Reports.IncludePayloads == nil || *cfg.Reports.IncludePayloads,
			})
			path, err := gen.Save(result, format, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Report file path (default: timestamped file in the output directory)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: json, html, txt or xml")
	cmd.Flags().StringSliceVarP(&plugins, "plugins", "p", nil, "Run only the named plugins")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Print results without writing a report")

	return cmd
}

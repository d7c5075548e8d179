package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPluginsCmd(opts *rootOptions) *cobra.Command {
	var (
		category string
		risk     string
	)

	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List the available plugins",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			reg := buildRegistry(cfg)

			plugins := reg.List()
			switch {
			case category != "":
				plugins = reg.FilterByCategory(category)
			case risk != "":
				plugins = reg.FilterByRiskLevel(risk)
			}

			if len(plugins) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plugins found.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCATEGORY\tRISK\tVERSION\tDESCRIPTION")
			for _, p := range plugins {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					p.Meta.Name, p.Meta.Category, p.Meta.RiskLevel, p.Meta.Version, p.Meta.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show plugins in this category")
	cmd.Flags().StringVar(&risk, "risk", "", "Only show plugins with this risk level")

	return cmd
}

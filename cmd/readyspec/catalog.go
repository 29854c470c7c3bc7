package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/readyspec/catalog"
)

func catalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate pattern catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <path>",
		Short: "Load-check a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(opts.logLevel)

			c, err := catalog.Load(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (version %s, %d rules)\n",
				args[0], c.Version(), len(c.Rules()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active rule table",
		Long: `Show prints the rules of the configured catalog, or the built-in catalog
when no catalog.path is configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(opts.logLevel)
			cfg, err := loadConfig(opts, logger)
			if err != nil {
				return err
			}

			c := catalog.Default()
			if cfg.Catalog.Path != "" {
				if c, err = catalog.Load(cfg.Catalog.Path); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog %s (%d rules)\n\n", c.Version(), len(c.Rules()))
			fmt.Fprintf(out, "%-24s %-24s %-12s %6s\n", "NAME", "CATEGORY", "AXIS", "WEIGHT")
			for _, rule := range c.Rules() {
				fmt.Fprintf(out, "%-24s %-24s %-12s %6.0f\n",
					rule.Name, rule.Category, rule.Axis(), rule.Weight)
			}
			return nil
		},
	})

	return cmd
}

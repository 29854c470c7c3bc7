package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/readyspec/config"
)

func configCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage readyspec configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the user config file with defaults",
		Long: `Init writes a default config file to ~/.config/readyspec/config.yaml so it
can be edited in place. An existing file is left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(opts.logLevel)

			loader := config.NewLoader(logger)
			if err := loader.EnsureUserConfig(); err != nil {
				return fmt.Errorf("create user config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User config ready at %s\n", loader.UserConfigPath())
			return nil
		},
	})

	return cmd
}

// Package main provides the readyspec binary entry point.
// Readyspec scores natural-language requirements and test cases for
// automation readiness: ambiguity, hidden assumptions, and the clarification
// questions that would resolve them.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/readyspec/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "readyspec"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions are the persistent flags shared by all subcommands.
type rootOptions struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "readyspec",
		Short: "Automation-readiness analysis for requirements and test cases",
		Long: `Readyspec analyzes natural-language requirement and test-case statements
and scores how ready they are for test automation.

It detects:
- Ambiguity: subjective terms, weak modality, undefined references,
  non-testable phrasing
- Hidden assumptions: environment, data, and state preconditions that are
  referenced but never established

Each analysis produces bounded 0-100 scores, a readiness verdict, and
clarification questions to put to the requirement author.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	cmd.AddCommand(analyzeCmd(opts))
	cmd.AddCommand(serveCmd(opts))
	cmd.AddCommand(catalogCmd(opts))
	cmd.AddCommand(configCmd(opts))
	cmd.AddCommand(ingestCmd(opts))

	return cmd
}

// setupLogger configures the process-wide slog default from the level flag.
func setupLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads the effective configuration: the explicit file when given,
// otherwise the layered defaults/user/project lookup.
func loadConfig(opts *rootOptions, logger *slog.Logger) (*config.Config, error) {
	if opts.configPath != "" {
		cfg, err := config.LoadFromFile(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}
	return config.NewLoader(logger).Load()
}

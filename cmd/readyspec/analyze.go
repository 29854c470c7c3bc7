package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/c360studio/readyspec/analysis"
	"github.com/c360studio/readyspec/catalog"
	"github.com/c360studio/readyspec/config"
)

func analyzeCmd(opts *rootOptions) *cobra.Command {
	var (
		globs      []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [text|file ...]",
		Short: "Analyze requirement or test-case statements",
		Long: `Analyze scores one or more statements for automation readiness.

Each argument is read as a file when a file with that path exists, and
treated as literal statement text otherwise. With no arguments and no
--glob patterns, the statement is read from stdin. Every input is analyzed
independently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(opts.logLevel)
			cfg, err := loadConfig(opts, logger)
			if err != nil {
				return err
			}

			engine, err := buildEngine(cfg, logger)
			if err != nil {
				return err
			}

			inputs, err := collectInputs(args, globs, cmd.InOrStdin())
			if err != nil {
				return err
			}

			results, err := engine.AnalyzeMany(inputs.texts)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeResultsJSON(cmd.OutOrStdout(), results)
			}
			for i, result := range results {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				writeReport(cmd.OutOrStdout(), inputs.labels[i], result)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&globs, "glob", nil, "Glob pattern for input files (doublestar, repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")

	return cmd
}

// buildEngine assembles the analysis engine from configuration: the built-in
// catalog, or a file-backed store when catalog.path is set.
func buildEngine(cfg *config.Config, logger *slog.Logger) (*analysis.Engine, error) {
	var store *catalog.Store
	if cfg.Catalog.Path != "" {
		s, err := catalog.NewFileStore(cfg.Catalog.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		store = s
	}
	return analysis.New(nil, store, logger), nil
}

// inputSet pairs each statement with a display label (file path or "text"/
// "stdin") for the report header.
type inputSet struct {
	labels []string
	texts  []string
}

func collectInputs(args, globs []string, stdin io.Reader) (*inputSet, error) {
	inputs := &inputSet{}

	for _, pattern := range globs {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expand glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("glob %q matched no files", pattern)
		}
		for _, path := range matches {
			if err := inputs.addFile(path); err != nil {
				return nil, err
			}
		}
	}

	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			if err := inputs.addFile(arg); err != nil {
				return nil, err
			}
			continue
		}
		inputs.labels = append(inputs.labels, "text")
		inputs.texts = append(inputs.texts, arg)
	}

	if len(inputs.texts) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		inputs.labels = append(inputs.labels, "stdin")
		inputs.texts = append(inputs.texts, string(data))
	}

	return inputs, nil
}

func (in *inputSet) addFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}
	in.labels = append(in.labels, path)
	in.texts = append(in.texts, string(data))
	return nil
}

func writeResultsJSON(w io.Writer, results []*analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}

// writeReport renders one result as a human-readable report.
func writeReport(w io.Writer, label string, result *analysis.Result) {
	fmt.Fprintf(w, "== %s\n", label)
	fmt.Fprintf(w, "Readiness: %.1f/100 (%s)\n", result.ReadinessScore, result.ReadinessLevel)
	fmt.Fprintf(w, "Ambiguity: %.1f  Assumptions: %.1f\n", result.AmbiguityScore, result.AssumptionScore)

	if len(result.Issues) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Issues:")
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "  [%s] %s\n", issue.Category, issue.Message)
		}
	}

	if len(result.Suggestions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Clarification questions:")
		for i, q := range result.Suggestions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, q)
		}
	}
}

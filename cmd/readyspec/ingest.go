package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/readyspec/analysis"
	"github.com/c360studio/readyspec/ingest"
)

// ingestOutput is the JSON shape of one ingest analysis: the page identity
// plus the full analysis result.
type ingestOutput struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	*analysis.Result
}

func ingestCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "ingest <url>",
		Short: "Fetch a web page and analyze its requirement text",
		Long: `Ingest fetches an HTTPS page, extracts its main text content, and runs a
readiness analysis on it. Private addresses and local domains are refused.`,
		Args: cobra.ExactArgs(1),
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

			fetcher := ingest.NewFetcher(cfg.Ingest.Timeout, cfg.Ingest.MaxBodySize)
			doc, err := fetcher.Fetch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("ingest %s: %w", args[0], err)
			}

			result, err := engine.Analyze(doc.Text)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ingestOutput{URL: doc.URL, Title: doc.Title, Result: result})
			}

			label := doc.URL
			if doc.Title != "" {
				label = fmt.Sprintf("%s (%s)", doc.Title, doc.URL)
			}
			writeReport(cmd.OutOrStdout(), label, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")

	return cmd
}

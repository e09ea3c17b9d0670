package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"placereviews-parser/internal/app"
)

var (
	fetchURL   string
	fetchPages int
	fetchOut   string
	fetchStore bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch all review pages following the continuation token and print them as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(fetchStore)
		if err != nil {
			return err
		}
		defer d.Close()

		pageCap := d.cfg.Pagination.MaxPages
		if cmd.Flags().Changed("pages") {
			pageCap = fetchPages
		}

		ctx, cancel := app.GracefulShutdown(d.logger, 0)
		defer cancel()

		reviews, stats, runErr := d.orchestrator.Run(ctx, fetchURL, pageCap)

		// Частичный результат тоже выводится, ошибка возвращается после
		if len(reviews) > 0 || runErr == nil {
			if err := writeJSON(fetchOut, reviews); err != nil {
				return err
			}
		}

		if runErr != nil {
			return fmt.Errorf("stopped after %d pages (%s): %w", stats.TotalPages, stats.StoppedReason, runErr)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchURL, "url", "u", "", "seed URL of the review listing")
	fetchCmd.Flags().IntVarP(&fetchPages, "pages", "p", 0, "maximum number of pages to fetch (0 = no limit)")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "write JSON to file instead of stdout")
	fetchCmd.Flags().BoolVar(&fetchStore, "store", false, "upsert reviews into the configured database")
	_ = fetchCmd.MarkFlagRequired("url")
}

func writeJSON(path string, v any) error {
	var w io.Writer = os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
			}
		}()
		w = file
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

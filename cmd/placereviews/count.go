package main

import (
	"github.com/spf13/cobra"

	"placereviews-parser/internal/app"
)

var countURL string

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the total review count and overall rating from the first page",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx, cancel := app.GracefulShutdown(d.logger, 0)
		defer cancel()

		summary, err := d.orchestrator.Summary(ctx, countURL)
		if err != nil {
			return err
		}
		return writeJSON("", summary)
	},
}

func init() {
	countCmd.Flags().StringVarP(&countURL, "url", "u", "", "seed URL of the review listing")
	_ = countCmd.MarkFlagRequired("url")
}

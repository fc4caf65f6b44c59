package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cellar/internal/listing"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list [listing-file...]",
		Short: "Show the wines in listing files with their ratings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			files := args
			if len(files) == 0 {
				files, err = cfg.Listings()
				if err != nil {
					return err
				}
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No listing files configured")
				return nil
			}

			var all []*listing.Record
			rated := 0
			for _, path := range files {
				records, err := listing.ParseFile(path)
				if err != nil {
					return err
				}
				for _, rec := range records {
					if rec.Rated() {
						rated++
					}
				}
				all = append(all, records...)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderListingTable(all))
			fmt.Fprintf(out, "%d wine(s), %d rated\n", len(all), rated)
			return nil
		},
	}
}

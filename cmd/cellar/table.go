package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cellar/internal/listing"
	"cellar/internal/pipeline"
)

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

// renderSummaryTable renders the post-run view of every rating the
// pipeline produced, degraded entries marked when the model gave no reason.
func renderSummaryTable(results []pipeline.Result) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Producer", "Wine", "Vintage", "Score", "Reason"})
	for _, res := range results {
		reason := res.Reason
		if res.Degraded && reason == "" {
			reason = "(degraded)"
		}
		tw.AppendRow(table.Row{
			res.Producer,
			res.WineName,
			res.Vintage,
			listing.Stars(res.Score),
			reason,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// renderListingTable renders parsed listing records, unrated wines with
// empty score and reason cells.
func renderListingTable(records []*listing.Record) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Date", "Producer", "Wine", "Vintage", "Price", "Score", "Reason"})
	for _, rec := range records {
		score, reason := "", ""
		if rec.Rated() {
			score = listing.Stars(*rec.Score)
			reason = rec.Reason
		}
		tw.AppendRow(table.Row{
			rec.Date,
			rec.Producer,
			rec.WineName,
			rec.Vintage,
			rec.Price,
			score,
			reason,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

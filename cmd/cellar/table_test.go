package main

import (
	"testing"

	"cellar/internal/listing"
	"cellar/internal/pipeline"
)

func TestRenderSummaryTableMarksDegraded(t *testing.T) {
	out := renderSummaryTable([]pipeline.Result{
		{Producer: "Domaine X", WineName: "Cuvée A", Vintage: "2020", Score: 2, Degraded: true},
		{Producer: "Domaine Y", WineName: "Cuvée B", Vintage: "2021", Score: 4, Reason: "iconic grand cru"},
	})
	requireContains(t, out, "(degraded)")
	requireContains(t, out, "★★★★")
	requireContains(t, out, "iconic grand cru")
}

func TestRenderListingTableShowsUnratedBlank(t *testing.T) {
	three := 3
	out := renderListingTable([]*listing.Record{
		{Date: "Mar 03", Producer: "Domaine X", WineName: "Cuvée A", Vintage: "2020",
			Price: "500 SEK", Score: &three, Reason: "classic terroir"},
		{Date: "Mar 03", Producer: "Domaine Y", WineName: "Cuvée B", Vintage: "2021",
			Price: "300 SEK"},
	})
	requireContains(t, out, "★★★")
	requireContains(t, out, "classic terroir")
	requireContains(t, out, "Domaine Y")
}

package render

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"hourcal/internal/report"
)

// Table writes the hour report as a bordered terminal table with a Total
// footer. It is a pure consumer of the report; no recomputation happens
// here.
func Table(w io.Writer, rep report.Report) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader([]string{"Date", "Time", "Duration"})

	for _, ev := range rep.Events {
		tw.Append([]string{ev.Date, ev.Time, ev.Duration})
	}

	tw.SetFooter([]string{"", "Total", rep.Total() + " (HH:MM:SS)"})
	tw.Render()
}

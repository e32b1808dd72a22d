package console

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/yeqown/flightdb"
)

// Format controls how a flight table is rendered.
type Format int

const (
	ASCII    Format = iota // Fixed-width terminal tables
	Markdown               // GitHub-flavoured Markdown tables
)

const unavailable = "unavailable"

// RenderFlights writes the flights as a table. Deleted flights only show
// their number.
func RenderFlights(w io.Writer, flights []flightdb.Flight, format Format) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Flight", "Destination", "Seats", "Status"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	for _, f := range flights {
		if f.Deleted {
			tw.AppendRow(table.Row{f.Number, "", "", unavailable})
			continue
		}
		tw.AppendRow(table.Row{f.Number, f.Destination, f.AvailableSeats, "available"})
	}

	switch format {
	case Markdown:
		tw.RenderMarkdown()
	default:
		tw.Render()
	}
}

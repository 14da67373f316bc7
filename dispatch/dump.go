package dispatch

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Dump renders every unit with its edges as a table.
func (d *Dispatcher) Dump(w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetTitle("Effect units")
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"#", "inputs", "outputs", "owner", "meta"})

	units := d.Units()
	for i, u := range units {
		owner := "-"
		if u.Owner != nil {
			owner = fmt.Sprintf("%T", u.Owner)
		}
		meta := "-"
		if len(u.Meta) > 0 {
			meta = fmt.Sprint(u.Meta)
		}
		tbl.AppendRow(table.Row{i, fmt.Sprint(u.Inputs), fmt.Sprint(u.Outputs), owner, meta})
	}
	tbl.AppendFooter(table.Row{
		"", fmt.Sprintf("%s units", humanize.Comma(int64(len(units)))),
		fmt.Sprintf("%s passes", humanize.Comma(d.stats.Passes)),
		fmt.Sprintf("%s runs", humanize.Comma(d.stats.Runs)),
		"",
	})
	tbl.Render()
}

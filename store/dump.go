package store

import (
	"fmt"
	"io"
	"maps"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Values returns the current value of every live property.
func (s *Store) Values() map[PropID]any {
	values := map[PropID]any{}
	for prop := range s.All() {
		values[prop.ID] = prop.Value
	}
	return values
}

// Props returns copies of every live property definition.
func (s *Store) Props() map[PropID]Prop {
	props := map[PropID]Prop{}
	for prop := range s.All() {
		cp := *prop
		cp.Meta = maps.Clone(prop.Meta)
		props[prop.ID] = cp
	}
	return props
}

// Dump renders the properties as a table.
func (s *Store) Dump(w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetTitle("Properties")
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"id", "name", "value", "static", "meta"})

	for prop := range s.All() {
		meta := "-"
		if len(prop.Meta) > 0 {
			meta = fmt.Sprint(prop.Meta)
		}
		tbl.AppendRow(table.Row{prop.ID, prop.Name, fmt.Sprintf("%v", prop.Value), prop.Static, meta})
	}
	tbl.AppendFooter(table.Row{"", "", fmt.Sprintf("%s properties", humanize.Comma(int64(s.Len()))), "", ""})
	tbl.Render()
}

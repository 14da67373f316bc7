package templates

import (
	"strconv"
	"strings"
)

//go:generate qtc -file=graph.qtpl

// prefixedStrings renders ids as space separated DOT node names.
func prefixedStrings(prefix string, ids []int) string {
	var sb strings.Builder
	for i, id := range ids {
		sb.WriteString(prefix)
		sb.WriteString(strconv.Itoa(id))
		if i < len(ids)-1 {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

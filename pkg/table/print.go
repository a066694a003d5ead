package table

import (
	"bufio"
	"io"
	"strings"
)

const separatorWidth = 50

// Print writes the table as a header line, a separator and one line per row,
// with cells joined by " | ".
func (t *Table) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(t.columns, " | "))
	bw.WriteByte('\n')
	bw.WriteString(strings.Repeat("-", separatorWidth))
	bw.WriteByte('\n')
	for _, row := range t.rows {
		bw.WriteString(strings.Join(row.Strings(), " | "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// String returns the Print rendering.
func (t *Table) String() string {
	var sb strings.Builder
	_ = t.Print(&sb)
	return sb.String()
}

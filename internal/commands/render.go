package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/daybook-dev/daybook/internal/table"
)

// renderTable prints t as aligned text, or as CSV when csvOut is set.
func renderTable(w io.Writer, t *table.Table, csvOut bool) error {
	if csvOut {
		return t.WriteCSV(w)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, name := range t.Headers() {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, name)
	}
	fmt.Fprintln(tw)

	for _, row := range t.Rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

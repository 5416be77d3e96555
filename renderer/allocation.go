package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/analytics"
)

// AllocationMarkdown renders the allocation of the market value and the best
// performing positions.
func AllocationMarkdown(a analytics.Allocation, top []snowball.Position) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Allocation\n\n")
	if len(a.BySymbol) == 0 {
		fmt.Fprintf(&b, "No priced positions.\n")
	} else {
		fmt.Fprintf(&b, "Total market value: %s.\n", a.Total)
		sliceTable(&b, "By Symbol", "Symbol", a.BySymbol)
		sliceTable(&b, "By Sector", "Sector", a.BySector)
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n## Top Performers\n\n")
		tableHeader(w, "rlrr", "Rank", "Symbol", "Gain %", "Gain")
		for i, p := range top {
			tableRow(w, fmt.Sprint(i+1), p.Symbol, p.UnrealizedGainPercent.SignedString(), p.UnrealizedGain.SignedString())
		}
		return len(top) > 0
	})

	if len(a.Unpriced) > 0 {
		fmt.Fprintf(&b, "\nWithout a price: %s.\n", strings.Join(a.Unpriced, ", "))
	}
	return b.String()
}

func sliceTable(w io.Writer, title, label string, s []analytics.Slice) {
	fmt.Fprintf(w, "\n## %s\n\n", title)
	tableHeader(w, "lrr", label, "Value", "Weight")
	for _, v := range s {
		tableRow(w, v.Label, v.Value.String(), v.Percent.String())
	}
}

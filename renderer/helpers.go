package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/snowball"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// Count returns n followed by noun, in the plural unless n is 1.
func Count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// tableHeader prints a markdown table header. align holds one of 'l', 'c'
// or 'r' per column.
func tableHeader(w io.Writer, align string, columns ...string) {
	fmt.Fprintf(w, "| %s |\n", strings.Join(columns, " | "))
	seps := make([]string, len(columns))
	for i := range seps {
		switch {
		case i < len(align) && align[i] == 'r':
			seps[i] = "---:"
		case i < len(align) && align[i] == 'c':
			seps[i] = ":---:"
		default:
			seps[i] = ":---"
		}
	}
	fmt.Fprintf(w, "|%s|\n", strings.Join(seps, "|"))
}

func tableRow(w io.Writer, cells ...string) {
	for i, c := range cells {
		cells[i] = escape(c)
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
}

// escape keeps free text from breaking a table row.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.Join(strings.Fields(s), " ")
}

// amount returns the money value, or an empty cell when it is unset.
func amount(m snowball.Money) string {
	if m.IsZero() {
		return ""
	}
	return m.String()
}

func quantity(q snowball.Quantity) string {
	if q.IsZero() {
		return ""
	}
	return q.String()
}

package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vladpetric/ntest/internal/flips"
)

// TextWriter dumps tables as hex, one line per index and a blank line after
// each table. Each table is preceded by a "# name rows cols" line.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a text dump on w. Call Flush when done.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// WriteTable dumps one table.
func (t *TextWriter) WriteTable(tb flips.Table) error {
	fmt.Fprintf(t.w, "# %s %d %d\n", tb.Name, tb.Rows, tb.Cols)
	for row := 0; row < tb.Rows; row++ {
		for _, v := range tb.Values[row*tb.Cols : (row+1)*tb.Cols] {
			fmt.Fprintf(t.w, "0x%x ", v)
		}
		t.w.WriteByte('\n')
	}
	return t.w.WriteByte('\n')
}

// Flush writes any buffered data.
func (t *TextWriter) Flush() error {
	return t.w.Flush()
}

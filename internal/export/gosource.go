package export

import (
	"bytes"
	"fmt"
	"go/format"
	"io"

	"github.com/vladpetric/ntest/internal/flips"
)

// GoSource emits tables as Go array declarations. Tables are buffered and
// the formatted file is written by Close.
type GoSource struct {
	w   io.Writer
	pkg string
	buf bytes.Buffer
}

// NewGoSource creates a Go source emitter declaring package pkg.
func NewGoSource(w io.Writer, pkg string) *GoSource {
	g := &GoSource{w: w, pkg: pkg}
	fmt.Fprintf(&g.buf, "// Code generated by ntest-tables; DO NOT EDIT.\n\npackage %s\n", pkg)
	return g
}

// VarName returns the Go identifier used for a table.
func VarName(table string) string {
	return table + "Table"
}

// WriteTable appends the declaration of one table.
func (g *GoSource) WriteTable(tb flips.Table) error {
	if len(tb.Values) != tb.Rows*tb.Cols {
		return fmt.Errorf("gosource: table %s has %d values for %dx%d", tb.Name, len(tb.Values), tb.Rows, tb.Cols)
	}

	verb := "0x%x,"
	if tb.Name == flips.TableCount {
		verb = "%d,"
	}

	b := &g.buf
	fmt.Fprintf(b, "\n// %s is the %s table, %d x %d.\n", VarName(tb.Name), tb.Name, tb.Rows, tb.Cols)
	if tb.Rows == 1 {
		fmt.Fprintf(b, "var %s = [%d]uint64{", VarName(tb.Name), tb.Cols)
		writeValues(b, verb, tb.Values)
		b.WriteString("}\n")
	} else {
		fmt.Fprintf(b, "var %s = [%d][%d]uint64{\n", VarName(tb.Name), tb.Rows, tb.Cols)
		for row := 0; row < tb.Rows; row++ {
			b.WriteString("{")
			writeValues(b, verb, tb.Values[row*tb.Cols:(row+1)*tb.Cols])
			b.WriteString("},\n")
		}
		b.WriteString("}\n")
	}
	return nil
}

func writeValues(b *bytes.Buffer, verb string, values []uint64) {
	for i, v := range values {
		if i%8 == 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, verb, v)
	}
	b.WriteString("\n")
}

// Close formats the accumulated source and writes it out.
func (g *GoSource) Close() error {
	src, err := format.Source(g.buf.Bytes())
	if err != nil {
		return fmt.Errorf("gosource: format: %w", err)
	}
	_, err = g.w.Write(src)
	return err
}

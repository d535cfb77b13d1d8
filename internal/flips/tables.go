package flips

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vladpetric/ntest/internal/board"
)

// Tables holds every generated lookup table. Line tables are indexed
// [index][pattern].
type Tables struct {
	Neighbors [64]board.Bitboard

	Outside [LineLen][NumPatterns]uint8
	Count   [LineLen][NumPatterns]int
	Inside  [LineLen][NumPatterns]uint8

	Row    [LineLen][NumPatterns]board.Bitboard
	Column [LineLen][NumPatterns]board.Bitboard
	D9     [board.NumDiagonals][NumPatterns]board.Bitboard
	D7     [board.NumDiagonals][NumPatterns]board.Bitboard
}

// Generate computes all tables. Every line of every table is independent,
// so each one is filled by its own goroutine.
func Generate() *Tables {
	t := &Tables{}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	g.Go(func() error {
		t.Neighbors = board.NeighborTable()
		return nil
	})
	for index := 0; index < LineLen; index++ {
		index := index
		g.Go(func() error {
			for p := 0; p < NumPatterns; p++ {
				t.Outside[index][p] = Outside(index, uint8(p))
				t.Count[index][p], t.Inside[index][p] = CountInside(index, uint8(p))
			}
			return nil
		})
	}
	for _, o := range Orientations {
		o := o
		lines := t.lines(o)
		for index := range lines {
			index := index
			g.Go(func() error {
				for p := 0; p < NumPatterns; p++ {
					lines[index][p] = Flip(o, index, uint8(p))
				}
				return nil
			})
		}
	}

	// The generators are total over their domain and never return an error.
	g.Wait()
	return t
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the process-wide tables, generating them on first use.
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultTables = Generate()
	})
	return defaultTables
}

// lines returns the flip table of orientation o as a slice over its indices.
func (t *Tables) lines(o Orientation) [][NumPatterns]board.Bitboard {
	switch o {
	case Row:
		return t.Row[:]
	case Column:
		return t.Column[:]
	case D9:
		return t.D9[:]
	case D7:
		return t.D7[:]
	}
	panic(fmt.Sprintf("flips: unknown orientation %d", int(o)))
}

// Flip looks up the flip mask of orientation o.
func (t *Tables) Flip(o Orientation, index int, pattern uint8) board.Bitboard {
	return t.lines(o)[index][pattern]
}

// Table is one generated table flattened to 64-bit values, outer by index
// and inner by pattern (or by square for the neighbor table).
type Table struct {
	Name   string
	Rows   int
	Cols   int
	Values []uint64
}

// Table names in emission order.
const (
	TableNeighbors = "neighbors"
	TableOutside   = "outside"
	TableCount     = "count"
	TableInside    = "inside"
)

// TableNames lists every table in the order List and Export produce them.
var TableNames = []string{
	TableNeighbors, TableOutside, TableCount, TableInside,
	Row.String(), Column.String(), D9.String(), D7.String(),
}

// At returns the value at [row][col].
func (tb Table) At(row, col int) uint64 {
	return tb.Values[row*tb.Cols+col]
}

// Checksum returns the xxhash of the table's values in little-endian order.
func (tb Table) Checksum() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range tb.Values {
		binary.LittleEndian.PutUint64(buf[:], v)
		d.Write(buf[:])
	}
	return d.Sum64()
}

// List flattens every table in the order given by TableNames.
func (t *Tables) List() []Table {
	list := make([]Table, 0, len(TableNames))

	neighbors := Table{Name: TableNeighbors, Rows: 1, Cols: 64, Values: make([]uint64, 64)}
	for sq, m := range t.Neighbors {
		neighbors.Values[sq] = uint64(m)
	}
	list = append(list, neighbors)

	outside := newTable(TableOutside, LineLen)
	count := newTable(TableCount, LineLen)
	inside := newTable(TableInside, LineLen)
	for index := 0; index < LineLen; index++ {
		for p := 0; p < NumPatterns; p++ {
			outside.Values[index*NumPatterns+p] = uint64(t.Outside[index][p])
			count.Values[index*NumPatterns+p] = uint64(t.Count[index][p])
			inside.Values[index*NumPatterns+p] = uint64(t.Inside[index][p])
		}
	}
	list = append(list, outside, count, inside)

	for _, o := range Orientations {
		lines := t.lines(o)
		tb := newTable(o.String(), len(lines))
		for index := range lines {
			for p := 0; p < NumPatterns; p++ {
				tb.Values[index*NumPatterns+p] = uint64(lines[index][p])
			}
		}
		list = append(list, tb)
	}
	return list
}

func newTable(name string, rows int) Table {
	return Table{Name: name, Rows: rows, Cols: NumPatterns, Values: make([]uint64, rows*NumPatterns)}
}

// Sink receives generated tables in emission order.
type Sink interface {
	WriteTable(Table) error
}

// Export hands every table to s in the order given by TableNames.
func (t *Tables) Export(s Sink) error {
	for _, tb := range t.List() {
		if err := s.WriteTable(tb); err != nil {
			return fmt.Errorf("export %s: %w", tb.Name, err)
		}
	}
	return nil
}

// FromList rebuilds Tables from flattened tables, as read back from a sink.
// Every table in TableNames must be present with its generated dimensions.
func FromList(list []Table) (*Tables, error) {
	byName := make(map[string]Table, len(list))
	for _, tb := range list {
		byName[tb.Name] = tb
	}

	want := (&Tables{}).List()
	t := &Tables{}
	for _, w := range want {
		tb, ok := byName[w.Name]
		if !ok {
			return nil, fmt.Errorf("table %s missing", w.Name)
		}
		if tb.Rows != w.Rows || tb.Cols != w.Cols || len(tb.Values) != tb.Rows*tb.Cols {
			return nil, fmt.Errorf("table %s: got %dx%d with %d values, want %dx%d",
				tb.Name, tb.Rows, tb.Cols, len(tb.Values), w.Rows, w.Cols)
		}
		t.load(tb)
	}
	return t, nil
}

func (t *Tables) load(tb Table) {
	switch tb.Name {
	case TableNeighbors:
		for sq := range t.Neighbors {
			t.Neighbors[sq] = board.Bitboard(tb.Values[sq])
		}
	case TableOutside, TableCount, TableInside:
		for index := 0; index < tb.Rows; index++ {
			for p := 0; p < tb.Cols; p++ {
				v := tb.At(index, p)
				switch tb.Name {
				case TableOutside:
					t.Outside[index][p] = uint8(v)
				case TableCount:
					t.Count[index][p] = int(v)
				default:
					t.Inside[index][p] = uint8(v)
				}
			}
		}
	default:
		for _, o := range Orientations {
			if o.String() != tb.Name {
				continue
			}
			lines := t.lines(o)
			for index := range lines {
				for p := 0; p < tb.Cols; p++ {
					lines[index][p] = board.Bitboard(tb.At(index, p))
				}
			}
		}
	}
}

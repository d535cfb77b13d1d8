// Package export writes generated tables to concrete sinks: Go source, a
// binary blob, and a plain text dump.
package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vladpetric/ntest/internal/flips"
)

// Blob format (all integers big-endian):
//
//	header: 4 bytes magic "NTFT", 2 bytes version
//	table:  1 byte name length, name, 2 bytes rows, 2 bytes cols,
//	        rows*cols 8-byte values, 8 bytes xxhash of the values
//
// Tables follow the header back to back until end of file.
const (
	blobMagic   = "NTFT"
	blobVersion = 1
)

var (
	ErrBadMagic = errors.New("export: not a flip table blob")
	ErrVersion  = errors.New("export: unsupported blob version")
	ErrChecksum = errors.New("export: table checksum mismatch")
)

// BlobWriter writes tables in the blob format.
type BlobWriter struct {
	w           *bufio.Writer
	wroteHeader bool
	n           int64
}

// NewBlobWriter creates a blob writer on w. Call Flush when done.
func NewBlobWriter(w io.Writer) *BlobWriter {
	return &BlobWriter{w: bufio.NewWriter(w)}
}

func (b *BlobWriter) header() error {
	if b.wroteHeader {
		return nil
	}
	b.wroteHeader = true
	if _, err := b.w.WriteString(blobMagic); err != nil {
		return err
	}
	b.n += int64(len(blobMagic)) + 2
	return binary.Write(b.w, binary.BigEndian, uint16(blobVersion))
}

// WriteTable appends one table to the blob.
func (b *BlobWriter) WriteTable(tb flips.Table) error {
	if len(tb.Name) == 0 || len(tb.Name) > 255 {
		return fmt.Errorf("blob: bad table name %q", tb.Name)
	}
	if len(tb.Values) != tb.Rows*tb.Cols {
		return fmt.Errorf("blob: table %s has %d values for %dx%d", tb.Name, len(tb.Values), tb.Rows, tb.Cols)
	}
	if err := b.header(); err != nil {
		return err
	}

	b.w.WriteByte(byte(len(tb.Name)))
	b.w.WriteString(tb.Name)
	var buf [8]byte
	binary.BigEndian.PutUint16(buf[:2], uint16(tb.Rows))
	binary.BigEndian.PutUint16(buf[2:4], uint16(tb.Cols))
	b.w.Write(buf[:4])
	for _, v := range tb.Values {
		binary.BigEndian.PutUint64(buf[:], v)
		b.w.Write(buf[:])
	}
	binary.BigEndian.PutUint64(buf[:], tb.Checksum())
	_, err := b.w.Write(buf[:])

	b.n += int64(1+len(tb.Name)+4+8*len(tb.Values)) + 8
	return err
}

// Flush writes any buffered data. An empty blob still gets its header.
func (b *BlobWriter) Flush() error {
	if err := b.header(); err != nil {
		return err
	}
	return b.w.Flush()
}

// Size returns the number of bytes written so far.
func (b *BlobWriter) Size() int64 {
	return b.n
}

// ReadBlobFile reads all tables from a blob file.
func ReadBlobFile(filename string) ([]flips.Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadBlob(file)
}

// ReadBlob reads all tables from a blob, verifying each checksum.
func ReadBlob(r io.Reader) ([]flips.Table, error) {
	br := bufio.NewReader(r)

	var head [6]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return nil, fmt.Errorf("blob header: %w", err)
	}
	if string(head[:4]) != blobMagic {
		return nil, ErrBadMagic
	}
	if v := binary.BigEndian.Uint16(head[4:]); v != blobVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, v)
	}

	var tables []flips.Table
	for {
		nameLen, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		tb, err := readTable(br, int(nameLen))
		if err != nil {
			return nil, err
		}
		tables = append(tables, tb)
	}

	return tables, nil
}

func readTable(r io.Reader, nameLen int) (flips.Table, error) {
	buf := make([]byte, nameLen+4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return flips.Table{}, fmt.Errorf("blob table header: %w", unexpected(err))
	}

	tb := flips.Table{
		Name: string(buf[:nameLen]),
		Rows: int(binary.BigEndian.Uint16(buf[nameLen:])),
		Cols: int(binary.BigEndian.Uint16(buf[nameLen+2:])),
	}

	// Values plus trailing checksum.
	data := make([]byte, 8*(tb.Rows*tb.Cols+1))
	if _, err := io.ReadFull(r, data); err != nil {
		return flips.Table{}, fmt.Errorf("blob table %s: %w", tb.Name, unexpected(err))
	}
	tb.Values = make([]uint64, tb.Rows*tb.Cols)
	for i := range tb.Values {
		tb.Values[i] = binary.BigEndian.Uint64(data[8*i:])
	}

	sum := binary.BigEndian.Uint64(data[len(data)-8:])
	if sum != tb.Checksum() {
		return flips.Table{}, fmt.Errorf("%w: %s", ErrChecksum, tb.Name)
	}
	return tb, nil
}

// unexpected maps a clean EOF inside a table to io.ErrUnexpectedEOF.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/vladpetric/ntest/internal/flips"
)

// Storage keys
const (
	prefixHeader = "table/"
	prefixValues = "values/"
)

var (
	ErrNotFound = errors.New("storage: table not found")
	ErrChecksum = errors.New("storage: table checksum mismatch")
)

// tableHeader describes a stored table; the values live under a separate key.
type tableHeader struct {
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	Checksum uint64 `json:"checksum"`
}

// Storage wraps BadgerDB for persistent table storage.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the table store in the default data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) a table store in dir.
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a table store that is never written to disk.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// WriteTable stores one table, replacing any previous version.
func (s *Storage) WriteTable(tb flips.Table) error {
	if len(tb.Values) != tb.Rows*tb.Cols {
		return fmt.Errorf("storage: table %s has %d values for %dx%d", tb.Name, len(tb.Values), tb.Rows, tb.Cols)
	}

	header, err := json.Marshal(tableHeader{Rows: tb.Rows, Cols: tb.Cols, Checksum: tb.Checksum()})
	if err != nil {
		return err
	}

	values := make([]byte, 8*len(tb.Values))
	for i, v := range tb.Values {
		binary.LittleEndian.PutUint64(values[8*i:], v)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(prefixHeader+tb.Name), header); err != nil {
			return err
		}
		return txn.Set([]byte(prefixValues+tb.Name), values)
	})
}

// LoadTable loads one table and verifies its checksum.
func (s *Storage) LoadTable(name string) (flips.Table, error) {
	tb := flips.Table{Name: name}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixHeader + name))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		if err != nil {
			return err
		}

		var header tableHeader
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &header)
		}); err != nil {
			return err
		}
		tb.Rows, tb.Cols = header.Rows, header.Cols

		item, err = txn.Get([]byte(prefixValues + name))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s values", ErrNotFound, name)
		}
		if err != nil {
			return err
		}

		if err := item.Value(func(val []byte) error {
			if len(val) != 8*header.Rows*header.Cols {
				return fmt.Errorf("%w: %s has %d bytes for %dx%d", ErrChecksum, name, len(val), header.Rows, header.Cols)
			}
			tb.Values = make([]uint64, header.Rows*header.Cols)
			for i := range tb.Values {
				tb.Values[i] = binary.LittleEndian.Uint64(val[8*i:])
			}
			return nil
		}); err != nil {
			return err
		}

		if tb.Checksum() != header.Checksum {
			return fmt.Errorf("%w: %s", ErrChecksum, name)
		}
		return nil
	})

	return tb, err
}

// TableNames returns the names of all stored tables in key order.
func (s *Storage) TableNames() ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixHeader)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, prefixHeader))
		}
		return nil
	})

	return names, err
}

// LoadTables loads every generated table and rebuilds the in-memory form.
func (s *Storage) LoadTables() (*flips.Tables, error) {
	list := make([]flips.Table, 0, len(flips.TableNames))
	for _, name := range flips.TableNames {
		tb, err := s.LoadTable(name)
		if err != nil {
			return nil, err
		}
		list = append(list, tb)
	}
	return flips.FromList(list)
}

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vladpetric/ntest/internal/board"
	"github.com/vladpetric/ntest/internal/export"
	"github.com/vladpetric/ntest/internal/flips"
	"github.com/vladpetric/ntest/internal/render"
	"github.com/vladpetric/ntest/internal/storage"
)

var (
	format     = flag.String("format", "go", "output format: go, blob, text or badger")
	out        = flag.String("out", "-", "output file for go, blob and text formats (- for stdout)")
	pkg        = flag.String("pkg", "tables", "package name for go output")
	dbDir      = flag.String("db", "", "badger directory (default: platform data directory)")
	verify     = flag.Bool("verify", false, "read blob or badger output back and compare")
	pngPath    = flag.String("png", "", "render one table entry to this PNG file")
	show       = flag.String("show", "d9:5:255", "entry to render: table:index:pattern or neighbors:square")
	pngSize    = flag.Int("size", 320, "PNG edge length in pixels")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

type config struct {
	Format  string
	Out     string
	Package string
	DBDir   string
	Verify  bool
	PNG     string
	Show    string
	Size    int
}

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	cfg := config{
		Format:  *format,
		Out:     *out,
		Package: *pkg,
		DBDir:   *dbDir,
		Verify:  *verify,
		PNG:     *pngPath,
		Show:    *show,
		Size:    *pngSize,
	}
	if err := run(cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config, stdout io.Writer) error {
	start := time.Now()
	tables := flips.Generate()
	log.Printf("Generated %d tables in %v", len(flips.TableNames), time.Since(start))

	if err := write(cfg, tables, stdout); err != nil {
		return err
	}

	if cfg.PNG != "" {
		bb, err := entry(tables, cfg.Show)
		if err != nil {
			return err
		}
		if err := writePNG(cfg.PNG, bb, cfg.Size); err != nil {
			return err
		}
		log.Printf("Rendered %s to %s", cfg.Show, cfg.PNG)
	}
	return nil
}

func write(cfg config, tables *flips.Tables, stdout io.Writer) error {
	if cfg.Format == "badger" {
		return writeBadger(cfg, tables)
	}

	var buf bytes.Buffer
	switch cfg.Format {
	case "go":
		g := export.NewGoSource(&buf, cfg.Package)
		if err := tables.Export(g); err != nil {
			return err
		}
		if err := g.Close(); err != nil {
			return err
		}
	case "blob":
		b := export.NewBlobWriter(&buf)
		if err := tables.Export(b); err != nil {
			return err
		}
		if err := b.Flush(); err != nil {
			return err
		}
	case "text":
		t := export.NewTextWriter(&buf)
		if err := tables.Export(t); err != nil {
			return err
		}
		if err := t.Flush(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}

	if cfg.Verify && cfg.Format == "blob" {
		list, err := export.ReadBlob(bytes.NewReader(buf.Bytes()))
		if err != nil {
			return fmt.Errorf("verify blob: %w", err)
		}
		if err := compare(list, tables); err != nil {
			return fmt.Errorf("verify blob: %w", err)
		}
		log.Printf("Verified %d tables", len(list))
	}

	size := uint64(buf.Len())
	if cfg.Out == "-" || cfg.Out == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(cfg.Out, buf.Bytes(), 0644); err != nil {
		return err
	}
	log.Printf("Wrote %s %s to %s", humanize.Bytes(size), cfg.Format, cfg.Out)
	return nil
}

func writeBadger(cfg config, tables *flips.Tables) error {
	var (
		s   *storage.Storage
		err error
	)
	if cfg.DBDir != "" {
		s, err = storage.Open(cfg.DBDir)
	} else {
		s, err = storage.NewStorage()
	}
	if err != nil {
		return fmt.Errorf("open table store: %w", err)
	}
	defer s.Close()

	if err := tables.Export(s); err != nil {
		return err
	}
	log.Printf("Stored %d tables", len(flips.TableNames))

	if cfg.Verify {
		loaded, err := s.LoadTables()
		if err != nil {
			return fmt.Errorf("verify badger: %w", err)
		}
		if *loaded != *tables {
			return errors.New("verify badger: stored tables differ")
		}
		log.Printf("Verified %d tables", len(flips.TableNames))
	}
	return nil
}

func compare(list []flips.Table, tables *flips.Tables) error {
	got, err := flips.FromList(list)
	if err != nil {
		return err
	}
	if *got != *tables {
		return errors.New("tables differ")
	}
	return nil
}

// entry resolves a -show spec to the bitboard it names. Line analysis tables
// hold 8-bit masks and are drawn on row 1.
func entry(tables *flips.Tables, spec string) (board.Bitboard, error) {
	parts := strings.Split(spec, ":")
	if len(parts) == 2 && parts[0] == flips.TableNeighbors {
		sq, err := board.ParseSquare(parts[1])
		if err != nil {
			return 0, err
		}
		return board.Neighbors(sq), nil
	}
	if len(parts) != 3 {
		return 0, fmt.Errorf("bad entry %q: want table:index:pattern", spec)
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("bad index in %q: %w", spec, err)
	}
	pattern, err := strconv.ParseUint(parts[2], 0, 8)
	if err != nil {
		return 0, fmt.Errorf("bad pattern in %q: %w", spec, err)
	}

	for _, tb := range tables.List() {
		if tb.Name != parts[0] || tb.Name == flips.TableNeighbors {
			continue
		}
		if index < 0 || index >= tb.Rows {
			return 0, fmt.Errorf("index %d out of range for %s", index, tb.Name)
		}
		return board.Bitboard(tb.At(index, int(pattern))), nil
	}
	return 0, fmt.Errorf("unknown table %q", parts[0])
}

func writePNG(path string, bb board.Bitboard, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, bb, size); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Package render draws a bitboard as an 8x8 Othello board image, for
// inspecting individual table entries.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/vladpetric/ntest/internal/board"
)

// MinSize is the smallest image edge, in pixels, that fits labels and cells.
const MinSize = 72

var ErrSize = errors.New("render: image too small")

// Colors
const (
	marginFill = "#f5f5f5"
	boardFill  = "#2e7d32"
	gridStroke = "#1b5e20"
	discFill   = "#212121"
)

var labelColor = color.RGBA{0x42, 0x42, 0x42, 0xff}

// layout splits size into a label margin and eight equal cells.
func layout(size int) (cell, margin int) {
	cell = size / 9
	return cell, size - 8*cell
}

// WriteSVG writes b as an SVG document size pixels square. Set bits are
// drawn as discs; column and row labels are left to Image.
func WriteSVG(w io.Writer, b board.Bitboard, size int) error {
	if size < MinSize {
		return fmt.Errorf("%w: %d < %d", ErrSize, size, MinSize)
	}
	cell, margin := layout(size)

	canvas := svg.New(w)
	canvas.Startview(size, size, 0, 0, size, size)
	canvas.Rect(0, 0, size, size, "fill:"+marginFill)
	canvas.Rect(margin, margin, 8*cell, 8*cell, "fill:"+boardFill)

	for sq := board.A1; sq <= board.H8; sq++ {
		x := margin + sq.Col()*cell
		y := margin + sq.Row()*cell
		canvas.Rect(x, y, cell, cell, "fill:none;stroke:"+gridStroke+";stroke-width:1")
		if b.IsSet(sq) {
			canvas.Circle(x+cell/2, y+cell/2, cell*2/5, "fill:"+discFill)
		}
	}
	canvas.End()
	return nil
}

// Image rasterizes b with coordinate labels.
func Image(b board.Bitboard, size int) (*image.RGBA, error) {
	var doc bytes.Buffer
	if err := WriteSVG(&doc, b, size); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(&doc)
	if err != nil {
		return nil, fmt.Errorf("render: parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	if err := drawLabels(rgba, size); err != nil {
		return nil, err
	}
	return rgba, nil
}

// WritePNG rasterizes b and encodes it as PNG.
func WritePNG(w io.Writer, b board.Bitboard, size int) error {
	img, err := Image(b, size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

var (
	fontOnce sync.Once
	labelTTF *opentype.Font
	fontErr  error
)

func labelFace(cell int) (font.Face, error) {
	fontOnce.Do(func() {
		labelTTF, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("render: parse font: %w", fontErr)
	}
	return opentype.NewFace(labelTTF, &opentype.FaceOptions{
		Size:    float64(cell) * 0.45,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// drawLabels writes column letters above the board and row numbers to its
// left, each centered in its margin cell.
func drawLabels(img *image.RGBA, size int) error {
	cell, margin := layout(size)
	face, err := labelFace(cell)
	if err != nil {
		return err
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()

	center := func(s string, cx, cy int) {
		width := d.MeasureString(s).Ceil()
		d.Dot = fixed.P(cx-width/2, cy+ascent/2)
		d.DrawString(s)
	}
	for i := 0; i < 8; i++ {
		mid := margin + i*cell + cell/2
		center(string(rune('a'+i)), mid, margin/2)
		center(string(rune('1'+i)), margin/2, mid)
	}
	return nil
}

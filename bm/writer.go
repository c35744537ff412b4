package bm

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

type encoder struct {
	bmw  io.Writer
	palw io.Writer
}

func (e *encoder) encodeHeader(m *image.Paletted) error {
	var tmp [headerLen]byte
	b := m.Bounds()
	binary.LittleEndian.PutUint32(tmp[0:4], uint32(b.Dx()))
	binary.LittleEndian.PutUint32(tmp[4:8], uint32(b.Dy()))
	_, err := e.bmw.Write(tmp[:])
	return err
}

func (e *encoder) encodePixels(m *image.Paletted) error {
	b := m.Bounds()
	row := make([]byte, b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			row[x-b.Min.X] = m.ColorIndexAt(x, y)
		}
		if _, err := e.bmw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodePalette(p color.Palette) error {
	var tmp [paletteStride]byte
	for _, c := range p {
		r, g, b, _ := c.RGBA()

		tmp[0] = byte(r >> 8)
		tmp[1] = byte(g >> 8)
		tmp[2] = byte(b >> 8)

		if _, err := e.palw.Write(tmp[:]); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the image m as a BM and PAL pair to bmw and palw
// respectively. Input that is not already paletted, or that uses more than
// 256 colors, is quantized first.
func Encode(bmw, palw io.Writer, m image.Image) error {
	b := m.Bounds()

	if int64(b.Dx())*int64(b.Dy()) > maxPixels {
		return ErrTooLarge
	}

	pm, _ := m.(*image.Paletted)
	if pm != nil && len(pm.Palette) > maxIndex {
		pm = nil
	}
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= maxIndex {
			pm = image.NewPaletted(b, cp)
			draw.Draw(pm, b, m, b.Min, draw.Src)
		}
	}
	if pm == nil {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, maxIndex), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	if len(pm.Palette) == 0 && b.Dx()*b.Dy() > 0 {
		return errors.New("bm: empty palette")
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	e := encoder{bmw: bmw, palw: palw}

	if err := e.encodeHeader(pm); err != nil {
		return err
	}
	if err := e.encodePixels(pm); err != nil {
		return err
	}
	return e.encodePalette(pm.Palette)
}

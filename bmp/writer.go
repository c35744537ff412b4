/*
Package bmp implements an encoder for uncompressed 24-bit Windows bitmap
files using the 40-byte BITMAPINFOHEADER layout.

The file is written as a 14-byte file header, the 40-byte DIB header and
then the pixel array: bottom-up scanlines of B, G, R triples, each padded
with zero bytes to a multiple of 4 bytes. The pixel array always starts at
byte offset 54 as no palette is ever emitted.
*/
package bmp

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/bodgit/bmtobmp/bm"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	pixelOffset   = fileHeaderLen + infoHeaderLen

	bytesPerPixel = 3
	bitsPerPixel  = bytesPerPixel * 8

	// 96 DPI expressed in pixels per meter, rounded.
	pixelsPerMeter = 3780
)

// rowSize returns the on-disk length of one scanline, padded to a multiple
// of 4 bytes.
func rowSize(width uint32) int {
	return (int(width)*bytesPerPixel + 3) &^ 3
}

type encoder struct {
	w *bufio.Writer

	tmp [pixelOffset]byte
}

func (e *encoder) writeHeaders(m *bm.Image) error {
	pixelBytes := rowSize(m.Width) * int(m.Height)

	e.tmp[0] = 'B'
	e.tmp[1] = 'M'
	binary.LittleEndian.PutUint32(e.tmp[2:6], uint32(pixelOffset+pixelBytes))
	binary.LittleEndian.PutUint32(e.tmp[6:10], 0) // reserved
	binary.LittleEndian.PutUint32(e.tmp[10:14], pixelOffset)

	binary.LittleEndian.PutUint32(e.tmp[14:18], infoHeaderLen)
	binary.LittleEndian.PutUint32(e.tmp[18:22], m.Width)
	binary.LittleEndian.PutUint32(e.tmp[22:26], m.Height)
	binary.LittleEndian.PutUint16(e.tmp[26:28], 1) // color planes
	binary.LittleEndian.PutUint16(e.tmp[28:30], bitsPerPixel)
	binary.LittleEndian.PutUint32(e.tmp[30:34], 0) // no compression
	binary.LittleEndian.PutUint32(e.tmp[34:38], uint32(pixelBytes))
	binary.LittleEndian.PutUint32(e.tmp[38:42], pixelsPerMeter)
	binary.LittleEndian.PutUint32(e.tmp[42:46], pixelsPerMeter)
	binary.LittleEndian.PutUint32(e.tmp[46:50], 0) // colors in palette
	binary.LittleEndian.PutUint32(e.tmp[50:54], 0) // important colors

	_, err := e.w.Write(e.tmp[:])
	return err
}

func (e *encoder) writePixels(m *bm.Image) error {
	padding := make([]byte, rowSize(m.Width)-int(m.Width)*bytesPerPixel)

	// Buffer rows are already bottom-up and BGR so each one is written
	// verbatim, plus padding.
	for y := 0; y < int(m.Height); y++ {
		o := m.PixOffset(0, y)
		if _, err := e.w.Write(m.Pix[o : o+int(m.Width)*bytesPerPixel]); err != nil {
			return err
		}
		if _, err := e.w.Write(padding); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the picture m to w in BMP format.
func Encode(w io.Writer, m *bm.Image) error {
	e := encoder{w: bufio.NewWriter(w)}

	if err := e.writeHeaders(m); err != nil {
		return err
	}
	if err := e.writePixels(m); err != nil {
		return err
	}

	return e.w.Flush()
}

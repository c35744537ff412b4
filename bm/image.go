package bm

import (
	"image"
	"image/color"
)

// Image is a decoded BM picture staged for BMP output: a flat buffer of
// 3-byte B, G, R pixels where row 0 is the bottom row of the picture.
type Image struct {
	// Width and Height are the pixel dimensions from the BM header.
	Width, Height uint32
	// Pix holds the pixels as B, G, R triples, bottom row first.
	Pix []uint8
	// Stride is the Pix distance between vertically adjacent pixels.
	Stride int
}

func newImage(width, height uint32) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, int(width)*int(height)*paletteStride),
		Stride: int(width) * paletteStride,
	}
}

// PixOffset returns the index of the first element of Pix corresponding to
// the pixel at buffer row y, column x. Row 0 is the bottom of the picture.
func (m *Image) PixOffset(x, y int) int {
	return y*m.Stride + x*paletteStride
}

// ColorModel returns the RGBA color model.
func (m *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds returns the image dimensions.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(m.Width), int(m.Height))
}

// At returns the color of the pixel at (x, y) in the usual top-down image
// coordinates, undoing the bottom-up buffer order and the BGR channel
// order.
func (m *Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(m.Bounds())) {
		return color.RGBA{}
	}
	i := m.PixOffset(x, int(m.Height)-1-y)
	return color.RGBA{m.Pix[i+2], m.Pix[i+1], m.Pix[i], 0xff}
}

/*
Package bm implements a decoder and encoder for the BM indexed raster
format and its companion PAL palette file.

A BM file starts with the image width and height as two little-endian
32-bit unsigned integers, followed by one palette index byte per pixel in
top-down, left-to-right row-major order. Rows are tightly packed with no
alignment padding. The PAL file is a flat sequence of 3-byte R, G, B
triples; a pixel's color lives at byte offset index * 3.

Neither file carries a signature or checksum so the formats cannot be
detected, only trusted.
*/
package bm

const (
	headerLen     = 8
	paletteStride = 3
	maxIndex      = 1 << 8

	// Enough for a 16k x 16k image; anything bigger is assumed to be a
	// corrupt header rather than a real asset.
	maxPixels = 1 << 28
)

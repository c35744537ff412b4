package bm

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	palette := color.Palette{
		color.RGBA{10, 20, 30, 255},
		color.RGBA{40, 50, 60, 255},
		color.RGBA{70, 80, 90, 255},
		color.RGBA{100, 110, 120, 255},
	}

	m := image.NewPaletted(image.Rect(0, 0, 2, 2), palette)
	m.SetColorIndex(0, 0, 0)
	m.SetColorIndex(1, 0, 1)
	m.SetColorIndex(0, 1, 2)
	m.SetColorIndex(1, 1, 3)

	bmBuf, palBuf := new(bytes.Buffer), new(bytes.Buffer)
	require.Nil(t, Encode(bmBuf, palBuf, m))

	assert.Equal(t, bmBytes(2, 2, 0, 1, 2, 3), bmBuf.Bytes())
	assert.Equal(t, testPalette, palBuf.Bytes())
}

func TestEncodeRoundTrip(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			m.Set(x, y, color.RGBA{byte(40 * x), byte(80 * y), 200, 255})
		}
	}

	bmBuf, palBuf := new(bytes.Buffer), new(bytes.Buffer)
	require.Nil(t, Encode(bmBuf, palBuf, m))

	decoded, err := Decode(bytes.NewReader(bmBuf.Bytes()), bytes.NewReader(palBuf.Bytes()))
	require.Nil(t, err)

	assert.Equal(t, m.Bounds(), decoded.Bounds())

	// 12 distinct colors fit in one palette so quantization is lossless
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, m.At(x, y), decoded.At(x, y), "pixel (%d, %d)", x, y)
		}
	}
}

func TestEncodeOffsetBounds(t *testing.T) {
	palette := color.Palette{color.RGBA{1, 2, 3, 255}}

	m := image.NewPaletted(image.Rect(5, 7, 7, 8), palette)

	bmBuf, palBuf := new(bytes.Buffer), new(bytes.Buffer)
	require.Nil(t, Encode(bmBuf, palBuf, m))

	assert.Equal(t, bmBytes(2, 1, 0, 0), bmBuf.Bytes())
	assert.Equal(t, []byte{1, 2, 3}, palBuf.Bytes())
}

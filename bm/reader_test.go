package bm

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bmBytes(width, height uint32, indices ...byte) []byte {
	b := make([]byte, headerLen, headerLen+len(indices))
	binary.LittleEndian.PutUint32(b[0:4], width)
	binary.LittleEndian.PutUint32(b[4:8], height)
	return append(b, indices...)
}

var testPalette = []byte{
	10, 20, 30,
	40, 50, 60,
	70, 80, 90,
	100, 110, 120,
}

func TestDecode(t *testing.T) {
	m, err := Decode(bytes.NewReader(bmBytes(2, 2, 0, 1, 2, 3)), bytes.NewReader(testPalette))
	require.Nil(t, err)

	assert.Equal(t, uint32(2), m.Width)
	assert.Equal(t, uint32(2), m.Height)
	assert.Equal(t, 6, m.Stride)

	// Bottom row first, B, G, R
	assert.Equal(t, []uint8{
		90, 80, 70, 120, 110, 100,
		30, 20, 10, 60, 50, 40,
	}, m.Pix)
}

func TestDecodeErrors(t *testing.T) {
	tables := []struct {
		name    string
		bm      []byte
		palette []byte
		err     error
	}{
		{
			"empty stream",
			nil,
			testPalette,
			ErrTruncatedHeader,
		},
		{
			"short header",
			bmBytes(2, 2)[:4],
			testPalette,
			ErrTruncatedHeader,
		},
		{
			"missing indices",
			bmBytes(2, 2, 0, 1, 2),
			testPalette,
			ErrTruncatedPixelData,
		},
		{
			"index beyond palette",
			bmBytes(1, 1, 4),
			testPalette,
			ErrPaletteLookup,
		},
		{
			"short palette triple",
			bmBytes(1, 1, 3),
			testPalette[:10],
			ErrPaletteLookup,
		},
		{
			"absurd dimensions",
			bmBytes(1<<16, 1<<16),
			testPalette,
			ErrTooLarge,
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(table.bm), bytes.NewReader(table.palette))
			assert.Equal(t, table.err, err)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	tables := []struct {
		name          string
		width, height uint32
	}{
		{"zero width", 0, 3},
		{"zero height", 3, 0},
		{"zero both", 0, 0},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m, err := Decode(bytes.NewReader(bmBytes(table.width, table.height)), bytes.NewReader(testPalette))
			require.Nil(t, err)
			assert.Equal(t, table.width, m.Width)
			assert.Equal(t, table.height, m.Height)
			assert.Len(t, m.Pix, 0)
		})
	}
}

func TestDecodeRepeatedIndices(t *testing.T) {
	m, err := Decode(bytes.NewReader(bmBytes(3, 2, 1, 1, 1, 1, 1, 1)), bytes.NewReader(testPalette))
	require.Nil(t, err)

	for i := 0; i < len(m.Pix); i += paletteStride {
		assert.Equal(t, []uint8{60, 50, 40}, m.Pix[i:i+paletteStride])
	}
}

func TestDecodeConfig(t *testing.T) {
	config, err := DecodeConfig(bytes.NewReader(bmBytes(640, 480)))
	require.Nil(t, err)

	assert.Equal(t, 640, config.Width)
	assert.Equal(t, 480, config.Height)
}

func TestImageAt(t *testing.T) {
	m, err := Decode(bytes.NewReader(bmBytes(2, 2, 0, 1, 2, 3)), bytes.NewReader(testPalette))
	require.Nil(t, err)

	// At addresses top-down, so (0, 0) is source row 0, column 0
	r, g, b, a := m.At(0, 0).RGBA()
	assert.Equal(t, []uint32{10, 20, 30, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})

	r, g, b, _ = m.At(1, 1).RGBA()
	assert.Equal(t, []uint32{100, 110, 120}, []uint32{r >> 8, g >> 8, b >> 8})
}

package bm

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
)

var (
	// ErrTruncatedHeader is returned when the BM stream holds fewer than
	// the eight header bytes.
	ErrTruncatedHeader = errors.New("bm: truncated header")
	// ErrTruncatedPixelData is returned when the BM stream runs out
	// before width * height index bytes have been read.
	ErrTruncatedPixelData = errors.New("bm: truncated pixel data")
	// ErrPaletteLookup is returned when an index addresses a triple that
	// the PAL stream cannot supply.
	ErrPaletteLookup = errors.New("bm: palette lookup failed")
	// ErrTooLarge is returned when the header dimensions describe an
	// image too big to buffer.
	ErrTooLarge = errors.New("bm: image too large")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r   io.Reader
	pal io.ReadSeeker

	width  uint32
	height uint32

	image *Image

	// Memoized palette triples; misses are looked up at most once,
	// failures are never cached.
	cache  [maxIndex][paletteStride]byte
	cached [maxIndex]bool
}

func (d *decoder) readHeader() error {
	var tmp [headerLen]byte
	if err := readFull(d.r, tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return ErrTruncatedHeader
	}
	d.width = binary.LittleEndian.Uint32(tmp[0:4])
	d.height = binary.LittleEndian.Uint32(tmp[4:8])

	if uint64(d.width)*uint64(d.height) > maxPixels {
		return ErrTooLarge
	}
	return nil
}

func (d *decoder) lookup(index byte) ([paletteStride]byte, error) {
	if d.cached[index] {
		return d.cache[index], nil
	}

	var tmp [paletteStride]byte
	if _, err := d.pal.Seek(int64(index)*paletteStride, io.SeekStart); err != nil {
		return tmp, ErrPaletteLookup
	}
	if err := readFull(d.pal, tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return tmp, err
		}
		return tmp, ErrPaletteLookup
	}

	d.cache[index] = tmp
	d.cached[index] = true

	return tmp, nil
}

func (d *decoder) readPixels() error {
	row := make([]byte, d.width)
	for i := uint32(0); i < d.height; i++ {
		if err := readFull(d.r, row); err != nil {
			if err != io.ErrUnexpectedEOF {
				return err
			}
			return ErrTruncatedPixelData
		}

		// BMP stores rows bottom-up, so source row i lands at buffer
		// row height-1-i.
		o := d.image.PixOffset(0, int(d.height-1-i))
		for j := uint32(0); j < d.width; j++ {
			c, err := d.lookup(row[j])
			if err != nil {
				return err
			}

			d.image.Pix[o+0] = c[2]
			d.image.Pix[o+1] = c[1]
			d.image.Pix[o+2] = c[0]
			o += paletteStride
		}
	}
	return nil
}

func (d *decoder) decode(r io.Reader, pal io.ReadSeeker) error {
	d.r = r
	d.pal = pal

	if err := d.readHeader(); err != nil {
		return err
	}

	d.image = newImage(d.width, d.height)

	return d.readPixels()
}

// Decode reads a BM picture from r, resolving each index against the
// palette in pal, and returns it staged for BMP output. Both streams are
// left positioned wherever the last read put them.
func Decode(r io.Reader, pal io.ReadSeeker) (*Image, error) {
	var d decoder
	if err := d.decode(r, pal); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the dimensions of a BM picture without decoding the
// pixel data. No palette is needed as the header carries no color
// information.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	d.r = r
	if err := d.readHeader(); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      int(d.width),
		Height:     int(d.height),
	}, nil
}

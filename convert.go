package bmtobmp

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/bmtobmp/bm"
	"github.com/bodgit/bmtobmp/bmp"
)

const (
	bmExtension  = ".bm"
	palExtension = ".pal"
	outExtension = ".bmp"

	maxFilenameLen = 256
)

// ErrFilenameTooLong is returned when the output filename would exceed the
// historical 256 byte limit.
var ErrFilenameTooLong = errors.New("bmtobmp: output filename is too long")

func checkExtension(file, ext string) error {
	if !strings.EqualFold(filepath.Ext(file), ext) {
		return fmt.Errorf("bmtobmp: %s is not a %s file", file, strings.ToUpper(strings.TrimPrefix(ext, ".")))
	}
	return nil
}

// Convert reads a BM picture from r, resolves its colors against the
// palette in pal and writes the equivalent 24-bit BMP to w.
func (c *Converter) Convert(r io.Reader, pal io.ReadSeeker, w io.Writer) error {
	m, err := bm.Decode(r, pal)
	if err != nil {
		return err
	}
	return bmp.Encode(w, m)
}

// ConvertFile converts the BM and PAL pair of files into base + ".bmp".
// The inputs are validated by extension and the output file is removed
// again if the conversion fails partway.
func (c *Converter) ConvertFile(bmPath, palPath, base string) error {
	if err := checkExtension(bmPath, bmExtension); err != nil {
		return err
	}
	if err := checkExtension(palPath, palExtension); err != nil {
		return err
	}

	name := base + outExtension
	if len(name) >= maxFilenameLen {
		return ErrFilenameTooLong
	}

	bmFile, err := os.Open(bmPath)
	if err != nil {
		return err
	}
	defer bmFile.Close()

	palFile, err := os.Open(palPath)
	if err != nil {
		return err
	}
	defer palFile.Close()

	out, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := c.Convert(bmFile, palFile, out); err != nil {
		out.Close()
		os.Remove(name)
		return err
	}

	return out.Close()
}

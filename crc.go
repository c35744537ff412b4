package bmtobmp

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// crcFiles hashes the contents of the BM file followed by the PAL file so
// a change to either shows up as a new conversion.
func crcFiles(bmPath, palPath string) (string, error) {
	h := crc32.NewIEEE()

	for _, file := range []string{bmPath, palPath} {
		f, err := os.Open(file)
		if err != nil {
			return "", err
		}

		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%.*X", crc32.Size<<1, h.Sum(nil)), nil
}

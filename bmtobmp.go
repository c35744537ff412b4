/*
Package bmtobmp converts pictures in the proprietary BM indexed raster
format, together with their companion PAL palette files, into standard
uncompressed 24-bit BMP files.
*/
package bmtobmp

import "log"

type Converter struct {
	db     *ConvertDB
	logger *log.Logger
}

// New returns a Converter using the given catalog and logger. db may be
// nil, in which case conversions are not recorded.
func New(db *ConvertDB, logger *log.Logger) *Converter {
	return &Converter{
		db:     db,
		logger: logger,
	}
}

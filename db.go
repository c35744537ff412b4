package bmtobmp

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ConvertDB is the catalog of completed conversions, keyed by the CRC of
// the source BM and PAL contents so a rescan can skip unchanged files.
type ConvertDB struct {
	db *sql.DB
}

func NewConvertDB(file string) (*ConvertDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, path STRING NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, size INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	return &ConvertDB{
		db: db,
	}, nil
}

func (db *ConvertDB) Close() error {
	return db.db.Close()
}

// Add records a conversion, replacing any previous entry with the same CRC.
func (db *ConvertDB) Add(crc, path string, width, height uint32, size int64) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO conversion (crc, path, width, height, size) VALUES (?, ?, ?, ?, ?)", crc, path, width, height, size); err != nil {
		return err
	}
	return nil
}

// FindByCRC returns the output path recorded for the given CRC, or the
// empty string if the sources have not been converted before.
func (db *ConvertDB) FindByCRC(crc string) (string, error) {
	var path string
	switch err := db.db.QueryRow("SELECT path FROM conversion WHERE crc = ?", crc).Scan(&path); err {
	case sql.ErrNoRows:
		return "", nil
	case nil:
		return path, nil
	default:
		return "", err
	}
}

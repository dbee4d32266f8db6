// Package recordread streams raw encounter rows from batch files.
// CSV and Parquet are supported, selected by file extension.
package recordread

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/careload/internal/model"
)

// BatchReader streams EncounterRows from a batch file.
type BatchReader interface {
	// Read reads up to len(rows) records into the provided slice.
	// Returns the number of rows read and io.EOF when done.
	Read(rows []model.EncounterRow) (int, error)
	Close() error
}

// Open opens a batch file and returns a streaming reader for it.
func Open(path string) (BatchReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return openParquet(path)
	case ".csv":
		return openCSV(path)
	default:
		return nil, fmt.Errorf("unsupported batch file format: %s", filepath.Base(path))
	}
}

type parquetReader struct {
	file   *os.File
	reader *parquet.GenericReader[model.EncounterRow]
}

func openParquet(path string) (*parquetReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	r := parquet.NewGenericReader[model.EncounterRow](pf)
	if err := validateParquetSchema(r.Schema()); err != nil {
		r.Close()
		f.Close()
		return nil, err
	}
	return &parquetReader{file: f, reader: r}, nil
}

func (r *parquetReader) Read(rows []model.EncounterRow) (int, error) {
	n, err := r.reader.Read(rows)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read parquet rows: %w", err)
	}
	return n, err
}

func (r *parquetReader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

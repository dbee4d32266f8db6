package recordread

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gyeh/careload/internal/model"
)

type csvReader struct {
	file *os.File
	r    *csv.Reader
	// cols maps record index → batch column name, from the header row.
	cols []string
}

func openCSV(path string) (*csvReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged trailing columns; Set ignores unknowns

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.ToLower(strings.TrimSpace(h))
	}
	if err := validateColumns(cols); err != nil {
		f.Close()
		return nil, err
	}

	return &csvReader{file: f, r: r, cols: cols}, nil
}

func (c *csvReader) Read(rows []model.EncounterRow) (int, error) {
	for i := range rows {
		record, err := c.r.Read()
		if err == io.EOF {
			return i, io.EOF
		}
		if err != nil {
			return i, fmt.Errorf("read csv record: %w", err)
		}

		rows[i] = model.EncounterRow{}
		for j, v := range record {
			if j < len(c.cols) {
				rows[i].Set(c.cols[j], strings.TrimSpace(v))
			}
		}
	}
	return len(rows), nil
}

func (c *csvReader) Close() error {
	return c.file.Close()
}

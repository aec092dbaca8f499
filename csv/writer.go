// Package csv writes business records as a delimited tabular file with
// a fixed header.
package csv

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/localsift/localsift"
)

// Ensure Writer implements localsift.RecordWriter at compile time.
var _ localsift.RecordWriter = (*Writer)(nil)

// Writer writes records to a CSV file. The file always starts with the
// canonical header row; unset fields render as empty strings. A
// header-only file is written for an empty record list.
type Writer struct {
	path string
}

// NewWriter creates a Writer that writes to the given path, truncating
// any existing file.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteRecords writes the header and one row per record.
func (w *Writer) WriteRecords(ctx context.Context, records []*localsift.BusinessRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Create(w.path)
	if err != nil {
		return err
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(localsift.RecordFields()); err != nil {
		return err
	}
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
		if err := cw.Write(record.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

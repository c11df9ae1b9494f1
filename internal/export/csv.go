// Package export writes scan results to files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/muurk/gazscan/internal/protocol"
)

// csvHeader is the column layout of an exported scan. Semicolon
// separation keeps the files loadable in European spreadsheet locales
// where comma is the decimal separator.
var csvHeader = []string{"Address", "Index", "Name", "Value", "Exponent", "Unit", "Type", "Access"}

// WriteCSV writes records to w as semicolon-separated CSV with a header
// row, in the order given.
func WriteCSV(w io.Writer, records []protocol.ParameterRecord) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(csvHeader))
	for _, rec := range records {
		row[0] = strconv.FormatUint(uint64(rec.Device), 10)
		row[1] = strconv.FormatUint(uint64(rec.Index), 10)
		row[2] = rec.Name
		row[3] = rec.Value
		row[4] = strconv.Itoa(rec.Exponent)
		row[5] = rec.Unit
		row[6] = rec.Type
		row[7] = rec.Access()
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// SaveCSV writes records to the named file, replacing any existing
// content.
func SaveCSV(path string, records []protocol.ParameterRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	return nil
}

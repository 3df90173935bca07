// Package source reads tabular profile sources and decodes their rows into raw profile records.
package source

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither spreadsheets nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// Table is a header row plus data rows, all as text.
type Table struct {
	Headers []string
	Rows    [][]string
	// DateSerials is set for spreadsheets, whose date cells hold the raw Excel serial number
	// instead of the displayed text.
	DateSerials bool
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Read loads a table from path. The extension selects the reader: .xlsx/.xlsm via excelize,
// .csv via encoding/csv. sheet is only used for spreadsheets; empty means the first sheet.
func Read(path, sheet string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return readSpreadsheet(path, sheet)
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "source: open %s", path)
		}
		defer file.Close()
		return ReadCSV(file)
	default:
		return nil, eris.Wrapf(ErrUnsupportedFormat, "source: %s has extension %q", path, ext)
	}
}

// ReadCSV reads a comma separated table. Rows may have fewer cells than the header.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "source: read csv")
	}

	return newTable(records)
}

func readSpreadsheet(path, sheet string) (*Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: open spreadsheet %s", path)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, eris.Errorf("source: spreadsheet %s has no sheets", path)
	}

	if sheet == "" {
		sheet = sheets[0]
	} else if !contains(sheets, sheet) {
		return nil, eris.Errorf("source: sheet %q not found in %s (available: %s)", sheet, path, strings.Join(sheets, ", "))
	}

	// Displayed text depends on the cell format ("06-15-65", "Mar-68") and loses the century.
	rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, eris.Wrapf(err, "source: read sheet %q", sheet)
	}

	table, err := newTable(rows)
	if err != nil {
		return nil, err
	}
	table.DateSerials = true

	return table, nil
}

func newTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, eris.New("source: no header row")
	}

	headers := make([]string, len(records[0]))
	for idx, header := range records[0] {
		if idx == 0 {
			header = strings.TrimPrefix(header, "\ufeff")
		}
		headers[idx] = strings.TrimSpace(header)
	}

	return &Table{Headers: headers, Rows: records[1:]}, nil
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

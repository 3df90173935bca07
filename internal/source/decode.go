package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/matchmaker/internal/profile"
)

// Decode checks the table against the schema and converts every non-blank row into a raw profile
// record. When required columns are missing it returns *MissingColumnsError and decodes nothing.
func Decode(table *Table, schema Schema) ([]profile.Raw, error) {
	if missing := schema.Missing(table.Headers); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	columns := make(map[string]int)
	for _, field := range profile.Fields() {
		if idx := indexOf(table.Headers, schema.Header(field)); idx >= 0 {
			columns[field] = idx
		}
	}

	raws := make([]profile.Raw, 0, len(table.Rows))
	for line, row := range table.Rows {
		if blank(row) {
			continue
		}

		values := make(map[string]any, len(columns))
		for field, idx := range columns {
			if idx < len(row) {
				values[field] = row[idx]
			}
		}
		if table.DateSerials {
			convertSerials(values)
		}

		var raw profile.Raw
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &raw,
			TagName:          "mapstructure",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(values); err != nil {
			// header is line 1
			return nil, fmt.Errorf("decoding row %d: %w", line+2, err)
		}

		raws = append(raws, raw)
	}

	return raws, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// convertSerials replaces Excel date serials in date columns: birth dates become time.Time, the
// passthrough dates become ISO text.
func convertSerials(values map[string]any) {
	for _, field := range []string{profile.FieldBirthDate, profile.FieldJoined, profile.FieldExpireDate} {
		cell, ok := values[field].(string)
		if !ok {
			continue
		}
		serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil || serial <= 0 || math.IsNaN(serial) || math.IsInf(serial, 0) {
			continue
		}
		date, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			continue
		}
		if field == profile.FieldBirthDate {
			values[field] = date
			continue
		}
		values[field] = date.Format(time.DateOnly)
	}
}

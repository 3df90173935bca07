// Package export projects match results to display rows and writes them to files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/matchmaker/internal/matching"
	"github.com/spigell/matchmaker/internal/profile"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

const (
	sheetName    = "Matches"
	fallbackName = "profile"
)

// Columns are the projected display columns in output order.
var Columns = []string{
	"id",
	"name",
	"denomination",
	"marital status",
	"height (cm)",
	"age",
	"city",
	"education",
	"salary",
	"occupation",
	"joined",
	"expire date",
	"mobile",
}

// ParseFormat accepts csv, xlsx and json in any case. Empty means csv.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use csv, xlsx or json)", s)
	}
}

// SafeName turns a display name into a file name fragment: letters, digits, spaces and
// underscores are kept, runs of spaces become one underscore.
func SafeName(name string) string {
	kept := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' {
			return r
		}
		return -1
	}, name)

	safe := strings.Join(strings.Fields(kept), "_")
	if safe == "" {
		return fallbackName
	}
	return safe
}

// FileName is the export file name for the result's query profile.
func FileName(result *matching.Result, format Format) string {
	name := ""
	if result != nil && result.Query != nil {
		name = result.Query.Name
	}
	return fmt.Sprintf("matches_%s.%s", SafeName(name), format)
}

// Project returns the header row followed by one row per match. Absent values are empty cells.
func Project(result *matching.Result) [][]string {
	rows := make([][]string, 0, result.Len()+1)
	rows = append(rows, append([]string(nil), Columns...))
	if result == nil {
		return rows
	}
	for _, m := range result.Matches {
		rows = append(rows, row(m.Profile))
	}
	return rows
}

func row(p *profile.Profile) []string {
	height := ""
	if h, ok := p.HeightCM.Get(); ok {
		height = strconv.FormatFloat(h, 'f', -1, 64)
	}

	return []string{
		p.ID,
		p.Name,
		p.Display.Denomination,
		p.Display.MaritalStatus,
		height,
		p.Age.String(),
		p.Display.City,
		p.Display.Education,
		p.Display.Salary,
		p.Display.Occupation,
		p.Display.Joined,
		p.Display.ExpireDate,
		p.Display.Mobile,
	}
}

// Write exports the result into dir, creating it when missing, and returns the written path.
func Write(result *matching.Result, dir string, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "export: create directory %s", dir)
	}

	path := filepath.Join(dir, FileName(result, format))

	var err error
	switch format {
	case FormatCSV:
		err = writeCSV(path, Project(result))
	case FormatXLSX:
		err = writeXLSX(path, Project(result))
	case FormatJSON:
		err = writeJSON(path, result)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", err
	}

	return path, nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer file.Close()

	if err := csv.NewWriter(file).WriteAll(rows); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}

func writeXLSX(path string, rows [][]string) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
		return eris.Wrap(err, "export: name sheet")
	}

	for idx, values := range rows {
		cells := make([]any, len(values))
		for i, v := range values {
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return eris.Wrap(err, "export: cell name")
		}
		if err := file.SetSheetRow(sheetName, cell, &cells); err != nil {
			return eris.Wrapf(err, "export: write row %d", idx+1)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrapf(err, "export: encode %s", path)
	}
	return nil
}

// DumpToTmpFile writes the results as JSON to a new temporary file and returns its name.
func DumpToTmpFile(results []*matching.Result) (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	return file.Name(), nil
}

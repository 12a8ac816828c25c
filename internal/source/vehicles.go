package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katiamach/ev-charging-analysis/internal/model"
	"github.com/xuri/excelize/v2"
)

// Vehicles table layout: named columns first, then the four other ULEV sub-categories.
const (
	colDate            = "Date"
	colBatteryElectric = "Battery Electric"
	colPlugInHybrid    = "Plug-in Hybrid Electric 2"

	firstOtherColumn = 3
	otherColumns     = 4
	vehicleColumns   = firstOtherColumn + otherColumns

	// header is looked for within the first rows only, the rest is data
	headerSearchRows = 20
)

var ErrUnsupportedFormat = errors.New("unsupported vehicles file format")

// CellError reports a cell that could not be parsed as a number.
type CellError struct {
	Row    int
	Column string
	Value  string
}

func (e *CellError) Error() string {
	return fmt.Sprintf("vehicles: row %d column %q: %q is not a number", e.Row, e.Column, e.Value)
}

// ReadVehicles reads ULEV registrations table choosing a reader by file extension.
func ReadVehicles(path string) ([]*model.ULEVYearRecord, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSXRows(path)
	case ".ods":
		rows, err = readODSRows(path)
	case ".csv":
		rows, err = readCSVRows(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vehicles file: %w", err)
	}

	return ParseVehicleTable(rows)
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows of sheet %s: %w", sheets[0], err)
	}

	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	return reader.ReadAll()
}

// ParseVehicleTable finds the header row and converts the rows below it.
func ParseVehicleTable(rows [][]string) ([]*model.ULEVYearRecord, error) {
	headerIdx := -1
	for i, row := range rows {
		if i >= headerSearchRows {
			break
		}
		if len(row) > 0 && strings.TrimSpace(row[0]) == colDate {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, &ColumnError{Table: "vehicles", Column: colDate, Index: 0}
	}

	header := rows[headerIdx]
	if err := validateVehicleHeader(header); err != nil {
		return nil, err
	}

	records := make([]*model.ULEVYearRecord, 0, len(rows)-headerIdx-1)
	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		rec, err := parseVehicleRow(row, header, rowNum)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}

func validateVehicleHeader(header []string) error {
	expected := []string{colDate, colBatteryElectric, colPlugInHybrid}
	for i, name := range expected {
		if i >= len(header) || strings.TrimSpace(header[i]) != name {
			return &ColumnError{Table: "vehicles", Column: name, Index: i}
		}
	}

	if len(header) < vehicleColumns {
		return &ColumnError{
			Table:  "vehicles",
			Column: fmt.Sprintf("other ULEVs %d", len(header)-firstOtherColumn+1),
			Index:  len(header),
		}
	}

	return nil
}

func parseVehicleRow(row, header []string, rowNum int) (*model.ULEVYearRecord, error) {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	year, err := parseYearCell(cell(0))
	if err != nil {
		return nil, &CellError{Row: rowNum, Column: colDate, Value: cell(0)}
	}

	values := make([]float64, vehicleColumns)
	for i := 1; i < vehicleColumns; i++ {
		v, err := parseCount(cell(i))
		if err != nil {
			return nil, &CellError{Row: rowNum, Column: strings.TrimSpace(header[i]), Value: cell(i)}
		}
		values[i] = v
	}

	rec := &model.ULEVYearRecord{
		Year:            year,
		BatteryElectric: values[1],
		PlugInHybrid:    values[2],
	}
	copy(rec.OtherSubCounts[:], values[firstOtherColumn:])

	return rec, nil
}

// parseYearCell accepts "2019" as well as spreadsheet numbers like "2019.0".
func parseYearCell(s string) (int, error) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid year %q", s)
	}

	return int(f), nil
}

// parseCount treats blank cells as zero, thousands separators are allowed.
func parseCount(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}

	return strconv.ParseFloat(s, 64)
}

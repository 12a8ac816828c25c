// Package inspect builds overviews of loaded tables: first rows, column types,
// missing values and duplicated rows.
package inspect

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/katiamach/ev-charging-analysis/internal/model"
)

type chargerRow struct {
	ID          string  `dataframe:"chargeDeviceID"`
	Latitude    float64 `dataframe:"latitude"`
	Longitude   float64 `dataframe:"longitude"`
	Status      string  `dataframe:"chargeDeviceStatus"`
	DateCreated string  `dataframe:"dateCreated"`
}

type vehicleRow struct {
	Date            int     `dataframe:"Date"`
	BatteryElectric float64 `dataframe:"Battery Electric"`
	PlugInHybrid    float64 `dataframe:"Plug-in Hybrid Electric 2"`
	Other1          float64 `dataframe:"Other 1"`
	Other2          float64 `dataframe:"Other 2"`
	Other3          float64 `dataframe:"Other 3"`
	Other4          float64 `dataframe:"Other 4"`
}

// Chargers summarizes raw registry records.
func Chargers(records []*model.ChargerRecord, head int) (*model.TableSummary, error) {
	rows := chargerRows(records)
	return summarize("chargers", rows, len(rows), head)
}

// CleanedChargers summarizes registry records left after cleaning, head follows the records order.
func CleanedChargers(records []*model.ChargerRecord, head int) (*model.TableSummary, error) {
	rows := chargerRows(records)
	return summarize("cleaned chargers", rows, len(rows), head)
}

func chargerRows(records []*model.ChargerRecord) []chargerRow {
	rows := make([]chargerRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, chargerRow{
			ID:          r.ID,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Status:      r.Status,
			DateCreated: r.DateCreated,
		})
	}

	return rows
}

// Vehicles summarizes ULEV registrations rows as read from the spreadsheet.
func Vehicles(records []*model.ULEVYearRecord, head int) (*model.TableSummary, error) {
	rows := make([]vehicleRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, vehicleRow{
			Date:            r.Year,
			BatteryElectric: r.BatteryElectric,
			PlugInHybrid:    r.PlugInHybrid,
			Other1:          r.OtherSubCounts[0],
			Other2:          r.OtherSubCounts[1],
			Other3:          r.OtherSubCounts[2],
			Other4:          r.OtherSubCounts[3],
		})
	}

	return summarize("vehicles", rows, len(rows), head)
}

func summarize(name string, rows interface{}, n, head int) (*model.TableSummary, error) {
	summary := &model.TableSummary{Name: name, Rows: n}
	if n == 0 {
		return summary, nil
	}

	df := dataframe.LoadStructs(rows)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to load %s into dataframe: %w", name, df.Err)
	}

	types := df.Types()
	for i, col := range df.Names() {
		summary.Columns = append(summary.Columns, model.ColumnInfo{
			Name:    col,
			Type:    string(types[i]),
			Missing: hasMissing(df, col),
		})
	}

	if head > n {
		head = n
	}
	if head > 0 {
		indexes := make([]int, head)
		for i := range indexes {
			indexes[i] = i
		}
		summary.Head = df.Subset(indexes).String()
	}

	summary.Duplicates = countDuplicates(df.Records())

	return summary, nil
}

// hasMissing reports NaN numbers as well as empty strings.
func hasMissing(df dataframe.DataFrame, col string) bool {
	s := df.Col(col)
	if s.HasNaN() {
		return true
	}

	for _, v := range s.Records() {
		if v == "NaN" || strings.TrimSpace(v) == "" {
			return true
		}
	}

	return false
}

// countDuplicates counts rows equal to an earlier row, records start with the header.
func countDuplicates(records [][]string) int {
	if len(records) < 2 {
		return 0
	}

	seen := make(map[string]struct{}, len(records)-1)
	var dup int
	for _, r := range records[1:] {
		key := strings.Join(r, "\x1f")
		if _, ok := seen[key]; ok {
			dup++
			continue
		}
		seen[key] = struct{}{}
	}

	return dup
}

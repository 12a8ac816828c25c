package stats

import (
	"sort"

	"github.com/katiamach/ev-charging-analysis/internal/model"
	"gonum.org/v1/gonum/floats"
)

// CountByYear groups records by YearCreated and counts them, years ascending.
// Records for which keep returns false are ignored; nil keep takes every record.
func CountByYear(records []*model.ChargerRecord, keep func(*model.ChargerRecord) bool) []*model.YearlyChargerCount {
	perYear := make(map[int]int)
	for _, r := range records {
		if keep != nil && !keep(r) {
			continue
		}
		perYear[r.YearCreated]++
	}

	years := make([]int, 0, len(perYear))
	for y := range perYear {
		years = append(years, y)
	}
	sort.Ints(years)

	counts := make([]*model.YearlyChargerCount, 0, len(years))

	var total int
	for _, y := range years {
		total += perYear[y]
		counts = append(counts, &model.YearlyChargerCount{
			Year:       y,
			Installed:  perYear[y],
			Cumulative: total,
		})
	}

	return counts
}

// InServiceByYear counts chargers with the given status per year, skipping excludeYear
// (the current, incomplete year).
func InServiceByYear(records []*model.ChargerRecord, status string, excludeYear int) []*model.YearlyChargerCount {
	return CountByYear(records, func(r *model.ChargerRecord) bool {
		return r.Status == status && r.YearCreated != excludeYear
	})
}

// DeriveVehicleColumns fills OtherULEVs and PlugRollingSum of every row.
// Rolling sum follows the row order, rows are expected to be chronological.
func DeriveVehicleColumns(rows []*model.ULEVYearRecord) {
	plug := make([]float64, len(rows))
	for i, r := range rows {
		r.OtherULEVs = floats.Sum(r.OtherSubCounts[:])
		plug[i] = r.BatteryElectric + r.PlugInHybrid
	}

	floats.CumSum(plug, plug)

	for i, r := range rows {
		r.PlugRollingSum = plug[i]
	}
}

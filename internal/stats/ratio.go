package stats

import (
	"errors"
	"fmt"

	"github.com/katiamach/ev-charging-analysis/internal/model"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrYearNotFound       = errors.New("there is no ratio for the given year")
	ErrPositionOutOfRange = errors.New("ratio position is out of range")
)

// JoinByYear inner joins yearly chargers counts and vehicle rows on year.
// Result keeps chargers order; a year repeated in vehicles produces a row per match.
func JoinByYear(chargers []*model.YearlyChargerCount, vehicles []*model.ULEVYearRecord) []*model.JoinedYearRecord {
	vehiclesByYear := make(map[int][]*model.ULEVYearRecord, len(vehicles))
	for _, v := range vehicles {
		vehiclesByYear[v.Year] = append(vehiclesByYear[v.Year], v)
	}

	joined := make([]*model.JoinedYearRecord, 0, len(chargers))
	for _, c := range chargers {
		for _, v := range vehiclesByYear[c.Year] {
			joined = append(joined, &model.JoinedYearRecord{
				Year:            c.Year,
				Installed:       c.Installed,
				Cumulative:      c.Cumulative,
				BatteryElectric: v.BatteryElectric,
				PlugInHybrid:    v.PlugInHybrid,
				OtherULEVs:      v.OtherULEVs,
				PlugRollingSum:  v.PlugRollingSum,
			})
		}
	}

	return joined
}

// Ratios divides cumulative plug-in registrations by cumulative in service chargers.
// Both series are matched by year, a year missing on either side gets no ratio.
func Ratios(joined []*model.JoinedYearRecord, inService []*model.YearlyChargerCount) []*model.YearRatio {
	available := make(map[int]int, len(inService))
	for _, c := range inService {
		available[c.Year] = c.Cumulative
	}

	ratios := make([]*model.YearRatio, 0, len(joined))
	plugs := make([]float64, 0, len(joined))
	chargers := make([]float64, 0, len(joined))

	for _, j := range joined {
		cum, ok := available[j.Year]
		if !ok || cum == 0 {
			continue
		}

		ratios = append(ratios, &model.YearRatio{
			Year:              j.Year,
			PlugInCumulative:  j.PlugRollingSum,
			ChargersInService: cum,
		})
		plugs = append(plugs, j.PlugRollingSum)
		chargers = append(chargers, float64(cum))
	}

	floats.Div(plugs, chargers)

	for i, r := range ratios {
		r.Ratio = plugs[i]
	}

	return ratios
}

// RatioForYear looks the ratio up by year value.
func RatioForYear(ratios []*model.YearRatio, year int) (*model.YearRatio, error) {
	for _, r := range ratios {
		if r.Year == year {
			return r, nil
		}
	}

	return nil, fmt.Errorf("%w: %d", ErrYearNotFound, year)
}

// RatioAt returns the ratio at the given position of the series.
func RatioAt(ratios []*model.YearRatio, pos int) (*model.YearRatio, error) {
	if pos < 0 || pos >= len(ratios) {
		return nil, fmt.Errorf("%w: position %d, series length %d", ErrPositionOutOfRange, pos, len(ratios))
	}

	return ratios[pos], nil
}

package inspect

import (
	"math"
	"testing"

	"github.com/katiamach/ev-charging-analysis/internal/model"
	"github.com/katiamach/ev-charging-analysis/internal/stats"
	"github.com/tj/assert"
)

func TestChargers(t *testing.T) {
	records := []*model.ChargerRecord{
		{ID: "a", Latitude: 51.5, Longitude: -0.1, Status: "In service", DateCreated: "2019-01-01 00:00:00"},
		{ID: "b", Latitude: math.NaN(), Longitude: math.NaN(), Status: "In service", DateCreated: "2020-01-01 00:00:00"},
		{ID: "a", Latitude: 51.5, Longitude: -0.1, Status: "In service", DateCreated: "2019-01-01 00:00:00"},
		{ID: "c", Latitude: 52, Longitude: -1, Status: "", DateCreated: model.SentinelDate},
	}

	summary, err := Chargers(records, 2)
	assert.Nil(t, err)

	assert.Equal(t, "chargers", summary.Name)
	assert.Equal(t, 4, summary.Rows)
	assert.Equal(t, 1, summary.Duplicates)
	assert.NotEmpty(t, summary.Head)

	missing := make(map[string]bool, len(summary.Columns))
	for _, c := range summary.Columns {
		missing[c.Name] = c.Missing
	}

	assert.Equal(t, map[string]bool{
		"chargeDeviceID":     false,
		"latitude":           true,
		"longitude":          true,
		"chargeDeviceStatus": true,
		"dateCreated":        false,
	}, missing)
}

func TestCleanedChargers(t *testing.T) {
	sentinel := &model.ChargerRecord{ID: "s", Latitude: 52, Longitude: -1, Status: "Planned", DateCreated: model.SentinelDate}
	records := []*model.ChargerRecord{
		{ID: "first-installed", Latitude: 53, Longitude: -2, Status: "In service", DateCreated: "2018-01-01 00:00:00"},
		{ID: "second-installed", Latitude: 51.5, Longitude: -0.1, Status: "In service", DateCreated: "2019-01-01 00:00:00"},
		sentinel,
		sentinel,
		{ID: "second-installed", Latitude: 51.5, Longitude: -0.1, Status: "In service", DateCreated: "2019-01-01 00:00:00"},
	}

	raw, err := Chargers(records, 0)
	assert.Nil(t, err)
	assert.Equal(t, 2, raw.Duplicates)

	cleaned, _ := stats.Clean(records)
	summary, err := CleanedChargers(stats.SortByCreated(cleaned), 1)
	assert.Nil(t, err)

	assert.Equal(t, "cleaned chargers", summary.Name)
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 1, summary.Duplicates)
	assert.Contains(t, summary.Head, "first-installed")
	assert.NotContains(t, summary.Head, "second-installed")
}

func TestVehicles(t *testing.T) {
	records := []*model.ULEVYearRecord{
		{Year: 2019, BatteryElectric: 1, PlugInHybrid: 2},
		{Year: 2020, BatteryElectric: 3, PlugInHybrid: 4},
	}

	summary, err := Vehicles(records, 10)
	assert.Nil(t, err)

	assert.Equal(t, 2, summary.Rows)
	assert.Equal(t, 0, summary.Duplicates)
	assert.Len(t, summary.Columns, 7)
	assert.Equal(t, "Date", summary.Columns[0].Name)
	assert.Equal(t, "int", summary.Columns[0].Type)
	assert.Equal(t, "float", summary.Columns[1].Type)
}

func TestEmpty(t *testing.T) {
	summary, err := Chargers(nil, 5)
	assert.Nil(t, err)
	assert.Equal(t, 0, summary.Rows)
	assert.Empty(t, summary.Columns)
}

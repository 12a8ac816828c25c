package model

import "time"

// SentinelDate marks registry rows without a real creation date.
const SentinelDate = "0000-00-00 00:00:00"

// ChargerRecord is a single charge point from the national registry.
type ChargerRecord struct {
	ID          string  `json:"chargeDeviceID" bson:"chargeDeviceID"`
	Latitude    float64 `json:"latitude" bson:"latitude"`
	Longitude   float64 `json:"longitude" bson:"longitude"`
	Status      string  `json:"chargeDeviceStatus" bson:"chargeDeviceStatus"`
	DateCreated string  `json:"dateCreated" bson:"dateCreated"`
	YearCreated int     `json:"yearCreated" bson:"yearCreated"`
}

// YearlyChargerCount contains number of chargers installed in a year and running total.
type YearlyChargerCount struct {
	Year       int `json:"yearCreated" bson:"year"`
	Installed  int `json:"numCharges" bson:"installed"`
	Cumulative int `json:"rollingSum" bson:"cumulative"`
}

// ULEVYearRecord is a row of ULEVs registered for the first time by fuel type.
type ULEVYearRecord struct {
	Year            int        `json:"date" bson:"year"`
	BatteryElectric float64    `json:"batteryElectric" bson:"batteryElectric"`
	PlugInHybrid    float64    `json:"plugInHybrid" bson:"plugInHybrid"`
	OtherSubCounts  [4]float64 `json:"otherSubCounts" bson:"otherSubCounts"`
	OtherULEVs      float64    `json:"otherULEVs" bson:"otherULEVs"`
	PlugRollingSum  float64    `json:"plugRollingSum" bson:"plugRollingSum"`
}

// JoinedYearRecord combines chargers and vehicles figures of the same year.
type JoinedYearRecord struct {
	Year            int     `json:"year" bson:"year"`
	Installed       int     `json:"numCharges" bson:"installed"`
	Cumulative      int     `json:"rollingSum" bson:"cumulative"`
	BatteryElectric float64 `json:"batteryElectric" bson:"batteryElectric"`
	PlugInHybrid    float64 `json:"plugInHybrid" bson:"plugInHybrid"`
	OtherULEVs      float64 `json:"otherULEVs" bson:"otherULEVs"`
	PlugRollingSum  float64 `json:"plugRollingSum" bson:"plugRollingSum"`
}

// YearRatio is the number of plug-in cars per in service charger through a year.
type YearRatio struct {
	Year              int     `json:"year" bson:"year"`
	PlugInCumulative  float64 `json:"plugInCumulative" bson:"plugInCumulative"`
	ChargersInService int     `json:"chargersInService" bson:"chargersInService"`
	Ratio             float64 `json:"ratio" bson:"ratio"`
}

// CleanSummary describes what cleaning removed from the registry.
type CleanSummary struct {
	Total     int `json:"total" bson:"total"`
	Sentinel  int `json:"sentinel" bson:"sentinel"`
	Malformed int `json:"malformed" bson:"malformed"`
	Kept      int `json:"kept" bson:"kept"`
}

// Report is the result of a single analysis run.
type Report struct {
	RunID     string                `json:"runID" bson:"runID"`
	CreatedAt time.Time             `json:"createdAt" bson:"createdAt"`
	Clean     CleanSummary          `json:"clean" bson:"clean"`
	Chargers  []*YearlyChargerCount `json:"chargers" bson:"chargers"`
	InService []*YearlyChargerCount `json:"inService" bson:"inService"`
	Vehicles  []*ULEVYearRecord     `json:"vehicles" bson:"vehicles"`
	Joined    []*JoinedYearRecord   `json:"joined" bson:"joined"`
	Ratios    []*YearRatio          `json:"ratios" bson:"ratios"`
	RatioYear int                   `json:"ratioYear" bson:"ratioYear"`
	Ratio     map[string]float64    `json:"ratio" bson:"ratio"`
}

// NearestRequest contains nearest chargers request parameters.
type NearestRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Limit     int     `json:"limit"`
}

// NearbyCharger is a charger with its distance to the requested point.
type NearbyCharger struct {
	*ChargerRecord
	DistanceKm float64 `json:"distanceKm"`
}

// ColumnInfo describes a single table column.
type ColumnInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Missing bool   `json:"missing"`
}

// TableSummary is an overview of a loaded table.
type TableSummary struct {
	Name       string       `json:"name"`
	Rows       int          `json:"rows"`
	Columns    []ColumnInfo `json:"columns"`
	Head       string       `json:"head"`
	Duplicates int          `json:"duplicates"`
}

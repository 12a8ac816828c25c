// Package stats contains pure transformations of charger and vehicle tables:
// cleaning, yearly aggregation, joining and ratio computation.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/katiamach/ev-charging-analysis/internal/model"
)

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseYear returns calendar year of a registry timestamp.
func ParseYear(timestamp string) (int, error) {
	t, err := parseTimestamp(timestamp)
	if err != nil {
		return 0, err
	}

	return t.Year(), nil
}

func parseTimestamp(timestamp string) (time.Time, error) {
	ts := strings.TrimSpace(timestamp)

	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, ts)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported timestamp %q", timestamp)
}

// SortByCreated returns records ordered from the earliest creation date.
// Unparsable dates go last, ties keep input order.
func SortByCreated(records []*model.ChargerRecord) []*model.ChargerRecord {
	type dated struct {
		record *model.ChargerRecord
		at     time.Time
		ok     bool
	}

	rows := make([]dated, 0, len(records))
	for _, r := range records {
		at, err := parseTimestamp(r.DateCreated)
		rows = append(rows, dated{record: r, at: at, ok: err == nil})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ok != rows[j].ok {
			return rows[i].ok
		}
		return rows[i].at.Before(rows[j].at)
	})

	sorted := make([]*model.ChargerRecord, 0, len(rows))
	for _, r := range rows {
		sorted = append(sorted, r.record)
	}

	return sorted
}

// Clean drops rows with the sentinel or unparsable creation date and sets YearCreated of the rest.
// Input records are not modified.
func Clean(records []*model.ChargerRecord) ([]*model.ChargerRecord, model.CleanSummary) {
	summary := model.CleanSummary{Total: len(records)}

	cleaned := make([]*model.ChargerRecord, 0, len(records))
	for _, r := range records {
		if r.DateCreated == model.SentinelDate {
			summary.Sentinel++
			continue
		}

		year, err := ParseYear(r.DateCreated)
		if err != nil {
			summary.Malformed++
			continue
		}

		c := *r
		c.YearCreated = year
		cleaned = append(cleaned, &c)
	}

	summary.Kept = len(cleaned)

	return cleaned, summary
}

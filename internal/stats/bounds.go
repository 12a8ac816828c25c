package stats

import "github.com/katiamach/ev-charging-analysis/internal/model"

// Bounds is a latitude/longitude box.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// UKBounds roughly covers Great Britain and Northern Ireland.
var UKBounds = Bounds{MinLat: 49, MaxLat: 61, MinLon: -8.1, MaxLon: 2}

// WithinBounds keeps records whose coordinates lie inside b, bounds inclusive.
// Records with NaN coordinates are dropped.
func WithinBounds(records []*model.ChargerRecord, b Bounds) []*model.ChargerRecord {
	inside := make([]*model.ChargerRecord, 0, len(records))
	for _, r := range records {
		if r.Latitude >= b.MinLat && r.Latitude <= b.MaxLat &&
			r.Longitude >= b.MinLon && r.Longitude <= b.MaxLon {
			inside = append(inside, r)
		}
	}

	return inside
}

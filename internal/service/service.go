package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/katiamach/ev-charging-analysis/internal/model"
	"github.com/katiamach/ev-charging-analysis/internal/repository"
	"github.com/katiamach/ev-charging-analysis/internal/stats"
	"github.com/umahmood/haversine"
)

var (
	ErrNoReport   = errors.New("there is no analysis report yet, please, run the analysis first")
	ErrNoChargers = errors.New("there are no chargers available, please, run the analysis first")
)

// Repository provides necessary repo methods.
type Repository interface {
	InsertReport(ctx context.Context, report *model.Report) error
	GetLatestReport(ctx context.Context) (*model.Report, error)
	ReplaceChargers(ctx context.Context, chargers []*model.ChargerRecord) error
	GetChargersCoordinates(ctx context.Context) ([]*model.ChargerRecord, error)
}

// Loader provides source tables.
type Loader interface {
	LoadChargers(ctx context.Context) ([]*model.ChargerRecord, error)
	LoadVehicles(ctx context.Context) ([]*model.ULEVYearRecord, error)
}

// Renderer draws report charts.
type Renderer interface {
	Render(chargers []*model.ChargerRecord, report *model.Report) error
}

// Options tune the analysis.
type Options struct {
	InServiceStatus string
	PartialYear     int
	RatioYear       int
	HeadRows        int
	EarliestRows    int
}

// AnalysisService provides chargers and vehicles analysis functionality.
type AnalysisService struct {
	repo     Repository
	loader   Loader
	renderer Renderer
	opts     Options

	// serializes runs
	mu sync.Mutex
}

// New creates new AnalysisService. Charts are not drawn when renderer is nil.
func New(repo Repository, loader Loader, renderer Renderer, opts Options) *AnalysisService {
	return &AnalysisService{
		repo:     repo,
		loader:   loader,
		renderer: renderer,
		opts:     opts,
	}
}

// GetReport returns the latest analysis report.
func (s *AnalysisService) GetReport(ctx context.Context) (*model.Report, error) {
	report, err := s.repo.GetLatestReport(ctx)
	if err == repository.ErrNoReports {
		return nil, ErrNoReport
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest report: %w", err)
	}

	return report, nil
}

// GetRatio returns plug-in cars to in service chargers ratio of the latest report for the given year.
func (s *AnalysisService) GetRatio(ctx context.Context, year int) (*model.YearRatio, error) {
	report, err := s.GetReport(ctx)
	if err != nil {
		return nil, err
	}

	return stats.RatioForYear(report.Ratios, year)
}

// GetNearestChargers finds chargers nearest to the given point.
func (s *AnalysisService) GetNearestChargers(ctx context.Context, req *model.NearestRequest) ([]*model.NearbyCharger, error) {
	chargers, err := s.repo.GetChargersCoordinates(ctx)
	if err == repository.ErrNoChargers {
		return nil, ErrNoChargers
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chargers coordinates: %w", err)
	}

	point := haversine.Coord{Lat: req.Latitude, Lon: req.Longitude}

	return findNearestChargers(point, chargers, req.Limit), nil
}

func findNearestChargers(point haversine.Coord, chargers []*model.ChargerRecord, limit int) []*model.NearbyCharger {
	nearby := make([]*model.NearbyCharger, 0, len(chargers))

	for _, ch := range chargers {
		if math.IsNaN(ch.Latitude) || math.IsNaN(ch.Longitude) {
			continue
		}

		chCoords := haversine.Coord{Lat: ch.Latitude, Lon: ch.Longitude}
		_, kmDistance := haversine.Distance(point, chCoords)

		nearby = append(nearby, &model.NearbyCharger{ChargerRecord: ch, DistanceKm: kmDistance})
	}

	// sort distances from min to max
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}

	return nearby
}

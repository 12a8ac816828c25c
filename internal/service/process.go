package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/katiamach/ev-charging-analysis/internal/inspect"
	"github.com/katiamach/ev-charging-analysis/internal/logger"
	"github.com/katiamach/ev-charging-analysis/internal/model"
	"github.com/katiamach/ev-charging-analysis/internal/stats"
)

// Run loads both tables, analyzes them, draws charts and stores the report.
func (s *AnalysisService) Run(ctx context.Context) (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chargers, err := s.loader.LoadChargers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chargers: %w", err)
	}

	vehicles, err := s.loader.LoadVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}

	s.logSummaries(chargers, vehicles)

	report, cleaned, err := Analyze(chargers, vehicles, s.opts)
	if err != nil {
		return nil, err
	}

	logger.InfoFields("Registry cleaned", map[string]interface{}{
		"total":     report.Clean.Total,
		"sentinel":  report.Clean.Sentinel,
		"malformed": report.Clean.Malformed,
		"kept":      report.Clean.Kept,
	})
	s.logCleaned(cleaned)

	if s.renderer != nil {
		err = s.renderer.Render(cleaned, report)
		if err != nil {
			return nil, fmt.Errorf("failed to render charts: %w", err)
		}
	}

	err = s.repo.ReplaceChargers(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to store chargers: %w", err)
	}

	err = s.repo.InsertReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}

	logger.Info(fmt.Sprintf("Analysis %s finished", report.RunID))

	return report, nil
}

// Analyze cleans chargers, aggregates both tables and computes the ratio for the configured year.
// Vehicle rows get their derived columns filled in place.
func Analyze(chargers []*model.ChargerRecord, vehicles []*model.ULEVYearRecord, opts Options) (*model.Report, []*model.ChargerRecord, error) {
	cleaned, summary := stats.Clean(chargers)

	installed := stats.CountByYear(cleaned, nil)
	stats.DeriveVehicleColumns(vehicles)

	joined := stats.JoinByYear(installed, vehicles)
	inService := stats.InServiceByYear(cleaned, opts.InServiceStatus, opts.PartialYear)
	ratios := stats.Ratios(joined, inService)

	ratio, err := stats.RatioForYear(ratios, opts.RatioYear)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get cars to chargers ratio: %w", err)
	}

	latest, err := stats.RatioAt(ratios, len(ratios)-1)
	if err == nil {
		logger.Debug(fmt.Sprintf("Ratio series has %d years, latest %d: %.2f", len(ratios), latest.Year, latest.Ratio))
	}

	report := &model.Report{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Clean:     summary,
		Chargers:  installed,
		InService: inService,
		Vehicles:  vehicles,
		Joined:    joined,
		Ratios:    ratios,
		RatioYear: opts.RatioYear,
		Ratio:     map[string]float64{strconv.Itoa(opts.RatioYear): ratio.Ratio},
	}

	return report, cleaned, nil
}

// logSummaries logs what the raw tables look like, failures are not fatal.
func (s *AnalysisService) logSummaries(chargers []*model.ChargerRecord, vehicles []*model.ULEVYearRecord) {
	chargersSummary, err := inspect.Chargers(chargers, s.opts.HeadRows)
	if err != nil {
		logger.Error(fmt.Errorf("failed to summarize chargers: %v", err))
	} else {
		logSummary(chargersSummary)
	}

	vehiclesSummary, err := inspect.Vehicles(vehicles, s.opts.HeadRows)
	if err != nil {
		logger.Error(fmt.Errorf("failed to summarize vehicles: %v", err))
	} else {
		logSummary(vehiclesSummary)
	}
}

func logSummary(summary *model.TableSummary) {
	columns := make(map[string]interface{}, len(summary.Columns))
	for _, c := range summary.Columns {
		columns[c.Name] = map[string]interface{}{"type": c.Type, "missing": c.Missing}
	}

	logger.InfoFields(fmt.Sprintf("Table %s loaded", summary.Name), map[string]interface{}{
		"rows":       summary.Rows,
		"duplicates": summary.Duplicates,
		"columns":    columns,
	})

	if summary.Head != "" {
		logger.Info(summary.Head)
	}
}

// logCleaned logs duplicates left after cleaning and the earliest installed chargers.
func (s *AnalysisService) logCleaned(cleaned []*model.ChargerRecord) {
	summary, err := inspect.CleanedChargers(stats.SortByCreated(cleaned), s.opts.EarliestRows)
	if err != nil {
		logger.Error(fmt.Errorf("failed to summarize cleaned chargers: %v", err))
		return
	}

	logSummary(summary)
}

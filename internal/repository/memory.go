package repository

import (
	"context"
	"sync"

	"github.com/katiamach/ev-charging-analysis/internal/model"
)

// Memory keeps reports and chargers in process memory,
// used when no database is configured.
type Memory struct {
	mu       sync.RWMutex
	reports  []*model.Report
	chargers []*model.ChargerRecord
}

// NewMemory creates new empty Memory repository.
func NewMemory() *Memory {
	return &Memory{}
}

// InsertReport stores analysis report.
func (m *Memory) InsertReport(_ context.Context, report *model.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reports = append(m.reports, report)

	return nil
}

// GetLatestReport gets the most recent analysis report.
func (m *Memory) GetLatestReport(_ context.Context) (*model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.reports) == 0 {
		return nil, ErrNoReports
	}

	latest := m.reports[0]
	for _, r := range m.reports[1:] {
		if !r.CreatedAt.Before(latest.CreatedAt) {
			latest = r
		}
	}

	return latest, nil
}

// ReplaceChargers replaces stored chargers with the given ones.
func (m *Memory) ReplaceChargers(_ context.Context, chargers []*model.ChargerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.chargers = append([]*model.ChargerRecord(nil), chargers...)

	return nil
}

// GetChargersCoordinates gets stored chargers.
func (m *Memory) GetChargersCoordinates(_ context.Context) ([]*model.ChargerRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.chargers) == 0 {
		return nil, ErrNoChargers
	}

	return m.chargers, nil
}

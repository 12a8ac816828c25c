package source

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/katiamach/ev-charging-analysis/internal/config"
	"github.com/katiamach/ev-charging-analysis/internal/logger"
	"github.com/katiamach/ev-charging-analysis/internal/model"
)

// Loader loads both source tables as configured.
type Loader struct {
	cfg    *config.Config
	client *http.Client
}

// NewLoader creates new Loader.
func NewLoader(cfg *config.Config, client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &Loader{
		cfg:    cfg,
		client: client,
	}
}

// LoadChargers downloads the registry and reads charger records from it.
func (l *Loader) LoadChargers(ctx context.Context) ([]*model.ChargerRecord, error) {
	err := FetchRegistry(ctx, l.client, l.cfg.RegistryURL, l.cfg.RegistryFile)
	if err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Registry saved to %s", l.cfg.RegistryFile))

	records, err := ReadRegistryFile(l.cfg.RegistryFile, l.cfg.RegistryEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	return records, nil
}

// LoadVehicles reads ULEV registrations, downloading the spreadsheet first
// when a statistics page is configured.
func (l *Loader) LoadVehicles(ctx context.Context) ([]*model.ULEVYearRecord, error) {
	path := l.cfg.VehiclesFile

	if l.cfg.VehiclesPageURL != "" {
		fileURL, err := DiscoverSpreadsheet(ctx, l.client, l.cfg.VehiclesPageURL, l.cfg.VehiclesLinkPattern)
		if err != nil {
			return nil, fmt.Errorf("failed to discover vehicles spreadsheet: %w", err)
		}

		path, err = Download(ctx, l.client, fileURL, filepath.Dir(l.cfg.RegistryFile))
		if err != nil {
			return nil, err
		}

		logger.Info(fmt.Sprintf("Vehicles spreadsheet downloaded from %s", fileURL))
	}

	return ReadVehicles(path)
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/katiamach/ev-charging-analysis/internal/chart"
	"github.com/katiamach/ev-charging-analysis/internal/config"
	"github.com/katiamach/ev-charging-analysis/internal/logger"
	"github.com/katiamach/ev-charging-analysis/internal/repository"
	"github.com/katiamach/ev-charging-analysis/internal/service"
	"github.com/katiamach/ev-charging-analysis/internal/source"
	"github.com/katiamach/ev-charging-analysis/internal/transport/rest/handler"
)

// chartsDisabled turns chart rendering off when used as CHARTS_DIR.
const chartsDisabled = "off"

// Run runs the analysis once, prints the ratio and serves results when configured.
func Run() error {
	cfg := config.LoadFromEnv()
	logger.SetLevel(cfg.LogLevel)

	repo, closeRepo, err := newRepository(cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	var renderer service.Renderer
	if cfg.ChartsDir != chartsDisabled {
		renderer = chart.NewRenderer(cfg.ChartsDir)
	}

	svc := service.New(repo, source.NewLoader(cfg, nil), renderer, service.Options{
		InServiceStatus: cfg.InServiceStatus,
		PartialYear:     cfg.PartialYear,
		RatioYear:       cfg.RatioYear,
		HeadRows:        5,
		EarliestRows:    100,
	})

	report, err := svc.Run(context.Background())
	if err != nil {
		return fmt.Errorf("failed to run analysis: %w", err)
	}

	ratio, err := json.Marshal(report.Ratio)
	if err != nil {
		return fmt.Errorf("failed to marshal ratio: %w", err)
	}
	fmt.Println(string(ratio))

	if !cfg.Serve {
		return nil
	}

	return serve(cfg, handler.NewAnalysisServer(svc))
}

func newRepository(cfg *config.Config) (service.Repository, func(), error) {
	if cfg.DBConnString == "" {
		logger.Info("DB_CONN_STRING is not set, keeping results in memory")
		return repository.NewMemory(), func() {}, nil
	}

	repo, err := repository.New(cfg.DBConnString, cfg.DBName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create repository: %w", err)
	}

	closeRepo := func() {
		if err := repo.Close(); err != nil {
			logger.Error(err)
		}
	}

	return repo, closeRepo, nil
}

// NewRouter registers analysis routes.
func NewRouter(server *handler.AnalysisServer) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/report", server.GetReportHandler).Methods(http.MethodGet)
	r.HandleFunc("/ratio", server.GetRatioHandler).Methods(http.MethodGet)
	r.HandleFunc("/chargers/nearest", server.GetNearestChargersHandler).Methods(http.MethodGet)
	r.HandleFunc("/analysis", server.RunAnalysisHandler).Methods(http.MethodPost)

	return r
}

func serve(cfg *config.Config, server *handler.AnalysisServer) error {
	logger.Info(fmt.Sprintf("Starting ev charging analysis api at port %s", cfg.Port))

	options := setupCorsOptions(cfg.Origin)
	return http.ListenAndServe(":"+cfg.Port, handlers.CORS(options...)(NewRouter(server)))
}

package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/katiamach/ev-charging-analysis/internal/logger"
	"github.com/katiamach/ev-charging-analysis/internal/model"
	"github.com/katiamach/ev-charging-analysis/internal/service"
	"github.com/katiamach/ev-charging-analysis/internal/stats"
)

//go:generate mockgen -source=handlers.go -destination=mock/mock.go AnalysisService

const (
	defaultNearestLimit = 5
	maxNearestLimit     = 100
)

// AnalysisService provides analysis service methods.
type AnalysisService interface {
	Run(ctx context.Context) (*model.Report, error)
	GetReport(ctx context.Context) (*model.Report, error)
	GetRatio(ctx context.Context, year int) (*model.YearRatio, error)
	GetNearestChargers(ctx context.Context, req *model.NearestRequest) ([]*model.NearbyCharger, error)
}

// AnalysisServer is a server for chargers analysis requests.
type AnalysisServer struct {
	service AnalysisService
}

// NewAnalysisServer creates new AnalysisServer.
func NewAnalysisServer(service AnalysisService) *AnalysisServer {
	return &AnalysisServer{service}
}

// RunAnalysisHandler handles Run request.
func (s *AnalysisServer) RunAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Run(r.Context())
	if err != nil {
		logger.Error(fmt.Errorf("failed to run analysis: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	respond(w, http.StatusOK, report)
}

// GetReportHandler handles GetReport request.
func (s *AnalysisServer) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.GetReport(r.Context())
	if errors.Is(err, service.ErrNoReport) {
		respondErr(w, http.StatusNotFound, service.ErrNoReport)
		return
	}
	if err != nil {
		logger.Error(fmt.Errorf("failed to get report: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	respond(w, http.StatusOK, report)
}

// GetRatioHandler handles GetRatio request.
func (s *AnalysisServer) GetRatioHandler(w http.ResponseWriter, r *http.Request) {
	year, err := validateYearParam(r.URL.Query())
	if err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	ratio, err := s.service.GetRatio(r.Context(), year)
	if errors.Is(err, service.ErrNoReport) || errors.Is(err, stats.ErrYearNotFound) {
		respondErr(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		logger.Error(fmt.Errorf("failed to get ratio: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	respond(w, http.StatusOK, ratio)
}

// GetNearestChargersHandler handles GetNearestChargers request.
func (s *AnalysisServer) GetNearestChargersHandler(w http.ResponseWriter, r *http.Request) {
	req, err := validateNearestParams(r.URL.Query())
	if err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	chargers, err := s.service.GetNearestChargers(r.Context(), req)
	if errors.Is(err, service.ErrNoChargers) {
		respondErr(w, http.StatusNotFound, service.ErrNoChargers)
		return
	}
	if err != nil {
		logger.Error(fmt.Errorf("failed to get nearest chargers: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	respond(w, http.StatusOK, chargers)
}

func validateYearParam(params url.Values) (int, error) {
	yearStr := params.Get("year")
	if yearStr == "" {
		return 0, errors.New("year parameter not provided in query")
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, errors.New("invalid year parameter")
	}

	return year, nil
}

func validateNearestParams(params url.Values) (*model.NearestRequest, error) {
	lat, err := parseCoordinate(params, "lat", 90)
	if err != nil {
		return nil, err
	}

	lon, err := parseCoordinate(params, "lon", 180)
	if err != nil {
		return nil, err
	}

	limit := defaultNearestLimit
	if limitStr := params.Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return nil, errors.New("invalid limit parameter")
		}

		if limit < 1 || limit > maxNearestLimit {
			return nil, fmt.Errorf("limit should be between 1 and %d", maxNearestLimit)
		}
	}

	return &model.NearestRequest{Latitude: lat, Longitude: lon, Limit: limit}, nil
}

func parseCoordinate(params url.Values, name string, bound float64) (float64, error) {
	str := params.Get(name)
	if str == "" {
		return 0, fmt.Errorf("%s parameter not provided in query", name)
	}

	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}

	if v < -bound || v > bound {
		return 0, fmt.Errorf("%s should be between %v and %v", name, -bound, bound)
	}

	return v, nil
}

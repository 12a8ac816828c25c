package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/katiamach/ev-charging-analysis/internal/model"
	"github.com/katiamach/ev-charging-analysis/internal/service"
	"github.com/katiamach/ev-charging-analysis/internal/stats"

	"github.com/tj/assert"

	mock "github.com/katiamach/ev-charging-analysis/internal/transport/rest/handler/mock"
)

var errTest = errors.New("test error")

func TestGetReportHandler(t *testing.T) {
	report := &model.Report{RunID: "run", RatioYear: 2020, Ratio: map[string]float64{"2020": 12.5}}

	cases := []struct {
		name           string
		report         *model.Report
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "service error",
			serviceErr:     errTest,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "no report",
			serviceErr:     service.ErrNoReport,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "ok",
			report:         report,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock.NewMockAnalysisService(ctrl)
			s := NewAnalysisServer(mockService)

			mockService.EXPECT().
				GetReport(gomock.Any()).
				Return(tc.report, tc.serviceErr)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/report", nil)

			s.GetReportHandler(w, r)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tc.expectedStatus, res.StatusCode)

			if tc.serviceErr != nil {
				var resBody errorResponse
				err := json.NewDecoder(res.Body).Decode(&resBody)
				assert.Nil(t, err)
				assert.Equal(t, tc.expectedStatus, resBody.Code)
				assert.Equal(t, tc.serviceErr.Error(), resBody.Message)
				return
			}

			var resBody model.Report
			err := json.NewDecoder(res.Body).Decode(&resBody)
			assert.Nil(t, err)
			assert.Equal(t, 12.5, resBody.Ratio["2020"])
		})
	}
}

func TestGetRatioHandler(t *testing.T) {
	cases := []struct {
		name           string
		query          string
		isMockCalled   bool
		year           int
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "missing year",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid year",
			query:          "?year=twenty",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "year not found",
			query:          "?year=1999",
			isMockCalled:   true,
			year:           1999,
			serviceErr:     fmt.Errorf("%w: %d", stats.ErrYearNotFound, 1999),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "no report",
			query:          "?year=2020",
			isMockCalled:   true,
			year:           2020,
			serviceErr:     service.ErrNoReport,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "service error",
			query:          "?year=2020",
			isMockCalled:   true,
			year:           2020,
			serviceErr:     errTest,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "ok",
			query:          "?year=2020",
			isMockCalled:   true,
			year:           2020,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock.NewMockAnalysisService(ctrl)
			s := NewAnalysisServer(mockService)

			if tc.isMockCalled {
				var ratio *model.YearRatio
				if tc.serviceErr == nil {
					ratio = &model.YearRatio{Year: tc.year, PlugInCumulative: 100, ChargersInService: 4, Ratio: 25}
				}

				mockService.EXPECT().
					GetRatio(gomock.Any(), tc.year).
					Return(ratio, tc.serviceErr)
			}

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/ratio"+tc.query, nil)

			s.GetRatioHandler(w, r)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tc.expectedStatus, res.StatusCode)

			if tc.expectedStatus == http.StatusOK {
				var resBody model.YearRatio
				err := json.NewDecoder(res.Body).Decode(&resBody)
				assert.Nil(t, err)
				assert.Equal(t, 25.0, resBody.Ratio)
			}
		})
	}
}

func TestGetNearestChargersHandler(t *testing.T) {
	cases := []struct {
		name           string
		query          string
		request        *model.NearestRequest
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "missing lat",
			query:          "?lon=-0.1",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "lon out of range",
			query:          "?lat=51.5&lon=200",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid limit",
			query:          "?lat=51.5&lon=-0.1&limit=1000",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no chargers",
			query:          "?lat=51.5&lon=-0.1",
			request:        &model.NearestRequest{Latitude: 51.5, Longitude: -0.1, Limit: defaultNearestLimit},
			serviceErr:     service.ErrNoChargers,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "ok",
			query:          "?lat=51.5&lon=-0.1&limit=2",
			request:        &model.NearestRequest{Latitude: 51.5, Longitude: -0.1, Limit: 2},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock.NewMockAnalysisService(ctrl)
			s := NewAnalysisServer(mockService)

			if tc.request != nil {
				var chargers []*model.NearbyCharger
				if tc.serviceErr == nil {
					chargers = []*model.NearbyCharger{
						{ChargerRecord: &model.ChargerRecord{ID: "a", Latitude: 51.5, Longitude: -0.1}, DistanceKm: 0},
						{ChargerRecord: &model.ChargerRecord{ID: "b", Latitude: 51.6, Longitude: -0.1}, DistanceKm: 11.1},
					}
				}

				mockService.EXPECT().
					GetNearestChargers(gomock.Any(), tc.request).
					Return(chargers, tc.serviceErr)
			}

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/chargers/nearest"+tc.query, nil)

			s.GetNearestChargersHandler(w, r)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tc.expectedStatus, res.StatusCode)

			if tc.expectedStatus == http.StatusOK {
				var resBody []map[string]interface{}
				err := json.NewDecoder(res.Body).Decode(&resBody)
				assert.Nil(t, err)
				assert.Len(t, resBody, 2)
				assert.Equal(t, "a", resBody[0]["chargeDeviceID"])
				assert.Equal(t, 11.1, resBody[1]["distanceKm"])
			}
		})
	}
}

func TestRunAnalysisHandler(t *testing.T) {
	cases := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "service error", serviceErr: errTest, expectedStatus: http.StatusInternalServerError},
		{name: "ok", expectedStatus: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock.NewMockAnalysisService(ctrl)
			s := NewAnalysisServer(mockService)

			var report *model.Report
			if tc.serviceErr == nil {
				report = &model.Report{RunID: "run"}
			}

			mockService.EXPECT().
				Run(gomock.Any()).
				Return(report, tc.serviceErr)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/analysis", nil)

			s.RunAnalysisHandler(w, r)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tc.expectedStatus, res.StatusCode)
		})
	}
}

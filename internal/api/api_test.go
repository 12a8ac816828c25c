package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/handlers"
	"github.com/katiamach/ev-charging-analysis/internal/model"
	"github.com/katiamach/ev-charging-analysis/internal/transport/rest/handler"
	"github.com/tj/assert"

	mock "github.com/katiamach/ev-charging-analysis/internal/transport/rest/handler/mock"
)

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock.NewMockAnalysisService(ctrl)

	mockService.EXPECT().GetReport(gomock.Any()).Return(&model.Report{RunID: "run"}, nil)
	mockService.EXPECT().GetRatio(gomock.Any(), 2020).Return(&model.YearRatio{Year: 2020, Ratio: 3}, nil)
	mockService.EXPECT().Run(gomock.Any()).Return(&model.Report{RunID: "rerun"}, nil)

	router := NewRouter(handler.NewAnalysisServer(mockService))

	cases := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
	}{
		{name: "report", method: http.MethodGet, target: "/report", expectedStatus: http.StatusOK},
		{name: "ratio", method: http.MethodGet, target: "/ratio?year=2020", expectedStatus: http.StatusOK},
		{name: "analysis", method: http.MethodPost, target: "/analysis", expectedStatus: http.StatusOK},
		{name: "wrong method", method: http.MethodGet, target: "/analysis", expectedStatus: http.StatusMethodNotAllowed},
		{name: "unknown route", method: http.MethodGet, target: "/unknown", expectedStatus: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, tc.target, nil)

			router.ServeHTTP(w, r)

			assert.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestCors(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock.NewMockAnalysisService(ctrl)
	mockService.EXPECT().GetReport(gomock.Any()).Return(&model.Report{}, nil)

	h := handlers.CORS(setupCorsOptions("https://example.org")...)(NewRouter(handler.NewAnalysisServer(mockService)))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/report", nil)
	r.Header.Set("Origin", "https://example.org")

	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))
}

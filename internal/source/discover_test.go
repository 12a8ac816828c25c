package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katiamach/ev-charging-analysis/internal/config"
	"github.com/tj/assert"
)

const statisticsPage = `<html><body>
<h1>Vehicle licensing statistics data tables</h1>
<a href="/media/veh0101.ods">VEH0101</a>
<p>Plug-in vehicles <a class="download" href="/media/veh0171.ods">VEH0171</a></p>
</body></html>`

func TestDiscoverSpreadsheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(statisticsPage))
	}))
	defer srv.Close()

	cases := []struct {
		name     string
		pattern  string
		expected string
		err      error
	}{
		{name: "found", pattern: config.DefaultVehiclesLinkRegex, expected: srv.URL + "/media/veh0171.ods"},
		{name: "not found", pattern: `veh9999`, err: ErrSpreadsheetLinkNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			link, err := DiscoverSpreadsheet(context.Background(), srv.Client(), srv.URL+"/statistics", tc.pattern)
			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err))
				return
			}

			assert.Nil(t, err)
			assert.Equal(t, tc.expected, link)
		})
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/media/veh0171.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("content"))
	}))
	defer srv.Close()

	dir := t.TempDir()

	path, err := Download(context.Background(), srv.Client(), srv.URL+"/media/veh0171.csv", dir)
	assert.Nil(t, err)
	assert.Equal(t, filepath.Join(dir, "veh0171.csv"), path)

	content, err := os.ReadFile(path)
	assert.Nil(t, err)
	assert.Equal(t, "content", string(content))

	_, err = Download(context.Background(), srv.Client(), srv.URL+"/media/missing.csv", dir)
	assert.NotNil(t, err)
}

func TestLoader(t *testing.T) {
	vehiclesCSV := strings.Join(vehicleHeader, ",") + "\n2019,100,50,1,2,3,4\n"

	mux := http.NewServeMux()
	mux.HandleFunc("/registry", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(registryCSV))
	})
	mux.HandleFunc("/statistics", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<a href="files/veh0171.csv">VEH0171</a>`)
	})
	mux.HandleFunc("/files/veh0171.csv", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(vehiclesCSV))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	cfg := &config.Config{
		RegistryURL:         srv.URL + "/registry",
		RegistryFile:        filepath.Join(dir, "registry.csv"),
		VehiclesPageURL:     srv.URL + "/statistics",
		VehiclesLinkPattern: `veh0171.*\.csv$`,
	}

	loader := NewLoader(cfg, srv.Client())

	chargers, err := loader.LoadChargers(context.Background())
	assert.Nil(t, err)
	assert.Len(t, chargers, 3)

	vehicles, err := loader.LoadVehicles(context.Background())
	assert.Nil(t, err)
	assert.Len(t, vehicles, 1)
	assert.Equal(t, 100.0, vehicles[0].BatteryElectric)
}

package source

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tj/assert"
)

const registryCSV = "chargeDeviceID,name,latitude,longitude,town,chargeDeviceStatus,dateCreated\n" +
	"a1,Station A,51.5,-0.12,London,In service,2019-05-01 10:00:00\n" +
	"b2,\"Station, B\",55.95,-3.19,Edinburgh,Planned,0000-00-00 00:00:00\n" +
	"c3,Station C,,,Nowhere,In service,2020-02-02 12:00:00\n"

func TestReadRegistry(t *testing.T) {
	records, err := ReadRegistry(strings.NewReader(registryCSV), "")
	assert.Nil(t, err)
	assert.Len(t, records, 3)

	assert.Equal(t, "a1", records[0].ID)
	assert.Equal(t, 51.5, records[0].Latitude)
	assert.Equal(t, -0.12, records[0].Longitude)
	assert.Equal(t, "In service", records[0].Status)
	assert.Equal(t, "2019-05-01 10:00:00", records[0].DateCreated)

	assert.Equal(t, "Planned", records[1].Status)
	assert.Equal(t, "0000-00-00 00:00:00", records[1].DateCreated)

	assert.True(t, math.IsNaN(records[2].Latitude))
	assert.True(t, math.IsNaN(records[2].Longitude))
}

func TestReadRegistryMissingColumn(t *testing.T) {
	data := "chargeDeviceID,latitude,longitude,dateCreated\nx,1,2,2019-01-01\n"

	_, err := ReadRegistry(strings.NewReader(data), "")

	var colErr *ColumnError
	assert.True(t, errors.As(err, &colErr))
	assert.Equal(t, "chargeDeviceStatus", colErr.Column)
}

func TestReadRegistryEmpty(t *testing.T) {
	_, err := ReadRegistry(strings.NewReader(""), "")

	var colErr *ColumnError
	assert.True(t, errors.As(err, &colErr))
}

func TestReadRegistryEncoding(t *testing.T) {
	data := "chargeDeviceID,latitude,longitude,chargeDeviceStatus,dateCreated\r\n" +
		"a1,51.5,-0.12,In service \x96 rapid,2019-05-01 10:00:00\r\n"

	records, err := ReadRegistry(strings.NewReader(data), "windows-1252")
	assert.Nil(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "In service – rapid", records[0].Status)
	assert.Equal(t, "2019-05-01 10:00:00", records[0].DateCreated)

	_, err = ReadRegistry(strings.NewReader(data), "ebcdic")
	assert.True(t, errors.Is(err, ErrUnknownEncoding))
}

func TestFetchRegistry(t *testing.T) {
	cases := []struct {
		name   string
		status int
		isErr  bool
	}{
		{name: "ok", status: http.StatusOK},
		{name: "server error", status: http.StatusBadGateway, isErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(registryCSV))
			}))
			defer srv.Close()

			path := filepath.Join(t.TempDir(), "registry.csv")

			err := FetchRegistry(context.Background(), srv.Client(), srv.URL, path)
			if tc.isErr {
				assert.NotNil(t, err)
				return
			}

			assert.Nil(t, err)

			content, err := os.ReadFile(path)
			assert.Nil(t, err)
			assert.Equal(t, registryCSV, string(content))

			records, err := ReadRegistryFile(path, "")
			assert.Nil(t, err)
			assert.Len(t, records, 3)
		})
	}
}

func TestReadRegistryByteOrderMark(t *testing.T) {
	records, err := ReadRegistry(strings.NewReader("\ufeff"+registryCSV), "utf-8")
	assert.Nil(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, "a1", records[0].ID)
}

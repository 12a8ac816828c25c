// Package source downloads and parses the charge point registry and ULEV registrations tables.
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/katiamach/ev-charging-analysis/internal/model"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Registry columns that are read, the rest of the file is ignored.
const (
	colChargerID   = "chargeDeviceID"
	colLatitude    = "latitude"
	colLongitude   = "longitude"
	colStatus      = "chargeDeviceStatus"
	colDateCreated = "dateCreated"
)

var registryColumns = []string{colChargerID, colLatitude, colLongitude, colStatus, colDateCreated}

var ErrUnknownEncoding = errors.New("unknown registry encoding")

// ColumnError reports a missing or misplaced column.
type ColumnError struct {
	Table  string
	Column string
	Index  int
}

func (e *ColumnError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: expected column %q at position %d", e.Table, e.Column, e.Index)
	}
	return fmt.Sprintf("%s: column %q not found", e.Table, e.Column)
}

// FetchRegistry downloads registry file and writes response body to path as is.
func FetchRegistry(ctx context.Context, client *http.Client, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create registry request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to get registry from source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to get registry from source: unexpected status %s", resp.Status)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create registry file: %w", err)
	}
	defer file.Close()

	_, err = io.Copy(file, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	return nil
}

// ReadRegistryFile reads registry records from the file at path.
func ReadRegistryFile(path, enc string) ([]*model.ChargerRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry file: %w", err)
	}
	defer file.Close()

	return ReadRegistry(file, enc)
}

// ReadRegistry parses registry CSV keeping only id, coordinates, status and creation date.
func ReadRegistry(r io.Reader, enc string) ([]*model.ChargerRecord, error) {
	decoder, err := lookupEncoding(enc)
	if err != nil {
		return nil, err
	}
	if decoder != nil {
		r = transform.NewReader(r, decoder.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ColumnError{Table: "registry", Column: colChargerID, Index: -1}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry header: %w", err)
	}

	idx, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	var records []*model.ChargerRecord
	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read registry line: %w", err)
		}

		records = append(records, parseChargerRecord(line, idx))
	}

	return records, nil
}

func columnIndexes(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(registryColumns))
	for i, h := range header {
		// the first header cell may carry a byte order mark
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	for _, col := range registryColumns {
		if _, ok := idx[col]; !ok {
			return nil, &ColumnError{Table: "registry", Column: col, Index: -1}
		}
	}

	return idx, nil
}

// parseChargerRecord builds a record from a CSV line, short lines give empty values.
func parseChargerRecord(line []string, idx map[string]int) *model.ChargerRecord {
	field := func(col string) string {
		i := idx[col]
		if i >= len(line) {
			return ""
		}
		return strings.TrimSpace(strings.TrimSuffix(line[i], "\r"))
	}

	return &model.ChargerRecord{
		ID:          field(colChargerID),
		Latitude:    parseCoordinate(field(colLatitude)),
		Longitude:   parseCoordinate(field(colLongitude)),
		Status:      field(colStatus),
		DateCreated: field(colDateCreated),
	}
}

func parseCoordinate(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "iso-8859-15", "latin9":
		return charmap.ISO8859_15, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
}

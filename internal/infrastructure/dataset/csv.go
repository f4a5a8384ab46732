package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fitlens/backend/internal/domain"
)

// Dataset is a labeled training set: one feature row per sample plus one label column per target
type Dataset struct {
	Features []string
	Rows     [][]string
	Targets  map[string][]string
}

// Len returns the number of samples
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// ReadFile reads a labeled CSV from disk
func ReadFile(path string, features, targets []string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, features, targets)
}

// Read parses a CSV whose header names every feature and target column (case-insensitive).
// Values are normalised; rows with a blank target are rejected.
func Read(r io.Reader, features, targets []string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty csv", domain.ErrDatasetInvalid)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDatasetInvalid, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}

	lookup := func(names []string) ([]int, error) {
		cols := make([]int, len(names))
		for i, name := range names {
			col, ok := index[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("%w: csv must contain a %q header column", domain.ErrDatasetInvalid, name)
			}
			cols[i] = col
		}
		return cols, nil
	}

	featureCols, err := lookup(features)
	if err != nil {
		return nil, err
	}
	targetCols, err := lookup(targets)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Features: append([]string(nil), features...),
		Targets:  make(map[string][]string, len(targets)),
	}

	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrDatasetInvalid, line, err)
		}
		if isBlank(record) {
			continue
		}

		row := make([]string, len(featureCols))
		for i, col := range featureCols {
			if col >= len(record) {
				return nil, fmt.Errorf("%w: line %d: missing %q", domain.ErrDatasetInvalid, line, features[i])
			}
			row[i] = domain.NormalizeValue(record[col])
		}

		for i, col := range targetCols {
			if col >= len(record) || strings.TrimSpace(record[col]) == "" {
				return nil, fmt.Errorf("%w: line %d: missing label %q", domain.ErrDatasetInvalid, line, targets[i])
			}
			ds.Targets[targets[i]] = append(ds.Targets[targets[i]], domain.NormalizeValue(record[col]))
		}
		ds.Rows = append(ds.Rows, row)
	}

	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows", domain.ErrDatasetInvalid)
	}
	return ds, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

package forest

import (
	"errors"
	"fmt"
	"sort"
)

// Unknown-value policies for OneHotEncoder.Transform
const (
	HandleUnknownIgnore = "ignore" // unseen values encode to all zeros
	HandleUnknownError  = "error"
)

// ErrUnknownValue is returned by Transform when a value was not seen during Fit
// and the encoder does not ignore unknowns
var ErrUnknownValue = errors.New("value not seen during training")

// OneHotEncoder expands categorical columns into one binary column per seen value
type OneHotEncoder struct {
	Features      []string   `json:"features"`
	Categories    [][]string `json:"categories"`
	HandleUnknown string     `json:"handleUnknown"`
}

// NewOneHotEncoder creates an unfitted encoder for the given columns
func NewOneHotEncoder(features []string, handleUnknown string) *OneHotEncoder {
	if handleUnknown != HandleUnknownError {
		handleUnknown = HandleUnknownIgnore
	}
	return &OneHotEncoder{
		Features:      append([]string(nil), features...),
		HandleUnknown: handleUnknown,
	}
}

// Fit records the sorted set of values seen in each column
func (e *OneHotEncoder) Fit(rows [][]string) error {
	seen := make([]map[string]struct{}, len(e.Features))
	for i := range seen {
		seen[i] = make(map[string]struct{})
	}

	for n, row := range rows {
		if len(row) != len(e.Features) {
			return fmt.Errorf("row %d has %d columns, want %d", n, len(row), len(e.Features))
		}
		for i, v := range row {
			seen[i][v] = struct{}{}
		}
	}

	e.Categories = make([][]string, len(e.Features))
	for i, set := range seen {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		e.Categories[i] = values
	}
	return nil
}

// Width is the number of encoded columns
func (e *OneHotEncoder) Width() int {
	w := 0
	for _, c := range e.Categories {
		w += len(c)
	}
	return w
}

// Transform encodes one row
func (e *OneHotEncoder) Transform(row []string) ([]bool, error) {
	if len(row) != len(e.Features) {
		return nil, fmt.Errorf("row has %d columns, want %d", len(row), len(e.Features))
	}

	out := make([]bool, e.Width())
	offset := 0
	for i, v := range row {
		idx := sort.SearchStrings(e.Categories[i], v)
		if idx < len(e.Categories[i]) && e.Categories[i][idx] == v {
			out[offset+idx] = true
		} else if e.HandleUnknown == HandleUnknownError {
			return nil, fmt.Errorf("%w: %s=%q", ErrUnknownValue, e.Features[i], v)
		}
		offset += len(e.Categories[i])
	}
	return out, nil
}

// Vocabulary returns the values seen for a feature, or nil for an unknown feature
func (e *OneHotEncoder) Vocabulary(feature string) []string {
	for i, f := range e.Features {
		if f == feature {
			return append([]string(nil), e.Categories[i]...)
		}
	}
	return nil
}

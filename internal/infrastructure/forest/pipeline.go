package forest

import (
	"errors"
	"fmt"
	"time"
)

// ArtifactVersion is bumped when the serialized pipeline layout changes
const ArtifactVersion = 1

// Pipeline is a fitted one-hot encoder followed by a random forest.
// It is the unit persisted per clothing category.
type Pipeline struct {
	Version   int            `json:"version"`
	Target    string         `json:"target"`
	Samples   int            `json:"samples"`
	TrainedAt time.Time      `json:"trainedAt"`
	Encoder   *OneHotEncoder `json:"encoder"`
	Forest    *RandomForest  `json:"forest"`
}

// Fit encodes rows (columns ordered as features) and trains a forest on labels
func Fit(target string, features []string, rows [][]string, labels []string, cfg Config) (*Pipeline, error) {
	if len(rows) == 0 {
		return nil, errors.New("no training rows")
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("got %d rows and %d labels", len(rows), len(labels))
	}

	enc := NewOneHotEncoder(features, HandleUnknownIgnore)
	if err := enc.Fit(rows); err != nil {
		return nil, fmt.Errorf("fit encoder: %w", err)
	}

	x := make([][]bool, len(rows))
	for i, row := range rows {
		encoded, err := enc.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("encode row %d: %w", i, err)
		}
		x[i] = encoded
	}

	rf, err := Train(x, labels, cfg)
	if err != nil {
		return nil, fmt.Errorf("train forest: %w", err)
	}

	return &Pipeline{
		Version:   ArtifactVersion,
		Target:    target,
		Samples:   len(rows),
		TrainedAt: time.Now().UTC(),
		Encoder:   enc,
		Forest:    rf,
	}, nil
}

// PredictRow predicts the label for a row ordered as the encoder's features
func (p *Pipeline) PredictRow(row []string) (string, error) {
	if p == nil || p.Encoder == nil || p.Forest == nil {
		return "", errors.New("pipeline not fitted")
	}
	x, err := p.Encoder.Transform(row)
	if err != nil {
		return "", err
	}
	return p.Forest.Predict(x), nil
}

// Predict predicts the label for a row keyed by feature name. Missing keys are empty values.
func (p *Pipeline) Predict(row map[string]string) (string, error) {
	if p == nil || p.Encoder == nil {
		return "", errors.New("pipeline not fitted")
	}
	ordered := make([]string, len(p.Encoder.Features))
	for i, f := range p.Encoder.Features {
		ordered[i] = row[f]
	}
	return p.PredictRow(ordered)
}

// Classes returns the labels the forest was trained on
func (p *Pipeline) Classes() []string {
	if p == nil || p.Forest == nil {
		return nil
	}
	return append([]string(nil), p.Forest.Classes...)
}

// Vocabulary returns the training values of one input feature
func (p *Pipeline) Vocabulary(feature string) []string {
	if p == nil || p.Encoder == nil {
		return nil
	}
	return p.Encoder.Vocabulary(feature)
}

// Score returns the fraction of rows predicted correctly
func (p *Pipeline) Score(rows [][]string, labels []string) (float64, error) {
	if len(rows) != len(labels) {
		return 0, fmt.Errorf("got %d rows and %d labels", len(rows), len(labels))
	}
	if len(rows) == 0 {
		return 0, nil
	}
	correct := 0
	for i, row := range rows {
		got, err := p.PredictRow(row)
		if err != nil {
			return 0, err
		}
		if got == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(rows)), nil
}

package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/fitlens/backend/internal/domain"
)

// ItemPredictor maps extracted attributes to a concrete item with one classifier per category
type ItemPredictor struct {
	models map[domain.Category]domain.ItemClassifier
}

// NewItemPredictor creates a predictor. Categories without a model report ErrModelUnavailable.
func NewItemPredictor(models map[domain.Category]domain.ItemClassifier) *ItemPredictor {
	m := make(map[domain.Category]domain.ItemClassifier, len(models))
	for c, model := range models {
		if model != nil {
			m[c] = model
		}
	}
	return &ItemPredictor{models: m}
}

// Available reports whether a model is loaded for the category
func (p *ItemPredictor) Available(category domain.Category) bool {
	_, ok := p.models[category]
	return ok
}

// Items returns the labels the category's model can predict
func (p *ItemPredictor) Items(category domain.Category) []string {
	model, ok := p.models[category]
	if !ok {
		return nil
	}
	return model.Classes()
}

// Predict returns the most likely item for the category.
// A value outside the model's trained vocabulary fails explicitly instead of being encoded as unknown.
func (p *ItemPredictor) Predict(ctx context.Context, category domain.Category, attrs domain.Attributes) (string, error) {
	if _, err := domain.ParseCategory(string(category)); err != nil {
		return "", err
	}
	model, ok := p.models[category]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrModelUnavailable, category)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	row := attrs.Normalize().Row()
	for _, feature := range domain.FeatureColumns {
		if !contains(model.Vocabulary(feature), row[feature]) {
			return "", fmt.Errorf("%w: %s=%q was not seen when training the %s model",
				domain.ErrPredictionFailed, feature, row[feature], category)
		}
	}

	item, err := predictSafely(model, row)
	if err != nil {
		log.Printf("[PREDICT] %s model error: %v", category, err)
		return "", fmt.Errorf("%w: %v", domain.ErrPredictionFailed, err)
	}
	if !contains(model.Classes(), item) {
		return "", fmt.Errorf("%w: %s model returned unknown label %q", domain.ErrPredictionFailed, category, item)
	}
	return item, nil
}

// predictSafely converts a panicking model into an error
func predictSafely(model domain.ItemClassifier, row map[string]string) (item string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during inference: %v", r)
		}
	}()
	return model.Predict(row)
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

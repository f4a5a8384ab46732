package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Get returns ErrCacheMiss for absent or expired keys.
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// SchemaField describes one string field of a structured LLM answer
type SchemaField struct {
	Name        string
	Description string
	Enum        []string
}

// GenerationRequest is a single text-generation call.
// When Fields is non-empty the answer must be a JSON object with exactly those fields.
type GenerationRequest struct {
	Instruction string
	Prompt      string
	Fields      []SchemaField
}

// TextGenerator defines the interface for the hosted LLM service
type TextGenerator interface {
	GenerateText(ctx context.Context, req GenerationRequest) (string, error)
}

// ItemClassifier is a trained per-category model
type ItemClassifier interface {
	// Predict returns the most likely item label for one input row keyed by feature name
	Predict(row map[string]string) (string, error)
	// Classes returns the item labels the model was trained on
	Classes() []string
	// Vocabulary returns the values seen for a feature during training
	Vocabulary(feature string) []string
}

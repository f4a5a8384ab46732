package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidCategory is returned when the clothing category is not one of top/bottom/outer
	ErrInvalidCategory = errors.New("unknown clothing category")

	// ErrExtractorUnavailable is returned when no LLM client is configured for attribute extraction
	ErrExtractorUnavailable = errors.New("attribute extractor not configured")

	// ErrExtractionFailed is returned when the LLM call fails or its answer does not match the schema
	ErrExtractionFailed = errors.New("attribute extraction failed")

	// ErrModelUnavailable is returned when no classifier is loaded for the category
	ErrModelUnavailable = errors.New("prediction unavailable: model not loaded")

	// ErrPredictionFailed is returned when the classifier cannot predict for the given attributes
	ErrPredictionFailed = errors.New("prediction failed")

	// ErrLLMFailure is returned when the text generation service request fails
	ErrLLMFailure = errors.New("LLM request failed")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrDatasetInvalid is returned when the training CSV is malformed
	ErrDatasetInvalid = errors.New("invalid training dataset")

	// ErrArtifactNotFound is returned when a model artifact file does not exist
	ErrArtifactNotFound = errors.New("model artifact not found")
)

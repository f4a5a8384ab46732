package usecase

import (
	"context"
	"time"

	"github.com/fitlens/backend/internal/domain"
)

// MockTextGenerator is a mock implementation of domain.TextGenerator
type MockTextGenerator struct {
	response string
	err      error
	calls    int
	lastReq  domain.GenerationRequest
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, req domain.GenerationRequest) (string, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// MockClassifier is a mock implementation of domain.ItemClassifier
type MockClassifier struct {
	item       string
	err        error
	panicWith  interface{}
	classes    []string
	vocabulary map[string][]string
	lastRow    map[string]string
}

func NewMockClassifier(item string, classes ...string) *MockClassifier {
	return &MockClassifier{
		item:    item,
		classes: classes,
		vocabulary: map[string][]string{
			domain.AttrGender:    domain.Genders,
			domain.AttrStyle:     domain.Styles,
			domain.AttrColor:     domain.Colors,
			domain.AttrPriceTier: domain.PriceTiers,
		},
	}
}

func (m *MockClassifier) Predict(row map[string]string) (string, error) {
	m.lastRow = row
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	if m.err != nil {
		return "", m.err
	}
	return m.item, nil
}

func (m *MockClassifier) Classes() []string { return m.classes }

func (m *MockClassifier) Vocabulary(feature string) []string { return m.vocabulary[feature] }

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string]interface{}
	setError  error
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string]interface{})}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}


package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/fitlens/backend/internal/domain"
	"github.com/fitlens/backend/internal/infrastructure/coupang"
	"github.com/fitlens/backend/internal/infrastructure/musinsa"
)

// RecommendationService chains extraction, prediction and link building for one request
type RecommendationService struct {
	extractor *AttributeExtractor
	predictor *ItemPredictor
	refiner   *QueryRefiner
}

// NewRecommendationService creates a new recommendation service with dependencies
func NewRecommendationService(extractor *AttributeExtractor, predictor *ItemPredictor, refiner *QueryRefiner) *RecommendationService {
	return &RecommendationService{
		extractor: extractor,
		predictor: predictor,
		refiner:   refiner,
	}
}

// CategoryInfo describes one category for clients
type CategoryInfo struct {
	Category       domain.Category `json:"category"`
	ModelAvailable bool            `json:"modelAvailable"`
	Items          []ItemInfo      `json:"items"`
}

// ItemInfo is an item label with its display name
type ItemInfo struct {
	Item  string `json:"item"`
	Label string `json:"label"`
}

// Categories lists every category with its model availability and vocabulary
func (s *RecommendationService) Categories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		info := CategoryInfo{Category: c, ModelAvailable: s.predictor.Available(c), Items: []ItemInfo{}}
		for _, item := range s.predictor.Items(c) {
			info.Items = append(info.Items, ItemInfo{Item: item, Label: musinsa.ItemName(item)})
		}
		out = append(out, info)
	}
	return out
}

// ExtractorAvailable reports whether recommendations can be served at all
func (s *RecommendationService) ExtractorAvailable() bool {
	return s.extractor.Available()
}

// Recommend extracts attributes from text, predicts an item and builds the search links.
// Flow: validate -> extract -> predict -> build links
//
// A missing model is not an error: the result carries PredictionUnavailable and links without an item.
// A failed prediction returns the partial result together with ErrPredictionFailed.
func (s *RecommendationService) Recommend(ctx context.Context, request *domain.RecommendRequest) (*domain.Recommendation, error) {
	if request == nil || domain.NormalizeText(request.Text) == "" {
		return nil, domain.ErrInvalidRequest
	}
	category, err := domain.ParseCategory(domain.NormalizeValue(request.Category))
	if err != nil {
		return nil, err
	}

	attrs, err := s.extractor.Extract(ctx, request.Text)
	if err != nil {
		return nil, err
	}

	rec := &domain.Recommendation{
		Category:   category,
		Attributes: *attrs,
		Price:      musinsa.ResolvePrice(attrs.PriceTier),
	}

	item, err := s.predictor.Predict(ctx, category, *attrs)
	switch {
	case err == nil:
		rec.Prediction = domain.Prediction{Status: domain.PredictionOK, Item: item, Label: musinsa.ItemName(item)}
	case errors.Is(err, domain.ErrModelUnavailable):
		log.Printf("[PREDICT] No model for %s, building link without item", category)
		rec.Prediction = domain.Prediction{Status: domain.PredictionUnavailable, Reason: err.Error()}
	default:
		rec.Prediction = domain.Prediction{Status: domain.PredictionFailed, Reason: err.Error()}
		return rec, err
	}

	q := musinsa.QueryFrom(category, rec.Prediction.Item, rec.Attributes)
	rec.SearchURL = musinsa.BuildSearchURL(q)
	rec.CategoryURL = musinsa.BuildCategoryURL(q)
	return rec, nil
}

// BuildLinks builds links from explicit attributes without calling the LLM or a classifier
func (s *RecommendationService) BuildLinks(request *domain.SearchLinkRequest) (*domain.Recommendation, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}
	category, err := domain.ParseCategory(domain.NormalizeValue(request.Category))
	if err != nil {
		return nil, err
	}

	attrs := domain.Attributes{
		Gender:    request.Gender,
		Color:     request.Color,
		Style:     request.Style,
		PriceTier: request.PriceTier,
	}.Normalize()
	item := domain.NormalizeValue(request.Item)

	rec := &domain.Recommendation{
		Category:   category,
		Attributes: attrs,
		Price:      musinsa.ResolvePrice(attrs.PriceTier),
		Prediction: domain.Prediction{Status: domain.PredictionOK, Item: item, Label: musinsa.ItemName(item)},
	}
	if item == "" {
		rec.Prediction = domain.Prediction{Status: domain.PredictionUnavailable, Reason: "no item given"}
	}

	q := musinsa.QueryFrom(category, item, attrs)
	rec.SearchURL = musinsa.BuildSearchURL(q)
	rec.CategoryURL = musinsa.BuildCategoryURL(q)
	return rec, nil
}

// RefinedSearch is a refined query with its secondary-site link
type RefinedSearch struct {
	domain.RefineResult
	SearchURL string `json:"searchUrl"`
}

// RefineSearch cleans a product name and builds the secondary-site link. It never fails.
func (s *RecommendationService) RefineSearch(ctx context.Context, productName string) RefinedSearch {
	result := s.refiner.Refine(ctx, productName)
	return RefinedSearch{
		RefineResult: result,
		SearchURL:    coupang.BuildSearchURL(result.Query),
	}
}


package usecase

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/fitlens/backend/internal/domain"
	"github.com/fitlens/backend/internal/infrastructure/coupang"
	"github.com/fitlens/backend/internal/infrastructure/musinsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const femaleCasualBlackJSON = `{"gender":"female","color":"black","style":"casual","price_tier":"50_100"}`

func newTestService(llm domain.TextGenerator, models map[domain.Category]domain.ItemClassifier) *RecommendationService {
	return NewRecommendationService(
		NewAttributeExtractor(llm),
		NewItemPredictor(models),
		NewQueryRefiner(llm, NewMockCacheRepository(), QueryRefinerConfig{}),
	)
}

func TestRecommend_EndToEnd(t *testing.T) {
	service := newTestService(
		&MockTextGenerator{response: femaleCasualBlackJSON},
		map[domain.Category]domain.ItemClassifier{
			domain.CategoryTop: NewMockClassifier("hoodie", "hoodie", "tshirt", "shirt"),
		},
	)

	rec, err := service.Recommend(context.Background(), &domain.RecommendRequest{
		Text:     "여자 캐주얼 블랙 8만원대",
		Category: "top",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryTop, rec.Category)
	assert.Equal(t, femaleCasualBlack, rec.Attributes)
	assert.Equal(t, domain.PredictionOK, rec.Prediction.Status)
	assert.Equal(t, "hoodie", rec.Prediction.Item)
	assert.Equal(t, "후드 티셔츠", rec.Prediction.Label)
	assert.Equal(t, "50000~100000", rec.Price.Label)

	assert.True(t, strings.HasPrefix(rec.SearchURL, musinsa.SearchBaseURL))
	for _, want := range []string{"gender=F", "gf=F", "price=50000~100000", "color=BLACK"} {
		assert.Contains(t, rec.SearchURL, want)
	}
	u, err := url.Parse(rec.SearchURL)
	require.NoError(t, err)
	assert.Equal(t, "후드 티셔츠 블랙 casual", u.Query().Get("keyword"))
	assert.True(t, strings.HasPrefix(rec.CategoryURL, musinsa.CategoryBaseURL+"/001?"))
}

func TestRecommend_ModelMissingStillBuildsLink(t *testing.T) {
	service := newTestService(&MockTextGenerator{response: femaleCasualBlackJSON}, nil)

	rec, err := service.Recommend(context.Background(), &domain.RecommendRequest{Text: "여자 블랙", Category: "outer"})

	require.NoError(t, err)
	assert.Equal(t, domain.PredictionUnavailable, rec.Prediction.Status)
	assert.Empty(t, rec.Prediction.Item)
	u, err := url.Parse(rec.SearchURL)
	require.NoError(t, err)
	assert.Equal(t, "블랙 casual", u.Query().Get("keyword"))
	assert.Equal(t, "002", u.Query().Get("category"))
}

func TestRecommend_PredictionFailed(t *testing.T) {
	llm := &MockTextGenerator{response: `{"gender":"female","color":"mint","style":"casual","price_tier":"50_100"}`}
	service := newTestService(llm, map[domain.Category]domain.ItemClassifier{
		domain.CategoryTop: NewMockClassifier("hoodie", "hoodie"),
	})

	rec, err := service.Recommend(context.Background(), &domain.RecommendRequest{Text: "민트색 후드", Category: "top"})

	assert.ErrorIs(t, err, domain.ErrPredictionFailed)
	require.NotNil(t, rec)
	assert.Equal(t, domain.PredictionFailed, rec.Prediction.Status)
	assert.Empty(t, rec.SearchURL)
	assert.Equal(t, "mint", rec.Attributes.Color)
}

func TestRecommend_RequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		llm     domain.TextGenerator
		request *domain.RecommendRequest
		wantErr error
	}{
		{"nil request", &MockTextGenerator{}, nil, domain.ErrInvalidRequest},
		{"blank text", &MockTextGenerator{}, &domain.RecommendRequest{Text: "  ", Category: "top"}, domain.ErrInvalidRequest},
		{"bad category", &MockTextGenerator{}, &domain.RecommendRequest{Text: "hoodie", Category: "shoes"}, domain.ErrInvalidCategory},
		{"no llm", nil, &domain.RecommendRequest{Text: "hoodie", Category: "top"}, domain.ErrExtractorUnavailable},
		{"bad llm answer", &MockTextGenerator{response: "nope"}, &domain.RecommendRequest{Text: "hoodie", Category: "top"}, domain.ErrExtractionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(tt.llm, nil)

			rec, err := service.Recommend(context.Background(), tt.request)

			assert.Nil(t, rec)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildLinks(t *testing.T) {
	service := newTestService(nil, nil)

	rec, err := service.BuildLinks(&domain.SearchLinkRequest{
		Category: "Bottom", Item: "Jeans", Gender: "male", Style: "street", Color: "blue", PriceTier: "over_300",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryBottom, rec.Category)
	assert.Equal(t, "jeans", rec.Prediction.Item)
	assert.True(t, rec.Price.OpenEnded)
	assert.Contains(t, rec.SearchURL, "category=003")
	assert.Contains(t, rec.SearchURL, "price=300000~")

	_, err = service.BuildLinks(&domain.SearchLinkRequest{Category: "hat"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestRefineSearch(t *testing.T) {
	t.Run("without llm uses original text", func(t *testing.T) {
		service := newTestService(nil, nil)

		result := service.RefineSearch(context.Background(), "무신사 스탠다드 릴렉스 핏 후디")

		assert.Equal(t, domain.RefineFallback, result.Status)
		assert.Equal(t, coupang.BuildSearchURL("무신사 스탠다드 릴렉스 핏 후디"), result.SearchURL)
	})

	t.Run("with llm uses refined query", func(t *testing.T) {
		service := newTestService(&MockTextGenerator{response: "무신사 스탠다드 후디"}, nil)

		result := service.RefineSearch(context.Background(), "[단독] 무신사 스탠다드 릴렉스 핏 후디 XL")

		assert.Equal(t, domain.RefineOK, result.Status)
		assert.Equal(t, coupang.SearchBaseURL+"?q=%EB%AC%B4%EC%8B%A0%EC%82%AC+%EC%8A%A4%ED%83%A0%EB%8B%A4%EB%93%9C+%ED%9B%84%EB%94%94&channel=user&component=", result.SearchURL)
	})
}

func TestCategories(t *testing.T) {
	service := newTestService(nil, map[domain.Category]domain.ItemClassifier{
		domain.CategoryTop: NewMockClassifier("hoodie", "hoodie", "tshirt"),
	})

	infos := service.Categories()

	require.Len(t, infos, 3)
	assert.Equal(t, domain.CategoryTop, infos[0].Category)
	assert.True(t, infos[0].ModelAvailable)
	assert.Equal(t, []ItemInfo{{"hoodie", "후드 티셔츠"}, {"tshirt", "티셔츠"}}, infos[0].Items)
	assert.False(t, infos[1].ModelAvailable)
	assert.Empty(t, infos[1].Items)
	assert.False(t, service.ExtractorAvailable())
}

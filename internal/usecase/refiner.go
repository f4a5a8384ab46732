package usecase

import (
	"context"
	"log"
	"time"

	"github.com/fitlens/backend/internal/domain"
)

const refineInstruction = `You turn messy shopping-mall product titles into short search queries.
Keep brand, product line and model names. Drop sizes, prices, shipping notes, promotion words and emoji.
Answer with the query only, on one line, no quotes and no explanation.`

// QueryRefinerConfig holds configuration for the query refiner
type QueryRefinerConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// QueryRefiner rewrites a product name into a terse search query. It never fails:
// without an LLM, or when the call fails, the original text is returned unchanged.
type QueryRefiner struct {
	llm          domain.TextGenerator
	cache        domain.CacheRepository
	preprocessor *QueryPreprocessor
	cacheTTL     time.Duration
}

// NewQueryRefiner creates a refiner. llm and cache may both be nil.
func NewQueryRefiner(llm domain.TextGenerator, cache domain.CacheRepository, config QueryRefinerConfig) *QueryRefiner {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &QueryRefiner{
		llm:          llm,
		cache:        cache,
		preprocessor: NewQueryPreprocessor(config.EnableDebugLogging),
		cacheTTL:     cacheTTL,
	}
}

// Available reports whether an LLM client is configured
func (r *QueryRefiner) Available() bool {
	return r.llm != nil
}

// Refine returns the cleaned query, or the original input tagged RefineFallback.
// Flow: check cache -> call LLM -> clean answer -> cache -> return
func (r *QueryRefiner) Refine(ctx context.Context, productName string) domain.RefineResult {
	fallback := func(reason string) domain.RefineResult {
		return domain.RefineResult{
			Original: productName,
			Query:    productName,
			Status:   domain.RefineFallback,
			Reason:   reason,
		}
	}

	if r.llm == nil {
		return fallback("refiner not configured")
	}
	if domain.NormalizeText(productName) == "" {
		return fallback("empty product name")
	}

	cacheKey := r.preprocessor.CacheKey(productName)
	if query, ok := r.getFromCache(ctx, cacheKey); ok {
		return domain.RefineResult{Original: productName, Query: query, Status: domain.RefineOK, Cached: true}
	}

	answer, err := r.llm.GenerateText(ctx, domain.GenerationRequest{
		Instruction: refineInstruction,
		Prompt:      domain.NormalizeText(productName),
	})
	if err != nil {
		log.Printf("[REFINE] LLM call failed, using original: %v", err)
		return fallback(err.Error())
	}

	query := r.preprocessor.CleanAnswer(answer)
	if query == "" {
		log.Printf("[REFINE] Empty answer for %q, using original", productName)
		return fallback("empty answer")
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey, query, r.cacheTTL); err != nil {
			log.Printf("[REFINE] Cache set failed: %v", err)
		}
	}

	return domain.RefineResult{Original: productName, Query: query, Status: domain.RefineOK}
}

func (r *QueryRefiner) getFromCache(ctx context.Context, key string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	value, err := r.cache.Get(ctx, key)
	if err != nil {
		return "", false
	}
	query, ok := value.(string)
	return query, ok && query != ""
}

package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/fitlens/backend/internal/domain"
	"github.com/fitlens/backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommendations *usecase.RecommendationService
}

// NewHandler creates a new HTTP handler
func NewHandler(recommendations *usecase.RecommendationService) *Handler {
	return &Handler{recommendations: recommendations}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "healthy",
		"service": "fitlens-backend",
		"version": "1.0.0",
	}
	if h.recommendations != nil {
		response["extractor"] = h.recommendations.ExtractorAvailable()
	}
	c.JSON(http.StatusOK, response)
}

// Index renders the request form
func (h *Handler) Index(c *gin.Context) {
	var categories []usecase.CategoryInfo
	if h.recommendations != nil {
		categories = h.recommendations.Categories()
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Categories":         categories,
		"ExtractorAvailable": h.recommendations != nil && h.recommendations.ExtractorAvailable(),
	})
}

// Categories lists categories, their item vocabularies and model availability
func (h *Handler) Categories(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": h.recommendations.Categories()})
}

// Recommend handles free-text recommendation requests
func (h *Handler) Recommend(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req domain.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	rec, err := h.recommendations.Recommend(c.Request.Context(), &req)
	if err != nil {
		status := statusFor(err)
		log.Printf("[HTTP] %s recommendation failed (%d): %v", requestID(c), status, err)
		body := gin.H{"error": err.Error()}
		if rec != nil {
			body["recommendation"] = rec
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// SearchLinks builds links from explicit attributes without calling the LLM
func (h *Handler) SearchLinks(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req domain.SearchLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	rec, err := h.recommendations.BuildLinks(&req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Refine cleans a product name into a search query and returns the secondary-site link
func (h *Handler) Refine(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req domain.RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.recommendations.RefineSearch(c.Request.Context(), req.ProductName))
}

// ready writes 503 when the handler was built without a service
func (h *Handler) ready(c *gin.Context) bool {
	if h.recommendations == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Recommendation service not configured",
		})
		return false
	}
	return true
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrExtractorUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrExtractionFailed), errors.Is(err, domain.ErrLLMFailure):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrPredictionFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

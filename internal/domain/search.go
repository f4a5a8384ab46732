package domain

// RecommendRequest is the inbound recommendation request
type RecommendRequest struct {
	Text     string `json:"text" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// SearchLinkRequest builds a link from explicit attributes without calling the LLM
type SearchLinkRequest struct {
	Category  string `json:"category" binding:"required"`
	Item      string `json:"item"`
	Gender    string `json:"gender"`
	Style     string `json:"style"`
	Color     string `json:"color"`
	PriceTier string `json:"price_tier"`
}

// RefineRequest carries a product name to be cleaned into a search query
type RefineRequest struct {
	ProductName string `json:"product_name" binding:"required"`
}

// PredictionStatus tags the outcome of an item prediction
type PredictionStatus string

const (
	PredictionOK          PredictionStatus = "ok"
	PredictionUnavailable PredictionStatus = "unavailable"
	PredictionFailed      PredictionStatus = "failed"
)

// Prediction is the item predictor outcome for one category
type Prediction struct {
	Status PredictionStatus `json:"status"`
	Item   string           `json:"item,omitempty"`
	Label  string           `json:"label,omitempty"` // localized display name
	Reason string           `json:"reason,omitempty"`
}

// Recommendation is the full result of one recommendation request
type Recommendation struct {
	Category    Category   `json:"category"`
	Attributes  Attributes `json:"attributes"`
	Prediction  Prediction `json:"prediction"`
	Price       PriceRange `json:"price"`
	SearchURL   string     `json:"searchUrl"`
	CategoryURL string     `json:"categoryUrl"`
}

// RefineStatus tags whether the refined query came from the LLM or is the original input
type RefineStatus string

const (
	RefineOK       RefineStatus = "ok"
	RefineFallback RefineStatus = "fallback"
)

// RefineResult is the query refiner outcome. It never carries an error;
// degraded results are marked with RefineFallback.
type RefineResult struct {
	Original string       `json:"original"`
	Query    string       `json:"query"`
	Status   RefineStatus `json:"status"`
	Reason   string       `json:"reason,omitempty"`
	Cached   bool         `json:"cached,omitempty"`
}

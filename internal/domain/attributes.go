package domain

// Category is one of the three clothing slots, each with its own classifier
type Category string

const (
	CategoryTop    Category = "top"
	CategoryBottom Category = "bottom"
	CategoryOuter  Category = "outer"
)

// Categories lists every supported category in display order
var Categories = []Category{CategoryTop, CategoryBottom, CategoryOuter}

// ParseCategory validates a raw category string
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// Attribute names shared by the extractor, the trainer and the classifier input row
const (
	AttrGender    = "gender"
	AttrStyle     = "style"
	AttrColor     = "color"
	AttrPriceTier = "price_tier"
)

// FeatureColumns is the fixed order of classifier inputs
var FeatureColumns = []string{AttrGender, AttrStyle, AttrColor, AttrPriceTier}

// Known attribute vocabularies. The extractor hints these to the LLM.
var (
	Genders    = []string{"male", "female"}
	Colors     = []string{"black", "white", "gray", "navy", "beige", "brown", "blue", "green", "red", "pink"}
	Styles     = []string{"casual", "street", "classic", "sporty"}
	PriceTiers = []string{"under_50", "50_100", "100_200", "200_300", "over_300"}
)

// Attributes are the structured fields extracted from a free-text request
type Attributes struct {
	Gender    string `json:"gender"`
	Color     string `json:"color"`
	Style     string `json:"style"`
	PriceTier string `json:"price_tier"`
}

// Row returns the attributes keyed by feature column name
func (a Attributes) Row() map[string]string {
	return map[string]string{
		AttrGender:    a.Gender,
		AttrStyle:     a.Style,
		AttrColor:     a.Color,
		AttrPriceTier: a.PriceTier,
	}
}

// PriceRange is the numeric bound pair a price tier resolves to (KRW)
type PriceRange struct {
	Tier      string `json:"tier"`
	Label     string `json:"label"` // "min~max", or "min~" when open-ended
	Min       int    `json:"min"`
	Max       int    `json:"max"`      // zero when OpenEnded
	FloorMin  int    `json:"floorMin"` // Min, or the site floor when Min is zero
	OpenEnded bool   `json:"openEnded"`
}

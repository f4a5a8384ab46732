package musinsa

import (
	"fmt"

	"github.com/fitlens/backend/internal/domain"
)

// MinPriceFloor replaces a zero minimum; the site ignores minPrice=0
const MinPriceFloor = 1000

// DefaultPriceTier is used when the tier is absent or unknown
const DefaultPriceTier = "under_50"

type priceBounds struct {
	min, max int // max == 0 means open-ended
}

var priceTable = map[string]priceBounds{
	"under_50": {0, 50000},
	"50_100":   {50000, 100000},
	"100_200":  {100000, 200000},
	"200_300":  {200000, 300000},
	"over_300": {300000, 0},
}

// ResolvePrice maps a price tier to its numeric range.
// Unknown tiers fall back to under_50.
func ResolvePrice(tier string) domain.PriceRange {
	bounds, ok := priceTable[tier]
	if !ok {
		tier = DefaultPriceTier
		bounds = priceTable[tier]
	}

	pr := domain.PriceRange{
		Tier:      tier,
		Min:       bounds.min,
		Max:       bounds.max,
		FloorMin:  bounds.min,
		OpenEnded: bounds.max == 0,
	}
	if pr.FloorMin == 0 {
		pr.FloorMin = MinPriceFloor
	}

	if pr.OpenEnded {
		pr.Label = fmt.Sprintf("%d~", pr.Min)
	} else {
		pr.Label = fmt.Sprintf("%d~%d", pr.Min, pr.Max)
	}
	return pr
}

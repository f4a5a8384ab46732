package musinsa

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/fitlens/backend/internal/domain"
)

const (
	// SearchBaseURL is the goods search endpoint
	SearchBaseURL = "https://www.musinsa.com/search/goods"
	// CategoryBaseURL is the category listing endpoint; the category code is appended as a path segment
	CategoryBaseURL = "https://www.musinsa.com/category"
)

// Query holds everything the link builders need
type Query struct {
	Category  string
	Item      string
	Gender    string
	Style     string
	Color     string
	PriceTier string
}

// QueryFrom builds a link query from extracted attributes and a predicted item
func QueryFrom(category domain.Category, item string, attrs domain.Attributes) Query {
	return Query{
		Category:  string(category),
		Item:      item,
		Gender:    attrs.Gender,
		Style:     attrs.Style,
		Color:     attrs.Color,
		PriceTier: attrs.PriceTier,
	}
}

// param is an ordered query parameter
type param struct {
	key, value string
}

// Keyword assembles the free-text search keyword: item name, color name and style, blanks dropped.
// Items and colors without a Korean name are omitted.
func Keyword(q Query) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{ItemName(q.Item), ColorName(q.Color), q.Style} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// BuildSearchURL builds the goods search link. Unknown values omit their filter.
func BuildSearchURL(q Query) string {
	price := ResolvePrice(q.PriceTier)

	var params []param
	if code := GenderCode(q.Gender); code != "" {
		params = append(params, param{"gender", code}, param{"gf", code})
	}
	params = append(params, priceParams(price)...)
	if codes := ColorCodes(q.Color); len(codes) > 0 {
		params = append(params, param{"color", strings.Join(codes, ",")})
	}
	if code := CategoryCode(q.Category); code != "" {
		params = append(params, param{"category", code})
	}
	if code := StyleCode(q.Style); code != "" {
		params = append(params, param{"style", code})
	}
	if kw := Keyword(q); kw != "" {
		params = append(params, param{"keyword", kw})
	}

	return SearchBaseURL + "?" + encodeParams(params)
}

// BuildCategoryURL builds the category listing link with the category code in the path.
// Falls back to the search link when the category is unknown.
func BuildCategoryURL(q Query) string {
	code := CategoryCode(q.Category)
	if code == "" {
		return BuildSearchURL(q)
	}
	price := ResolvePrice(q.PriceTier)

	var params []param
	if g := GenderCode(q.Gender); g != "" {
		params = append(params, param{"gf", g})
	}
	if s := StyleCode(q.Style); s != "" {
		params = append(params, param{"style", s})
	}
	params = append(params, param{"price", price.Label})
	if codes := ColorCodes(q.Color); len(codes) > 0 {
		params = append(params, param{"color", strings.Join(codes, ",")})
	}

	return CategoryBaseURL + "/" + code + "?" + encodeParams(params)
}

func priceParams(price domain.PriceRange) []param {
	params := []param{
		{"price", price.Label},
		{"minPrice", strconv.Itoa(price.FloorMin)},
	}
	if !price.OpenEnded {
		params = append(params, param{"maxPrice", strconv.Itoa(price.Max)})
	}
	return params
}

// encodeParams percent-encodes values in order. Spaces become %20; '~' stays literal.
func encodeParams(params []param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(escapeValue(p.value))
	}
	return b.String()
}

func escapeValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

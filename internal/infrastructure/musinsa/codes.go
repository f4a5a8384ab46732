package musinsa

// Filter codes for the search endpoint. The site does not document these;
// they were taken from the query strings its own filter UI produces.

// genderCodes maps gender to the value used by both `gender` and `gf`
var genderCodes = map[string]string{
	"male":   "M",
	"female": "F",
}

// categoryCodes maps a clothing category to the site's top-level category code
var categoryCodes = map[string]string{
	"top":    "001",
	"outer":  "002",
	"bottom": "003",
}

// styleCodes maps a style to the site's style filter
var styleCodes = map[string]string{
	"casual":  "CASUAL",
	"street":  "STREET",
	"classic": "CLASSIC",
	"sporty":  "SPORTY",
}

// colorCodes maps a palette color to one or more site color codes
var colorCodes = map[string][]string{
	"black": {"BLACK"},
	"white": {"WHITE"},
	"gray":  {"GRAY", "LIGHTGRAY", "DARKGRAY"},
	"navy":  {"NAVY"},
	"beige": {"BEIGE", "IVORY"},
	"brown": {"BROWN", "CAMEL"},
	"blue":  {"BLUE", "SKYBLUE"},
	"green": {"GREEN", "KHAKI"},
	"red":   {"RED", "BURGUNDY"},
	"pink":  {"PINK"},
}

// colorNames are the Korean display names used in the keyword
var colorNames = map[string]string{
	"black": "블랙",
	"white": "화이트",
	"gray":  "그레이",
	"navy":  "네이비",
	"beige": "베이지",
	"brown": "브라운",
	"blue":  "블루",
	"green": "그린",
	"red":   "레드",
	"pink":  "핑크",
}

// itemNames are the Korean display names of every item the classifiers can predict
var itemNames = map[string]string{
	// top
	"tshirt":     "티셔츠",
	"hoodie":     "후드 티셔츠",
	"shirt":      "셔츠",
	"sweatshirt": "맨투맨",
	"knit":       "니트",
	"sleeveless": "민소매 티셔츠",
	// bottom
	"jeans":  "데님 팬츠",
	"slacks": "슬랙스",
	"jogger": "조거 팬츠",
	"shorts": "반바지",
	"skirt":  "스커트",
	"cargo":  "카고 팬츠",
	// outer
	"padding":        "패딩",
	"coat":           "코트",
	"cardigan":       "카디건",
	"windbreaker":    "바람막이",
	"blazer":         "블레이저",
	"leather_jacket": "레더 재킷",
}

// ItemName returns the Korean display name of an item, or "" when unknown
func ItemName(item string) string {
	return itemNames[item]
}

// ColorName returns the Korean display name of a color, or "" when unknown
func ColorName(color string) string {
	return colorNames[color]
}

// GenderCode returns the gender filter code, or "" when unknown
func GenderCode(gender string) string {
	return genderCodes[gender]
}

// CategoryCode returns the category filter code, or "" when unknown
func CategoryCode(category string) string {
	return categoryCodes[category]
}

// StyleCode returns the style filter code, or "" when unknown
func StyleCode(style string) string {
	return styleCodes[style]
}

// ColorCodes returns the color code group for a color, or nil when unknown
func ColorCodes(color string) []string {
	return colorCodes[color]
}

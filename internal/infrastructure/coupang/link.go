package coupang

import (
	"net/url"
	"strings"
)

// SearchBaseURL is the product search endpoint
const SearchBaseURL = "https://www.coupang.com/np/search"

// BuildSearchURL builds a search link for a refined query (spaces encoded as '+')
func BuildSearchURL(query string) string {
	return SearchBaseURL + "?q=" + url.QueryEscape(strings.TrimSpace(query)) + "&channel=user&component="
}

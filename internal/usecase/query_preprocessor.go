package usecase

import (
	"log"
	"regexp"
	"strings"

	"github.com/fitlens/backend/internal/domain"
)

// QueryPreprocessor cleans product names and LLM answers into terse search queries
type QueryPreprocessor struct {
	enableDebugLogging bool
	maxLength          int
}

// Compiled regex patterns for answer cleanup
var (
	// Matches leading list markers or labels the model sometimes adds ("1.", "-", "Query:")
	answerPrefixPattern = regexp.MustCompile(`(?i)^\s*(?:[-*•]|\d+[.)]|query\s*:|검색어\s*:)\s*`)

	// Multiple spaces cleanup
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(enableDebugLogging bool) *QueryPreprocessor {
	return &QueryPreprocessor{
		enableDebugLogging: enableDebugLogging,
		maxLength:          100,
	}
}

// CleanAnswer turns a raw LLM answer into a single-line query.
// Only presentation is removed (code fences, labels, quotes, newlines, extra whitespace);
// the words of the query are kept as the model wrote them.
func (p *QueryPreprocessor) CleanAnswer(answer string) string {
	if answer == "" {
		return ""
	}
	original := answer

	// Step 1: Drop markdown fences and join lines
	cleaned := strings.ReplaceAll(stripCodeFences(answer), "\n", " ")

	// Step 2: Remove list markers or "Query:" labels and surrounding quotes
	cleaned = answerPrefixPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.Trim(strings.TrimSpace(cleaned), "\"'`“”‘’")

	// Step 3: Normalize whitespace
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = domain.NormalizeText(cleaned)

	// Step 4: Limit query length, cutting at a word boundary when possible
	if runes := []rune(cleaned); len(runes) > p.maxLength {
		cleaned = string(runes[:p.maxLength])
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > len(cleaned)/2 {
			cleaned = cleaned[:lastSpace]
		}
	}

	if p.enableDebugLogging {
		log.Printf("[PREPROCESS] Input: %q → Output: %q", original, cleaned)
	}

	return cleaned
}

// CacheKey builds a normalized cache key for a product name.
// Format: "refine:{lowercased name with collapsed whitespace}"
func (p *QueryPreprocessor) CacheKey(productName string) string {
	name := strings.ToLower(domain.NormalizeText(productName))
	return "refine:" + strings.Join(strings.Fields(name), " ")
}

// stripCodeFences removes ``` fence lines from a model answer
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), "```") {
			continue
		}
		out = append(out, ln)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

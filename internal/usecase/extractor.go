package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fitlens/backend/internal/domain"
)

const extractInstruction = `You read Korean or English clothing shopping requests and extract four attributes.
Answer with a JSON object only. Every field is required and must be a single lower-case English token.
- gender: who the clothes are for.
- color: the main color asked for.
- style: the overall style.
- price_tier: the budget bucket in KRW. "8만원대" means 80,000 won, which is tier 50_100.
If a value is not stated, choose the closest reasonable one.`

// extractionFields is the output shape requested from the LLM
var extractionFields = []domain.SchemaField{
	{Name: domain.AttrGender, Description: "Target gender.", Enum: domain.Genders},
	{Name: domain.AttrColor, Description: "Main color.", Enum: domain.Colors},
	{Name: domain.AttrStyle, Description: "Clothing style.", Enum: domain.Styles},
	{Name: domain.AttrPriceTier, Description: "Price bucket in thousands of KRW.", Enum: domain.PriceTiers},
}

// extractionPayload mirrors the schema; pointers tell a missing field from an empty one
type extractionPayload struct {
	Gender    *string `json:"gender"`
	Color     *string `json:"color"`
	Style     *string `json:"style"`
	PriceTier *string `json:"price_tier"`
}

// AttributeExtractor turns a free-text request into structured attributes with one LLM call
type AttributeExtractor struct {
	llm   domain.TextGenerator
	debug bool
}

// NewAttributeExtractor creates an extractor. A nil generator leaves it unavailable.
func NewAttributeExtractor(llm domain.TextGenerator) *AttributeExtractor {
	return &AttributeExtractor{llm: llm}
}

// SetDebug enables or disables debug logging
func (e *AttributeExtractor) SetDebug(debug bool) {
	e.debug = debug
}

// Available reports whether an LLM client is configured
func (e *AttributeExtractor) Available() bool {
	return e != nil && e.llm != nil
}

// Extract sends text to the LLM and decodes the four attributes.
// It returns either a complete record or an error, never a partial record. There are no retries.
func (e *AttributeExtractor) Extract(ctx context.Context, text string) (*domain.Attributes, error) {
	text = domain.NormalizeText(text)
	if text == "" {
		return nil, domain.ErrInvalidRequest
	}
	if !e.Available() {
		return nil, domain.ErrExtractorUnavailable
	}

	raw, err := e.llm.GenerateText(ctx, domain.GenerationRequest{
		Instruction: extractInstruction,
		Prompt:      fmt.Sprintf("Request: %q", text),
		Fields:      extractionFields,
	})
	if err != nil {
		log.Printf("[EXTRACT] LLM call failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	attrs, err := decodeAttributes(raw)
	if err != nil {
		log.Printf("[EXTRACT] Unusable LLM answer %q: %v", raw, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	if e.debug {
		log.Printf("[EXTRACT] %q -> %+v", text, *attrs)
	}
	return attrs, nil
}

// decodeAttributes strictly decodes the LLM answer: one JSON object, no unknown fields,
// all four fields present and non-empty after normalisation
func decodeAttributes(raw string) (*domain.Attributes, error) {
	obj := extractJSONObject(raw)
	if obj == "" {
		return nil, errors.New("no JSON object in response")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(obj)))
	dec.DisallowUnknownFields()

	var p extractionPayload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	fields := []struct {
		name  string
		value *string
	}{
		{domain.AttrGender, p.Gender},
		{domain.AttrColor, p.Color},
		{domain.AttrStyle, p.Style},
		{domain.AttrPriceTier, p.PriceTier},
	}
	for _, f := range fields {
		if f.value == nil || domain.NormalizeValue(*f.value) == "" {
			return nil, fmt.Errorf("field %q missing", f.name)
		}
	}

	attrs := domain.Attributes{
		Gender:    *p.Gender,
		Color:     *p.Color,
		Style:     *p.Style,
		PriceTier: *p.PriceTier,
	}.Normalize()
	return &attrs, nil
}

// extractJSONObject returns the first decodable JSON object in s, skipping code fences and prose
func extractJSONObject(s string) string {
	s = stripCodeFences(s)
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(s[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil {
			return string(raw)
		}
	}
	return ""
}

package gemini

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fitlens/backend/internal/domain"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Options configures the Gemini client
type Options struct {
	APIKey            string
	Model             string
	BaseURL           string // empty uses the SDK default endpoint
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client handles communication with the Gemini API
type Client struct {
	genai       *genai.Client
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Gemini API client
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.0-flash"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 60
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	limit := rate.Limit(float64(opts.RequestsPerMinute) / 60.0)
	return &Client{
		genai:       gc,
		model:       opts.Model,
		rateLimiter: rate.NewLimiter(limit, 5),
	}, nil
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.model
}

// GenerateText sends one prompt and returns the concatenated text of the first candidate.
// When the request declares fields, the model is constrained to a JSON object with those fields.
func (c *Client) GenerateText(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	}
	if req.Instruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.Instruction, genai.RoleUser)
	}
	if len(req.Fields) > 0 {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = objectSchema(req.Fields)
	}

	if c.debug {
		log.Printf("[LLM] model=%s fields=%d prompt=%q", c.model, len(req.Fields), req.Prompt)
	}

	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		log.Printf("[LLM] GenerateContent error: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrLLMFailure, err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", domain.ErrLLMFailure)
	}

	if c.debug {
		log.Printf("[LLM] response=%q", text)
	}
	return text, nil
}

// objectSchema builds a JSON object schema where every field is a required string.
// Enum values are hints in the description, not constraints, so off-list answers stay visible.
func objectSchema(fields []domain.SchemaField) *genai.Schema {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(fields)),
	}
	for _, f := range fields {
		desc := f.Description
		if len(f.Enum) > 0 {
			desc = strings.TrimSpace(desc + " One of: " + strings.Join(f.Enum, ", ") + ".")
		}
		schema.Properties[f.Name] = &genai.Schema{
			Type:        genai.TypeString,
			Description: desc,
		}
		schema.Required = append(schema.Required, f.Name)
		schema.PropertyOrdering = append(schema.PropertyOrdering, f.Name)
	}
	return schema
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

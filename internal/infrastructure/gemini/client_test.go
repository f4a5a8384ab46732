package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fitlens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, handler func(body map[string]interface{}) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent"), "path %s", r.URL.Path)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, handler(body))
	}))
}

func candidateJSON(text string) string {
	resp := map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []interface{}{map[string]interface{}{"text": text}},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), Options{
		APIKey:            "test-api-key",
		Model:             "test-model",
		BaseURL:           baseURL,
		RequestsPerMinute: 6000,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	client := newTestClient(t, "https://example.invalid")

	assert.Equal(t, "test-model", client.Model())
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), Options{})
	assert.Error(t, err)
}

func TestGenerateText_PlainText(t *testing.T) {
	server := newTestServer(t, http.StatusOK, func(body map[string]interface{}) string {
		config, _ := body["generationConfig"].(map[string]interface{})
		assert.Nil(t, config["responseSchema"])
		return candidateJSON("nike air force 1")
	})
	defer server.Close()

	client := newTestClient(t, server.URL)
	text, err := client.GenerateText(context.Background(), domain.GenerationRequest{
		Instruction: "clean the product name",
		Prompt:      "Nike Air Force 1 '07 White - size 270",
	})

	require.NoError(t, err)
	assert.Equal(t, "nike air force 1", text)
}

func TestGenerateText_StructuredRequestsJSON(t *testing.T) {
	server := newTestServer(t, http.StatusOK, func(body map[string]interface{}) string {
		config, ok := body["generationConfig"].(map[string]interface{})
		require.True(t, ok, "generationConfig missing")
		assert.Equal(t, "application/json", config["responseMimeType"])

		schema, ok := config["responseSchema"].(map[string]interface{})
		require.True(t, ok, "responseSchema missing")
		props, _ := schema["properties"].(map[string]interface{})
		assert.Contains(t, props, "gender")
		assert.Contains(t, props, "color")
		assert.Len(t, schema["required"], 2)

		return candidateJSON(`{"gender":"female","color":"black"}`)
	})
	defer server.Close()

	client := newTestClient(t, server.URL)
	text, err := client.GenerateText(context.Background(), domain.GenerationRequest{
		Prompt: "여자 블랙",
		Fields: []domain.SchemaField{
			{Name: "gender", Description: "gender", Enum: []string{"male", "female"}},
			{Name: "color", Description: "main color"},
		},
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"gender":"female","color":"black"}`, text)
}

func TestGenerateText_APIError(t *testing.T) {
	server := newTestServer(t, http.StatusBadRequest, func(map[string]interface{}) string {
		return `{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`
	})
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GenerateText(context.Background(), domain.GenerationRequest{Prompt: "hi"})

	assert.ErrorIs(t, err, domain.ErrLLMFailure)
}

func TestGenerateText_EmptyCandidates(t *testing.T) {
	server := newTestServer(t, http.StatusOK, func(map[string]interface{}) string {
		return `{"candidates":[]}`
	})
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GenerateText(context.Background(), domain.GenerationRequest{Prompt: "hi"})

	assert.ErrorIs(t, err, domain.ErrLLMFailure)
}

func TestObjectSchema(t *testing.T) {
	schema := objectSchema([]domain.SchemaField{
		{Name: "style", Description: "clothing style.", Enum: []string{"casual", "street"}},
	})

	require.Contains(t, schema.Properties, "style")
	assert.Equal(t, []string{"style"}, schema.Required)
	assert.Equal(t, "clothing style. One of: casual, street.", schema.Properties["style"].Description)
	assert.Empty(t, schema.Properties["style"].Enum)
}

func TestGenerateText_ContextCancelled(t *testing.T) {
	client := newTestClient(t, "https://example.invalid")
	client.rateLimiter.SetBurst(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateText(ctx, domain.GenerationRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

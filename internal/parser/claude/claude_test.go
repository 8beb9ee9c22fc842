package claude_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carte/internal/config"
	"carte/internal/domain"
	"carte/internal/parser"
	"carte/internal/parser/claude"
	"carte/internal/port"
)

func newTestModel(serverURL, apiKey string) *claude.Model {
	cfg := &config.ParserProviderConfig{
		Provider:     "claude",
		APIKey:       apiKey,
		DefaultModel: "claude-3-5-sonnet-latest",
		TimeoutSecs:  30,
	}
	return claude.NewWithEndpoint(cfg, serverURL, zap.NewNop())
}

func imageInput() port.GenerateInput {
	return port.GenerateInput{
		System:    "system contract",
		Prompt:    "translate to Spanish",
		Image:     &domain.ImagePayload{MediaType: domain.MediaTypePNG, Data: []byte("png-bytes")},
		MaxTokens: 8000,
	}
}

func TestModel_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-3-5-sonnet-latest", reqBody["model"])
		assert.Equal(t, float64(8000), reqBody["max_tokens"])
		assert.Equal(t, "system contract", reqBody["system"])

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		content := msg["content"].([]interface{})
		require.Len(t, content, 2)

		imgBlock := content[0].(map[string]interface{})
		assert.Equal(t, "image", imgBlock["type"])
		source := imgBlock["source"].(map[string]interface{})
		assert.Equal(t, "base64", source["type"])
		assert.Equal(t, "image/png", source["media_type"])
		assert.Equal(t, "cG5nLWJ5dGVz", source["data"])

		textBlock := content[1].(map[string]interface{})
		assert.Equal(t, "text", textBlock["type"])
		assert.Equal(t, "translate to Spanish", textBlock["text"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": `{"translatedLanguage":"Spanish",`},
				{"type": "text", "text": `"sections":[]}`},
			},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	out, err := newTestModel(server.URL, "test-api-key").Generate(context.Background(), imageInput())

	require.NoError(t, err)
	assert.Equal(t, `{"translatedLanguage":"Spanish","sections":[]}`, out.Text)
	assert.Equal(t, "claude-3-5-sonnet-latest", out.ModelUsed)
}

func TestModel_Generate_TextOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		content := reqBody["messages"].([]interface{})[0].(map[string]interface{})["content"].([]interface{})
		assert.Len(t, content, 1)
		_, hasSystem := reqBody["system"]
		assert.False(t, hasSystem)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{{"type": "text", "text": `{"selections":[]}`}},
		})
	}))
	defer server.Close()

	out, err := newTestModel(server.URL, "k").Generate(context.Background(), port.GenerateInput{Prompt: "pick", MaxTokens: 2000})

	require.NoError(t, err)
	assert.Equal(t, `{"selections":[]}`, out.Text)
}

func TestModel_Generate_MissingAPIKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := newTestModel(server.URL, "").Generate(context.Background(), imageInput())

	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	assert.False(t, called)
}

func TestModel_Generate_UnsupportedMediaType(t *testing.T) {
	input := imageInput()
	input.Image.MediaType = "image/heic"

	_, err := newTestModel("http://unused", "k").Generate(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrUnsupportedImage)
}

func TestModel_Generate_StatusClassification(t *testing.T) {
	tests := []struct {
		status    int
		kind      parser.TransportKind
		temporary bool
	}{
		{http.StatusTooManyRequests, parser.TransportRateLimited, true},
		{529, parser.TransportOverloaded, true},
		{http.StatusServiceUnavailable, parser.TransportOverloaded, true},
		{http.StatusInternalServerError, parser.TransportServerError, true},
		{http.StatusBadRequest, parser.TransportBadRequest, false},
		{http.StatusRequestEntityTooLarge, parser.TransportBadRequest, false},
		{http.StatusUnauthorized, parser.TransportUnauthorized, false},
		{http.StatusNotFound, parser.TransportUnknown, false},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "30")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"type":"error","error":{"type":"some_error","message":"nope"}}`))
			}))
			defer server.Close()

			_, err := newTestModel(server.URL, "k").Generate(context.Background(), imageInput())

			var tErr *parser.TransportError
			require.ErrorAs(t, err, &tErr)
			assert.Equal(t, tt.kind, tErr.Kind)
			assert.Equal(t, tt.status, tErr.StatusCode)
			assert.Equal(t, tt.temporary, tErr.Temporary())
			assert.Contains(t, err.Error(), "some_error: nope")
		})
	}
}

func TestModel_Generate_RateLimitRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestModel(server.URL, "k").Generate(context.Background(), imageInput())

	tErr, ok := parser.IsRateLimited(err)
	require.True(t, ok)
	assert.Equal(t, "30s", tErr.RetryAfter.String())
}

func TestModel_Generate_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestModel(url, "k").Generate(context.Background(), imageInput())

	var tErr *parser.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, parser.TransportNetwork, tErr.Kind)
	assert.True(t, tErr.Temporary())
}

func TestModel_Generate_Truncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]interface{}{{"type": "text", "text": `{"sections":[`}},
			"stop_reason": "max_tokens",
		})
	}))
	defer server.Close()

	_, err := newTestModel(server.URL, "k").Generate(context.Background(), imageInput())

	assert.ErrorIs(t, err, domain.ErrInvalidModelOutput)
}

func TestModel_Generate_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	_, err := newTestModel(server.URL, "k").Generate(context.Background(), imageInput())

	assert.ErrorIs(t, err, domain.ErrInvalidModelOutput)
}

func TestModel_Name(t *testing.T) {
	assert.Equal(t, "claude/claude-3-5-sonnet-latest", newTestModel("http://x", "k").Name())
}

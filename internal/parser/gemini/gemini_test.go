package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carte/internal/config"
	"carte/internal/domain"
	"carte/internal/parser"
	"carte/internal/parser/gemini"
	"carte/internal/port"
)

func newTestModel(t *testing.T, serverURL, apiKey string) *gemini.Model {
	t.Helper()
	m, err := gemini.New(context.Background(), &config.ParserProviderConfig{
		Provider:     "gemini",
		APIKey:       apiKey,
		DefaultModel: "gemini-2.0-flash",
		BaseURL:      serverURL,
		TimeoutSecs:  30,
	}, zap.NewNop())
	require.NoError(t, err)
	return m
}

func TestModel_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "gk-test", r.Header.Get("x-goog-api-key"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		contents := reqBody["contents"].([]interface{})
		require.Len(t, contents, 1)
		parts := contents[0].(map[string]interface{})["parts"].([]interface{})
		require.Len(t, parts, 2)
		inline := parts[0].(map[string]interface{})["inlineData"].(map[string]interface{})
		assert.Equal(t, "image/jpeg", inline["mimeType"])
		assert.Equal(t, "translate", parts[1].(map[string]interface{})["text"])

		genCfg := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", genCfg["responseMimeType"])
		assert.Equal(t, float64(8000), genCfg["maxOutputTokens"])
		assert.NotNil(t, reqBody["systemInstruction"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"sections\":"},{"text":"[]}"}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	out, err := newTestModel(t, server.URL, "gk-test").Generate(context.Background(), port.GenerateInput{
		System:    "system",
		Prompt:    "translate",
		Image:     &domain.ImagePayload{MediaType: domain.MediaTypeJPEG, Data: []byte{0xff, 0xd8, 0xff}},
		MaxTokens: 8000,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"sections":[]}`, out.Text)
	assert.Equal(t, "gemini-2.0-flash", out.ModelUsed)
}

func TestModel_Generate_MissingAPIKey(t *testing.T) {
	m := newTestModel(t, "", "")

	_, err := m.Generate(context.Background(), port.GenerateInput{Prompt: "x"})

	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestModel_Generate_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	_, err := newTestModel(t, server.URL, "gk").Generate(context.Background(), port.GenerateInput{Prompt: "x", MaxTokens: 10})

	tErr, ok := parser.IsRateLimited(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, parser.DefaultRetryAfter, tErr.RetryAfter)
}

func TestModel_Generate_BadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad image","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	_, err := newTestModel(t, server.URL, "gk").Generate(context.Background(), port.GenerateInput{Prompt: "x", MaxTokens: 10})

	var tErr *parser.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, parser.TransportBadRequest, tErr.Kind)
	assert.False(t, tErr.Temporary())
}

func TestModel_Generate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := newTestModel(t, server.URL, "gk").Generate(context.Background(), port.GenerateInput{Prompt: "x", MaxTokens: 10})

	assert.ErrorIs(t, err, domain.ErrInvalidModelOutput)
}

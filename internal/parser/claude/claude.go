package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"carte/internal/config"
	"carte/internal/domain"
	"carte/internal/menu"
	"carte/internal/parser"
	"carte/internal/port"
)

const (
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	defaultModel = "claude-3-5-sonnet-latest"
	providerName = "claude"
)

var supportedMediaTypes = map[string]bool{
	domain.MediaTypeJPEG: true,
	domain.MediaTypePNG:  true,
	domain.MediaTypeWEBP: true,
	domain.MediaTypeGIF:  true,
}

// Model implements port.LanguageModel using the Anthropic Messages API.
type Model struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// New creates a Claude model from a provider config.
func New(cfg *config.ParserProviderConfig, logger *zap.Logger) *Model {
	endpoint := apiURL
	if cfg.BaseURL != "" {
		endpoint = strings.TrimRight(cfg.BaseURL, "/") + "/v1/messages"
	}
	return newModel(cfg, endpoint, logger)
}

// NewWithEndpoint creates a model pointing at a custom messages endpoint (for testing).
func NewWithEndpoint(cfg *config.ParserProviderConfig, endpoint string, logger *zap.Logger) *Model {
	return newModel(cfg, endpoint, logger)
}

// Factory adapts New to parser.ProviderFactory.
func Factory(cfg *config.ParserProviderConfig, logger *zap.Logger) (port.LanguageModel, error) {
	return New(cfg, logger), nil
}

func newModel(cfg *config.ParserProviderConfig, endpoint string, logger *zap.Logger) *Model {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	return &Model{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: cfg.Timeout()},
		logger:   logger,
	}
}

func (m *Model) Name() string {
	return providerName + "/" + m.model
}

func (m *Model) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	if m.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	content, err := buildContentBlocks(input)
	if err != nil {
		return nil, err
	}

	reqBody := map[string]interface{}{
		"model":      m.model,
		"max_tokens": input.MaxTokens,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": content,
			},
		},
	}
	if input.System != "" {
		reqBody["system"] = input.System
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", m.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := m.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, parser.NewNetworkError(providerName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, parser.NewNetworkError(providerName, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error: %s", menu.Truncate(apiErrorMessage(respBody), 300))
		return nil, parser.NewTransportError(providerName, resp.StatusCode, resp.Header.Get("Retry-After"), baseErr)
	}

	text, err := parseResponse(respBody)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("claude response received", zap.String("model", m.model), zap.Int("length", len(text)))
	return &port.GenerateOutput{Text: text, ModelUsed: m.model}, nil
}

func buildContentBlocks(input port.GenerateInput) ([]map[string]interface{}, error) {
	var blocks []map[string]interface{}

	if input.Image != nil {
		if !supportedMediaTypes[input.Image.MediaType] {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImage, input.Image.MediaType)
		}
		blocks = append(blocks, map[string]interface{}{
			"type": "image",
			"source": map[string]interface{}{
				"type":       "base64",
				"media_type": input.Image.MediaType,
				"data":       input.Image.Base64(),
			},
		})
	}

	blocks = append(blocks, map[string]interface{}{
		"type": "text",
		"text": input.Prompt,
	})
	return blocks, nil
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: unmarshaling response: %v", domain.ErrInvalidModelOutput, err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: empty response from API", domain.ErrInvalidModelOutput)
	}
	if resp.StopReason == "max_tokens" {
		return "", fmt.Errorf("%w: output truncated (stop_reason: max_tokens)", domain.ErrInvalidModelOutput)
	}
	return sb.String(), nil
}

// apiErrorMessage pulls error.message out of an Anthropic error body, falling back to the raw body.
func apiErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Type + ": " + e.Error.Message
	}
	return string(body)
}

var _ port.LanguageModel = (*Model)(nil)

package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"carte/internal/config"
	"carte/internal/domain"
	"carte/internal/parser"
	"carte/internal/port"
)

const (
	defaultModel = "gemini-2.0-flash"
	providerName = "gemini"
)

// Model implements port.LanguageModel using the Gemini API.
type Model struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// New creates a Gemini model. The client is only built when a key is configured,
// so a keyless model fails per call with ErrMissingAPIKey.
func New(ctx context.Context, cfg *config.ParserProviderConfig, logger *zap.Logger) (*Model, error) {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	m := &Model{model: model, logger: logger}
	if cfg.APIKey == "" {
		return m, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout()},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	m.client = client
	return m, nil
}

// Factory adapts New to parser.ProviderFactory.
func Factory(cfg *config.ParserProviderConfig, logger *zap.Logger) (port.LanguageModel, error) {
	return New(context.Background(), cfg, logger)
}

func (m *Model) Name() string {
	return providerName + "/" + m.model
}

func (m *Model) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	if m.client == nil {
		return nil, domain.ErrMissingAPIKey
	}

	var parts []*genai.Part
	if input.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(input.Image.Data, input.Image.MediaType))
	}
	parts = append(parts, genai.NewPartFromText(input.Prompt))

	genConfig := &genai.GenerateContentConfig{
		MaxOutputTokens:  int32(input.MaxTokens),
		ResponseMIMEType: "application/json",
	}
	if input.System != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(input.System, genai.RoleUser)
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}, genConfig)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, classifyError(err)
	}

	text := extractText(resp)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response from Gemini", domain.ErrInvalidModelOutput)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return nil, fmt.Errorf("%w: output truncated (finish reason: MAX_TOKENS)", domain.ErrInvalidModelOutput)
	}

	m.logger.Debug("gemini response received", zap.String("model", m.model), zap.Int("length", len(text)))
	return &port.GenerateOutput{Text: text, ModelUsed: m.model}, nil
}

func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return parser.NewTransportError(providerName, apiErr.Code, "", err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return parser.NewTransportError(providerName, apiErrPtr.Code, "", err)
	}
	return parser.NewNetworkError(providerName, err)
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" && !part.Thought {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "")
}

var _ port.LanguageModel = (*Model)(nil)

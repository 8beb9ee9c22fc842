package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"carte/internal/config"
	"carte/internal/domain"
	"carte/internal/parser"
	"carte/internal/port"
)

const (
	defaultModel = "gpt-4o"
	providerName = "openai"
)

// Model implements port.LanguageModel using the OpenAI Chat Completions API.
type Model struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// New creates an OpenAI model from a provider config.
func New(cfg *config.ParserProviderConfig, logger *zap.Logger) *Model {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	m := &Model{model: model, logger: logger}
	if cfg.APIKey == "" {
		return m
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/"))
	}
	client := openai.NewClient(opts...)
	m.client = &client
	return m
}

// Factory adapts New to parser.ProviderFactory.
func Factory(cfg *config.ParserProviderConfig, logger *zap.Logger) (port.LanguageModel, error) {
	return New(cfg, logger), nil
}

func (m *Model) Name() string {
	return providerName + "/" + m.model
}

func (m *Model) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	if m.client == nil {
		return nil, domain.ErrMissingAPIKey
	}

	content := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(input.Prompt),
	}
	if input.Image != nil {
		content = append(content, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    input.Image.DataURL(),
			Detail: "high",
		}))
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if input.System != "" {
		messages = append(messages, openai.SystemMessage(input.System))
	}
	messages = append(messages, openai.UserMessage(content))

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(m.model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(input.MaxTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in OpenAI response", domain.ErrInvalidModelOutput)
	}
	choice := resp.Choices[0]
	if choice.FinishReason == "length" {
		return nil, fmt.Errorf("%w: output truncated (finish_reason: length)", domain.ErrInvalidModelOutput)
	}
	if choice.Message.Content == "" {
		return nil, fmt.Errorf("%w: empty response from OpenAI", domain.ErrInvalidModelOutput)
	}

	m.logger.Debug("openai response received",
		zap.String("model", m.model),
		zap.Int("length", len(choice.Message.Content)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)
	return &port.GenerateOutput{Text: choice.Message.Content, ModelUsed: m.model}, nil
}

func classifyError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		retryAfter := ""
		if apiErr.Response != nil {
			retryAfter = apiErr.Response.Header.Get("Retry-After")
		}
		return parser.NewTransportError(providerName, apiErr.StatusCode, retryAfter, err)
	}
	return parser.NewNetworkError(providerName, err)
}

var _ port.LanguageModel = (*Model)(nil)

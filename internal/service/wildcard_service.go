package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"carte/internal/config"
	"carte/internal/domain"
	"carte/internal/menu"
	"carte/internal/parser"
	"carte/internal/port"
)

// DefaultWildcardExplanation is used when the model gives no overall explanation.
const DefaultWildcardExplanation = "Curated selection based on your preferences"

// WildcardRequest is the input of a curated selection.
type WildcardRequest struct {
	Menu              *domain.ParsedMenu
	PartySize         int
	HungerLevel       domain.HungerLevel
	Adventurous       bool
	PreferredLanguage string
	CurrentCart       map[string]domain.CartLine
}

// WildcardResult holds the validated selections.
type WildcardResult struct {
	Selections  []domain.WildcardSelection `json:"selections"`
	Explanation string                     `json:"explanation"`
}

// WildcardService recommends a set of dishes from a menu.
type WildcardService interface {
	Recommend(ctx context.Context, req WildcardRequest) (*WildcardResult, error)
}

type wildcardService struct {
	model  port.LanguageModel
	cfg    *config.ExtractionConfig
	logger *zap.Logger
}

// NewWildcardService creates a new WildcardService implementation.
func NewWildcardService(model port.LanguageModel, cfg *config.ExtractionConfig, logger *zap.Logger) WildcardService {
	return &wildcardService{model: model, cfg: cfg, logger: logger}
}

type wildcardResponse struct {
	Selections  *[]domain.WildcardSelection `json:"selections"`
	Explanation string                      `json:"explanation"`
}

func (s *wildcardService) Recommend(ctx context.Context, req WildcardRequest) (*WildcardResult, error) {
	if err := validateWildcardRequest(req); err != nil {
		return nil, &domain.WildcardError{Kind: domain.KindValidation, Err: err}
	}
	language := req.PreferredLanguage
	if language == "" {
		language = menu.DefaultLanguage
	}

	prompt, err := parser.BuildWildcardUserPrompt(parser.WildcardPrompt{
		Menu:        req.Menu,
		PartySize:   req.PartySize,
		HungerLevel: req.HungerLevel,
		Adventurous: req.Adventurous,
		Language:    language,
		CurrentCart: req.CurrentCart,
	})
	if err != nil {
		return nil, fmt.Errorf("building wildcard prompt: %w", err)
	}

	out, err := s.model.Generate(ctx, port.GenerateInput{
		System:    parser.BuildWildcardSystemPrompt(),
		Prompt:    prompt,
		MaxTokens: s.cfg.WildcardMaxTokens,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.WildcardError{Kind: classifyModelError(err), Err: err}
	}

	var resp wildcardResponse
	recovered, err := menu.DecodeObject(out.Text, &resp)
	if err == nil && resp.Selections == nil {
		err = fmt.Errorf("%w: %w", domain.ErrInvalidModelOutput, domain.NewValidationError("selections", "must be an array"))
	}
	if err != nil {
		s.logger.Warn("model output is not a wildcard selection",
			zap.String("model", out.ModelUsed),
			zap.String("raw", menu.Truncate(out.Text, 200)),
			zap.Error(err),
		)
		return nil, &domain.WildcardError{Kind: domain.KindInvalidResponse, Err: err}
	}
	if recovered {
		s.logger.Warn("recovered wildcard JSON from surrounding text", zap.String("model", out.ModelUsed))
	}

	valid := FilterSelections(req.Menu, *resp.Selections)
	if dropped := len(*resp.Selections) - len(valid); dropped > 0 {
		s.logger.Info("dropped wildcard selections with unknown items", zap.Int("dropped", dropped))
	}
	if len(valid) == 0 {
		return nil, &domain.WildcardError{Kind: domain.KindNoValidSelections, Err: domain.ErrNoValidSelections}
	}

	explanation := resp.Explanation
	if explanation == "" {
		explanation = DefaultWildcardExplanation
	}
	return &WildcardResult{Selections: valid, Explanation: explanation}, nil
}

func validateWildcardRequest(req WildcardRequest) error {
	if req.Menu == nil || req.PartySize < 1 || req.HungerLevel == "" {
		return domain.NewValidationError("", "Missing required fields")
	}
	if !domain.ValidHungerLevels[req.HungerLevel] {
		return domain.NewValidationError("hungerLevel", "must be one of light, moderate, hungry, feast")
	}
	return nil
}

// FilterSelections keeps selections whose item exists in m, in their
// original order. The section is corrected to the one holding the item and
// quantities below one become one.
func FilterSelections(m *domain.ParsedMenu, selections []domain.WildcardSelection) []domain.WildcardSelection {
	valid := make([]domain.WildcardSelection, 0, len(selections))
	for _, sel := range selections {
		_, sec, ok := m.FindItem(sel.ItemID)
		if !ok {
			continue
		}
		sel.SectionID = sec.ID
		if sel.Quantity < 1 {
			sel.Quantity = 1
		}
		valid = append(valid, sel)
	}
	return valid
}

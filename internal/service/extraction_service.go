package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"carte/internal/config"
	"carte/internal/domain"
	"carte/internal/menu"
	"carte/internal/parser"
	"carte/internal/port"
)

// ExtractionService turns menu photos into validated, translated menus.
type ExtractionService interface {
	Extract(ctx context.Context, page domain.ImagePayload, language string) (*domain.ParsedMenu, error)
	ExtractPages(ctx context.Context, pages []domain.ImagePayload, language string) (*domain.ParsedMenu, error)
}

type extractionService struct {
	model  port.LanguageModel
	cache  port.MenuCache
	cfg    *config.ExtractionConfig
	logger *zap.Logger
}

// NewExtractionService creates a new ExtractionService. cache may be nil.
func NewExtractionService(
	model port.LanguageModel,
	cache port.MenuCache,
	cfg *config.ExtractionConfig,
	logger *zap.Logger,
) ExtractionService {
	return &extractionService{
		model:  model,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *extractionService) Extract(ctx context.Context, page domain.ImagePayload, language string) (*domain.ParsedMenu, error) {
	if language == "" {
		language = menu.DefaultLanguage
	}
	if len(page.Data) == 0 {
		return nil, &domain.ExtractionError{Kind: domain.KindValidation, Err: domain.ErrNoImages}
	}

	key := cacheKey(page, language)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("menu cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			s.logger.Debug("menu cache hit", zap.String("key", key))
			return cached, nil
		}
	}

	out, err := s.model.Generate(ctx, port.GenerateInput{
		System:    parser.BuildMenuSystemPrompt(),
		Prompt:    parser.BuildMenuUserPrompt(menu.DisplayLanguage(language), menu.IsChinese(language)),
		Image:     &page,
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.ExtractionError{Kind: classifyModelError(err), Err: err}
	}

	parsed, recovered, err := menu.DecodeMenu(out.Text)
	if err != nil {
		s.logger.Warn("model output is not a menu",
			zap.String("model", out.ModelUsed),
			zap.String("raw", menu.Truncate(out.Text, 200)),
			zap.Error(err),
		)
		return nil, &domain.ExtractionError{Kind: domain.KindInvalidResponse, Err: err}
	}
	if recovered {
		s.logger.Warn("recovered menu JSON from surrounding text", zap.String("model", out.ModelUsed))
	}
	menu.Sanitize(parsed, language)

	s.logger.Info("menu extracted",
		zap.String("model", out.ModelUsed),
		zap.String("language", language),
		zap.Int("sections", len(parsed.Sections)),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, parsed); err != nil {
			s.logger.Warn("menu cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return parsed, nil
}

// ExtractPages extracts every page in parallel and merges the results. The
// first failing page aborts the batch and no partial menu is returned.
func (s *extractionService) ExtractPages(ctx context.Context, pages []domain.ImagePayload, language string) (*domain.ParsedMenu, error) {
	if len(pages) == 0 {
		return nil, &domain.ExtractionError{Kind: domain.KindEmpty, Err: domain.ErrNoImages}
	}
	if s.cfg.MaxPages > 0 && len(pages) > s.cfg.MaxPages {
		return nil, &domain.ExtractionError{
			Kind: domain.KindValidation,
			Err:  domain.NewValidationError("images", fmt.Sprintf("at most %d pages per request", s.cfg.MaxPages)),
		}
	}
	if len(pages) == 1 {
		return s.Extract(ctx, pages[0], language)
	}

	concurrency := s.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	menus := make([]*domain.ParsedMenu, len(pages))
	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(concurrency)
	for i, page := range pages {
		i, page := i, page
		p.Go(func(ctx context.Context) error {
			m, err := s.Extract(ctx, page, language)
			if err != nil {
				return withPage(err, i+1)
			}
			menus[i] = m
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	merged, err := menu.Merge(menus)
	if err != nil {
		return nil, err
	}
	s.logger.Info("menu pages merged", zap.Int("pages", len(pages)), zap.Int("sections", len(merged.Sections)))
	return merged, nil
}

func classifyModelError(err error) domain.ErrorKind {
	switch {
	case errors.Is(err, domain.ErrMissingAPIKey):
		return domain.KindConfiguration
	case errors.Is(err, domain.ErrUnsupportedImage):
		return domain.KindValidation
	case errors.Is(err, domain.ErrInvalidModelOutput):
		return domain.KindInvalidResponse
	default:
		return domain.KindTransport
	}
}

func withPage(err error, page int) error {
	var extErr *domain.ExtractionError
	if errors.As(err, &extErr) {
		return &domain.ExtractionError{Kind: extErr.Kind, Page: page, Err: extErr.Err}
	}
	return err
}

func cacheKey(page domain.ImagePayload, language string) string {
	h := sha256.New()
	h.Write([]byte(page.MediaType))
	h.Write(page.Data)
	return "menu:" + hex.EncodeToString(h.Sum(nil)) + ":" + language
}

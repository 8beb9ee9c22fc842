package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"carte/internal/cart"
	"carte/internal/domain"
	"carte/internal/service"
)

// MenuSource extracts one logical menu from page images.
type MenuSource interface {
	ExtractPages(ctx context.Context, pages []domain.ImagePayload, language string) (*domain.ParsedMenu, error)
}

// Session serializes state transitions for one diner. Translation calls may
// overlap; only the most recently issued one is committed.
type Session struct {
	mu     sync.Mutex
	state  State
	pages  []domain.ImagePayload
	source MenuSource
	logger *zap.Logger
}

// New creates an idle Session.
func New(source MenuSource, logger *zap.Logger) *Session {
	return &Session{state: Initial(), source: source, logger: logger}
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Translate extracts pages in language and commits the result unless a
// later request has been issued in the meantime. The returned error is the
// committed failure; superseded results return nil.
func (s *Session) Translate(ctx context.Context, pages []domain.ImagePayload, language string) error {
	s.mu.Lock()
	s.pages = pages
	gen := s.state.Generation + 1
	s.state = Reduce(s.state, RequestIssued{Generation: gen, Language: language})
	s.mu.Unlock()

	return s.run(ctx, gen, pages, language)
}

// Retry reissues the last request.
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	language := s.state.Language
	s.mu.Unlock()
	return s.ChangeLanguage(ctx, language)
}

// ChangeLanguage translates the last pages again into language.
func (s *Session) ChangeLanguage(ctx context.Context, language string) error {
	s.mu.Lock()
	pages := s.pages
	s.mu.Unlock()
	if len(pages) == 0 {
		return domain.ErrNoImages
	}
	return s.Translate(ctx, pages, language)
}

// Retake drops the pages, menu and cart.
func (s *Session) Retake() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = nil
	s.state = Reduce(s.state, Retaken{})
	return s.state
}

// Dispatch applies a cart event.
func (s *Session) Dispatch(ev cart.Event) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, CartEvent{Event: ev})
	return s.state
}

// ApplyWildcard adds recommended selections to the cart.
func (s *Session) ApplyWildcard(selections []domain.WildcardSelection) State {
	return s.Dispatch(cart.ApplyWildcard{Selections: selections})
}

func (s *Session) run(ctx context.Context, gen uint64, pages []domain.ImagePayload, language string) error {
	menu, err := s.source.ExtractPages(ctx, pages, language)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.state.Generation {
		s.logger.Debug("discarding superseded result", zap.Uint64("generation", gen), zap.String("language", language))
		return nil
	}
	if err != nil {
		s.state = Reduce(s.state, RequestFailed{Generation: gen, Message: service.DescribeError(err)})
		return err
	}
	s.state = Reduce(s.state, MenuReceived{Generation: gen, Menu: menu, Language: language})
	return nil
}

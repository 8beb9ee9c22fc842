package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carte/internal/cart"
	"carte/internal/config"
	"carte/internal/domain"
	"carte/internal/parser"
	"carte/internal/port"
	"carte/internal/service"
	"carte/internal/session"
	"carte/mocks"
)

type result struct {
	menu *domain.ParsedMenu
	err  error
}

// gatedSource blocks each extraction until the test releases its language.
type gatedSource struct {
	started chan string
	gates   map[string]chan result
}

func newGatedSource(languages ...string) *gatedSource {
	g := &gatedSource{started: make(chan string, len(languages)), gates: map[string]chan result{}}
	for _, l := range languages {
		g.gates[l] = make(chan result, 1)
	}
	return g
}

func (g *gatedSource) ExtractPages(ctx context.Context, _ []domain.ImagePayload, language string) (*domain.ParsedMenu, error) {
	g.started <- language
	select {
	case r := <-g.gates[language]:
		return r.menu, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

var onePage = []domain.ImagePayload{{MediaType: domain.MediaTypeJPEG, Data: []byte{0xFF, 0xD8, 0xFF}}}

func TestSession_LaterLanguageWins(t *testing.T) {
	src := newGatedSource("French", "German")
	s := session.New(src, zap.NewNop())
	ctx := context.Background()

	frenchDone := make(chan error, 1)
	go func() { frenchDone <- s.Translate(ctx, onePage, "French") }()
	require.Equal(t, "French", <-src.started)

	germanDone := make(chan error, 1)
	go func() { germanDone <- s.ChangeLanguage(ctx, "German") }()
	require.Equal(t, "German", <-src.started)

	src.gates["German"] <- result{menu: menuIn("German", "Vorspeisen")}
	require.NoError(t, <-germanDone)

	src.gates["French"] <- result{menu: menuIn("French", "Entrées")}
	require.NoError(t, <-frenchDone)

	st := s.State()
	assert.Equal(t, "German", st.Language)
	assert.Equal(t, "Vorspeisen", st.Menu.Sections[0].TranslatedTitle)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
}

func TestSession_SupersededFailureIsNotReported(t *testing.T) {
	src := newGatedSource("French", "German")
	s := session.New(src, zap.NewNop())
	ctx := context.Background()

	frenchDone := make(chan error, 1)
	go func() { frenchDone <- s.Translate(ctx, onePage, "French") }()
	<-src.started
	germanDone := make(chan error, 1)
	go func() { germanDone <- s.ChangeLanguage(ctx, "German") }()
	<-src.started

	src.gates["French"] <- result{err: errors.New("late failure")}
	assert.NoError(t, <-frenchDone)
	assert.True(t, s.State().Loading)

	src.gates["German"] <- result{menu: menuIn("German", "Vorspeisen")}
	require.NoError(t, <-germanDone)
	assert.Empty(t, s.State().Error)
}

func TestSession_SpanishEndToEnd(t *testing.T) {
	model := &mocks.MockLanguageModel{}
	model.On("Generate", mock.Anything, mock.MatchedBy(func(in port.GenerateInput) bool {
		return in.Prompt == parser.BuildMenuUserPrompt("Spanish (Español)", false)
	})).Return(&port.GenerateOutput{Text: `{"originalLanguage":"English","translatedLanguage":"Spanish","sections":[
		{"id":"apps","originalTitle":"Appetizers","translatedTitle":"Appetizers","items":[
		 {"id":"wings","originalName":"Wings","translatedName":"Alitas","allergens":["none"]}]}]}`, ModelUsed: "claude"}, nil)

	extraction := service.NewExtractionService(model, nil, &config.ExtractionConfig{MaxTokens: 8000, MaxPages: 10, Concurrency: 2}, zap.NewNop())
	s := session.New(extraction, zap.NewNop())

	err := s.Translate(context.Background(), onePage, "Spanish")

	require.NoError(t, err)
	st := s.State()
	require.NotNil(t, st.Menu)
	assert.Equal(t, "Appetizers", st.Menu.Sections[0].TranslatedTitle)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Zero(t, st.Cart.Count())
}

func TestSession_FailureSetsMessage(t *testing.T) {
	model := &mocks.MockLanguageModel{}
	model.On("Generate", mock.Anything, mock.Anything).Return(nil, parser.NewTransportError("claude", 529, "", errors.New("overloaded")))

	extraction := service.NewExtractionService(model, nil, &config.ExtractionConfig{MaxTokens: 8000}, zap.NewNop())
	s := session.New(extraction, zap.NewNop())

	err := s.Translate(context.Background(), onePage, "English")

	require.Error(t, err)
	st := s.State()
	assert.False(t, st.Loading)
	assert.Equal(t, (&parser.TransportError{Kind: parser.TransportOverloaded}).UserMessage(), st.Error)
}

func TestSession_RetryAndRetake(t *testing.T) {
	src := newGatedSource("English")
	s := session.New(src, zap.NewNop())

	assert.ErrorIs(t, s.Retry(context.Background()), domain.ErrNoImages)

	src.gates["English"] <- result{err: errors.New("network")}
	require.Error(t, s.Translate(context.Background(), onePage, "English"))
	<-src.started
	assert.NotEmpty(t, s.State().Error)

	src.gates["English"] <- result{menu: menuIn("English", "Starters")}
	require.NoError(t, s.Retry(context.Background()))
	<-src.started
	assert.Empty(t, s.State().Error)
	assert.Equal(t, "Starters", s.State().Menu.Sections[0].TranslatedTitle)

	st := s.Retake()
	assert.Nil(t, st.Menu)
	assert.ErrorIs(t, s.Retry(context.Background()), domain.ErrNoImages)
}

func TestSession_CartAndWildcard(t *testing.T) {
	s := session.New(newGatedSource(), zap.NewNop())

	s.Dispatch(cart.Increment{SectionID: "s1", ItemID: "i1"})
	st := s.ApplyWildcard([]domain.WildcardSelection{{ItemID: "i1", SectionID: "s1", Quantity: 2, Reason: "popular"}})

	line := st.Cart["i1"]
	assert.Equal(t, 3, line.Quantity)
	assert.True(t, line.IsWildcard)
	assert.Equal(t, "popular", line.WildcardReason)

	st = s.Dispatch(cart.Clear{})
	assert.Zero(t, st.Cart.Count())
}

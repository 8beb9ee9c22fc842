package menu_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carte/internal/domain"
	"carte/internal/menu"
)

const validMenuJSON = `{"originalLanguage":"Spanish","translatedLanguage":"English","sections":[{"id":"entradas-a1b2","originalTitle":"Entradas","translatedTitle":"Appetizers","items":[{"id":"croquetas-c3d4","originalName":"Croquetas","translatedName":"Croquettes","allergens":["gluten","dairy"],"price":{"amount":6.5,"currency":"EUR","raw":"6,50 €"}}]}]}`

func TestIsParsedMenu(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"object with sections array", map[string]any{"sections": []any{}}, true},
		{"object with populated sections", map[string]any{"sections": []any{map[string]any{"id": "s"}}}, true},
		{"sections is object", map[string]any{"sections": map[string]any{}}, false},
		{"sections is string", map[string]any{"sections": "none"}, false},
		{"sections missing", map[string]any{"items": []any{}}, false},
		{"array", []any{}, false},
		{"string", "menu", false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, menu.IsParsedMenu(tt.value))
		})
	}
}

func TestDecodeMenu_Direct(t *testing.T) {
	m, recovered, err := menu.DecodeMenu(validMenuJSON)

	require.NoError(t, err)
	assert.False(t, recovered)
	require.Len(t, m.Sections, 1)
	assert.Equal(t, "Appetizers", m.Sections[0].TranslatedTitle)
	require.Len(t, m.Sections[0].Items, 1)
	item := m.Sections[0].Items[0]
	assert.Equal(t, "Croquettes", item.TranslatedName)
	require.NotNil(t, item.Price)
	require.NotNil(t, item.Price.Amount)
	assert.InDelta(t, 6.5, *item.Price.Amount, 0.0001)
}

func TestDecodeMenu_RecoversFromProse(t *testing.T) {
	text := "Here is the menu you asked for:\n```json\n" + validMenuJSON + "\n```\nLet me know if you need anything else."

	m, recovered, err := menu.DecodeMenu(text)

	require.NoError(t, err)
	assert.True(t, recovered)
	assert.Equal(t, "English", m.TranslatedLanguage)
}

func TestDecodeMenu_NoObject(t *testing.T) {
	_, _, err := menu.DecodeMenu("I could not read this menu, the photo is too blurry.")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidModelOutput))
}

func TestDecodeMenu_MalformedBetweenBraces(t *testing.T) {
	_, _, err := menu.DecodeMenu(`prefix {"sections": [ {"id": } suffix`)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidModelOutput))
}

func TestDecodeMenu_MissingSectionsArray(t *testing.T) {
	_, _, err := menu.DecodeMenu(`{"translatedLanguage":"English","sections":{"id":"x"}}`)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidModelOutput))
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "sections", vErr.Field)
}

func TestDecodeMenu_WrongFieldType(t *testing.T) {
	_, _, err := menu.DecodeMenu(`{"sections":[{"id":"s","items":"not-an-array"}]}`)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidModelOutput))
}

func TestDecodeObject(t *testing.T) {
	var out struct {
		Explanation string `json:"explanation"`
	}
	recovered, err := menu.DecodeObject(`Sure! {"explanation":"Great picks"}`, &out)

	require.NoError(t, err)
	assert.True(t, recovered)
	assert.Equal(t, "Great picks", out.Explanation)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", menu.Truncate("abc", 5))
	assert.Equal(t, "ab...", menu.Truncate("abcdef", 2))
}

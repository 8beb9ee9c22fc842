package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carte/internal/cart"
	"carte/internal/domain"
)

func amount(v float64) *float64 { return &v }

func summaryMenu() *domain.ParsedMenu {
	return &domain.ParsedMenu{
		TranslatedLanguage: "English",
		Sections: []domain.MenuSection{
			{
				ID: "starters", OriginalTitle: "Entradas", TranslatedTitle: "Starters",
				Items: []domain.MenuItem{
					{ID: "bravas", OriginalName: "Patatas bravas", TranslatedName: "Spicy potatoes", Price: &domain.Price{Amount: amount(6.5), Currency: "EUR"}},
					{ID: "pan", OriginalName: "Pan", TranslatedName: "Bread"},
				},
			},
			{
				ID: "desserts", TranslatedTitle: "Desserts",
				Items: []domain.MenuItem{
					{ID: "flan", OriginalName: "Flan", TranslatedName: "Caramel custard", Price: &domain.Price{Amount: amount(4), Raw: "4"}},
				},
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	c := cart.New()
	c = cart.Reduce(c, cart.Increment{SectionID: "desserts", ItemID: "flan"})
	c = cart.Reduce(c, cart.Increment{SectionID: "starters", ItemID: "bravas"})
	c = cart.Reduce(c, cart.Increment{SectionID: "starters", ItemID: "bravas"})
	c = cart.Reduce(c, cart.Increment{SectionID: "starters", ItemID: "pan"})
	c = cart.Reduce(c, cart.Increment{SectionID: "gone", ItemID: "ghost"})

	s := cart.Summarize(summaryMenu(), c)

	require.Len(t, s.Lines, 4)
	assert.Equal(t, []string{"bravas", "pan", "flan", "ghost"},
		[]string{s.Lines[0].ItemID, s.Lines[1].ItemID, s.Lines[2].ItemID, s.Lines[3].ItemID})

	assert.Equal(t, "Entradas", s.Lines[0].SectionTitle)
	assert.Equal(t, "Desserts", s.Lines[2].SectionTitle)
	require.NotNil(t, s.Lines[0].LineTotal)
	assert.InDelta(t, 13.0, *s.Lines[0].LineTotal, 1e-9)
	assert.Nil(t, s.Lines[1].LineTotal)
	assert.Equal(t, "ghost", s.Lines[3].Name)
	assert.Nil(t, s.Lines[3].LineTotal)

	assert.Equal(t, 5, s.ItemCount)
	assert.InDelta(t, 17.0, s.Total, 1e-9)
	assert.Equal(t, "EUR", s.Currency)
	assert.Equal(t, "17.00 EUR", s.FormattedTotal)
}

func TestSummarize_EmptyCart(t *testing.T) {
	s := cart.Summarize(summaryMenu(), cart.New())

	assert.Empty(t, s.Lines)
	assert.Zero(t, s.Total)
	assert.Equal(t, "0.00", s.FormattedTotal)
}

func TestSummarize_NilMenu(t *testing.T) {
	c := cart.Reduce(cart.New(), cart.Increment{SectionID: "s", ItemID: "a"})

	s := cart.Summarize(nil, c)

	require.Len(t, s.Lines, 1)
	assert.Equal(t, "a", s.Lines[0].Name)
	assert.Zero(t, s.Total)
}

func TestSummarize_DecodedCartWithoutItemIDs(t *testing.T) {
	c := cart.Cart{
		"zeta":   {SectionID: "gone", Quantity: 1},
		"bravas": {SectionID: "starters", Quantity: 2},
		"alpha":  {SectionID: "gone", Quantity: 3},
	}

	s := cart.Summarize(summaryMenu(), c)

	require.Len(t, s.Lines, 3)
	assert.Equal(t, []string{"bravas", "alpha", "zeta"},
		[]string{s.Lines[0].ItemID, s.Lines[1].ItemID, s.Lines[2].ItemID})
	assert.Equal(t, "alpha", s.Lines[1].Name)
	assert.Equal(t, 6, s.ItemCount)
	assert.InDelta(t, 13.0, s.Total, 1e-9)
}

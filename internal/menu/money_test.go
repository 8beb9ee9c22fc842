package menu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carte/internal/menu"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{"no currency", 12.5, "", "12.50"},
		{"iso code", 12.5, "EUR", "12.50 EUR"},
		{"lowercase iso code", 3, "usd", "3.00 USD"},
		{"zero decimal currency", 1200, "JPY", "1200 JPY"},
		{"symbol", 8, "€", "8.00 €"},
		{"unknown code", 4.25, "XYZ1", "4.25 XYZ1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, menu.FormatMoney(tt.amount, tt.currency))
		})
	}
}

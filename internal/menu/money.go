package menu

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

// FormatMoney renders an amount with its currency. ISO 4217 codes use the
// currency's standard number of decimals; symbols and unknown codes get two.
func FormatMoney(amount float64, cur string) string {
	cur = strings.TrimSpace(cur)
	if cur == "" {
		return strconv.FormatFloat(amount, 'f', 2, 64)
	}

	unit, err := currency.ParseISO(strings.ToUpper(cur))
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, cur)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return fmt.Sprintf("%.*f %s", scale, amount, unit.String())
}

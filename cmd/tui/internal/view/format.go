package view

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/MrJamesThe3rd/fatura/internal/state"
)

// FormatMoney renders an amount with two decimals and the currency symbol,
// falling back to the raw code for currencies x/text does not know.
func FormatMoney(d decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return d.StringFixed(2) + " " + code
	}

	return fmt.Sprintf("%s %v", d.StringFixed(2), currency.Symbol(unit))
}

// FormatDate formats a date as YYYY-MM-DD, or a dash when unset.
func FormatDate(d state.Date) string {
	if d.IsZero() {
		return "-"
	}

	return d.String()
}

// FormatQuantity trims trailing zeros from a quantity.
func FormatQuantity(q float64) string {
	return fmt.Sprintf("%g", q)
}

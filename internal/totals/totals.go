// Package totals derives the monetary breakdown of a single invoice from its
// line items and tax rate. All arithmetic is exact decimal; rounding for
// display is left to callers.
package totals

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fatura/internal/state"
)

// Breakdown is the monetary summary of one invoice.
type Breakdown struct {
	Net     decimal.Decimal
	TaxRate decimal.Decimal
	Tax     decimal.Decimal
	Gross   decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Calculate returns the net/tax/gross breakdown for inv. It never fails:
// non-finite factors contribute zero instead of poisoning the sums, and
// negative quantities or prices propagate arithmetically.
func Calculate(inv *state.Invoice) Breakdown {
	net := decimal.Zero

	for _, item := range inv.Items {
		line := dec(item.Quantity).Mul(dec(item.UnitPrice))
		net = net.Add(line)
	}

	rate := dec(inv.VatRate)
	tax := net.Mul(rate).Div(hundred)

	return Breakdown{
		Net:     net,
		TaxRate: rate,
		Tax:     tax,
		Gross:   net.Add(tax),
	}
}

// dec converts a float factor to decimal, treating NaN and infinities as
// zero so a malformed value cannot crash or propagate.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}

	return decimal.NewFromFloat(f)
}

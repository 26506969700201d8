package cart

import (
	"github.com/shopspring/decimal"

	"github.com/retailedge/storekit/internal/domain"
)

// TaxRate is the flat sales tax applied at checkout. Hardcoding the rate
// is a known limitation carried over from the storefront.
var TaxRate = decimal.NewFromFloat(0.08)

// Totals holds the derived money amounts for a cart. Tax and Total are
// rounded to cents; Subtotal is the exact sum of line amounts.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives subtotal, tax and grand total from the given
// lines. An empty cart yields all zeros.
func ComputeTotals(items []domain.CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Product.Price).
			Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	tax := subtotal.Mul(TaxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

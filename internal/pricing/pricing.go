// Package pricing computes cart totals. Every figure the storefront displays or
// charges comes from Quote; nothing else multiplies prices.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in cents.
type Money int64

// ShippingFee is charged on every priced cart.
const ShippingFee Money = 599

// TaxRate is applied to the subtotal.
var TaxRate = decimal.RequireFromString("0.10")

// FromDecimal converts a dollar amount to Money, rounding half away from zero
// to the nearest cent.
func FromDecimal(dollars decimal.Decimal) Money {
	return Money(dollars.Shift(2).Round(0).IntPart())
}

// FromFloat converts a dollar amount read from a catalog file. The float is
// taken at its shortest decimal form, so 19.99 is exactly 1999 cents.
func FromFloat(dollars float64) Money {
	return FromDecimal(decimal.NewFromFloat(dollars))
}

// ParseMoney parses "12.50", "$12.50" or "12" into Money.
func ParseMoney(value string) (Money, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "$")
	if trimmed == "" {
		return 0, fmt.Errorf("parse money: empty value")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", value, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("parse money %q: must be a non-negative amount", value)
	}
	return FromDecimal(d), nil
}

// Decimal returns the amount in dollars.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String renders the amount as "$12.50".
func (m Money) String() string {
	if m < 0 {
		return "-$" + (-m).Decimal().StringFixed(2)
	}
	return "$" + m.Decimal().StringFixed(2)
}

// MarshalJSON stores the amount as a bare decimal dollar figure.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}

// UnmarshalJSON accepts a decimal number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("decode money: %w", err)
	}
	if d.IsNegative() {
		return fmt.Errorf("money must be non-negative, got %s", d)
	}
	*m = FromDecimal(d)
	return nil
}

// Line is one priced entry.
type Line struct {
	UnitPrice Money
	Quantity  int
}

// Breakdown holds the figures shown in the cart panel and used at checkout.
type Breakdown struct {
	Subtotal Money
	Tax      Money
	Shipping Money
	Total    Money
}

// Quote prices the given lines. An empty cart prices to zero across the board.
func Quote(lines []Line) Breakdown {
	if len(lines) == 0 {
		return Breakdown{}
	}
	var subtotal Money
	for _, line := range lines {
		if line.Quantity <= 0 || line.UnitPrice < 0 {
			continue
		}
		subtotal += line.UnitPrice * Money(line.Quantity)
	}
	tax := FromDecimal(subtotal.Decimal().Mul(TaxRate))
	return Breakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: ShippingFee,
		Total:    subtotal + tax + ShippingFee,
	}
}

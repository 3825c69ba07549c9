// Package pricing computes quote totals from billable line items.
//
// Every function in this package is pure: no I/O, no shared state, safe for
// concurrent use. Amounts are carried at full decimal precision and only
// rounded by Totals.Rounded and FormatCurrency.
package pricing

import (
	"github.com/shopspring/decimal"
)

// Category classifies a line item. Only CategoryLabor changes how a line is
// totalled; the rest are informational.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryLabor     Category = "labor"
	CategoryEquipment Category = "equipment"
	CategoryPackage   Category = "package"
	CategoryItem      Category = "item"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryLabor, CategoryEquipment, CategoryPackage, CategoryItem:
		return true
	}
	return false
}

// DiscountType selects how Options.Discount is interpreted.
type DiscountType string

const (
	DiscountFixed      DiscountType = "FIXED"
	DiscountPercentage DiscountType = "PERCENTAGE"
)

// DepositType selects how Deposit.Value is interpreted.
type DepositType string

const (
	DepositPercentage DepositType = "PERCENTAGE"
	DepositFixed      DepositType = "FIXED"
)

var hundred = decimal.NewFromInt(100)

// LineItem is a single billable row of a quote.
//
// Quantity and UnitPrice are expected to be non-negative; validating that is
// the caller's job. The line total is never stored, see Total.
type LineItem struct {
	ID          string           `json:"id"`
	Category    Category         `json:"category"`
	Description string           `json:"description"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Hours       *decimal.Decimal `json:"hours,omitempty"`
	Taxable     bool             `json:"taxable"`
	IsOptional  bool             `json:"is_optional"`
}

// Total returns quantity × unit price, multiplied by hours for labor lines
// that carry them.
func (li LineItem) Total() decimal.Decimal {
	total := decimal.NewFromInt(int64(li.Quantity)).Mul(li.UnitPrice)
	if li.Category == CategoryLabor && li.Hours != nil {
		total = total.Mul(*li.Hours)
	}
	return total
}

// Deposit describes the up-front payment requested on a quote.
type Deposit struct {
	Type  DepositType     `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// Amount returns the deposit owed for the given grand total.
func (d Deposit) Amount(total decimal.Decimal) decimal.Decimal {
	if d.Type == DepositPercentage {
		return total.Mul(d.Value).Div(hundred)
	}
	return d.Value
}

// Options are the quote-level modifiers. The zero value means no tax, no
// gratuity, a fixed discount of zero, no deposit and no payments.
type Options struct {
	TaxRate      decimal.Decimal   `json:"tax_rate"`
	GratuityRate decimal.Decimal   `json:"gratuity_rate"`
	Discount     decimal.Decimal   `json:"discount"`
	DiscountType DiscountType      `json:"discount_type"`
	Deposit      Deposit           `json:"deposit"`
	Payments     []decimal.Decimal `json:"payments,omitempty"`
}

// Totals is the monetary breakdown of a quote.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Tax            decimal.Decimal `json:"tax"`
	Gratuity       decimal.Decimal `json:"gratuity"`
	Total          decimal.Decimal `json:"total"`
	Deposit        decimal.Decimal `json:"deposit"`
	Balance        decimal.Decimal `json:"balance"`
}

// Rounded returns a copy with every amount rounded to cents.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:       t.Subtotal.Round(2),
		TaxableAmount:  t.TaxableAmount.Round(2),
		DiscountAmount: t.DiscountAmount.Round(2),
		Tax:            t.Tax.Round(2),
		Gratuity:       t.Gratuity.Round(2),
		Total:          t.Total.Round(2),
		Deposit:        t.Deposit.Round(2),
		Balance:        t.Balance.Round(2),
	}
}

// Calculate derives the totals for items under opts.
//
// Discounts reduce the taxable base by simple subtraction floored at zero.
// Gratuity is charged on the full pre-discount subtotal. Balance is not
// clamped, so overpayment yields a negative balance.
func Calculate(items []LineItem, opts Options) Totals {
	subtotal := decimal.Zero
	taxable := decimal.Zero
	for _, item := range items {
		lineTotal := item.Total()
		subtotal = subtotal.Add(lineTotal)
		if item.Taxable {
			taxable = taxable.Add(lineTotal)
		}
	}

	discount := opts.Discount
	if opts.DiscountType == DiscountPercentage {
		discount = subtotal.Mul(opts.Discount).Div(hundred)
	}
	discount = decimal.Min(discount, subtotal)

	taxableAfterDiscount := decimal.Max(decimal.Zero, taxable.Sub(discount))
	tax := taxableAfterDiscount.Mul(opts.TaxRate).Div(hundred)
	gratuity := subtotal.Mul(opts.GratuityRate).Div(hundred)
	total := subtotal.Sub(discount).Add(tax).Add(gratuity)

	return Totals{
		Subtotal:       subtotal,
		TaxableAmount:  taxable,
		DiscountAmount: discount,
		Tax:            tax,
		Gratuity:       gratuity,
		Total:          total,
		Deposit:        opts.Deposit.Amount(total),
		Balance:        Balance(total, opts.Payments),
	}
}

// Balance returns total minus the sum of payments.
func Balance(total decimal.Decimal, payments []decimal.Decimal) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p)
	}
	return total.Sub(paid)
}

package pricing

import "github.com/shopspring/decimal"

// Kind is the shape a billable entry arrives in before normalization.
type Kind string

const (
	KindFlat   Kind = "flat"
	KindUnit   Kind = "unit"
	KindHourly Kind = "hourly"
)

// Billable is implemented only by PackageLine, UnitLine and LaborLine.
type Billable interface {
	kind() Kind
	lineItem() LineItem
}

// PackageLine is a package priced per head, e.g. a buffet at $18 per guest.
// Quantity is usually the guest count.
type PackageLine struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity *int
	Taxable  bool
	Optional bool
}

func (PackageLine) kind() Kind { return KindFlat }

func (p PackageLine) lineItem() LineItem {
	return LineItem{
		ID:          p.ID,
		Category:    CategoryPackage,
		Description: p.Name,
		Quantity:    quantityOrDefault(p.Quantity),
		UnitPrice:   p.Price,
		Taxable:     p.Taxable,
		IsOptional:  p.Optional,
	}
}

// UnitLine is an item billed as quantity × unit price. Category defaults to
// CategoryItem.
type UnitLine struct {
	ID          string
	Category    Category
	Description string
	Quantity    *int
	UnitPrice   decimal.Decimal
	Taxable     bool
	Optional    bool
}

func (UnitLine) kind() Kind { return KindUnit }

func (u UnitLine) lineItem() LineItem {
	category := u.Category
	if category == "" || category == CategoryLabor {
		category = CategoryItem
	}
	return LineItem{
		ID:          u.ID,
		Category:    category,
		Description: u.Description,
		Quantity:    quantityOrDefault(u.Quantity),
		UnitPrice:   u.UnitPrice,
		Taxable:     u.Taxable,
		IsOptional:  u.Optional,
	}
}

// LaborLine is staff time: Quantity people for Hours hours at Rate per hour.
// A nil Hours bills Quantity × Rate.
type LaborLine struct {
	ID       string
	Role     string
	Quantity *int
	Rate     decimal.Decimal
	Hours    *decimal.Decimal
	Taxable  bool
	Optional bool
}

func (LaborLine) kind() Kind { return KindHourly }

func (l LaborLine) lineItem() LineItem {
	var hours *decimal.Decimal
	if l.Hours != nil {
		h := *l.Hours
		hours = &h
	}
	return LineItem{
		ID:          l.ID,
		Category:    CategoryLabor,
		Description: l.Role,
		Quantity:    quantityOrDefault(l.Quantity),
		UnitPrice:   l.Rate,
		Hours:       hours,
		Taxable:     l.Taxable,
		IsOptional:  l.Optional,
	}
}

// KindOf reports which shape b is.
func KindOf(b Billable) Kind {
	return b.kind()
}

// ToLineItem converts a single billable entry.
func ToLineItem(b Billable) LineItem {
	return b.lineItem()
}

// Normalize flattens packages, items and labor, in that order, into line
// items ready for Calculate.
func Normalize(packages []PackageLine, items []UnitLine, labor []LaborLine) []LineItem {
	out := make([]LineItem, 0, len(packages)+len(items)+len(labor))
	for _, p := range packages {
		out = append(out, p.lineItem())
	}
	for _, it := range items {
		out = append(out, it.lineItem())
	}
	for _, l := range labor {
		out = append(out, l.lineItem())
	}
	return out
}

// ExcludeOptional drops optional items unless their ID is in included.
func ExcludeOptional(items []LineItem, included map[string]bool) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.IsOptional && !included[item.ID] {
			continue
		}
		out = append(out, item)
	}
	return out
}

func quantityOrDefault(q *int) int {
	if q == nil {
		return 1
	}
	return *q
}

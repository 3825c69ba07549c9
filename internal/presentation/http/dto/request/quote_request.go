package request

import (
	"time"

	"github.com/sangkips/catering-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// QuoteRequest is the body for previewing, creating and updating a quote.
// Amounts may be sent as JSON numbers or strings.
type QuoteRequest struct {
	CustomerName  string  `json:"customer_name" binding:"max=255"`
	CustomerEmail string  `json:"customer_email" binding:"omitempty,email,max=255"`
	CustomerPhone string  `json:"customer_phone" binding:"max=50"`
	EventDate     string  `json:"event_date" binding:"omitempty,datetime=2006-01-02"`
	GuestCount    int     `json:"guest_count"`
	Venue         string  `json:"venue" binding:"max=255"`
	Notes         *string `json:"notes"`

	Packages        []PackageLineRequest `json:"packages"`
	Items           []ItemLineRequest    `json:"items"`
	Labor           []LaborLineRequest   `json:"labor"`
	IncludeOptional []string             `json:"include_optional"`

	TaxRate      *decimal.Decimal `json:"tax_rate"`
	GratuityRate *decimal.Decimal `json:"gratuity_rate"`
	Discount     decimal.Decimal  `json:"discount"`
	DiscountType string           `json:"discount_type"`
	DepositType  string           `json:"deposit_type"`
	DepositValue *decimal.Decimal `json:"deposit_value"`
}

// PackageLineRequest is a per-head package line
type PackageLineRequest struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity *int            `json:"quantity"`
	Taxable  bool            `json:"taxable"`
	Optional bool            `json:"is_optional"`
}

// ItemLineRequest is a quantity × unit price line
type ItemLineRequest struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Quantity    *int            `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Taxable     bool            `json:"taxable"`
	Optional    bool            `json:"is_optional"`
}

// LaborLineRequest is a staffing line
type LaborLineRequest struct {
	ID       string           `json:"id"`
	Role     string           `json:"role"`
	Quantity *int             `json:"quantity"`
	Rate     decimal.Decimal  `json:"rate"`
	Hours    *decimal.Decimal `json:"hours"`
	Taxable  bool             `json:"taxable"`
	Optional bool             `json:"is_optional"`
}

// QuoteFilterRequest represents quote list parameters
type QuoteFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// QuoteStatusRequest moves a quote to a new status
type QuoteStatusRequest struct {
	Status *enum.QuoteStatus `json:"status" binding:"required"`
}

// PaymentRequest records money received against a quote
type PaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" binding:"max=50"`
	Reference string          `json:"reference" binding:"max=255"`
	Note      *string         `json:"note"`
	PaidAt    *time.Time      `json:"paid_at"`
}

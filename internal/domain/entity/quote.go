package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/enum"
	"github.com/sangkips/catering-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quote represents a catering quote prepared for a customer event
type Quote struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Reference     string               `gorm:"size:100;unique;not null" json:"reference"`
	CustomerName  string               `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail string               `gorm:"size:255;index" json:"customer_email"`
	CustomerPhone string               `gorm:"size:50" json:"customer_phone"`
	EventDate     *time.Time           `gorm:"type:date" json:"event_date,omitempty"`
	GuestCount    int                  `gorm:"default:0" json:"guest_count"`
	Venue         string               `gorm:"size:255" json:"venue"`
	Status        enum.QuoteStatus     `gorm:"default:0;index" json:"status"`
	TaxRate       decimal.Decimal      `gorm:"type:numeric(6,3);default:0" json:"tax_rate"`
	GratuityRate  decimal.Decimal      `gorm:"type:numeric(6,3);default:0" json:"gratuity_rate"`
	Discount      decimal.Decimal      `gorm:"type:numeric(12,3);default:0" json:"discount"`
	DiscountType  pricing.DiscountType `gorm:"size:20;default:'FIXED'" json:"discount_type"`
	DepositType   pricing.DepositType  `gorm:"size:20;default:'PERCENTAGE'" json:"deposit_type"`
	DepositValue  decimal.Decimal      `gorm:"type:numeric(12,3);default:0" json:"deposit_value"`
	Notes         *string              `gorm:"type:text" json:"notes,omitempty"`
	SentAt        *time.Time           `json:"sent_at,omitempty"`

	// Persisted totals, rounded to cents
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"subtotal"`
	TaxableAmount  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"taxable_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"discount_amount"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"tax_amount"`
	GratuityAmount decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"gratuity_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"total_amount"`
	DepositAmount  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"deposit_amount"`
	BalanceDue     decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"balance_due"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items    []QuoteItem `gorm:"foreignKey:QuoteID" json:"items,omitempty"`
	Payments []Payment   `gorm:"foreignKey:QuoteID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// LineItems converts the stored items into pricing line items
func (q *Quote) LineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, item.LineItem())
	}
	return items
}

// PricingOptions returns the quote-level modifiers including recorded payments
func (q *Quote) PricingOptions() pricing.Options {
	payments := make([]decimal.Decimal, 0, len(q.Payments))
	for _, p := range q.Payments {
		payments = append(payments, p.Amount)
	}
	return pricing.Options{
		TaxRate:      q.TaxRate,
		GratuityRate: q.GratuityRate,
		Discount:     q.Discount,
		DiscountType: q.DiscountType,
		Deposit:      pricing.Deposit{Type: q.DepositType, Value: q.DepositValue},
		Payments:     payments,
	}
}

// ApplyTotals stores t on the quote, rounded to cents
func (q *Quote) ApplyTotals(t pricing.Totals) {
	r := t.Rounded()
	q.Subtotal = r.Subtotal
	q.TaxableAmount = r.TaxableAmount
	q.DiscountAmount = r.DiscountAmount
	q.TaxAmount = r.Tax
	q.GratuityAmount = r.Gratuity
	q.TotalAmount = r.Total
	q.DepositAmount = r.Deposit
	q.BalanceDue = r.Balance
}

// AmountPaid sums the recorded payments
func (q *Quote) AmountPaid() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range q.Payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// QuoteItem represents a billable line on a quote
type QuoteItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"quote_id"`
	Category    pricing.Category `gorm:"size:20;not null" json:"category"`
	Description string           `gorm:"size:255" json:"description"`
	Quantity    int              `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Hours       *decimal.Decimal `gorm:"type:numeric(6,2)" json:"hours,omitempty"`
	Taxable     bool             `gorm:"default:false" json:"taxable"`
	IsOptional  bool             `gorm:"default:false" json:"is_optional"`
	SortOrder   int              `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new quote item
func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}

// LineItem converts the stored row into a pricing line item
func (qi QuoteItem) LineItem() pricing.LineItem {
	return pricing.LineItem{
		ID:          qi.ID.String(),
		Category:    qi.Category,
		Description: qi.Description,
		Quantity:    qi.Quantity,
		UnitPrice:   qi.UnitPrice,
		Hours:       qi.Hours,
		Taxable:     qi.Taxable,
		IsOptional:  qi.IsOptional,
	}
}

// Payment records money received against a quote
type Payment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"quote_id"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method    string          `gorm:"size:50" json:"method"`
	Reference string          `gorm:"size:255" json:"reference"`
	Note      *string         `gorm:"type:text" json:"note,omitempty"`
	PaidAt    time.Time       `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

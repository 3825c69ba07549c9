package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuotePackage is a per-guest menu package offered on quotes
type QuotePackage struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	PricePerPerson decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_per_person"`
	MinGuests      int             `gorm:"default:0" json:"min_guests"`
	Taxable        bool            `gorm:"not null" json:"taxable"`
	IsActive       bool            `gorm:"not null" json:"is_active"`
	SortOrder      int             `gorm:"default:0" json:"sort_order"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new package
func (p *QuotePackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotePackage model
func (QuotePackage) TableName() string {
	return "quote_packages"
}

// QuoteItemPreset is a reusable equipment or add-on line
type QuoteItemPreset struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name        string           `gorm:"size:255;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Category    pricing.Category `gorm:"size:20;not null;default:'item'" json:"category"`
	UnitPrice   decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Taxable     bool             `gorm:"not null" json:"taxable"`
	IsActive    bool             `gorm:"not null" json:"is_active"`
	SortOrder   int              `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new item preset
func (p *QuoteItemPreset) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItemPreset model
func (QuoteItemPreset) TableName() string {
	return "quote_item_presets"
}

// LaborRate is the hourly rate for a staff role
type LaborRate struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Role         string           `gorm:"size:255;not null" json:"role"`
	HourlyRate   decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"hourly_rate"`
	DefaultHours *decimal.Decimal `gorm:"type:numeric(6,2)" json:"default_hours,omitempty"`
	Taxable      bool             `gorm:"default:false" json:"taxable"`
	IsActive     bool             `gorm:"not null" json:"is_active"`
	SortOrder    int              `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new labor rate
func (l *LaborRate) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LaborRate model
func (LaborRate) TableName() string {
	return "labor_rates"
}

// TaxRate is a named sales tax percentage
type TaxRate struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Rate      decimal.Decimal `gorm:"type:numeric(6,3);not null" json:"rate"`
	IsDefault bool            `gorm:"default:false" json:"is_default"`
	IsActive  bool            `gorm:"not null" json:"is_active"`
	SortOrder int             `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax rate
func (t *TaxRate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxRate model
func (TaxRate) TableName() string {
	return "tax_rates"
}

// GratuityRule applies a gratuity percentage once an event reaches MinGuests
type GratuityRule struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Rate      decimal.Decimal `gorm:"type:numeric(6,3);not null" json:"rate"`
	MinGuests int             `gorm:"default:0" json:"min_guests"`
	AutoApply bool            `gorm:"default:false" json:"auto_apply"`
	IsActive  bool            `gorm:"not null" json:"is_active"`
	SortOrder int             `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new gratuity rule
func (g *GratuityRule) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the GratuityRule model
func (GratuityRule) TableName() string {
	return "gratuity_rules"
}

// Applies reports whether the rule kicks in automatically for guests
func (g GratuityRule) Applies(guests int) bool {
	return g.IsActive && g.AutoApply && guests >= g.MinGuests
}

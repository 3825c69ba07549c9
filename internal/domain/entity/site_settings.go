package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SiteSettings holds the business profile and quoting defaults. There is a
// single row.
type SiteSettings struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessName  string    `gorm:"size:255" json:"business_name"`
	BusinessEmail string    `gorm:"size:255" json:"business_email"`
	BusinessPhone string    `gorm:"size:50" json:"business_phone"`
	Address       string    `gorm:"type:text" json:"address"`
	Currency      string    `gorm:"size:10;default:'USD'" json:"currency"`
	HeroTitle     string    `gorm:"size:255" json:"hero_title"`
	HeroSubtitle  string    `gorm:"type:text" json:"hero_subtitle"`

	// Quoting defaults
	DefaultTaxRate      decimal.Decimal `gorm:"type:numeric(6,3);default:0" json:"default_tax_rate"`
	DefaultGratuityRate decimal.Decimal `gorm:"type:numeric(6,3);default:0" json:"default_gratuity_rate"`
	DefaultDepositRate  decimal.Decimal `gorm:"type:numeric(6,3);not null" json:"default_deposit_rate"`

	SocialLinks SocialLinks `gorm:"type:text" json:"social_links"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the settings row
func (s *SiteSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SiteSettings model
func (SiteSettings) TableName() string {
	return "site_settings"
}

// SocialLinks holds public profile URLs
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Yelp      string `json:"yelp,omitempty"`
}

// Scan implements the sql.Scanner interface for SocialLinks
func (sl *SocialLinks) Scan(value interface{}) error {
	if value == nil {
		*sl = SocialLinks{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan SocialLinks: unsupported type")
	}

	return json.Unmarshal(bytes, sl)
}

// Value implements the driver.Valuer interface for SocialLinks
func (sl SocialLinks) Value() (driver.Value, error) {
	b, err := json.Marshal(sl)
	return string(b), err
}

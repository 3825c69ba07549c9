package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known template slugs
const (
	TemplateQuote               = "quote"
	TemplateApplicationReceived = "application_received"
)

// EmailTemplate is an editable html/template used for outgoing mail
type EmailTemplate struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Slug        string         `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Subject     string         `gorm:"size:500;not null" json:"subject"`
	Body        string         `gorm:"type:text;not null" json:"body"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new template
func (t *EmailTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EmailTemplate model
func (EmailTemplate) TableName() string {
	return "email_templates"
}

// Email delivery outcomes
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog records a single delivery attempt
type EmailLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Recipient    string     `gorm:"size:255;not null;index" json:"recipient"`
	Subject      string     `gorm:"size:500" json:"subject"`
	TemplateSlug string     `gorm:"size:100;index" json:"template_slug"`
	Provider     string     `gorm:"size:50" json:"provider"`
	Status       string     `gorm:"size:20;not null;index" json:"status"`
	Error        *string    `gorm:"type:text" json:"error,omitempty"`
	QuoteID      *uuid.UUID `gorm:"type:uuid;index" json:"quote_id,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new log entry
func (l *EmailLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EmailLog model
func (EmailLog) TableName() string {
	return "email_logs"
}

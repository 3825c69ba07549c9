package request

import (
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// MenuItemRequest represents a menu item create or update request
type MenuItemRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"max=100"`
	Price       decimal.Decimal `json:"price"`
	DietaryTags []string        `json:"dietary_tags"`
	IsAvailable *bool           `json:"is_available"`
	SortOrder   int             `json:"sort_order"`
	ImageURL    *string         `json:"image_url" binding:"omitempty,url,max=500"`
}

// MenuFilterRequest represents menu list parameters
type MenuFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	Available *bool  `form:"available"`
}

// JobApplicationRequest is the public careers form
type JobApplicationRequest struct {
	FirstName    string  `json:"first_name" binding:"required,max=100"`
	LastName     string  `json:"last_name" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email,max=255"`
	Phone        string  `json:"phone" binding:"max=50"`
	Position     string  `json:"position" binding:"required,max=255"`
	Availability string  `json:"availability" binding:"max=255"`
	Experience   string  `json:"experience"`
	ResumeURL    *string `json:"resume_url" binding:"omitempty,url,max=500"`
}

// JobApplicationFilterRequest represents application list parameters
type JobApplicationFilterRequest struct {
	Search   string `form:"search"`
	Position string `form:"position"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// ApplicationStatusRequest moves an application through review
type ApplicationStatusRequest struct {
	Status *enum.ApplicationStatus `json:"status" binding:"required"`
}

// NotesRequest replaces reviewer notes
type NotesRequest struct {
	Notes string `json:"notes"`
}

// EmailTemplateRequest represents an email template create or update request
type EmailTemplateRequest struct {
	Slug        string `json:"slug" binding:"required,max=100"`
	Name        string `json:"name" binding:"required,max=255"`
	Subject     string `json:"subject" binding:"required,max=500"`
	Body        string `json:"body"`
	Description string `json:"description"`
}

// TemplateDataRequest carries sample data for previewing a template
type TemplateDataRequest struct {
	Data map[string]interface{} `json:"data"`
}

// SendTemplateRequest renders a template and delivers it to one recipient
type SendTemplateRequest struct {
	To   string                 `json:"to" binding:"required,email"`
	Data map[string]interface{} `json:"data"`
}

// EmailLogFilterRequest represents email log list parameters
type EmailLogFilterRequest struct {
	Recipient string `form:"recipient"`
	Status    string `form:"status"`
	QuoteID   string `form:"quote_id"`
	Cursor    string `form:"cursor"`
	Limit     int    `form:"limit"`
}

// SettingsRequest replaces the site settings
type SettingsRequest struct {
	BusinessName        string             `json:"business_name" binding:"max=255"`
	BusinessEmail       string             `json:"business_email" binding:"omitempty,email"`
	BusinessPhone       string             `json:"business_phone" binding:"max=50"`
	Address             string             `json:"address"`
	Currency            string             `json:"currency" binding:"omitempty,len=3"`
	HeroTitle           string             `json:"hero_title" binding:"max=255"`
	HeroSubtitle        string             `json:"hero_subtitle"`
	DefaultTaxRate      decimal.Decimal    `json:"default_tax_rate"`
	DefaultGratuityRate decimal.Decimal    `json:"default_gratuity_rate"`
	DefaultDepositRate  decimal.Decimal    `json:"default_deposit_rate"`
	SocialLinks         entity.SocialLinks `json:"social_links"`
}

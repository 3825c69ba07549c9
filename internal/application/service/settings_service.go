package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/config"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/repository"
	"github.com/sangkips/catering-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SettingsService handles the site settings singleton
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	business     config.BusinessConfig
}

// NewSettingsService creates a new settings service. business seeds the
// profile the first time settings are read.
func NewSettingsService(settingsRepo repository.SettingsRepository, business config.BusinessConfig) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		business:     business,
	}
}

// GetSettings retrieves the settings, creating defaults if none exist
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.SiteSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.SiteSettings{
			BusinessName:        s.business.Name,
			BusinessEmail:       s.business.Email,
			BusinessPhone:       s.business.Phone,
			Address:             s.business.Address,
			Currency:            "USD",
			DefaultTaxRate:      decimal.Zero,
			DefaultGratuityRate: decimal.Zero,
			DefaultDepositRate:  decimal.NewFromInt(50),
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	BusinessName        string
	BusinessEmail       string
	BusinessPhone       string
	Address             string
	Currency            string
	HeroTitle           string
	HeroSubtitle        string
	DefaultTaxRate      decimal.Decimal
	DefaultGratuityRate decimal.Decimal
	DefaultDepositRate  decimal.Decimal
	SocialLinks         entity.SocialLinks
}

// UpdateSettings replaces the settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.SiteSettings, error) {
	var fields apperror.Fields
	checkPercent(&fields, "default_tax_rate", input.DefaultTaxRate)
	checkPercent(&fields, "default_gratuity_rate", input.DefaultGratuityRate)
	checkPercent(&fields, "default_deposit_rate", input.DefaultDepositRate)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.SiteSettings{}
	}

	settings.BusinessName = input.BusinessName
	settings.BusinessEmail = input.BusinessEmail
	settings.BusinessPhone = input.BusinessPhone
	settings.Address = input.Address
	settings.Currency = input.Currency
	if settings.Currency == "" {
		settings.Currency = "USD"
	}
	settings.HeroTitle = input.HeroTitle
	settings.HeroSubtitle = input.HeroSubtitle
	settings.DefaultTaxRate = input.DefaultTaxRate
	settings.DefaultGratuityRate = input.DefaultGratuityRate
	settings.DefaultDepositRate = input.DefaultDepositRate
	settings.SocialLinks = input.SocialLinks

	if settings.ID == uuid.Nil {
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	} else {
		if err := s.settingsRepo.Update(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

var hundred = decimal.NewFromInt(100)

func checkPercent(fields *apperror.Fields, field string, v decimal.Decimal) {
	if v.IsNegative() || v.GreaterThan(hundred) {
		fields.Add(field, "must be between 0 and 100")
	}
}

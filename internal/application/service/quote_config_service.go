package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/pricing"
	"github.com/sangkips/catering-api/internal/domain/repository"
	"github.com/sangkips/catering-api/pkg/apperror"
)

// CatalogService provides CRUD over one quote configuration table
type CatalogService[T repository.CatalogEntity] struct {
	repo     repository.CatalogRepository[T]
	resource string
	validate func(item *T, fields *apperror.Fields)
}

// NewCatalogService creates a catalog service. resource names the entity in
// not found errors.
func NewCatalogService[T repository.CatalogEntity](
	repo repository.CatalogRepository[T],
	resource string,
	validate func(item *T, fields *apperror.Fields),
) *CatalogService[T] {
	return &CatalogService[T]{repo: repo, resource: resource, validate: validate}
}

func (s *CatalogService[T]) check(item *T) error {
	var fields apperror.Fields
	if s.validate != nil {
		s.validate(item, &fields)
	}
	return fields.Err()
}

// Create validates and stores item
func (s *CatalogService[T]) Create(ctx context.Context, item *T) (*T, error) {
	if err := s.check(item); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get retrieves an entry by ID
func (s *CatalogService[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError(s.resource)
	}
	return item, nil
}

// List returns entries in display order
func (s *CatalogService[T]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	items, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Update replaces every field of the entry with item
func (s *CatalogService[T]) Update(ctx context.Context, id uuid.UUID, item *T) (*T, error) {
	if err := s.check(item); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, item); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes an entry
func (s *CatalogService[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// QuoteConfigService groups the catalogs the quote editor draws from
type QuoteConfigService struct {
	Packages      *CatalogService[entity.QuotePackage]
	Items         *CatalogService[entity.QuoteItemPreset]
	Labor         *CatalogService[entity.LaborRate]
	TaxRates      *CatalogService[entity.TaxRate]
	GratuityRules *CatalogService[entity.GratuityRule]
}

// NewQuoteConfigService creates a new quote config service
func NewQuoteConfigService(
	packages repository.CatalogRepository[entity.QuotePackage],
	items repository.CatalogRepository[entity.QuoteItemPreset],
	labor repository.CatalogRepository[entity.LaborRate],
	taxRates repository.CatalogRepository[entity.TaxRate],
	gratuityRules repository.CatalogRepository[entity.GratuityRule],
) *QuoteConfigService {
	return &QuoteConfigService{
		Packages:      NewCatalogService(packages, "Package", validatePackage),
		Items:         NewCatalogService(items, "Item preset", validateItemPreset),
		Labor:         NewCatalogService(labor, "Labor rate", validateLaborRate),
		TaxRates:      NewCatalogService(taxRates, "Tax rate", validateTaxRate),
		GratuityRules: NewCatalogService(gratuityRules, "Gratuity rule", validateGratuityRule),
	}
}

// QuoteConfig is every catalog the quote editor needs in one payload
type QuoteConfig struct {
	Packages      []entity.QuotePackage    `json:"packages"`
	Items         []entity.QuoteItemPreset `json:"items"`
	Labor         []entity.LaborRate       `json:"labor"`
	TaxRates      []entity.TaxRate         `json:"tax_rates"`
	GratuityRules []entity.GratuityRule    `json:"gratuity_rules"`
}

// All loads the five catalogs
func (s *QuoteConfigService) All(ctx context.Context, activeOnly bool) (*QuoteConfig, error) {
	var (
		cfg QuoteConfig
		err error
	)
	if cfg.Packages, err = s.Packages.List(ctx, activeOnly); err != nil {
		return nil, err
	}
	if cfg.Items, err = s.Items.List(ctx, activeOnly); err != nil {
		return nil, err
	}
	if cfg.Labor, err = s.Labor.List(ctx, activeOnly); err != nil {
		return nil, err
	}
	if cfg.TaxRates, err = s.TaxRates.List(ctx, activeOnly); err != nil {
		return nil, err
	}
	if cfg.GratuityRules, err = s.GratuityRules.List(ctx, activeOnly); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func requireName(fields *apperror.Fields, field, v string) {
	if strings.TrimSpace(v) == "" {
		fields.Add(field, "is required")
	}
}

func validatePackage(p *entity.QuotePackage, fields *apperror.Fields) {
	requireName(fields, "name", p.Name)
	checkAmount(fields, "price_per_person", p.PricePerPerson)
	if p.MinGuests < 0 {
		fields.Add("min_guests", "must not be negative")
	}
}

func validateItemPreset(p *entity.QuoteItemPreset, fields *apperror.Fields) {
	requireName(fields, "name", p.Name)
	checkAmount(fields, "unit_price", p.UnitPrice)
	if p.Category == "" {
		p.Category = pricing.CategoryItem
	}
	if !p.Category.Valid() || p.Category == pricing.CategoryLabor {
		fields.Add("category", "is not a known item category")
	}
}

func validateLaborRate(l *entity.LaborRate, fields *apperror.Fields) {
	requireName(fields, "role", l.Role)
	checkAmount(fields, "hourly_rate", l.HourlyRate)
	if l.DefaultHours != nil {
		checkAmount(fields, "default_hours", *l.DefaultHours)
	}
}

func validateTaxRate(r *entity.TaxRate, fields *apperror.Fields) {
	requireName(fields, "name", r.Name)
	checkPercent(fields, "rate", r.Rate)
}

func validateGratuityRule(r *entity.GratuityRule, fields *apperror.Fields) {
	requireName(fields, "name", r.Name)
	checkPercent(fields, "rate", r.Rate)
	if r.MinGuests < 0 {
		fields.Add("min_guests", "must not be negative")
	}
}

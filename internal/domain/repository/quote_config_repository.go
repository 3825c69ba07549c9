package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
)

// CatalogEntity lists the quote configuration models
type CatalogEntity interface {
	entity.QuotePackage | entity.QuoteItemPreset | entity.LaborRate | entity.TaxRate | entity.GratuityRule
}

// CatalogRepository defines CRUD access to a quote configuration table.
// List returns rows ordered by sort order then creation time.
type CatalogRepository[T CatalogEntity] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, id uuid.UUID, item *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]T, error)
}

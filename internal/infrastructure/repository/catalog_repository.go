package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domainRepo "github.com/sangkips/catering-api/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository[T domainRepo.CatalogEntity] struct {
	db *gorm.DB
}

// NewCatalogRepository creates a repository for one quote configuration table
func NewCatalogRepository[T domainRepo.CatalogEntity](db *gorm.DB) domainRepo.CatalogRepository[T] {
	return &catalogRepository[T]{db: db}
}

func (r *catalogRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update writes every column of item, zero values included, to the row id
func (r *catalogRepository[T]) Update(ctx context.Context, id uuid.UUID, item *T) error {
	return r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at", "deleted_at").
		Updates(item).Error
}

func (r *catalogRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var item T
	return r.db.WithContext(ctx).Delete(&item, "id = ?", id).Error
}

func (r *catalogRepository[T]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).
		Scopes(ActiveOnly(activeOnly)).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

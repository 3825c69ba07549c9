package repository

import (
	"context"
	"errors"

	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the single settings row
func (r *settingsRepository) Get(ctx context.Context) (*entity.SiteSettings, error) {
	var settings entity.SiteSettings
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// Create stores the settings row
func (r *settingsRepository) Create(ctx context.Context, settings *entity.SiteSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

// Update saves the settings row
func (r *settingsRepository) Update(ctx context.Context, settings *entity.SiteSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

package repository

import (
	"context"

	"github.com/sangkips/catering-api/internal/domain/entity"
)

// SettingsRepository defines the interface for site settings data access
type SettingsRepository interface {
	// Get returns the settings row, or nil when none has been created
	Get(ctx context.Context) (*entity.SiteSettings, error)
	Create(ctx context.Context, settings *entity.SiteSettings) error
	Update(ctx context.Context, settings *entity.SiteSettings) error
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	domainRepo "github.com/sangkips/catering-api/internal/domain/repository"
	"gorm.io/gorm"
)

type emailTemplateRepository struct {
	db *gorm.DB
}

// NewEmailTemplateRepository creates a new email template repository
func NewEmailTemplateRepository(db *gorm.DB) domainRepo.EmailTemplateRepository {
	return &emailTemplateRepository{db: db}
}

func (r *emailTemplateRepository) Create(ctx context.Context, template *entity.EmailTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *emailTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailTemplate, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *emailTemplateRepository) GetBySlug(ctx context.Context, slug string) (*entity.EmailTemplate, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *emailTemplateRepository) Update(ctx context.Context, template *entity.EmailTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// Delete removes the row outright so the slug can be reused
func (r *emailTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&entity.EmailTemplate{}, "id = ?", id).Error
}

func (r *emailTemplateRepository) List(ctx context.Context) ([]entity.EmailTemplate, error) {
	var templates []entity.EmailTemplate
	err := r.db.WithContext(ctx).Order("slug ASC").Find(&templates).Error
	return templates, err
}

func (r *emailTemplateRepository) first(ctx context.Context, query string, arg interface{}) (*entity.EmailTemplate, error) {
	var template entity.EmailTemplate
	err := r.db.WithContext(ctx).Where(query, arg).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

type emailLogRepository struct {
	db *gorm.DB
}

// NewEmailLogRepository creates a new email log repository
func NewEmailLogRepository(db *gorm.DB) domainRepo.EmailLogRepository {
	return &emailLogRepository{db: db}
}

func (r *emailLogRepository) Create(ctx context.Context, log *entity.EmailLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *emailLogRepository) List(ctx context.Context, params *domainRepo.EmailLogFilterParams) ([]entity.EmailLog, error) {
	var logs []entity.EmailLog

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.EmailLog{})

	if params.Recipient != "" {
		query = query.Where("recipient = ?", params.Recipient)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.QuoteID != nil {
		query = query.Where("quote_id = ?", *params.QuoteID)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	err = query.Order("created_at DESC").Order("id DESC").
		Limit(params.Cursor.Limit + 1).
		Find(&logs).Error
	return logs, err
}

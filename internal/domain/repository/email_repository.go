package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/pkg/pagination"
)

// EmailTemplateRepository defines the interface for email template data operations
type EmailTemplateRepository interface {
	Create(ctx context.Context, template *entity.EmailTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailTemplate, error)
	GetBySlug(ctx context.Context, slug string) (*entity.EmailTemplate, error)
	Update(ctx context.Context, template *entity.EmailTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.EmailTemplate, error)
}

// EmailLogRepository records delivery attempts
type EmailLogRepository interface {
	Create(ctx context.Context, log *entity.EmailLog) error
	// List returns newest first, fetching one extra row past the limit
	List(ctx context.Context, params *EmailLogFilterParams) ([]entity.EmailLog, error)
}

// EmailLogFilterParams contains filtering parameters for email log queries
type EmailLogFilterParams struct {
	Cursor    *pagination.CursorParams
	Recipient string
	Status    string
	QuoteID   *uuid.UUID
}

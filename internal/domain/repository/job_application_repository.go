package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/enum"
	"github.com/sangkips/catering-api/pkg/pagination"
)

// JobApplicationRepository defines the interface for job application data operations
type JobApplicationRepository interface {
	Create(ctx context.Context, application *entity.JobApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error)
	Update(ctx context.Context, application *entity.JobApplication) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *JobApplicationFilterParams) ([]entity.JobApplication, int64, error)
}

// JobApplicationFilterParams contains filtering parameters for application queries
type JobApplicationFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Position   string
	Status     *enum.ApplicationStatus
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	domainRepo "github.com/sangkips/catering-api/internal/domain/repository"
	"gorm.io/gorm"
)

type jobApplicationRepository struct {
	db *gorm.DB
}

// NewJobApplicationRepository creates a new job application repository
func NewJobApplicationRepository(db *gorm.DB) domainRepo.JobApplicationRepository {
	return &jobApplicationRepository{db: db}
}

func (r *jobApplicationRepository) Create(ctx context.Context, application *entity.JobApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *jobApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error) {
	var application entity.JobApplication
	err := r.db.WithContext(ctx).First(&application, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *jobApplicationRepository) Update(ctx context.Context, application *entity.JobApplication) error {
	return r.db.WithContext(ctx).Save(application).Error
}

func (r *jobApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.JobApplication{}, "id = ?", id).Error
}

func (r *jobApplicationRepository) List(ctx context.Context, params *domainRepo.JobApplicationFilterParams) ([]entity.JobApplication, int64, error) {
	var applications []entity.JobApplication
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.JobApplication{}).
		Scopes(Search(params.Search, "first_name", "last_name", "email"))

	if params.Position != "" {
		query = query.Where("position = ?", params.Position)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Order("created_at DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&applications).Error

	return applications, total, err
}

package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/enum"
	"github.com/sangkips/catering-api/internal/domain/repository"
	"github.com/sangkips/catering-api/pkg/apperror"
	"github.com/sangkips/catering-api/pkg/logger"
	"github.com/sangkips/catering-api/pkg/pagination"
	"go.uber.org/zap"
)

// JobApplicationService handles careers submissions and their review
type JobApplicationService struct {
	applicationRepo repository.JobApplicationRepository
	templateRepo    repository.EmailTemplateRepository
	settings        *SettingsService
	mail            *EmailService
}

// NewJobApplicationService creates a new job application service
func NewJobApplicationService(
	applicationRepo repository.JobApplicationRepository,
	templateRepo repository.EmailTemplateRepository,
	settings *SettingsService,
	mail *EmailService,
) *JobApplicationService {
	return &JobApplicationService{
		applicationRepo: applicationRepo,
		templateRepo:    templateRepo,
		settings:        settings,
		mail:            mail,
	}
}

// SubmitApplicationInput represents a careers form submission
type SubmitApplicationInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Position     string
	Availability string
	Experience   string
	ResumeURL    *string
}

// applicationEmail is the data the acknowledgement template renders
type applicationEmail struct {
	FirstName    string
	LastName     string
	Position     string
	BusinessName string
}

// Submit stores an application and acknowledges it by email when the
// application_received template exists. Delivery failures are logged only.
func (s *JobApplicationService) Submit(ctx context.Context, input *SubmitApplicationInput) (*entity.JobApplication, error) {
	var fields apperror.Fields
	requireName(&fields, "first_name", input.FirstName)
	requireName(&fields, "last_name", input.LastName)
	requireName(&fields, "position", input.Position)
	if _, err := mail.ParseAddress(input.Email); err != nil {
		fields.Add("email", "must be a valid email address")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	application := &entity.JobApplication{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        input.Phone,
		Position:     strings.TrimSpace(input.Position),
		Availability: input.Availability,
		Experience:   input.Experience,
		ResumeURL:    input.ResumeURL,
		Status:       enum.ApplicationStatusNew,
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	s.acknowledge(ctx, application)
	return application, nil
}

func (s *JobApplicationService) acknowledge(ctx context.Context, application *entity.JobApplication) {
	log := logger.FromContext(ctx).With(zap.String("application_id", application.ID.String()))

	template, err := s.templateRepo.GetBySlug(ctx, entity.TemplateApplicationReceived)
	if err != nil {
		log.Warn("failed to look up acknowledgement template", zap.Error(err))
		return
	}
	if template == nil {
		return
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		log.Warn("failed to load settings for acknowledgement", zap.Error(err))
		return
	}

	_, err = s.mail.Deliver(ctx, entity.TemplateApplicationReceived, Delivery{
		To: application.Email,
		Data: applicationEmail{
			FirstName:    application.FirstName,
			LastName:     application.LastName,
			Position:     application.Position,
			BusinessName: settings.BusinessName,
		},
	})
	if err != nil {
		log.Warn("failed to send application acknowledgement", zap.Error(err))
	}
}

// GetApplication retrieves an application by ID
func (s *JobApplicationService) GetApplication(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error) {
	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, apperror.NewNotFoundError("Job application")
	}
	return application, nil
}

// ListApplicationsInput represents the input for listing applications
type ListApplicationsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Position   string
	Status     *enum.ApplicationStatus
}

// ListApplications lists applications newest first
func (s *JobApplicationService) ListApplications(ctx context.Context, input *ListApplicationsInput) (*pagination.PaginatedResult[entity.JobApplication], error) {
	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()

	applications, total, err := s.applicationRepo.List(ctx, &repository.JobApplicationFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Position:   input.Position,
		Status:     input.Status,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(applications, pag), nil
}

// UpdateStatus moves an application through review
func (s *JobApplicationService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ApplicationStatus) (*entity.JobApplication, error) {
	if !status.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "status", Message: "is not a known application status"},
		})
	}

	application, err := s.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	application.Status = status
	if err := s.applicationRepo.Update(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// UpdateNotes replaces the reviewer notes
func (s *JobApplicationService) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*entity.JobApplication, error) {
	application, err := s.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if notes = strings.TrimSpace(notes); notes == "" {
		application.AdminNotes = nil
	} else {
		application.AdminNotes = &notes
	}
	if err := s.applicationRepo.Update(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// DeleteApplication deletes an application
func (s *JobApplicationService) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetApplication(ctx, id); err != nil {
		return err
	}
	return s.applicationRepo.Delete(ctx, id)
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/repository"
	"github.com/sangkips/catering-api/pkg/apperror"
	"github.com/sangkips/catering-api/pkg/email"
	"github.com/sangkips/catering-api/pkg/logger"
	"github.com/sangkips/catering-api/pkg/metrics"
	"github.com/sangkips/catering-api/pkg/pagination"
	"github.com/sangkips/catering-api/pkg/utils"
	"go.uber.org/zap"
)

// Mailer delivers a message and reports which provider accepted it
type Mailer interface {
	Send(ctx context.Context, msg email.Message) (string, error)
	Configured() bool
}

// EmailService manages templates and delivers templated mail
type EmailService struct {
	templateRepo repository.EmailTemplateRepository
	logRepo      repository.EmailLogRepository
	mailer       Mailer
	metrics      *metrics.Metrics
	timeout      time.Duration
}

// NewEmailService creates a new email service
func NewEmailService(
	templateRepo repository.EmailTemplateRepository,
	logRepo repository.EmailLogRepository,
	mailer Mailer,
	m *metrics.Metrics,
	timeout time.Duration,
) *EmailService {
	return &EmailService{
		templateRepo: templateRepo,
		logRepo:      logRepo,
		mailer:       mailer,
		metrics:      m,
		timeout:      timeout,
	}
}

// EmailTemplateInput represents the input for creating or updating a template
type EmailTemplateInput struct {
	Slug        string
	Name        string
	Subject     string
	Body        string
	Description string
}

func (in *EmailTemplateInput) validate() error {
	var fields apperror.Fields
	in.Slug = utils.Slugify(in.Slug)
	if in.Slug == "" {
		fields.Add("slug", "is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		fields.Add("name", "is required")
	}
	if strings.TrimSpace(in.Subject) == "" {
		fields.Add("subject", "is required")
	}
	if len(fields) == 0 {
		var tplErr *email.TemplateError
		if err := email.Parse(in.Subject, in.Body); errors.As(err, &tplErr) {
			fields.Add(tplErr.Part, tplErr.Err.Error())
		}
	}
	return fields.Err()
}

// CreateTemplate creates a new template with a unique slug
func (s *EmailService) CreateTemplate(ctx context.Context, input *EmailTemplateInput) (*entity.EmailTemplate, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.templateRepo.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A template with this slug already exists")
	}

	template := &entity.EmailTemplate{
		Slug:        input.Slug,
		Name:        input.Name,
		Subject:     input.Subject,
		Body:        input.Body,
		Description: input.Description,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// GetTemplate retrieves a template by ID
func (s *EmailService) GetTemplate(ctx context.Context, id uuid.UUID) (*entity.EmailTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperror.NewNotFoundError("Email template")
	}
	return template, nil
}

// ListTemplates returns every template ordered by slug
func (s *EmailService) ListTemplates(ctx context.Context) ([]entity.EmailTemplate, error) {
	return s.templateRepo.List(ctx)
}

// UpdateTemplate replaces a template's content
func (s *EmailService) UpdateTemplate(ctx context.Context, id uuid.UUID, input *EmailTemplateInput) (*entity.EmailTemplate, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Slug != template.Slug {
		existing, err := s.templateRepo.GetBySlug(ctx, input.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A template with this slug already exists")
		}
	}

	template.Slug = input.Slug
	template.Name = input.Name
	template.Subject = input.Subject
	template.Body = input.Body
	template.Description = input.Description
	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// DeleteTemplate removes a template
func (s *EmailService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTemplate(ctx, id); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, id)
}

// RenderedEmail is a template rendered against sample data
type RenderedEmail struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// PreviewTemplate renders the template without sending it
func (s *EmailService) PreviewTemplate(ctx context.Context, id uuid.UUID, data map[string]interface{}) (*RenderedEmail, error) {
	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	subject, html, err := email.Render(template.Subject, template.Body, data)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	return &RenderedEmail{Subject: subject, HTML: html}, nil
}

// SendTemplate renders the template and delivers it to a single recipient
func (s *EmailService) SendTemplate(ctx context.Context, id uuid.UUID, to string, data map[string]interface{}) (*entity.EmailLog, error) {
	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, template, Delivery{To: to, Data: data})
}

// Delivery describes a templated message to send
type Delivery struct {
	To          string
	Data        interface{}
	Attachments []email.Attachment
	QuoteID     *uuid.UUID
}

// Deliver sends the template identified by slug
func (s *EmailService) Deliver(ctx context.Context, slug string, d Delivery) (*entity.EmailLog, error) {
	template, err := s.templateRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperror.NewNotFoundError("Email template " + slug)
	}
	return s.deliver(ctx, template, d)
}

func (s *EmailService) deliver(ctx context.Context, template *entity.EmailTemplate, d Delivery) (*entity.EmailLog, error) {
	if !s.mailer.Configured() {
		return nil, apperror.ErrMailUnavailable
	}

	data := d.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	subject, html, err := email.Render(template.Subject, template.Body, data)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	sendCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	provider, sendErr := s.mailer.Send(sendCtx, email.Message{
		To:          []string{d.To},
		Subject:     subject,
		HTML:        html,
		Attachments: d.Attachments,
	})

	entry := &entity.EmailLog{
		Recipient:    d.To,
		Subject:      subject,
		TemplateSlug: template.Slug,
		Provider:     provider,
		Status:       entity.EmailStatusSent,
		QuoteID:      d.QuoteID,
	}
	if sendErr != nil {
		msg := sendErr.Error()
		entry.Status = entity.EmailStatusFailed
		entry.Error = &msg
		entry.Provider = "none"
	}
	s.metrics.EmailSent(entry.Provider, entry.Status)

	log := logger.FromContext(ctx)
	if err := s.logRepo.Create(ctx, entry); err != nil {
		log.Error("failed to record email log", zap.String("template", template.Slug), zap.Error(err))
	}

	if sendErr != nil {
		log.Error("email delivery failed", zap.String("template", template.Slug), zap.String("to", d.To), zap.Error(sendErr))
		if errors.Is(sendErr, email.ErrNotConfigured) {
			return entry, apperror.ErrMailUnavailable
		}
		var appErr *apperror.AppError
		if errors.As(sendErr, &appErr) {
			return entry, appErr
		}
		if isInvalidMessage(sendErr) {
			return entry, apperror.NewBadRequestError(sendErr.Error())
		}
		return entry, apperror.NewBadGatewayError("Email delivery failed")
	}

	log.Info("email sent", zap.String("template", template.Slug), zap.String("provider", provider))
	return entry, nil
}

func isInvalidMessage(err error) bool {
	return strings.HasPrefix(err.Error(), "email: ")
}

// EmailLogFilter contains filtering parameters for listing delivery logs
type EmailLogFilter struct {
	Cursor    *pagination.CursorParams
	Recipient string
	Status    string
	QuoteID   *uuid.UUID
}

// ListLogs returns delivery logs newest first using cursor pagination
func (s *EmailService) ListLogs(ctx context.Context, filter *EmailLogFilter) (*pagination.CursorPaginatedResult[entity.EmailLog], error) {
	if filter.Cursor == nil {
		filter.Cursor = pagination.DefaultCursorParams()
	}
	filter.Cursor.Validate()

	logs, err := s.logRepo.List(ctx, &repository.EmailLogFilterParams{
		Cursor:    filter.Cursor,
		Recipient: filter.Recipient,
		Status:    filter.Status,
		QuoteID:   filter.QuoteID,
	})
	if err != nil {
		if strings.HasPrefix(err.Error(), "invalid cursor") {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		return nil, err
	}

	return pagination.NewCursorPagination(logs, filter.Cursor, func(l entity.EmailLog) pagination.Cursor {
		return pagination.Cursor{CreatedAt: l.CreatedAt, ID: l.ID.String()}
	}), nil
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/application/service"
	"github.com/sangkips/catering-api/internal/presentation/http/dto/request"
	"github.com/sangkips/catering-api/internal/presentation/http/dto/response"
	"github.com/sangkips/catering-api/pkg/pagination"
)

// EmailHandler handles email templates and the delivery log
type EmailHandler struct {
	emailService *service.EmailService
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(emailService *service.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

func toTemplateInput(req *request.EmailTemplateRequest) *service.EmailTemplateInput {
	return &service.EmailTemplateInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Subject:     req.Subject,
		Body:        req.Body,
		Description: req.Description,
	}
}

// ListTemplates handles listing email templates
// @Summary List Email Templates
// @Tags email
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /email-templates [get]
func (h *EmailHandler) ListTemplates(c *gin.Context) {
	templates, err := h.emailService.ListTemplates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Email templates retrieved successfully", templates)
}

// GetTemplate handles getting a single template
func (h *EmailHandler) GetTemplate(c *gin.Context) {
	id, ok := parseID(c, "email template")
	if !ok {
		return
	}

	template, err := h.emailService.GetTemplate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Email template retrieved successfully", template)
}

// CreateTemplate handles creating a template
// @Summary Create Email Template
// @Tags email
// @Accept json
// @Produce json
// @Param request body request.EmailTemplateRequest true "Template"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /email-templates [post]
func (h *EmailHandler) CreateTemplate(c *gin.Context) {
	var req request.EmailTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	template, err := h.emailService.CreateTemplate(c.Request.Context(), toTemplateInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Email template created successfully", template)
}

// UpdateTemplate handles replacing a template
func (h *EmailHandler) UpdateTemplate(c *gin.Context) {
	id, ok := parseID(c, "email template")
	if !ok {
		return
	}

	var req request.EmailTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	template, err := h.emailService.UpdateTemplate(c.Request.Context(), id, toTemplateInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Email template updated successfully", template)
}

// DeleteTemplate handles deleting a template
func (h *EmailHandler) DeleteTemplate(c *gin.Context) {
	id, ok := parseID(c, "email template")
	if !ok {
		return
	}

	if err := h.emailService.DeleteTemplate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Preview handles rendering a template against sample data
// @Summary Preview Email Template
// @Tags email
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body request.TemplateDataRequest false "Sample data"
// @Success 200 {object} response.APIResponse
// @Router /email-templates/{id}/preview [post]
func (h *EmailHandler) Preview(c *gin.Context) {
	id, ok := parseID(c, "email template")
	if !ok {
		return
	}

	var req request.TemplateDataRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	rendered, err := h.emailService.PreviewTemplate(c.Request.Context(), id, req.Data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Email template rendered successfully", rendered)
}

// Send handles rendering a template and delivering it
// @Summary Send Email Template
// @Tags email
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body request.SendTemplateRequest true "Recipient and data"
// @Success 200 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /email-templates/{id}/send [post]
func (h *EmailHandler) Send(c *gin.Context) {
	id, ok := parseID(c, "email template")
	if !ok {
		return
	}

	var req request.SendTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.emailService.SendTemplate(c.Request.Context(), id, req.To, req.Data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Email sent successfully", entry)
}

// Logs handles listing the delivery log
// @Summary List Email Logs
// @Tags email
// @Produce json
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Param recipient query string false "Recipient"
// @Param status query string false "sent or failed"
// @Param quote_id query string false "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /email-logs [get]
func (h *EmailHandler) Logs(c *gin.Context) {
	var req request.EmailLogFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := &service.EmailLogFilter{
		Cursor:    &pagination.CursorParams{Cursor: req.Cursor, Limit: req.Limit},
		Recipient: req.Recipient,
		Status:    req.Status,
	}
	if req.QuoteID != "" {
		quoteID, err := uuid.Parse(req.QuoteID)
		if err != nil {
			response.BadRequest(c, "Invalid quote ID")
			return
		}
		filter.QuoteID = &quoteID
	}

	result, err := h.emailService.ListLogs(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, http.StatusOK, "Email logs retrieved successfully", result)
}

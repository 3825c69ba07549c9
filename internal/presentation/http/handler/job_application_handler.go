package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/catering-api/internal/application/service"
	"github.com/sangkips/catering-api/internal/domain/enum"
	"github.com/sangkips/catering-api/internal/presentation/http/dto/request"
	"github.com/sangkips/catering-api/internal/presentation/http/dto/response"
)

// JobApplicationHandler handles careers submissions and their review
type JobApplicationHandler struct {
	applicationService *service.JobApplicationService
}

// NewJobApplicationHandler creates a new job application handler
func NewJobApplicationHandler(applicationService *service.JobApplicationService) *JobApplicationHandler {
	return &JobApplicationHandler{applicationService: applicationService}
}

func parseApplicationStatus(s string) (enum.ApplicationStatus, bool) {
	if n, ok := parseNonNegativeInt(s); ok {
		status := enum.ApplicationStatus(n)
		return status, status.Valid()
	}
	var status enum.ApplicationStatus
	if err := status.UnmarshalJSON([]byte(strconv.Quote(s))); err != nil {
		return 0, false
	}
	return status, status.Valid()
}

// Apply handles a public careers form submission
// @Summary Submit Job Application
// @Tags careers
// @Accept json
// @Produce json
// @Param request body request.JobApplicationRequest true "Application"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /careers/apply [post]
func (h *JobApplicationHandler) Apply(c *gin.Context) {
	var req request.JobApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Submit(c.Request.Context(), &service.SubmitApplicationInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Position:     req.Position,
		Availability: req.Availability,
		Experience:   req.Experience,
		ResumeURL:    req.ResumeURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Application submitted successfully", application)
}

// List handles listing job applications
// @Summary List Job Applications
// @Tags job-applications
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search name or email"
// @Param position query string false "Position"
// @Param status query string false "Status name or number"
// @Success 200 {object} response.APIResponse
// @Router /job-applications [get]
func (h *JobApplicationHandler) List(c *gin.Context) {
	var req request.JobApplicationFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListApplicationsInput{
		Pagination: pageParams(req.Page, req.PerPage),
		Search:     req.Search,
		Position:   req.Position,
	}
	if req.Status != "" {
		status, ok := parseApplicationStatus(req.Status)
		if !ok {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}

	result, err := h.applicationService.ListApplications(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Job applications retrieved successfully", result)
}

// Get handles getting a single application
func (h *JobApplicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "job application")
	if !ok {
		return
	}

	application, err := h.applicationService.GetApplication(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job application retrieved successfully", application)
}

// UpdateStatus handles moving an application through review
// @Summary Update Application Status
// @Tags job-applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body request.ApplicationStatusRequest true "Status"
// @Success 200 {object} response.APIResponse
// @Router /job-applications/{id}/status [patch]
func (h *JobApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "job application")
	if !ok {
		return
	}

	var req request.ApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Application status updated successfully", application)
}

// UpdateNotes handles replacing reviewer notes
func (h *JobApplicationHandler) UpdateNotes(c *gin.Context) {
	id, ok := parseID(c, "job application")
	if !ok {
		return
	}

	var req request.NotesRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateNotes(c.Request.Context(), id, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Application notes updated successfully", application)
}

// Delete handles deleting an application
func (h *JobApplicationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "job application")
	if !ok {
		return
	}

	if err := h.applicationService.DeleteApplication(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

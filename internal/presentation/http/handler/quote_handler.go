package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/catering-api/internal/application/service"
	"github.com/sangkips/catering-api/internal/domain/enum"
	"github.com/sangkips/catering-api/internal/domain/pricing"
	"github.com/sangkips/catering-api/internal/presentation/http/dto/request"
	"github.com/sangkips/catering-api/internal/presentation/http/dto/response"
)

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func toQuoteInput(req *request.QuoteRequest) *service.QuoteInput {
	input := &service.QuoteInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		GuestCount:      req.GuestCount,
		Venue:           req.Venue,
		Notes:           req.Notes,
		IncludeOptional: req.IncludeOptional,
		TaxRate:         req.TaxRate,
		GratuityRate:    req.GratuityRate,
		Discount:        req.Discount,
		DiscountType:    pricing.DiscountType(req.DiscountType),
		DepositType:     pricing.DepositType(req.DepositType),
		DepositValue:    req.DepositValue,
	}

	// Format is enforced by the binding tag
	if date, err := time.Parse("2006-01-02", req.EventDate); err == nil {
		input.EventDate = &date
	}

	for _, p := range req.Packages {
		input.Packages = append(input.Packages, pricing.PackageLine{
			ID: p.ID, Name: p.Name, Price: p.Price, Quantity: p.Quantity,
			Taxable: p.Taxable, Optional: p.Optional,
		})
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, pricing.UnitLine{
			ID: it.ID, Category: pricing.Category(it.Category), Description: it.Description,
			Quantity: it.Quantity, UnitPrice: it.UnitPrice, Taxable: it.Taxable, Optional: it.Optional,
		})
	}
	for _, l := range req.Labor {
		input.Labor = append(input.Labor, pricing.LaborLine{
			ID: l.ID, Role: l.Role, Quantity: l.Quantity, Rate: l.Rate, Hours: l.Hours,
			Taxable: l.Taxable, Optional: l.Optional,
		})
	}
	return input
}

// parseQuoteStatus accepts a status name or its number
func parseQuoteStatus(s string) (enum.QuoteStatus, bool) {
	if n, ok := parseNonNegativeInt(s); ok {
		status := enum.QuoteStatus(n)
		return status, status.Valid()
	}
	var status enum.QuoteStatus
	if err := status.UnmarshalJSON([]byte(strconv.Quote(s))); err != nil {
		return 0, false
	}
	return status, status.Valid()
}

// List handles listing quotes
// @Summary List Quotes
// @Tags quotes
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search reference, customer or venue"
// @Param status query string false "Status name or number"
// @Success 200 {object} response.APIResponse
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	var req request.QuoteFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListQuotesInput{
		Pagination: pageParams(req.Page, req.PerPage),
		Search:     req.Search,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}
	if req.Status != "" {
		status, ok := parseQuoteStatus(req.Status)
		if !ok {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Quotes retrieved successfully", result)
}

// Get handles getting a single quote
// @Summary Get Quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "quote")
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// Preview handles live pricing for the quote editor
// @Summary Preview Quote Totals
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body request.QuoteRequest true "Quote data"
// @Success 200 {object} response.APIResponse
// @Router /quotes/preview [post]
func (h *QuoteHandler) Preview(c *gin.Context) {
	var req request.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	preview, err := h.quoteService.Preview(c.Request.Context(), toQuoteInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote priced successfully", preview)
}

// Create handles creating a quote
// @Summary Create Quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body request.QuoteRequest true "Quote data"
// @Success 201 {object} response.APIResponse
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var req request.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), toQuoteInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// Update handles replacing a quote
// @Summary Update Quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body request.QuoteRequest true "Quote data"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id} [put]
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "quote")
	if !ok {
		return
	}

	var req request.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), id, toQuoteInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote updated successfully", quote)
}

// Delete handles deleting a quote
// @Summary Delete Quote
// @Tags quotes
// @Param id path string true "Quote ID"
// @Success 204
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "quote")
	if !ok {
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateStatus handles moving a quote to a new status
// @Summary Update Quote Status
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body request.QuoteStatusRequest true "Status"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/status [patch]
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "quote")
	if !ok {
		return
	}

	var req request.QuoteStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.quoteService.UpdateQuoteStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote status updated successfully", quote)
}

// RecordPayment handles recording a payment against a quote
// @Summary Record Payment
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body request.PaymentRequest true "Payment"
// @Success 201 {object} response.APIResponse
// @Router /quotes/{id}/payments [post]
func (h *QuoteHandler) RecordPayment(c *gin.Context) {
	id, ok := parseID(c, "quote")
	if !ok {
		return
	}

	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.quoteService.RecordPayment(c.Request.Context(), id, &service.RecordPaymentInput{
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
		Note:      req.Note,
		PaidAt:    req.PaidAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", quote)
}

// PDF handles downloading the quote document
// @Summary Download Quote PDF
// @Tags quotes
// @Produce application/pdf
// @Param id path string true "Quote ID"
// @Success 200 {file} binary
// @Router /quotes/{id}/pdf [get]
func (h *QuoteHandler) PDF(c *gin.Context) {
	id, ok := parseID(c, "quote")
	if !ok {
		return
	}

	quote, data, err := h.quoteService.RenderQuotePDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	disposition := "inline"
	if queryBool(c, "download") {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+quote.Reference+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// Send handles emailing the quote to the customer
// @Summary Send Quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/send [post]
func (h *QuoteHandler) Send(c *gin.Context) {
	id, ok := parseID(c, "quote")
	if !ok {
		return
	}

	sent, err := h.quoteService.SendQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote sent successfully", sent)
}

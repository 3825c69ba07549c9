package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/catering-api/internal/application/service"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/repository"
	"github.com/sangkips/catering-api/internal/presentation/http/dto/response"
)

// CatalogHandler serves CRUD for one quote configuration table. The request
// body is the entity itself.
type CatalogHandler[T repository.CatalogEntity] struct {
	service  *service.CatalogService[T]
	resource string
}

// NewCatalogHandler creates a catalog handler. resource names the entity in
// response messages.
func NewCatalogHandler[T repository.CatalogEntity](svc *service.CatalogService[T], resource string) *CatalogHandler[T] {
	return &CatalogHandler[T]{service: svc, resource: resource}
}

// List returns the entries, only active ones when ?active=true
func (h *CatalogHandler[T]) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.resource+" retrieved successfully", items)
}

// Get returns a single entry
func (h *CatalogHandler[T]) Get(c *gin.Context) {
	id, ok := parseID(c, h.resource)
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.resource+" retrieved successfully", item)
}

// Create stores a new entry
func (h *CatalogHandler[T]) Create(c *gin.Context) {
	var item T
	if !bindJSON(c, &item) {
		return
	}
	created, err := h.service.Create(c.Request.Context(), &item)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, h.resource+" created successfully", created)
}

// Update replaces an entry
func (h *CatalogHandler[T]) Update(c *gin.Context) {
	id, ok := parseID(c, h.resource)
	if !ok {
		return
	}
	var item T
	if !bindJSON(c, &item) {
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, &item)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.resource+" updated successfully", updated)
}

// Delete removes an entry
func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	id, ok := parseID(c, h.resource)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// QuoteConfigHandler groups the catalog handlers used by the quote editor
type QuoteConfigHandler struct {
	configService *service.QuoteConfigService

	Packages      *CatalogHandler[entity.QuotePackage]
	Items         *CatalogHandler[entity.QuoteItemPreset]
	Labor         *CatalogHandler[entity.LaborRate]
	TaxRates      *CatalogHandler[entity.TaxRate]
	GratuityRules *CatalogHandler[entity.GratuityRule]
}

// NewQuoteConfigHandler creates a new quote config handler
func NewQuoteConfigHandler(configService *service.QuoteConfigService) *QuoteConfigHandler {
	return &QuoteConfigHandler{
		configService: configService,
		Packages:      NewCatalogHandler(configService.Packages, "Packages"),
		Items:         NewCatalogHandler(configService.Items, "Item presets"),
		Labor:         NewCatalogHandler(configService.Labor, "Labor rates"),
		TaxRates:      NewCatalogHandler(configService.TaxRates, "Tax rates"),
		GratuityRules: NewCatalogHandler(configService.GratuityRules, "Gratuity rules"),
	}
}

// All returns every catalog in one payload
// @Summary Quote Configuration
// @Tags quote-config
// @Produce json
// @Param active query bool false "Only active entries"
// @Success 200 {object} response.APIResponse
// @Router /quote-config/all [get]
func (h *QuoteConfigHandler) All(c *gin.Context) {
	cfg, err := h.configService.All(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quote configuration retrieved successfully", cfg)
}

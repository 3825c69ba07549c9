package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/catering-api/internal/application/service"
	"github.com/sangkips/catering-api/internal/presentation/http/dto/request"
	"github.com/sangkips/catering-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles site settings requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles retrieving the site settings
// @Summary Get Settings
// @Tags settings
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Update handles replacing the site settings
// @Summary Update Settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body request.SettingsRequest true "Settings"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.SettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		BusinessName:        req.BusinessName,
		BusinessEmail:       req.BusinessEmail,
		BusinessPhone:       req.BusinessPhone,
		Address:             req.Address,
		Currency:            req.Currency,
		HeroTitle:           req.HeroTitle,
		HeroSubtitle:        req.HeroSubtitle,
		DefaultTaxRate:      req.DefaultTaxRate,
		DefaultGratuityRate: req.DefaultGratuityRate,
		DefaultDepositRate:  req.DefaultDepositRate,
		SocialLinks:         req.SocialLinks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}

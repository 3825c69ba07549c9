package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/catering-api/internal/application/service"
	"github.com/sangkips/catering-api/internal/presentation/http/dto/request"
	"github.com/sangkips/catering-api/internal/presentation/http/dto/response"
)

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

func toMenuItemInput(req *request.MenuItemRequest) *service.MenuItemInput {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return &service.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		DietaryTags: req.DietaryTags,
		IsAvailable: available,
		SortOrder:   req.SortOrder,
		ImageURL:    req.ImageURL,
	}
}

// List handles listing menu items
// @Summary List Menu Items
// @Tags menu
// @Produce json
// @Param category query string false "Category"
// @Param available query bool false "Availability"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /menu-items [get]
func (h *MenuHandler) List(c *gin.Context) {
	var req request.MenuFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	items, err := h.menuService.ListMenuItems(c.Request.Context(), &service.ListMenuItemsInput{
		Category:  req.Category,
		Available: req.Available,
		Search:    req.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu items retrieved successfully", items)
}

// Get handles getting a single menu item
func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "menu item")
	if !ok {
		return
	}

	item, err := h.menuService.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item retrieved successfully", item)
}

// Create handles creating a menu item
func (h *MenuHandler) Create(c *gin.Context) {
	var req request.MenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menuService.CreateMenuItem(c.Request.Context(), toMenuItemInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Menu item created successfully", item)
}

// Update handles replacing a menu item
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "menu item")
	if !ok {
		return
	}

	var req request.MenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menuService.UpdateMenuItem(c.Request.Context(), id, toMenuItemInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item updated successfully", item)
}

// Delete handles deleting a menu item
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "menu item")
	if !ok {
		return
	}

	if err := h.menuService.DeleteMenuItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/repository"
	"github.com/sangkips/catering-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// MenuService handles menu item operations
type MenuService struct {
	menuRepo repository.MenuItemRepository
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repository.MenuItemRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// MenuItemInput represents the input for creating or updating a menu item
type MenuItemInput struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	DietaryTags []string
	IsAvailable bool
	SortOrder   int
	ImageURL    *string
}

func (in *MenuItemInput) validate() error {
	var fields apperror.Fields
	requireName(&fields, "name", in.Name)
	checkAmount(&fields, "price", in.Price)
	return fields.Err()
}

func (in *MenuItemInput) applyTo(item *entity.MenuItem) {
	item.Name = strings.TrimSpace(in.Name)
	item.Description = in.Description
	item.Category = strings.TrimSpace(in.Category)
	item.Price = in.Price
	item.IsAvailable = in.IsAvailable
	item.SortOrder = in.SortOrder
	item.ImageURL = in.ImageURL

	tags := make(entity.StringList, 0, len(in.DietaryTags))
	for _, tag := range in.DietaryTags {
		if tag = strings.TrimSpace(strings.ToLower(tag)); tag != "" {
			tags = append(tags, tag)
		}
	}
	item.DietaryTags = tags
}

// CreateMenuItem creates a new menu item
func (s *MenuService) CreateMenuItem(ctx context.Context, input *MenuItemInput) (*entity.MenuItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	item := &entity.MenuItem{}
	input.applyTo(item)
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetMenuItem retrieves a menu item by ID
func (s *MenuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// ListMenuItemsInput represents the input for listing menu items
type ListMenuItemsInput struct {
	Category  string
	Available *bool
	Search    string
}

// ListMenuItems lists menu items in display order
func (s *MenuService) ListMenuItems(ctx context.Context, input *ListMenuItemsInput) ([]entity.MenuItem, error) {
	items, err := s.menuRepo.List(ctx, &repository.MenuItemFilterParams{
		Category:  input.Category,
		Available: input.Available,
		Search:    input.Search,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.MenuItem{}
	}
	return items, nil
}

// UpdateMenuItem replaces a menu item
func (s *MenuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *MenuItemInput) (*entity.MenuItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	input.applyTo(item)
	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem deletes a menu item
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMenuItem(ctx, id); err != nil {
		return err
	}
	return s.menuRepo.Delete(ctx, id)
}

package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/application/service"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteConfigAll(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	_, err := env.quoteConfig.Packages.Create(ctx, &entity.QuotePackage{Name: "BBQ buffet", PricePerPerson: dec("24"), Taxable: true, IsActive: true})
	require.NoError(t, err)
	_, err = env.quoteConfig.Packages.Create(ctx, &entity.QuotePackage{Name: "Retired", PricePerPerson: dec("10")})
	require.NoError(t, err)
	_, err = env.quoteConfig.Items.Create(ctx, &entity.QuoteItemPreset{Name: "Linen", UnitPrice: dec("12"), IsActive: true})
	require.NoError(t, err)
	_, err = env.quoteConfig.Labor.Create(ctx, &entity.LaborRate{Role: "Server", HourlyRate: dec("30"), DefaultHours: decPtr("5"), IsActive: true})
	require.NoError(t, err)

	cfg, err := env.quoteConfig.All(ctx, true)
	require.NoError(t, err)
	require.Len(t, cfg.Packages, 1)
	require.Len(t, cfg.Items, 1)
	assert.Equal(t, pricing.CategoryItem, cfg.Items[0].Category)
	require.Len(t, cfg.Labor, 1)
	require.Len(t, cfg.TaxRates, 1)
	require.Len(t, cfg.GratuityRules, 1)

	all, err := env.quoteConfig.All(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all.Packages, 2)
}

func TestCatalogValidation(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	_, err := env.quoteConfig.Items.Create(ctx, &entity.QuoteItemPreset{Name: "Staff", Category: pricing.CategoryLabor, UnitPrice: dec("-1")})
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.ElementsMatch(t, []string{"category", "unit_price"}, fieldNames(appErr))

	_, err = env.quoteConfig.TaxRates.Create(ctx, &entity.TaxRate{Rate: dec("150")})
	appErr = requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.ElementsMatch(t, []string{"name", "rate"}, fieldNames(appErr))

	_, err = env.quoteConfig.GratuityRules.Create(ctx, &entity.GratuityRule{Name: "Odd", Rate: dec("10"), MinGuests: -1})
	requireAppError(t, err, http.StatusUnprocessableEntity)
}

func TestCatalogUpdateAndDelete(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	rate, err := env.quoteConfig.Labor.Create(ctx, &entity.LaborRate{Role: "Chef", HourlyRate: dec("45"), Taxable: true, IsActive: true})
	require.NoError(t, err)

	updated, err := env.quoteConfig.Labor.Update(ctx, rate.ID, &entity.LaborRate{Role: "Head chef", HourlyRate: dec("55")})
	require.NoError(t, err)
	assert.Equal(t, rate.ID, updated.ID)
	assert.Equal(t, "Head chef", updated.Role)
	assert.False(t, updated.Taxable)
	assert.False(t, updated.IsActive)
	assert.Equal(t, rate.CreatedAt.Unix(), updated.CreatedAt.Unix())

	_, err = env.quoteConfig.Labor.Update(ctx, uuid.New(), &entity.LaborRate{Role: "Ghost", HourlyRate: dec("1")})
	requireAppError(t, err, http.StatusNotFound)

	require.NoError(t, env.quoteConfig.Labor.Delete(ctx, rate.ID))
	_, err = env.quoteConfig.Labor.Get(ctx, rate.ID)
	requireAppError(t, err, http.StatusNotFound)
}

func TestMenuService(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	item, err := env.menu.CreateMenuItem(ctx, &service.MenuItemInput{
		Name:        " Smoked brisket ",
		Category:    "mains",
		Price:       dec("16"),
		DietaryTags: []string{"Gluten-Free", " ", "DAIRY-free"},
		IsAvailable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Smoked brisket", item.Name)
	assert.Equal(t, entity.StringList{"gluten-free", "dairy-free"}, item.DietaryTags)

	_, err = env.menu.CreateMenuItem(ctx, &service.MenuItemInput{Price: dec("-3")})
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.ElementsMatch(t, []string{"name", "price"}, fieldNames(appErr))

	_, err = env.menu.UpdateMenuItem(ctx, item.ID, &service.MenuItemInput{Name: "Smoked brisket", Category: "mains", Price: dec("18")})
	require.NoError(t, err)

	available := true
	items, err := env.menu.ListMenuItems(ctx, &service.ListMenuItemsInput{Available: &available})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = env.menu.ListMenuItems(ctx, &service.ListMenuItemsInput{Category: "mains"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	requireDecimal(t, "18", items[0].Price, "price")

	require.NoError(t, env.menu.DeleteMenuItem(ctx, item.ID))
	_, err = env.menu.GetMenuItem(ctx, item.ID)
	requireAppError(t, err, http.StatusNotFound)
}

func TestSettingsService(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	settings, err := env.settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Smoke & Oak Catering", settings.BusinessName)
	assert.Equal(t, "USD", settings.Currency)
	requireDecimal(t, "50", settings.DefaultDepositRate, "deposit rate")

	again, err := env.settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)

	_, err = env.settings.UpdateSettings(ctx, &service.UpdateSettingsInput{DefaultTaxRate: dec("120"), DefaultDepositRate: dec("-1")})
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.ElementsMatch(t, []string{"default_tax_rate", "default_deposit_rate"}, fieldNames(appErr))

	updated, err := env.settings.UpdateSettings(ctx, &service.UpdateSettingsInput{
		BusinessName:       "Smoke & Oak",
		DefaultTaxRate:     dec("7.25"),
		DefaultDepositRate: dec("30"),
		SocialLinks:        entity.SocialLinks{Instagram: "https://instagram.com/smokeandoak"},
	})
	require.NoError(t, err)
	assert.Equal(t, settings.ID, updated.ID)
	assert.Equal(t, "USD", updated.Currency)

	reloaded, err := env.settings.GetSettings(ctx)
	require.NoError(t, err)
	requireDecimal(t, "7.25", reloaded.DefaultTaxRate, "tax rate")
	assert.Equal(t, "https://instagram.com/smokeandoak", reloaded.SocialLinks.Instagram)
}

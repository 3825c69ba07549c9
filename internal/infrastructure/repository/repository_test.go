package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/enum"
	"github.com/sangkips/catering-api/internal/domain/pricing"
	domainRepo "github.com/sangkips/catering-api/internal/domain/repository"
	"github.com/sangkips/catering-api/internal/infrastructure/database"
	"github.com/sangkips/catering-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleQuote(reference string) *entity.Quote {
	hours := dec("4")
	return &entity.Quote{
		Reference:     reference,
		CustomerName:  "Dana Whitfield",
		CustomerEmail: "dana@example.com",
		GuestCount:    10,
		TaxRate:       dec("8.5"),
		DiscountType:  pricing.DiscountFixed,
		DepositType:   pricing.DepositPercentage,
		DepositValue:  dec("50"),
		Subtotal:      dec("920"),
		TaxableAmount: dec("180"),
		TaxAmount:     dec("15.30"),
		TotalAmount:   dec("935.30"),
		DepositAmount: dec("467.65"),
		BalanceDue:    dec("935.30"),
		Items: []entity.QuoteItem{
			{Category: pricing.CategoryLabor, Description: "Servers", Quantity: 2, UnitPrice: dec("30"), Hours: &hours, SortOrder: 2},
			{Category: pricing.CategoryPackage, Description: "Buffet", Quantity: 10, UnitPrice: dec("18"), Taxable: true, SortOrder: 0},
			{Category: pricing.CategoryEquipment, Description: "Tent", Quantity: 1, UnitPrice: dec("500"), SortOrder: 1},
		},
	}
}

func TestQuoteRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository(setupDB(t))

	quote := sampleQuote("QT-000001")
	require.NoError(t, repo.Create(ctx, quote))
	require.NotEqual(t, uuid.Nil, quote.ID)

	got, err := repo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 3)
	require.Equal(t, "Buffet", got.Items[0].Description)
	require.Equal(t, "Servers", got.Items[2].Description)
	require.NotNil(t, got.Items[2].Hours)
	require.True(t, dec("4").Equal(*got.Items[2].Hours))
	require.Nil(t, got.Items[0].Hours)
	require.True(t, dec("935.30").Equal(got.TotalAmount))
	require.Equal(t, enum.QuoteStatusDraft, got.Status)

	totals := pricing.Calculate(got.LineItems(), got.PricingOptions())
	require.True(t, dec("935.30").Equal(totals.Total))
	require.True(t, dec("467.65").Equal(totals.Deposit))

	byRef, err := repo.GetByReference(ctx, "QT-000001")
	require.NoError(t, err)
	require.Equal(t, quote.ID, byRef.ID)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestQuoteRepositoryUpdateReplacesItems(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := NewQuoteRepository(db)

	quote := sampleQuote("QT-000001")
	require.NoError(t, repo.Create(ctx, quote))

	quote.CustomerName = "Dana W."
	quote.Items = []entity.QuoteItem{{Category: pricing.CategoryFood, Description: "Canapés", Quantity: 50, UnitPrice: dec("3.25")}}
	require.NoError(t, repo.Update(ctx, quote))

	got, err := repo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	require.Equal(t, "Dana W.", got.CustomerName)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Canapés", got.Items[0].Description)

	var itemRows int64
	require.NoError(t, db.Model(&entity.QuoteItem{}).Count(&itemRows).Error)
	require.EqualValues(t, 1, itemRows)
}

func TestQuoteRepositoryAddPayment(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository(setupDB(t))

	quote := sampleQuote("QT-000001")
	require.NoError(t, repo.Create(ctx, quote))

	quote.TotalAmount = dec("940.30")
	quote.BalanceDue = dec("640.30")
	payment := &entity.Payment{Amount: dec("300"), Method: "card", PaidAt: time.Now()}
	require.NoError(t, repo.AddPayment(ctx, quote, payment))

	got, err := repo.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	require.Len(t, got.Payments, 1)
	require.True(t, dec("300").Equal(got.AmountPaid()))
	require.True(t, dec("640.30").Equal(got.BalanceDue))
	require.True(t, dec("940.30").Equal(got.TotalAmount), "all recomputed totals are stored with the payment")
}

func TestQuoteRepositoryListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository(setupDB(t))

	for i, name := range []string{"Dana Whitfield", "Marcus Bell", "Priya Natarajan"} {
		q := sampleQuote(fmt.Sprintf("QT-%06d", i+1))
		q.CustomerName = name
		q.Items = nil
		require.NoError(t, repo.Create(ctx, q))
	}
	require.NoError(t, repo.UpdateStatus(ctx, mustRef(t, repo, "QT-000002").ID, enum.QuoteStatusSent))

	quotes, total, err := repo.List(ctx, &domainRepo.QuoteFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 2},
		SortBy:     "reference",
		SortOrder:  "asc",
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, quotes, 2)
	require.Equal(t, "QT-000001", quotes[0].Reference)

	quotes, total, err = repo.List(ctx, &domainRepo.QuoteFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     "MARCUS",
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Marcus Bell", quotes[0].CustomerName)

	sent := enum.QuoteStatusSent
	_, total, err = repo.List(ctx, &domainRepo.QuoteFilterParams{
		Pagination: pagination.DefaultPagination(),
		Status:     &sent,
		SortBy:     "1; DROP TABLE quotes",
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}

func TestQuoteRepositoryCreateReportsDuplicateReference(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository(setupDB(t))

	require.NoError(t, repo.Create(ctx, sampleQuote("QT-000001")))

	err := repo.Create(ctx, sampleQuote("QT-000001"))
	require.ErrorIs(t, err, domainRepo.ErrDuplicateReference)

	require.False(t, isDuplicateKey(nil))
	require.True(t, isDuplicateKey(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
}

func TestNextReferenceNumberIncludesDeleted(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository(setupDB(t))

	n, err := repo.NextReferenceNumber(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	quote := sampleQuote("QT-000001")
	require.NoError(t, repo.Create(ctx, quote))
	require.NoError(t, repo.Delete(ctx, quote.ID))

	n, err = repo.NextReferenceNumber(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func mustRef(t *testing.T, repo domainRepo.QuoteRepository, ref string) *entity.Quote {
	t.Helper()
	q, err := repo.GetByReference(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, q)
	return q
}

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository[entity.GratuityRule](setupDB(t))

	large := &entity.GratuityRule{Name: "Large party", Rate: dec("18"), MinGuests: 20, AutoApply: true, IsActive: true, SortOrder: 2}
	standard := &entity.GratuityRule{Name: "Standard", Rate: dec("15"), IsActive: true, SortOrder: 1}
	retired := &entity.GratuityRule{Name: "Retired", Rate: dec("10"), IsActive: false}
	for _, r := range []*entity.GratuityRule{large, standard, retired} {
		require.NoError(t, repo.Create(ctx, r))
	}

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "Standard", active[0].Name)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)

	update := &entity.GratuityRule{Name: "Large party", Rate: dec("20"), MinGuests: 25, IsActive: true}
	require.NoError(t, repo.Update(ctx, large.ID, update))
	got, err := repo.GetByID(ctx, large.ID)
	require.NoError(t, err)
	require.True(t, dec("20").Equal(got.Rate))
	require.Equal(t, 25, got.MinGuests)
	require.False(t, got.AutoApply)

	require.NoError(t, repo.Delete(ctx, large.ID))
	got, err = repo.GetByID(ctx, large.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMenuItemRepositoryFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewMenuItemRepository(setupDB(t))

	items := []*entity.MenuItem{
		{Name: "Brisket", Category: "mains", Price: dec("14"), IsAvailable: true, DietaryTags: entity.StringList{"gluten-free"}},
		{Name: "Mac and cheese", Category: "sides", Price: dec("6"), IsAvailable: true},
		{Name: "Peach cobbler", Category: "desserts", Price: dec("7"), IsAvailable: false},
	}
	for _, it := range items {
		require.NoError(t, repo.Create(ctx, it))
	}

	available := true
	got, err := repo.List(ctx, &domainRepo.MenuItemFilterParams{Available: &available})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = repo.List(ctx, &domainRepo.MenuItemFilterParams{Category: "mains"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, entity.StringList{"gluten-free"}, got[0].DietaryTags)

	got, err = repo.List(ctx, &domainRepo.MenuItemFilterParams{Search: "cobbler"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.False(t, got[0].IsAvailable)
}

func TestJobApplicationRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewJobApplicationRepository(setupDB(t))

	require.NoError(t, repo.Create(ctx, &entity.JobApplication{FirstName: "Ana", LastName: "Ruiz", Email: "ana@example.com", Position: "Server"}))
	require.NoError(t, repo.Create(ctx, &entity.JobApplication{FirstName: "Ben", LastName: "Cole", Email: "ben@example.com", Position: "Line cook"}))

	got, total, err := repo.List(ctx, &domainRepo.JobApplicationFilterParams{
		Pagination: pagination.DefaultPagination(),
		Position:   "Server",
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Ana Ruiz", got[0].FullName())
	require.Equal(t, enum.ApplicationStatusNew, got[0].Status)
}

func TestEmailTemplateRepositorySlugReuse(t *testing.T) {
	ctx := context.Background()
	repo := NewEmailTemplateRepository(setupDB(t))

	tpl := &entity.EmailTemplate{Slug: "quote", Name: "Quote", Subject: "s", Body: "b"}
	require.NoError(t, repo.Create(ctx, tpl))

	got, err := repo.GetBySlug(ctx, "quote")
	require.NoError(t, err)
	require.Equal(t, tpl.ID, got.ID)

	require.NoError(t, repo.Delete(ctx, tpl.ID))
	require.NoError(t, repo.Create(ctx, &entity.EmailTemplate{Slug: "quote", Name: "Quote v2", Subject: "s", Body: "b"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Quote v2", list[0].Name)
}

func TestEmailLogRepositoryFetchesOneExtra(t *testing.T) {
	ctx := context.Background()
	repo := NewEmailLogRepository(setupDB(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &entity.EmailLog{Recipient: "dana@example.com", Status: entity.EmailStatusSent, Provider: "graph"}))
	}
	require.NoError(t, repo.Create(ctx, &entity.EmailLog{Recipient: "other@example.com", Status: entity.EmailStatusFailed}))

	logs, err := repo.List(ctx, &domainRepo.EmailLogFilterParams{
		Cursor:    &pagination.CursorParams{Limit: 2},
		Recipient: "dana@example.com",
	})
	require.NoError(t, err)
	require.Len(t, logs, 3)

	logs, err = repo.List(ctx, &domainRepo.EmailLogFilterParams{
		Cursor: pagination.DefaultCursorParams(),
		Status: entity.EmailStatusFailed,
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(setupDB(t))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, got)

	settings := &entity.SiteSettings{BusinessName: "Smoke & Oak", SocialLinks: entity.SocialLinks{Instagram: "https://instagram.com/smokeandoak"}}
	require.NoError(t, repo.Create(ctx, settings))

	settings.DefaultTaxRate = dec("7.25")
	require.NoError(t, repo.Update(ctx, settings))

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Smoke & Oak", got.BusinessName)
	require.Equal(t, "https://instagram.com/smokeandoak", got.SocialLinks.Instagram)
	require.True(t, dec("7.25").Equal(got.DefaultTaxRate))
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(setupDB(t))

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "abc", ClientID: "10.0.0.1", Endpoint: "POST /api/v1/quotes",
		ResponseCode: 201, ResponseBody: `{"success":true}`, ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "old", ClientID: "10.0.0.1", Endpoint: "POST /api/v1/quotes",
		ResponseCode: 201, ExpiresAt: time.Now().Add(-time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "abc", "10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, 201, got.ResponseCode)

	other, err := repo.GetByKey(ctx, "abc", "10.0.0.2")
	require.NoError(t, err)
	require.Nil(t, other)

	require.NoError(t, repo.DeleteExpired(ctx))
	old, err := repo.GetByKey(ctx, "old", "10.0.0.1")
	require.NoError(t, err)
	require.Nil(t, old)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/enum"
	"github.com/sangkips/catering-api/internal/domain/pricing"
	"github.com/sangkips/catering-api/internal/domain/repository"
	"github.com/sangkips/catering-api/pkg/apperror"
	"github.com/sangkips/catering-api/pkg/email"
	"github.com/sangkips/catering-api/pkg/logger"
	"github.com/sangkips/catering-api/pkg/metrics"
	"github.com/sangkips/catering-api/pkg/pagination"
	"github.com/sangkips/catering-api/pkg/paylink"
	"github.com/sangkips/catering-api/pkg/pdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "January 2, 2006"

// QuoteService handles quote pricing, persistence and delivery
type QuoteService struct {
	quoteRepo     repository.QuoteRepository
	taxRates      repository.CatalogRepository[entity.TaxRate]
	gratuityRules repository.CatalogRepository[entity.GratuityRule]
	settings      *SettingsService
	mail          *EmailService
	paylinks      *paylink.Builder
	metrics       *metrics.Metrics
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	taxRates repository.CatalogRepository[entity.TaxRate],
	gratuityRules repository.CatalogRepository[entity.GratuityRule],
	settings *SettingsService,
	mail *EmailService,
	paylinks *paylink.Builder,
	m *metrics.Metrics,
) *QuoteService {
	return &QuoteService{
		quoteRepo:     quoteRepo,
		taxRates:      taxRates,
		gratuityRules: gratuityRules,
		settings:      settings,
		mail:          mail,
		paylinks:      paylinks,
		metrics:       m,
	}
}

// QuoteInput represents the input for previewing, creating or updating a quote.
// Nil rates fall back to configured defaults.
type QuoteInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	EventDate     *time.Time
	GuestCount    int
	Venue         string
	Notes         *string

	Packages        []pricing.PackageLine
	Items           []pricing.UnitLine
	Labor           []pricing.LaborLine
	IncludeOptional []string

	TaxRate      *decimal.Decimal
	GratuityRate *decimal.Decimal
	Discount     decimal.Decimal
	DiscountType pricing.DiscountType
	DepositType  pricing.DepositType
	DepositValue *decimal.Decimal
}

func (in *QuoteInput) validate(requireCustomer bool) error {
	var fields apperror.Fields

	if requireCustomer && strings.TrimSpace(in.CustomerName) == "" {
		fields.Add("customer_name", "is required")
	}
	if in.CustomerEmail != "" && !strings.Contains(in.CustomerEmail, "@") {
		fields.Add("customer_email", "must be a valid email address")
	}
	if in.GuestCount < 0 {
		fields.Add("guest_count", "must not be negative")
	}

	for i, p := range in.Packages {
		field := "packages[" + strconv.Itoa(i) + "]"
		checkQuantity(&fields, field, p.Quantity)
		checkAmount(&fields, field+".price", p.Price)
	}
	for i, it := range in.Items {
		field := "items[" + strconv.Itoa(i) + "]"
		checkQuantity(&fields, field, it.Quantity)
		checkAmount(&fields, field+".unit_price", it.UnitPrice)
		if it.Category != "" && !it.Category.Valid() {
			fields.Add(field+".category", "is not a known category")
		}
	}
	for i, l := range in.Labor {
		field := "labor[" + strconv.Itoa(i) + "]"
		checkQuantity(&fields, field, l.Quantity)
		checkAmount(&fields, field+".rate", l.Rate)
		if l.Hours != nil {
			checkAmount(&fields, field+".hours", *l.Hours)
		}
	}

	if in.TaxRate != nil {
		checkPercent(&fields, "tax_rate", *in.TaxRate)
	}
	if in.GratuityRate != nil {
		checkPercent(&fields, "gratuity_rate", *in.GratuityRate)
	}

	if in.DiscountType == "" {
		in.DiscountType = pricing.DiscountFixed
	}
	switch in.DiscountType {
	case pricing.DiscountFixed:
		checkAmount(&fields, "discount", in.Discount)
	case pricing.DiscountPercentage:
		checkPercent(&fields, "discount", in.Discount)
	default:
		fields.Add("discount_type", "must be FIXED or PERCENTAGE")
	}

	if in.DepositType == "" {
		in.DepositType = pricing.DepositPercentage
	}
	switch in.DepositType {
	case pricing.DepositFixed:
		if in.DepositValue != nil {
			checkAmount(&fields, "deposit_value", *in.DepositValue)
		}
	case pricing.DepositPercentage:
		if in.DepositValue != nil {
			checkPercent(&fields, "deposit_value", *in.DepositValue)
		}
	default:
		fields.Add("deposit_type", "must be FIXED or PERCENTAGE")
	}

	if err := fields.Err(); err != nil {
		return err
	}
	in.roundToStoredScale()
	return nil
}

// Scales of the quote columns. Amounts are rounded to them before pricing so
// totals recomputed later from the saved rows match the totals saved now.
const (
	amountScale  = 2
	percentScale = 3
)

func (in *QuoteInput) roundToStoredScale() {
	for i := range in.Packages {
		in.Packages[i].Price = in.Packages[i].Price.Round(amountScale)
	}
	for i := range in.Items {
		in.Items[i].UnitPrice = in.Items[i].UnitPrice.Round(amountScale)
	}
	for i := range in.Labor {
		in.Labor[i].Rate = in.Labor[i].Rate.Round(amountScale)
		in.Labor[i].Hours = roundPtr(in.Labor[i].Hours, amountScale)
	}
	in.TaxRate = roundPtr(in.TaxRate, percentScale)
	in.GratuityRate = roundPtr(in.GratuityRate, percentScale)

	if in.DiscountType == pricing.DiscountPercentage {
		in.Discount = in.Discount.Round(percentScale)
	} else {
		in.Discount = in.Discount.Round(amountScale)
	}
	if in.DepositType == pricing.DepositPercentage {
		in.DepositValue = roundPtr(in.DepositValue, percentScale)
	} else {
		in.DepositValue = roundPtr(in.DepositValue, amountScale)
	}
}

func roundPtr(d *decimal.Decimal, places int32) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(places)
	return &r
}

func checkQuantity(fields *apperror.Fields, field string, q *int) {
	if q != nil && *q < 0 {
		fields.Add(field+".quantity", "must not be negative")
	}
}

func checkAmount(fields *apperror.Fields, field string, v decimal.Decimal) {
	if v.IsNegative() {
		fields.Add(field, "must not be negative")
	}
}

// lines normalizes the input and drops optional lines the customer did not pick
func (in *QuoteInput) lines() []pricing.LineItem {
	included := make(map[string]bool, len(in.IncludeOptional))
	for _, id := range in.IncludeOptional {
		included[id] = true
	}
	return pricing.ExcludeOptional(pricing.Normalize(in.Packages, in.Items, in.Labor), included)
}

// resolveOptions fills in omitted rates from the tax table, gratuity rules
// and site settings
func (s *QuoteService) resolveOptions(ctx context.Context, in *QuoteInput) (pricing.Options, error) {
	opts := pricing.Options{
		Discount:     in.Discount,
		DiscountType: in.DiscountType,
		Deposit:      pricing.Deposit{Type: in.DepositType},
	}

	var settings *entity.SiteSettings
	loadSettings := func() (*entity.SiteSettings, error) {
		if settings != nil {
			return settings, nil
		}
		var err error
		settings, err = s.settings.GetSettings(ctx)
		return settings, err
	}

	switch {
	case in.TaxRate != nil:
		opts.TaxRate = *in.TaxRate
	default:
		rate, err := s.defaultTaxRate(ctx)
		if err != nil {
			return opts, err
		}
		if rate != nil {
			opts.TaxRate = *rate
		} else {
			st, err := loadSettings()
			if err != nil {
				return opts, err
			}
			opts.TaxRate = st.DefaultTaxRate
		}
	}

	switch {
	case in.GratuityRate != nil:
		opts.GratuityRate = *in.GratuityRate
	default:
		rate, err := s.autoGratuityRate(ctx, in.GuestCount)
		if err != nil {
			return opts, err
		}
		if rate != nil {
			opts.GratuityRate = *rate
		} else {
			st, err := loadSettings()
			if err != nil {
				return opts, err
			}
			opts.GratuityRate = st.DefaultGratuityRate
		}
	}

	switch {
	case in.DepositValue != nil:
		opts.Deposit.Value = *in.DepositValue
	case in.DepositType == pricing.DepositPercentage:
		st, err := loadSettings()
		if err != nil {
			return opts, err
		}
		opts.Deposit.Value = st.DefaultDepositRate
	}

	return opts, nil
}

func (s *QuoteService) defaultTaxRate(ctx context.Context) (*decimal.Decimal, error) {
	rates, err := s.taxRates.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, r := range rates {
		if r.IsDefault {
			rate := r.Rate
			return &rate, nil
		}
	}
	return nil, nil
}

// autoGratuityRate returns the highest auto-apply rule met by guests
func (s *QuoteService) autoGratuityRate(ctx context.Context, guests int) (*decimal.Decimal, error) {
	rules, err := s.gratuityRules.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var best *decimal.Decimal
	for _, rule := range rules {
		if !rule.Applies(guests) {
			continue
		}
		if best == nil || rule.Rate.GreaterThan(*best) {
			rate := rule.Rate
			best = &rate
		}
	}
	return best, nil
}

// PreviewLine is a normalized line with its computed total
type PreviewLine struct {
	pricing.LineItem
	LineTotal decimal.Decimal `json:"line_total"`
}

// FormattedTotals holds the totals rendered as currency strings
type FormattedTotals struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Gratuity string `json:"gratuity"`
	Total    string `json:"total"`
	Deposit  string `json:"deposit"`
	Balance  string `json:"balance"`
}

func formatTotals(t pricing.Totals) FormattedTotals {
	return FormattedTotals{
		Subtotal: pricing.FormatCurrency(t.Subtotal),
		Discount: pricing.FormatCurrency(t.DiscountAmount),
		Tax:      pricing.FormatCurrency(t.Tax),
		Gratuity: pricing.FormatCurrency(t.Gratuity),
		Total:    pricing.FormatCurrency(t.Total),
		Deposit:  pricing.FormatCurrency(t.Deposit),
		Balance:  pricing.FormatCurrency(t.Balance),
	}
}

// QuotePreview is the live pricing of an unsaved quote
type QuotePreview struct {
	Items     []PreviewLine   `json:"items"`
	Options   pricing.Options `json:"options"`
	Totals    pricing.Totals  `json:"totals"`
	Formatted FormattedTotals `json:"formatted"`
}

// Preview prices the input without persisting anything
func (s *QuoteService) Preview(ctx context.Context, input *QuoteInput) (*QuotePreview, error) {
	if err := input.validate(false); err != nil {
		return nil, err
	}
	opts, err := s.resolveOptions(ctx, input)
	if err != nil {
		return nil, err
	}

	lines := input.lines()
	totals := pricing.Calculate(lines, opts).Rounded()

	preview := &QuotePreview{
		Items:     make([]PreviewLine, 0, len(lines)),
		Options:   opts,
		Totals:    totals,
		Formatted: formatTotals(totals),
	}
	for _, line := range lines {
		preview.Items = append(preview.Items, PreviewLine{LineItem: line, LineTotal: line.Total().Round(2)})
	}
	return preview, nil
}

// apply copies input and priced lines onto quote and recomputes its totals
func (s *QuoteService) apply(ctx context.Context, quote *entity.Quote, input *QuoteInput) error {
	opts, err := s.resolveOptions(ctx, input)
	if err != nil {
		return err
	}

	quote.CustomerName = strings.TrimSpace(input.CustomerName)
	quote.CustomerEmail = strings.TrimSpace(input.CustomerEmail)
	quote.CustomerPhone = input.CustomerPhone
	quote.EventDate = input.EventDate
	quote.GuestCount = input.GuestCount
	quote.Venue = input.Venue
	quote.Notes = input.Notes
	quote.TaxRate = opts.TaxRate
	quote.GratuityRate = opts.GratuityRate
	quote.Discount = opts.Discount
	quote.DiscountType = opts.DiscountType
	quote.DepositType = opts.Deposit.Type
	quote.DepositValue = opts.Deposit.Value

	lines := input.lines()
	quote.Items = make([]entity.QuoteItem, 0, len(lines))
	for i, line := range lines {
		quote.Items = append(quote.Items, entity.QuoteItem{
			Category:    line.Category,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Hours:       line.Hours,
			Taxable:     line.Taxable,
			IsOptional:  line.IsOptional,
			SortOrder:   i,
		})
	}

	recalculate(quote)
	return nil
}

func recalculate(quote *entity.Quote) {
	quote.ApplyTotals(pricing.Calculate(quote.LineItems(), quote.PricingOptions()))
}

// settlePaidStatus marks a quote with payments Paid once nothing is owed, and
// reopens a Paid quote as Accepted when its balance rises again
func settlePaidStatus(quote *entity.Quote) {
	owed := quote.BalanceDue.IsPositive()
	switch {
	case !owed && len(quote.Payments) > 0:
		quote.Status = enum.QuoteStatusPaid
	case owed && quote.Status == enum.QuoteStatusPaid:
		quote.Status = enum.QuoteStatusAccepted
	}
}

// CreateQuote prices and stores a new draft quote
func (s *QuoteService) CreateQuote(ctx context.Context, input *QuoteInput) (*entity.Quote, error) {
	if err := input.validate(true); err != nil {
		return nil, err
	}

	quote := &entity.Quote{Status: enum.QuoteStatusDraft}
	if err := s.apply(ctx, quote, input); err != nil {
		return nil, err
	}
	if err := s.insertWithReference(ctx, quote); err != nil {
		return nil, err
	}
	s.metrics.QuoteCreated()

	logger.FromContext(ctx).Info("quote created",
		zap.String("reference", quote.Reference),
		zap.String("total", quote.TotalAmount.StringFixed(2)),
	)

	return s.GetQuote(ctx, quote.ID)
}

const referenceAttempts = 5

// insertWithReference numbers and stores quote, moving to the next number
// when a concurrent create has taken the current one
func (s *QuoteService) insertWithReference(ctx context.Context, quote *entity.Quote) error {
	next, err := s.quoteRepo.NextReferenceNumber(ctx)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < referenceAttempts; attempt++ {
		quote.Reference = fmt.Sprintf("QT-%06d", next+attempt)
		err = s.quoteRepo.Create(ctx, quote)
		if !errors.Is(err, repository.ErrDuplicateReference) {
			return err
		}
		logger.FromContext(ctx).Warn("quote reference taken, retrying",
			zap.String("reference", quote.Reference),
		)
	}
	return apperror.NewConflictError("Could not allocate a quote reference, please retry")
}

// GetQuote retrieves a quote with its items and payments
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotesInput represents the input for listing quotes
type ListQuotesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	SortBy     string
	SortOrder  string
}

// ListQuotes lists quotes with filtering
func (s *QuoteService) ListQuotes(ctx context.Context, input *ListQuotesInput) (*pagination.PaginatedResult[entity.Quote], error) {
	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()

	quotes, total, err := s.quoteRepo.List(ctx, &repository.QuoteFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// UpdateQuote replaces a quote's details and items and recomputes its totals
// against the payments already recorded
func (s *QuoteService) UpdateQuote(ctx context.Context, id uuid.UUID, input *QuoteInput) (*entity.Quote, error) {
	if err := input.validate(true); err != nil {
		return nil, err
	}

	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, quote, input); err != nil {
		return nil, err
	}
	settlePaidStatus(quote)
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, id)
}

// DeleteQuote deletes a quote
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetQuote(ctx, id); err != nil {
		return err
	}
	return s.quoteRepo.Delete(ctx, id)
}

// UpdateQuoteStatus moves a quote to status
func (s *QuoteService) UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) (*entity.Quote, error) {
	if !status.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "status", Message: "is not a known quote status"},
		})
	}

	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.quoteRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	quote.Status = status
	return quote, nil
}

// RecordPaymentInput represents a payment received against a quote
type RecordPaymentInput struct {
	Amount    decimal.Decimal
	Method    string
	Reference string
	Note      *string
	PaidAt    *time.Time
}

// RecordPayment stores a payment, recomputes the balance and marks the quote
// paid once nothing is owed
func (s *QuoteService) RecordPayment(ctx context.Context, id uuid.UUID, input *RecordPaymentInput) (*entity.Quote, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "must be greater than zero"},
		})
	}

	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		QuoteID:   quote.ID,
		Amount:    input.Amount.Round(2),
		Method:    input.Method,
		Reference: input.Reference,
		Note:      input.Note,
		PaidAt:    time.Now().UTC(),
	}
	if input.PaidAt != nil {
		payment.PaidAt = *input.PaidAt
	}

	quote.Payments = append(quote.Payments, *payment)
	recalculate(quote)
	settlePaidStatus(quote)

	if err := s.quoteRepo.AddPayment(ctx, quote, payment); err != nil {
		return nil, err
	}
	s.metrics.PaymentRecorded()

	logger.FromContext(ctx).Info("payment recorded",
		zap.String("reference", quote.Reference),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("balance_due", quote.BalanceDue.StringFixed(2)),
	)

	return s.GetQuote(ctx, id)
}

// RenderQuotePDF renders the customer-facing PDF for a quote
func (s *QuoteService) RenderQuotePDF(ctx context.Context, id uuid.UUID) (*entity.Quote, []byte, error) {
	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, nil, err
	}

	data, err := pdf.RenderQuote(quoteDocument(quote, settings))
	if err != nil {
		return nil, nil, fmt.Errorf("render quote pdf: %w", err)
	}
	return quote, data, nil
}

func quoteDocument(quote *entity.Quote, settings *entity.SiteSettings) pdf.QuoteDocument {
	doc := pdf.QuoteDocument{
		BusinessName:    settings.BusinessName,
		BusinessAddress: settings.Address,
		BusinessEmail:   settings.BusinessEmail,
		BusinessPhone:   settings.BusinessPhone,
		Reference:       quote.Reference,
		IssueDate:       quote.CreatedAt.Format(dateLayout),
		GuestCount:      quote.GuestCount,
		Venue:           quote.Venue,
		Status:          quote.Status.String(),
		CustomerName:    quote.CustomerName,
		CustomerEmail:   quote.CustomerEmail,
		CustomerPhone:   quote.CustomerPhone,
		Subtotal:        pricing.FormatCurrency(quote.Subtotal),
		Discount:        pricing.FormatCurrency(quote.DiscountAmount),
		HasDiscount:     quote.DiscountAmount.IsPositive(),
		Tax:             pricing.FormatCurrency(quote.TaxAmount),
		TaxRate:         quote.TaxRate.String() + "%",
		Gratuity:        pricing.FormatCurrency(quote.GratuityAmount),
		HasGratuity:     quote.GratuityAmount.IsPositive(),
		Total:           pricing.FormatCurrency(quote.TotalAmount),
		Deposit:         pricing.FormatCurrency(quote.DepositAmount),
		Paid:            pricing.FormatCurrency(quote.AmountPaid()),
		Balance:         pricing.FormatCurrency(quote.BalanceDue),
	}
	if quote.EventDate != nil {
		doc.EventDate = quote.EventDate.Format(dateLayout)
	}
	if quote.Notes != nil {
		doc.Notes = *quote.Notes
	}

	for _, item := range quote.Items {
		quantity := strconv.Itoa(item.Quantity)
		if item.Category == pricing.CategoryLabor && item.Hours != nil {
			quantity += " x " + item.Hours.String() + "h"
		}
		doc.Lines = append(doc.Lines, pdf.QuoteLine{
			Description: item.Description,
			Category:    string(item.Category),
			Quantity:    quantity,
			UnitPrice:   pricing.FormatCurrency(item.UnitPrice),
			Amount:      pricing.FormatCurrency(item.LineItem().Total()),
		})
	}
	return doc
}

// quoteEmail is the data the quote email template renders
type quoteEmail struct {
	CustomerName string
	BusinessName string
	EventDate    string
	Reference    string
	Subtotal     string
	HasDiscount  bool
	Discount     string
	Tax          string
	HasGratuity  bool
	Gratuity     string
	Total        string
	Deposit      string
	DepositLink  string
	FullLink     string
}

// SentQuote is the outcome of sending a quote
type SentQuote struct {
	Quote *entity.Quote    `json:"quote"`
	Email *entity.EmailLog `json:"email"`
	Links []paylink.Link   `json:"payment_links,omitempty"`
}

// SendQuote emails the quote with its PDF attached and payment links, then
// marks a draft quote as sent
func (s *QuoteService) SendQuote(ctx context.Context, id uuid.UUID) (*SentQuote, error) {
	quote, data, err := s.RenderQuotePDF(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.CustomerEmail == "" {
		return nil, apperror.NewBadRequestError("Quote has no customer email")
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	msg := quoteEmail{
		CustomerName: quote.CustomerName,
		BusinessName: settings.BusinessName,
		Reference:    quote.Reference,
		Subtotal:     pricing.FormatCurrency(quote.Subtotal),
		HasDiscount:  quote.DiscountAmount.IsPositive(),
		Discount:     pricing.FormatCurrency(quote.DiscountAmount),
		Tax:          pricing.FormatCurrency(quote.TaxAmount),
		HasGratuity:  quote.GratuityAmount.IsPositive(),
		Gratuity:     pricing.FormatCurrency(quote.GratuityAmount),
		Total:        pricing.FormatCurrency(quote.TotalAmount),
		Deposit:      pricing.FormatCurrency(quote.DepositAmount),
	}
	if quote.EventDate != nil {
		msg.EventDate = quote.EventDate.Format(dateLayout)
	}

	var links []paylink.Link
	if link, ok := s.paylinks.Build(quote.Reference, paylink.KindDeposit, quote.CustomerEmail, quote.DepositAmount); ok {
		msg.DepositLink = link.URL
		links = append(links, link)
	}
	if link, ok := s.paylinks.Build(quote.Reference, paylink.KindFull, quote.CustomerEmail, quote.BalanceDue); ok {
		msg.FullLink = link.URL
		links = append(links, link)
	}

	quoteID := quote.ID
	log, err := s.mail.Deliver(ctx, entity.TemplateQuote, Delivery{
		To:   quote.CustomerEmail,
		Data: msg,
		Attachments: []email.Attachment{{
			Filename:    quote.Reference + ".pdf",
			ContentType: "application/pdf",
			Data:        data,
		}},
		QuoteID: &quoteID,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	quote.SentAt = &now
	if quote.Status == enum.QuoteStatusDraft {
		quote.Status = enum.QuoteStatusSent
	}
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	return &SentQuote{Quote: quote, Email: log, Links: links}, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/enum"
	domainRepo "github.com/sangkips/catering-api/internal/domain/repository"
	"gorm.io/gorm"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	err := r.db.WithContext(ctx).Create(quote).Error
	if isDuplicateKey(err) {
		return domainRepo.ErrDuplicateReference
	}
	return err
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.withRelations(r.db.WithContext(ctx)).First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) GetByReference(ctx context.Context, reference string) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.withRelations(r.db.WithContext(ctx)).First(&quote, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Payments").Save(quote).Error; err != nil {
			return err
		}
		if err := tx.Where("quote_id = ?", quote.ID).Delete(&entity.QuoteItem{}).Error; err != nil {
			return err
		}
		if len(quote.Items) == 0 {
			return nil
		}
		for i := range quote.Items {
			quote.Items[i].ID = uuid.Nil
			quote.Items[i].QuoteID = quote.ID
		}
		return tx.Create(&quote.Items).Error
	})
}

func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Quote{}, "id = ?", id).Error
}

func (r *quoteRepository) List(ctx context.Context, params *domainRepo.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Quote{}).
		Scopes(Search(params.Search, "reference", "customer_name", "customer_email", "venue"))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.
		Scopes(Sorted(params.SortBy, params.SortOrder, "created_at",
			"created_at", "event_date", "reference", "customer_name", "total_amount", "status")).
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&quotes).Error

	return quotes, total, err
}

func (r *quoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Quote{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *quoteRepository) AddPayment(ctx context.Context, quote *entity.Quote, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment.QuoteID = quote.ID
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Quote{}).
			Where("id = ?", quote.ID).
			Updates(map[string]interface{}{
				"subtotal":        quote.Subtotal,
				"taxable_amount":  quote.TaxableAmount,
				"discount_amount": quote.DiscountAmount,
				"tax_amount":      quote.TaxAmount,
				"gratuity_amount": quote.GratuityAmount,
				"total_amount":    quote.TotalAmount,
				"deposit_amount":  quote.DepositAmount,
				"balance_due":     quote.BalanceDue,
				"status":          quote.Status,
			}).Error
	})
}

// NextReferenceNumber counts soft-deleted quotes too so references are never reused
func (r *quoteRepository) NextReferenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Quote{}).Count(&count).Error
	return int(count) + 1, err
}

func (r *quoteRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("paid_at ASC")
		})
}

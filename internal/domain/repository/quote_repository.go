package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/domain/enum"
	"github.com/sangkips/catering-api/pkg/pagination"
)

// ErrDuplicateReference is returned by Create when the reference is taken
var ErrDuplicateReference = errors.New("quote reference already exists")

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	// Create stores the quote together with its items. A reference clash
	// returns ErrDuplicateReference.
	Create(ctx context.Context, quote *entity.Quote) error
	// GetByID loads the quote with items and payments, or nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetByReference(ctx context.Context, reference string) (*entity.Quote, error)
	// Update saves the quote columns and replaces its items
	Update(ctx context.Context, quote *entity.Quote) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error
	// AddPayment stores the payment with the quote's recomputed totals and status
	AddPayment(ctx context.Context, quote *entity.Quote, payment *entity.Payment) error
	NextReferenceNumber(ctx context.Context) (int, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	SortBy     string
	SortOrder  string
}

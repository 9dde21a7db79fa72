package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	"github.com/rishabgems/invoice-api/pkg/pagination"
)

// InvoiceArchiveFilter narrows archive listings. Search matches bill number,
// bill-to name or phone, case-insensitively.
type InvoiceArchiveFilter struct {
	Search string
}

// InvoiceArchiveRepository defines the interface for generated invoice records
type InvoiceArchiveRepository interface {
	Create(ctx context.Context, inv *entity.GeneratedInvoice) error
	// GetByID returns nil, nil when no record exists.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.GeneratedInvoice, error)
	// List returns one page, newest first, and the total number of matches.
	List(ctx context.Context, filter InvoiceArchiveFilter, params *pagination.PaginationParams) ([]entity.GeneratedInvoice, int64, error)
	// All returns every match, newest first.
	All(ctx context.Context, filter InvoiceArchiveFilter) ([]entity.GeneratedInvoice, error)
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	domainRepo "github.com/rishabgems/invoice-api/internal/domain/repository"
	"github.com/rishabgems/invoice-api/pkg/pagination"
	"gorm.io/gorm"
)

type invoiceArchiveRepository struct {
	db *gorm.DB
}

// NewInvoiceArchiveRepository creates a Postgres-backed invoice archive
func NewInvoiceArchiveRepository(db *gorm.DB) domainRepo.InvoiceArchiveRepository {
	return &invoiceArchiveRepository{db: db}
}

func (r *invoiceArchiveRepository) Create(ctx context.Context, inv *entity.GeneratedInvoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invoiceArchiveRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.GeneratedInvoice, error) {
	var inv entity.GeneratedInvoice
	err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inv, err
}

func (r *invoiceArchiveRepository) List(ctx context.Context, filter domainRepo.InvoiceArchiveFilter, params *pagination.PaginationParams) ([]entity.GeneratedInvoice, int64, error) {
	var invoices []entity.GeneratedInvoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.GeneratedInvoice{}).Scopes(ArchiveSearchScope(filter))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Scopes(NewestFirst).
		Offset(params.Offset()).Limit(params.PerPage).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceArchiveRepository) All(ctx context.Context, filter domainRepo.InvoiceArchiveFilter) ([]entity.GeneratedInvoice, error) {
	var invoices []entity.GeneratedInvoice
	err := r.db.WithContext(ctx).
		Scopes(ArchiveSearchScope(filter), NewestFirst).
		Find(&invoices).Error
	return invoices, err
}

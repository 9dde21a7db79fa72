package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	"github.com/rishabgems/invoice-api/internal/domain/repository"
	"github.com/rishabgems/invoice-api/pkg/apperror"
	"github.com/rishabgems/invoice-api/pkg/docstore"
	"github.com/rishabgems/invoice-api/pkg/logger"
	"github.com/rishabgems/invoice-api/pkg/pagination"
	"github.com/rishabgems/invoice-api/pkg/pptx"
	"github.com/xuri/excelize/v2"
)

const (
	registerSheet    = "Invoices"
	registerFilename = "invoice-register.xlsx"
	xlsxMIMEType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var registerHeader = []interface{}{
	"Bill No", "Bill Date", "Due Date", "Bill To", "Phone", "Email", "Payment Method",
	"Items", "Sub Total", "Rounding", "Net Payable", "Generated At",
}

// ArchiveService reads back generated invoices and their stored documents.
type ArchiveService struct {
	archiveRepo repository.InvoiceArchiveRepository
	store       docstore.Store
	log         *logger.Logger
}

// NewArchiveService creates a new archive service
func NewArchiveService(archiveRepo repository.InvoiceArchiveRepository, store docstore.Store, log *logger.Logger) *ArchiveService {
	return &ArchiveService{
		archiveRepo: archiveRepo,
		store:       store,
		log:         log,
	}
}

// List returns one page of generated invoices, newest first.
func (s *ArchiveService) List(ctx context.Context, search string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.GeneratedInvoice], error) {
	params.Validate()

	records, total, err := s.archiveRepo.List(ctx, repository.InvoiceArchiveFilter{Search: search}, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(records, p), nil
}

// Get returns one generated invoice record
func (s *ArchiveService) Get(ctx context.Context, id uuid.UUID) (*entity.GeneratedInvoice, error) {
	record, err := s.archiveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return record, nil
}

// Document returns the stored copy of a generated invoice.
func (s *ArchiveService) Document(ctx context.Context, id uuid.UUID) (*entity.RenderedInvoice, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.HasDocument() {
		return nil, apperror.NewNotFoundError("Invoice document")
	}

	data, err := s.store.Get(ctx, record.StorageKey)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			s.log.Warnw("archived invoice document is missing", "invoice_id", id, "key", record.StorageKey)
			return nil, apperror.NewNotFoundError("Invoice document")
		}
		return nil, err
	}

	return &entity.RenderedInvoice{
		Filename:    record.Filename,
		ContentType: pptx.MIMEType,
		Data:        data,
	}, nil
}

// ExportRegister writes every matching record to a spreadsheet, newest first.
func (s *ArchiveService) ExportRegister(ctx context.Context, search string) (*entity.RenderedInvoice, error) {
	records, err := s.archiveRepo.All(ctx, repository.InvoiceArchiveFilter{Search: search})
	if err != nil {
		return nil, err
	}

	data, err := buildRegister(records)
	if err != nil {
		s.log.Errorw("failed to build invoice register", "records", len(records), "error", err)
		return nil, apperror.ErrInternalServer
	}

	return &entity.RenderedInvoice{
		Filename:    registerFilename,
		ContentType: xlsxMIMEType,
		Data:        data,
	}, nil
}

func buildRegister(records []entity.GeneratedInvoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "header style")
	}
	// NumFmt 4 is "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, errors.Wrap(err, "amount style")
	}

	if err := f.SetSheetRow(registerSheet, "A1", &registerHeader); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	lastCol, _ := excelize.ColumnNumberToName(len(registerHeader))
	if err := f.SetCellStyle(registerSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, errors.Wrap(err, "style header")
	}

	for i, r := range records {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{
			r.BillNo,
			r.BillDate.Format(entity.DisplayDateLayout),
			r.DueDate.Format(entity.DisplayDateLayout),
			r.ClientBillTo,
			r.ClientPhone,
			r.ClientEmail,
			r.PaymentMethod.String(),
			r.ItemCount,
			r.Subtotal.InexactFloat64(),
			r.Rounding.InexactFloat64(),
			r.NetPayable.InexactFloat64(),
			r.GeneratedAt.Format("02-01-2006 15:04:05"),
		}
		if err := f.SetSheetRow(registerSheet, cell, &values); err != nil {
			return nil, errors.Wrapf(err, "write row %d", row)
		}
		from, _ := excelize.CoordinatesToCellName(9, row)
		to, _ := excelize.CoordinatesToCellName(11, row)
		if err := f.SetCellStyle(registerSheet, from, to, amountStyle); err != nil {
			return nil, errors.Wrapf(err, "style row %d", row)
		}
	}

	if err := f.SetColWidth(registerSheet, "A", lastCol, 18); err != nil {
		return nil, errors.Wrap(err, "column width")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

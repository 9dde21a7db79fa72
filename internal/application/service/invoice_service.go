package service

import (
	"context"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/config"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	"github.com/rishabgems/invoice-api/internal/domain/repository"
	"github.com/rishabgems/invoice-api/pkg/apperror"
	"github.com/rishabgems/invoice-api/pkg/docstore"
	"github.com/rishabgems/invoice-api/pkg/logger"
	"github.com/rishabgems/invoice-api/pkg/pptx"
	"github.com/rishabgems/invoice-api/pkg/utils"
)

// InvoiceService validates a session's form and renders it into the template.
type InvoiceService struct {
	sessionRepo repository.SessionRepository
	archiveRepo repository.InvoiceArchiveRepository
	templates   repository.TemplateSource
	store       docstore.Store
	validator   *InvoiceValidator
	filler      *TemplateFiller
	brand       config.BrandConfig
	loc         *time.Location
	log         *logger.Logger
	now         func() time.Time
}

// InvoiceServiceDeps groups the collaborators of InvoiceService
type InvoiceServiceDeps struct {
	SessionRepo repository.SessionRepository
	ArchiveRepo repository.InvoiceArchiveRepository
	Templates   repository.TemplateSource
	Store       docstore.Store
	Validator   *InvoiceValidator
	Filler      *TemplateFiller
	Brand       config.BrandConfig
	Location    *time.Location
	Logger      *logger.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(deps InvoiceServiceDeps) *InvoiceService {
	return &InvoiceService{
		sessionRepo: deps.SessionRepo,
		archiveRepo: deps.ArchiveRepo,
		templates:   deps.Templates,
		store:       deps.Store,
		validator:   deps.Validator,
		filler:      deps.Filler,
		brand:       deps.Brand,
		loc:         deps.Location,
		log:         deps.Logger,
		now:         time.Now,
	}
}

// InvoicePreview is a validated invoice and the template capacity it was checked against.
type InvoicePreview struct {
	Invoice  *entity.Invoice
	Capacity int
}

// GeneratedDocument is the outcome of a successful generation.
type GeneratedDocument struct {
	Invoice  *entity.Invoice
	Record   *entity.GeneratedInvoice
	Document *entity.RenderedInvoice
}

// prepare validates the session and checks the result fits the template.
func (s *InvoiceService) prepare(ctx context.Context, sessionID uuid.UUID) (*entity.FormSession, *entity.Invoice, []byte, *TemplateLayout, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if session == nil {
		return nil, nil, nil, nil, apperror.ErrSessionExpired
	}

	inv, err := s.validator.Validate(&ValidateInput{
		BillNo:        session.BillNo,
		Bill:          session.Bill,
		PaymentMethod: session.PaymentMethod,
		Rows:          session.Rows,
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}

	tmpl, err := s.templates.Load(ctx)
	if err != nil {
		s.log.Errorw("failed to load invoice template", "template", s.templates.Location(), "error", err)
		return nil, nil, nil, nil, apperror.NewTemplateIntegrityError("the invoice template could not be read")
	}

	layout, err := s.filler.Inspect(tmpl)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if len(inv.Items) > layout.LineItemRows {
		return nil, nil, nil, nil, apperror.NewTooManyItemsError(layout.LineItemRows)
	}
	return session, inv, tmpl, layout, nil
}

// Preview validates the session's form without rendering a document.
func (s *InvoiceService) Preview(ctx context.Context, sessionID uuid.UUID) (*InvoicePreview, error) {
	_, inv, _, layout, err := s.prepare(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &InvoicePreview{Invoice: inv, Capacity: layout.LineItemRows}, nil
}

// Generate validates the session's form, fills the template and returns the
// document. A copy is stored and archived when possible; failures there are
// logged and do not fail the generation. The session is left unchanged.
func (s *InvoiceService) Generate(ctx context.Context, sessionID uuid.UUID) (*GeneratedDocument, error) {
	session, inv, tmpl, _, err := s.prepare(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	data, err := s.filler.Fill(tmpl, inv)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	doc := &entity.RenderedInvoice{
		Filename:    utils.InvoiceFilename(s.brand.FilePrefix, inv.Bill.BillNo, inv.Bill.ClientBillTo, inv.Bill.ClientPhone, now),
		ContentType: pptx.MIMEType,
		Data:        data,
	}

	record := &entity.GeneratedInvoice{
		ID:            uuid.New(),
		BillNo:        inv.Bill.BillNo,
		SessionID:     session.ID,
		BillDate:      inv.Bill.BillDate,
		DueDate:       inv.Bill.DueDate,
		BillerName:    inv.Bill.BillerName,
		ClientBillTo:  inv.Bill.ClientBillTo,
		ClientPhone:   inv.Bill.ClientPhone,
		ClientEmail:   inv.Bill.ClientEmail,
		ClientAddress: inv.Bill.ClientAddress,
		PaymentMethod: inv.PaymentMethod,
		ItemCount:     len(inv.Items),
		Subtotal:      inv.Totals.Subtotal,
		Rounding:      inv.Totals.Rounding,
		NetPayable:    inv.Totals.NetPayable,
		Filename:      doc.Filename,
		StorageDriver: s.store.Driver(),
		GeneratedAt:   now,
	}

	log := s.log.With("bill_no", record.BillNo, "invoice_id", record.ID)

	if s.store.Driver() != "none" {
		key := path.Join("invoices", record.ID.String(), doc.Filename)
		if err := s.store.Put(ctx, key, data, doc.ContentType); err != nil {
			log.Warnw("failed to store generated invoice", "key", key, "error", err)
		} else {
			record.StorageKey = key
		}
	}

	if err := s.archiveRepo.Create(ctx, record); err != nil {
		log.Errorw("failed to archive generated invoice", "error", err)
	}

	log.Infow("invoice generated",
		"items", record.ItemCount,
		"net_payable", record.NetPayable.StringFixed(2),
		"filename", doc.Filename,
	)

	return &GeneratedDocument{Invoice: inv, Record: record, Document: doc}, nil
}

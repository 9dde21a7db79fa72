package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	domainRepo "github.com/rishabgems/invoice-api/internal/domain/repository"
	"github.com/rishabgems/invoice-api/pkg/pagination"
	"github.com/samber/lo"
)

// memoryArchiveRepository is used when no database is configured. Records are
// lost on restart.
type memoryArchiveRepository struct {
	mu       sync.RWMutex
	invoices []entity.GeneratedInvoice
}

// NewMemoryInvoiceArchiveRepository creates an in-memory invoice archive
func NewMemoryInvoiceArchiveRepository() domainRepo.InvoiceArchiveRepository {
	return &memoryArchiveRepository{}
}

func (r *memoryArchiveRepository) Create(_ context.Context, inv *entity.GeneratedInvoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices = append(r.invoices, *inv)
	return nil
}

func (r *memoryArchiveRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.GeneratedInvoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := lo.Find(r.invoices, func(g entity.GeneratedInvoice) bool { return g.ID == id })
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *memoryArchiveRepository) matching(filter domainRepo.InvoiceArchiveFilter) []entity.GeneratedInvoice {
	r.mu.RLock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := lo.Filter(r.invoices, func(g entity.GeneratedInvoice, _ int) bool {
		if search == "" {
			return true
		}
		return lo.SomeBy([]string{g.BillNo, g.ClientBillTo, g.ClientPhone}, func(s string) bool {
			return strings.Contains(strings.ToLower(s), search)
		})
	})
	r.mu.RUnlock()

	// newest first; ties keep the latest insert first
	out = lo.Reverse(out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].GeneratedAt.After(out[j].GeneratedAt) })
	return out
}

func (r *memoryArchiveRepository) List(_ context.Context, filter domainRepo.InvoiceArchiveFilter, params *pagination.PaginationParams) ([]entity.GeneratedInvoice, int64, error) {
	all := r.matching(filter)
	params.Validate()
	start, end := params.Bounds(len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *memoryArchiveRepository) All(_ context.Context, filter domainRepo.InvoiceArchiveFilter) ([]entity.GeneratedInvoice, error) {
	return r.matching(filter), nil
}

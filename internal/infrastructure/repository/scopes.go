package repository

import (
	"strings"

	domainRepo "github.com/rishabgems/invoice-api/internal/domain/repository"
	"gorm.io/gorm"
)

// ArchiveSearchScope returns a GORM scope that applies an archive filter.
// An empty search matches everything.
func ArchiveSearchScope(filter domainRepo.InvoiceArchiveFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search := strings.TrimSpace(filter.Search)
		if search == "" {
			return db
		}
		like := "%" + search + "%"
		return db.Where("bill_no ILIKE ? OR client_bill_to ILIKE ? OR client_phone ILIKE ?", like, like, like)
	}
}

// NewestFirst orders archive rows by generation time, latest first.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("generated_at DESC").Order("id DESC")
}

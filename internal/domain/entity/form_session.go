package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/domain/enum"
)

// FormSession is the in-progress invoice form of one client. The bill number is
// fixed when the session starts.
type FormSession struct {
	ID            uuid.UUID          `json:"id"`
	BillNo        string             `json:"bill_no"`
	Bill          RawBillInfo        `json:"bill"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Rows          []RawLineItem      `json:"rows"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Clone returns a copy that shares no row storage with s.
func (s *FormSession) Clone() *FormSession {
	c := *s
	c.Rows = make([]RawLineItem, len(s.Rows))
	copy(c.Rows, s.Rows)
	return &c
}

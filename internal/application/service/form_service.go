package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/config"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	"github.com/rishabgems/invoice-api/internal/domain/enum"
	"github.com/rishabgems/invoice-api/internal/domain/repository"
	"github.com/rishabgems/invoice-api/pkg/apperror"
	"github.com/rishabgems/invoice-api/pkg/utils"
)

// FormService collects raw form input per session. It never validates values.
type FormService struct {
	sessionRepo repository.SessionRepository
	brand       config.BrandConfig
	loc         *time.Location
	now         func() time.Time
}

// NewFormService creates a new form service
func NewFormService(sessionRepo repository.SessionRepository, brand config.BrandConfig, loc *time.Location) *FormService {
	return &FormService{
		sessionRepo: sessionRepo,
		brand:       brand,
		loc:         loc,
		now:         time.Now,
	}
}

// UpdateRowInput overwrites the fields that are set
type UpdateRowInput struct {
	No          *string
	Description *string
	Weight      *string
	Rate        *string
	Amount      *string
}

// UpdateBillInput overwrites the fields that are set
type UpdateBillInput struct {
	BillDate      *string
	DueDate       *string
	BillerName    *string
	ClientAddress *string
	ClientPhone   *string
	ClientEmail   *string
	ClientBillTo  *string
	PaymentMethod *enum.PaymentMethod
}

// StartSession opens a form with a fresh bill number, default dates and biller,
// Cash selected and one blank row.
func (s *FormService) StartSession(ctx context.Context) (*entity.FormSession, error) {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	session := &entity.FormSession{
		ID:     uuid.New(),
		BillNo: utils.GenerateBillNo(s.brand.BillPrefix, now),
		Bill: entity.RawBillInfo{
			BillDate:   today.Format(InputDateLayout),
			DueDate:    today.AddDate(0, 0, s.brand.DueInDays).Format(InputDateLayout),
			BillerName: s.brand.BillerName,
		},
		PaymentMethod: enum.PaymentMethodCash,
		Rows:          []entity.RawLineItem{{}},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns the current state of a session
func (s *FormService) GetSession(ctx context.Context, id uuid.UUID) (*entity.FormSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionExpired
	}
	return session, nil
}

func (s *FormService) update(ctx context.Context, id uuid.UUID, fn func(*entity.FormSession) error) (*entity.FormSession, error) {
	session, err := s.sessionRepo.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionExpired
	}
	return session, nil
}

// AddRow appends a blank row
func (s *FormService) AddRow(ctx context.Context, id uuid.UUID) (*entity.FormSession, error) {
	return s.update(ctx, id, func(fs *entity.FormSession) error {
		fs.Rows = append(fs.Rows, entity.RawLineItem{})
		return nil
	})
}

// UpdateRow overwrites fields of the row at index (0-based)
func (s *FormService) UpdateRow(ctx context.Context, id uuid.UUID, index int, input *UpdateRowInput) (*entity.FormSession, error) {
	return s.update(ctx, id, func(fs *entity.FormSession) error {
		if index < 0 || index >= len(fs.Rows) {
			return apperror.NewNotFoundError("Row")
		}
		row := &fs.Rows[index]
		setIfPresent(&row.No, input.No)
		setIfPresent(&row.Description, input.Description)
		setIfPresent(&row.Weight, input.Weight)
		setIfPresent(&row.Rate, input.Rate)
		setIfPresent(&row.Amount, input.Amount)
		return nil
	})
}

// RemoveRow deletes the row at index. Removing the only row leaves one blank row.
func (s *FormService) RemoveRow(ctx context.Context, id uuid.UUID, index int) (*entity.FormSession, error) {
	return s.update(ctx, id, func(fs *entity.FormSession) error {
		if index < 0 || index >= len(fs.Rows) {
			return apperror.NewNotFoundError("Row")
		}
		fs.Rows = append(fs.Rows[:index], fs.Rows[index+1:]...)
		if len(fs.Rows) == 0 {
			fs.Rows = []entity.RawLineItem{{}}
		}
		return nil
	})
}

// UpdateBill overwrites bill, client and payment fields. The bill number cannot change.
func (s *FormService) UpdateBill(ctx context.Context, id uuid.UUID, input *UpdateBillInput) (*entity.FormSession, error) {
	return s.update(ctx, id, func(fs *entity.FormSession) error {
		setIfPresent(&fs.Bill.BillDate, input.BillDate)
		setIfPresent(&fs.Bill.DueDate, input.DueDate)
		setIfPresent(&fs.Bill.BillerName, input.BillerName)
		setIfPresent(&fs.Bill.ClientAddress, input.ClientAddress)
		setIfPresent(&fs.Bill.ClientPhone, input.ClientPhone)
		setIfPresent(&fs.Bill.ClientEmail, input.ClientEmail)
		setIfPresent(&fs.Bill.ClientBillTo, input.ClientBillTo)
		if input.PaymentMethod != nil {
			if !input.PaymentMethod.IsValid() {
				return apperror.NewBadRequestError("Unknown payment method")
			}
			fs.PaymentMethod = *input.PaymentMethod
		}
		return nil
	})
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

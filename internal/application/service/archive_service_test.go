package service

import (
	"bytes"
	"net/http"

	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/pkg/apperror"
	"github.com/rishabgems/invoice-api/pkg/pagination"
	"github.com/xuri/excelize/v2"
)

func (s *InvoiceServiceSuite) generate(billTo string) uuid.UUID {
	id := s.filledSession(ring("1"))
	_, err := s.forms.UpdateBill(s.ctx, id, &UpdateBillInput{ClientBillTo: &billTo})
	s.Require().NoError(err)

	res, err := s.invoices.Generate(s.ctx, id)
	s.Require().NoError(err)
	return res.Record.ID
}

func (s *InvoiceServiceSuite) TestArchiveListAndSearch() {
	s.generate("Asha Rao")
	s.generate("Vikram Shah")
	latest := s.generate("Asha Menon")

	page, err := s.archives.List(s.ctx, "", &pagination.PaginationParams{Page: 1, PerPage: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), page.Pagination.Total)
	s.Equal(2, page.Pagination.TotalPages)
	s.True(page.Pagination.HasNext)
	s.Len(page.Items, 2)
	s.Equal(latest, page.Items[0].ID, "newest first")

	found, err := s.archives.List(s.ctx, "asha", &pagination.PaginationParams{})
	s.Require().NoError(err)
	s.Equal(int64(2), found.Pagination.Total)
	s.Equal(15, found.Pagination.PerPage, "invalid params are normalized")
}

func (s *InvoiceServiceSuite) TestArchiveGetAndDocument() {
	id := s.generate("Asha Rao")

	rec, err := s.archives.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Asha Rao", rec.ClientBillTo)

	doc, err := s.archives.Document(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(rec.Filename, doc.Filename)
	s.NotEmpty(doc.Data)

	_, err = s.archives.Get(s.ctx, uuid.New())
	appErr := apperror.GetAppError(err)
	s.Require().NotNil(appErr)
	s.Equal(http.StatusNotFound, appErr.Code)
}

func (s *InvoiceServiceSuite) TestExportRegister() {
	s.generate("Asha Rao")
	s.generate("Vikram Shah")

	doc, err := s.archives.ExportRegister(s.ctx, "")
	s.Require().NoError(err)
	s.Equal("invoice-register.xlsx", doc.Filename)
	s.Equal(xlsxMIMEType, doc.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	s.Require().NoError(err)
	defer f.Close()

	rows, err := f.GetRows(registerSheet, excelize.Options{RawCellValue: true})
	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal("Bill No", rows[0][0])
	s.Equal("Vikram Shah", rows[1][3])
	s.Equal("Cash", rows[1][6])
	s.Equal("Asha Rao", rows[2][3])
	s.Equal("125000", rows[1][10])
}

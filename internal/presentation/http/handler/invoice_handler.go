package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rishabgems/invoice-api/internal/application/service"
	"github.com/rishabgems/invoice-api/internal/presentation/http/dto/response"
)

// InvoiceHandler validates and renders the session's form
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Preview returns the invoice as it would be printed, without rendering it
func (h *InvoiceHandler) Preview(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not authenticated")
		return
	}

	preview, err := h.invoiceService.Preview(c.Request.Context(), *sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice is valid", response.NewInvoicePreviewResponse(preview.Invoice, preview.Capacity))
}

// Generate renders the invoice and sends it as a download
func (h *InvoiceHandler) Generate(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not authenticated")
		return
	}

	result, err := h.invoiceService.Generate(c.Request.Context(), *sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("X-Invoice-ID", result.Record.ID.String())
	c.Header("X-Bill-No", result.Record.BillNo)
	response.Attachment(c, result.Document.Filename, result.Document.ContentType, result.Document.Data)
}

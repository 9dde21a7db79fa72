package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/application/service"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	"github.com/rishabgems/invoice-api/internal/presentation/http/dto/request"
	"github.com/rishabgems/invoice-api/internal/presentation/http/dto/response"
	"github.com/rishabgems/invoice-api/pkg/pagination"
	"github.com/samber/lo"
)

// ArchiveHandler handles previously generated invoices
type ArchiveHandler struct {
	archiveService *service.ArchiveService
	accessService  *service.ArchiveAccessService
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(archiveService *service.ArchiveService, accessService *service.ArchiveAccessService) *ArchiveHandler {
	return &ArchiveHandler{
		archiveService: archiveService,
		accessService:  accessService,
	}
}

// Token exchanges the archive key for an archive token
func (h *ArchiveHandler) Token(c *gin.Context) {
	var req request.ArchiveTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Archive key is required")
		return
	}

	token, err := h.accessService.IssueToken(c.Request.Context(), req.APIKey)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Archive token issued", response.ArchiveTokenResponse{
		Token:     token,
		ExpiresIn: int64(h.accessService.TokenTTL().Seconds()),
	})
}

// List handles listing generated invoices, newest first
func (h *ArchiveHandler) List(c *gin.Context) {
	var filter request.ArchiveFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.archiveService.List(c.Request.Context(), filter.Search, &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := lo.Map(result.Items, func(g entity.GeneratedInvoice, _ int) response.GeneratedInvoiceResponse {
		return response.NewGeneratedInvoiceResponse(&g)
	})
	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully",
		pagination.NewPaginatedResult(items, result.Pagination))
}

// Get handles getting one generated invoice
func (h *ArchiveHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	record, err := h.archiveService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", response.NewGeneratedInvoiceResponse(record))
}

// Document downloads the stored copy of a generated invoice
func (h *ArchiveHandler) Document(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	doc, err := h.archiveService.Document(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, doc.Filename, doc.ContentType, doc.Data)
}

// Export downloads the invoice register as a spreadsheet
func (h *ArchiveHandler) Export(c *gin.Context) {
	var filter request.ArchiveFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	doc, err := h.archiveService.ExportRegister(c.Request.Context(), filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, doc.Filename, doc.ContentType, doc.Data)
}

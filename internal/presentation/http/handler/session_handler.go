package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rishabgems/invoice-api/internal/application/service"
	"github.com/rishabgems/invoice-api/internal/presentation/http/dto/request"
	"github.com/rishabgems/invoice-api/internal/presentation/http/dto/response"
	"github.com/rishabgems/invoice-api/pkg/utils"
)

// SessionHandler handles the invoice form of one client
type SessionHandler struct {
	formService *service.FormService
	jwtManager  *utils.JWTManager
	tokenTTL    int64
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(formService *service.FormService, jwtManager *utils.JWTManager, tokenTTLSeconds int64) *SessionHandler {
	return &SessionHandler{
		formService: formService,
		jwtManager:  jwtManager,
		tokenTTL:    tokenTTLSeconds,
	}
}

// Start opens a new invoice form and issues its token
func (h *SessionHandler) Start(c *gin.Context) {
	session, err := h.formService.StartSession(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateSessionToken(session.ID, session.BillNo)
	if err != nil {
		response.InternalServerError(c, "Failed to issue session token")
		return
	}

	response.Created(c, "Invoice session started", response.StartSessionResponse{
		Token:     token,
		ExpiresIn: h.tokenTTL,
		Session:   response.NewSessionResponse(session),
	})
}

// Get returns the form as last saved
func (h *SessionHandler) Get(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not authenticated")
		return
	}

	session, err := h.formService.GetSession(c.Request.Context(), *sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved successfully", response.NewSessionResponse(session))
}

// UpdateBill overwrites bill, client and payment fields
func (h *SessionHandler) UpdateBill(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not authenticated")
		return
	}

	var req request.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.formService.UpdateBill(c.Request.Context(), *sessionID, &service.UpdateBillInput{
		BillDate:      req.BillDate,
		DueDate:       req.DueDate,
		BillerName:    req.BillerName,
		ClientAddress: req.ClientAddress,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		ClientBillTo:  req.ClientBillTo,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill details updated", response.NewSessionResponse(session))
}

// AddRow appends a blank line item
func (h *SessionHandler) AddRow(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not authenticated")
		return
	}

	session, err := h.formService.AddRow(c.Request.Context(), *sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Row added", response.NewSessionResponse(session))
}

// UpdateRow overwrites fields of one line item
func (h *SessionHandler) UpdateRow(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not authenticated")
		return
	}

	var uri request.RowIndexURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "Invalid row index")
		return
	}

	var req request.UpdateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.formService.UpdateRow(c.Request.Context(), *sessionID, *uri.Index, &service.UpdateRowInput{
		No:          req.No,
		Description: req.Description,
		Weight:      req.Weight,
		Rate:        req.Rate,
		Amount:      req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Row updated", response.NewSessionResponse(session))
}

// RemoveRow deletes one line item
func (h *SessionHandler) RemoveRow(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "Session not authenticated")
		return
	}

	var uri request.RowIndexURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "Invalid row index")
		return
	}

	session, err := h.formService.RemoveRow(c.Request.Context(), *sessionID, *uri.Index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Row removed", response.NewSessionResponse(session))
}

package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rishabgems/invoice-api/internal/application/service"
	"github.com/rishabgems/invoice-api/internal/config"
	"github.com/rishabgems/invoice-api/internal/infrastructure/repository"
	"github.com/rishabgems/invoice-api/internal/infrastructure/template"
	"github.com/rishabgems/invoice-api/internal/presentation/http/handler"
	"github.com/rishabgems/invoice-api/pkg/apperror"
	"github.com/rishabgems/invoice-api/pkg/docstore"
	"github.com/rishabgems/invoice-api/pkg/logger"
	"github.com/rishabgems/invoice-api/pkg/pptx"
	"github.com/rishabgems/invoice-api/pkg/pptx/pptxtest"
	"github.com/rishabgems/invoice-api/pkg/utils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const archiveKey = "operator-key"

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
}

type RoutesSuite struct {
	suite.Suite
	router *gin.Engine
	token  string
}

// defaultRateLimit is the limit a deployment gets without overrides.
func defaultRateLimit() config.RateLimitConfig {
	return config.Load().RateLimit
}

func TestRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RoutesSuite))
}

func (s *RoutesSuite) SetupTest() {
	cfg := &config.Config{
		App:         config.AppConfig{Name: "invoice-api"},
		Template:    config.TemplateConfig{Path: "/invoice_template.pptx"},
		Brand:       config.BrandConfig{FilePrefix: "RishabGems", BillPrefix: "RG", BillerName: "Rishab Gems", DueInDays: 7},
		Storage:     config.StorageConfig{Driver: "local"},
		RateLimit:   defaultRateLimit(),
		Idempotency: config.IdempotencyConfig{TTL: time.Hour},
	}
	log := logger.NewNop()
	loc := time.FixedZone("IST", 5*3600+1800)

	fs := afero.NewMemMapFs()
	s.Require().NoError(afero.WriteFile(fs, cfg.Template.Path, pptxtest.InvoiceTemplate(4), 0o644))

	sessions := repository.NewSessionRepository(time.Hour, time.Minute)
	archive := repository.NewMemoryInvoiceArchiveRepository()
	store := docstore.NewFsStore(afero.NewMemMapFs())
	jwtManager := utils.NewJWTManager("test-secret", cfg.App.Name, time.Hour)

	forms := service.NewFormService(sessions, cfg.Brand, loc)
	invoices := service.NewInvoiceService(service.InvoiceServiceDeps{
		SessionRepo: sessions,
		ArchiveRepo: archive,
		Templates:   template.NewFileSource(fs, cfg.Template.Path),
		Store:       store,
		Validator:   service.NewInvoiceValidator(loc),
		Filler:      service.NewTemplateFiller(log),
		Brand:       cfg.Brand,
		Location:    loc,
		Logger:      log,
	})
	archives := service.NewArchiveService(archive, store, log)
	keyHash, err := bcrypt.GenerateFromPassword([]byte(archiveKey), bcrypt.MinCost)
	s.Require().NoError(err)
	access := service.NewArchiveAccessService(string(keyHash), time.Hour, jwtManager, log)

	s.router = Setup(&Handlers{
		Session: handler.NewSessionHandler(forms, jwtManager, 3600),
		Invoice: handler.NewInvoiceHandler(invoices),
		Archive: handler.NewArchiveHandler(archives, access),
	}, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(time.Minute),
		Logger:          log,
	})

	var started struct {
		Token string `json:"token"`
	}
	rec := s.do(http.MethodPost, "/api/v1/sessions", "", nil)
	s.Require().Equal(http.StatusCreated, rec.Code)
	s.decode(rec, &started)
	s.Require().NotEmpty(started.Token)
	s.token = started.Token
}

func (s *RoutesSuite) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RoutesSuite) decode(rec *httptest.ResponseRecorder, data interface{}) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		s.Require().NoError(json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *RoutesSuite) archiveAuth() map[string]string {
	rec := s.do(http.MethodPost, "/api/v1/archive/token", `{"api_key":"`+archiveKey+`"}`, nil)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var issued struct {
		Token string `json:"token"`
	}
	s.decode(rec, &issued)
	s.Require().NotEmpty(issued.Token)
	return map[string]string{"Authorization": "Bearer " + issued.Token}
}

func (s *RoutesSuite) fillRow() {
	rec := s.do(http.MethodPut, "/api/v1/session/rows/0",
		`{"no":"1","description":"Ring","weight":"2.5","rate":"50000"}`, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *RoutesSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"ok"`)
}

func (s *RoutesSuite) TestSessionRequiresToken() {
	s.token = ""
	rec := s.do(http.MethodGet, "/api/v1/session", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	s.token = "not-a-token"
	rec = s.do(http.MethodGet, "/api/v1/session", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("Invalid session token", s.decode(rec, nil).Message)
}

func (s *RoutesSuite) TestEditForm() {
	rec := s.do(http.MethodPost, "/api/v1/session/rows", "", nil)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/session/bill", `{"client_bill_to":"Asha Rao","payment_method":"NEFT / IMPS"}`, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var session struct {
		BillNo        string `json:"bill_no"`
		PaymentMethod string `json:"payment_method"`
		Bill          struct {
			ClientBillTo string `json:"client_bill_to"`
		} `json:"bill"`
		Rows []map[string]string `json:"rows"`
	}
	rec = s.do(http.MethodGet, "/api/v1/session", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &session)

	s.True(strings.HasPrefix(session.BillNo, "RG-"))
	s.Equal("NEFT / IMPS", session.PaymentMethod)
	s.Equal("Asha Rao", session.Bill.ClientBillTo)
	s.Len(session.Rows, 2)

	rec = s.do(http.MethodDelete, "/api/v1/session/rows/1", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	rec = s.do(http.MethodDelete, "/api/v1/session/rows/5", "", nil)
	s.Equal(http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodPut, "/api/v1/session/rows/abc", `{}`, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RoutesSuite) TestUnknownPaymentMethod() {
	rec := s.do(http.MethodPut, "/api/v1/session/bill", `{"payment_method":"Barter"}`, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RoutesSuite) TestGenerateEmpty() {
	rec := s.do(http.MethodPost, "/api/v1/session/generate", "", nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal(apperror.EmptySubmissionMessage, s.decode(rec, nil).Message)
}

func (s *RoutesSuite) TestGenerateRowErrors() {
	rec := s.do(http.MethodPut, "/api/v1/session/rows/0", `{"no":"1","description":"Ring","weight":"abc","rate":"1"}`, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/session/generate", "", nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	env := s.decode(rec, nil)
	s.Require().Len(env.Errors, 1)
	s.Equal("row_1", env.Errors[0].Field)
	s.Contains(env.Errors[0].Message, "Weight must be a number (e.g. 1.25).")
}

func (s *RoutesSuite) TestPreview() {
	s.fillRow()

	var preview struct {
		NetPayable string `json:"net_payable"`
		Capacity   int    `json:"capacity"`
		Items      []struct {
			Amount string `json:"amount"`
		} `json:"items"`
	}
	rec := s.do(http.MethodPost, "/api/v1/session/preview", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &preview)

	s.Equal("₹ 125,000.00", preview.NetPayable)
	s.Equal(4, preview.Capacity)
	s.Equal("125,000.00", preview.Items[0].Amount)
}

func (s *RoutesSuite) TestGenerateAndReplay() {
	s.fillRow()
	headers := map[string]string{"Idempotency-Key": "gen-1"}

	first := s.do(http.MethodPost, "/api/v1/session/generate", "", headers)
	s.Require().Equal(http.StatusOK, first.Code, first.Body.String())
	s.Equal(pptx.MIMEType, first.Header().Get("Content-Type"))
	s.Contains(first.Header().Get("Content-Disposition"), "attachment; filename=\"RishabGems_RG-")
	s.NotEmpty(first.Header().Get("X-Invoice-ID"))

	second := s.do(http.MethodPost, "/api/v1/session/generate", "", headers)
	s.Require().Equal(http.StatusOK, second.Code)
	s.Equal("true", second.Header().Get("X-Idempotency-Replayed"))
	s.Equal(first.Header().Get("Content-Disposition"), second.Header().Get("Content-Disposition"))
	s.True(bytes.Equal(first.Body.Bytes(), second.Body.Bytes()))

	var page struct {
		Items []struct {
			ID          string `json:"id"`
			HasDocument bool   `json:"has_document"`
		} `json:"items"`
	}
	auth := s.archiveAuth()
	rec := s.do(http.MethodGet, "/api/v1/invoices", "", auth)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &page)
	s.Require().Len(page.Items, 1, "replayed request is not archived again")
	s.True(page.Items[0].HasDocument)

	doc := s.do(http.MethodGet, "/api/v1/invoices/"+page.Items[0].ID+"/document", "", auth)
	s.Require().Equal(http.StatusOK, doc.Code)
	s.True(bytes.Equal(first.Body.Bytes(), doc.Body.Bytes()))

	export := s.do(http.MethodGet, "/api/v1/invoices/export", "", auth)
	s.Require().Equal(http.StatusOK, export.Code)
	s.Contains(export.Header().Get("Content-Disposition"), "invoice-register.xlsx")
}

func (s *RoutesSuite) TestArchiveBadID() {
	rec := s.do(http.MethodGet, "/api/v1/invoices/nope", "", s.archiveAuth())
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RoutesSuite) TestArchiveRequiresArchiveToken() {
	s.fillRow()
	rec := s.do(http.MethodPost, "/api/v1/session/generate", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	paths := []string{
		"/api/v1/invoices",
		"/api/v1/invoices/export",
		"/api/v1/invoices/" + rec.Header().Get("X-Invoice-ID"),
		"/api/v1/invoices/" + rec.Header().Get("X-Invoice-ID") + "/document",
	}
	for _, path := range paths {
		anonymous := s.do(http.MethodGet, path, "", map[string]string{"Authorization": ""})
		s.Equal(http.StatusUnauthorized, anonymous.Code, path)
		s.NotContains(anonymous.Body.String(), "Ring", path)

		// A client's own session token does not open other clients' invoices
		withSession := s.do(http.MethodGet, path, "", nil)
		s.Equal(http.StatusUnauthorized, withSession.Code, path)
		s.Equal("Invalid archive token", s.decode(withSession, nil).Message, path)
	}
}

func (s *RoutesSuite) TestArchiveTokenRejectsWrongKey() {
	rec := s.do(http.MethodPost, "/api/v1/archive/token", `{"api_key":"guess"}`, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/archive/token", `{}`, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RoutesSuite) TestFormEditingIsNotRateLimited() {
	const rows = 7
	edits := 0
	for i := 1; i < rows; i++ {
		rec := s.do(http.MethodPost, "/api/v1/session/rows", "", nil)
		s.Require().Equal(http.StatusCreated, rec.Code, "add row %d", i)
		edits++
	}
	for i := 0; i < rows; i++ {
		for _, field := range []string{
			`{"no":"` + strconv.Itoa(i+1) + `"}`,
			`{"description":"Ring"}`,
			`{"weight":"2.5"}`,
			`{"rate":"50000"}`,
			`{"amount":""}`,
		} {
			rec := s.do(http.MethodPut, "/api/v1/session/rows/"+strconv.Itoa(i), field, nil)
			s.Require().Equal(http.StatusOK, rec.Code, "edit #%d: %s", edits+1, rec.Body.String())
			edits++
		}
	}
	s.Greater(edits, defaultRateLimit().Requests)

	rec := s.do(http.MethodPost, "/api/v1/session/generate", "", nil)
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *RoutesSuite) TestRenderingIsRateLimited() {
	s.fillRow()
	limit := defaultRateLimit().Requests

	for i := 0; i < limit; i++ {
		rec := s.do(http.MethodPost, "/api/v1/session/preview", "", nil)
		s.Require().Equal(http.StatusOK, rec.Code, "preview #%d", i+1)
	}

	limited := false
	for i := 0; i < 5 && !limited; i++ {
		limited = s.do(http.MethodPost, "/api/v1/session/preview", "", nil).Code == http.StatusTooManyRequests
	}
	s.True(limited, "preview beyond the burst is throttled")
}

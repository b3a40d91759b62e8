package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-analyzer-api/internal/application/budget"
	"github.com/jhoicas/stock-analyzer-api/internal/application/dto"
	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
	apphttp "github.com/jhoicas/stock-analyzer-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para el flujo de presupuesto
// ──────────────────────────────────────────────────────────────────────────────

type budgetFixture struct {
	requests  map[string]*entity.BudgetRequest
	approvals map[string]*entity.Approval
	counters  map[int]int64
}

func newBudgetFixture() *budgetFixture {
	return &budgetFixture{
		requests:  make(map[string]*entity.BudgetRequest),
		approvals: make(map[string]*entity.Approval),
		counters:  make(map[int]int64),
	}
}

type budgetFixtureTxRunner struct {
	fx *budgetFixture
}

func (r *budgetFixtureTxRunner) RunBudget(_ context.Context, fn func(
	requestRepo repository.BudgetRequestRepository,
	approvalRepo repository.ApprovalRepository,
	counterRepo repository.RequestCounterRepository,
) error) error {
	return fn(
		&fxRequestRepo{fx: r.fx},
		&fxApprovalRepo{fx: r.fx},
		&fxCounterRepo{fx: r.fx},
	)
}

type fxRequestRepo struct {
	fx *budgetFixture
}

func (f *fxRequestRepo) Create(req *entity.BudgetRequest) error {
	f.fx.requests[req.ID] = req
	return nil
}
func (f *fxRequestRepo) GetByID(id string) (*entity.BudgetRequest, error) {
	return f.fx.requests[id], nil
}
func (f *fxRequestRepo) GetForUpdate(id string) (*entity.BudgetRequest, error) {
	return f.fx.requests[id], nil
}
func (f *fxRequestRepo) List(int, int) ([]*entity.BudgetRequest, error) {
	var out []*entity.BudgetRequest
	for _, r := range f.fx.requests {
		out = append(out, r)
	}
	return out, nil
}
func (f *fxRequestRepo) UpdateStatus(id, status string) error {
	f.fx.requests[id].Status = status
	return nil
}

type fxApprovalRepo struct {
	fx *budgetFixture
}

func (f *fxApprovalRepo) Create(a *entity.Approval) error {
	if _, exists := f.fx.approvals[a.RequestID]; exists {
		return domain.ErrAlreadyDecided
	}
	f.fx.approvals[a.RequestID] = a
	return nil
}
func (f *fxApprovalRepo) GetByRequestID(requestID string) (*entity.Approval, error) {
	return f.fx.approvals[requestID], nil
}
func (f *fxApprovalRepo) List(int, int) ([]*entity.Approval, error) { return nil, nil }

type fxCounterRepo struct {
	fx *budgetFixture
}

func (f *fxCounterRepo) Next(year int) (int64, error) {
	f.fx.counters[year]++
	return f.fx.counters[year], nil
}

type fxAccountCodeRepo struct{}

func (f *fxAccountCodeRepo) List() ([]*entity.AccountCode, error)          { return nil, nil }
func (f *fxAccountCodeRepo) GetByCode(string) (*entity.AccountCode, error) { return nil, nil }

type noopPDFGenerator struct{}

func (noopPDFGenerator) GenerateRequestPDF(context.Context, *entity.BudgetRequest, *entity.Approval) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func buildBudgetApp() (*fiber.App, *budgetFixture) {
	fx := newBudgetFixture()
	runner := &budgetFixtureTxRunner{fx: fx}
	uc := budget.NewUseCase(runner, &fxRequestRepo{fx: fx}, &fxApprovalRepo{fx: fx}, &fxAccountCodeRepo{})
	pdfUC := budget.NewPDFUseCase(&fxRequestRepo{fx: fx}, &fxApprovalRepo{fx: fx}, noopPDFGenerator{})

	app := fiber.New()
	handler := apphttp.NewBudgetHandler(uc, pdfUC)
	approvalHandler := apphttp.NewApprovalHandler(uc)
	app.Post("/api/budget-requests", handler.Create)
	app.Get("/api/budget-requests/:id", handler.GetByID)
	app.Put("/api/budget-requests/:id/status", handler.UpdateStatus)
	app.Get("/api/budget-requests/:id/pdf", handler.GetPDF)
	app.Post("/api/approvals", approvalHandler.Create)
	return app, fx
}

func putJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func createRequest(t *testing.T, app *fiber.App) dto.BudgetRequestResponse {
	t.Helper()
	resp := postJSON(t, app, "/api/budget-requests",
		`{"requester":"Laura Méndez","account_code":"61010","amount":250000,"material_list":[{"item":"Resmas de papel","quantity":"10"}]}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out dto.BudgetRequestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Creación: 201, número asignado por el servidor y estado PENDING.
func TestBudgetCreate_AsignaNumeroYPending(t *testing.T) {
	app, _ := buildBudgetApp()

	out := createRequest(t, app)
	assert.NotEmpty(t, out.RequestNo)
	assert.Contains(t, out.RequestNo, "BR-")
	assert.Equal(t, entity.BudgetStatusPending, out.Status)
}

// El número lo asigna el servidor aunque el cliente mande uno.
func TestBudgetCreate_IgnoraNumeroDelCliente(t *testing.T) {
	app, _ := buildBudgetApp()

	resp := postJSON(t, app, "/api/budget-requests",
		`{"request_no":"BR-1999-999","requester":"Laura Méndez","account_code":"61010","amount":1000}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.BudgetRequestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEqual(t, "BR-1999-999", out.RequestNo)
}

// PUT /:id/status aprueba una solicitud pendiente y deja el Approval.
func TestBudgetUpdateStatus_Aprueba(t *testing.T) {
	app, fx := buildBudgetApp()
	created := createRequest(t, app)

	resp := putJSON(t, app, "/api/budget-requests/"+created.ID+"/status",
		`{"status":"APPROVED","approver_name":"Carlos Ruiz","remark":"procede"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.BudgetRequestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, entity.BudgetStatusApproved, out.Status)
	require.NotNil(t, fx.approvals[created.ID])
	assert.Equal(t, "Carlos Ruiz", fx.approvals[created.ID].ApproverName)
}

// Una segunda decisión devuelve 409 y no altera la primera.
func TestBudgetUpdateStatus_YaDecidida(t *testing.T) {
	app, fx := buildBudgetApp()
	created := createRequest(t, app)

	putJSON(t, app, "/api/budget-requests/"+created.ID+"/status",
		`{"status":"APPROVED","approver_name":"Carlos Ruiz"}`)
	resp := putJSON(t, app, "/api/budget-requests/"+created.ID+"/status",
		`{"status":"REJECTED","approver_name":"Ana Torres"}`)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_DECIDED", decodeError(t, resp).Code)
	assert.Equal(t, entity.BudgetStatusApproved, fx.requests[created.ID].Status)
}

// Sin approver_name la transición se rechaza.
func TestBudgetUpdateStatus_RequiereAprobador(t *testing.T) {
	app, _ := buildBudgetApp()
	created := createRequest(t, app)

	resp := putJSON(t, app, "/api/budget-requests/"+created.ID+"/status",
		`{"status":"APPROVED"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

// POST /api/approvals es la misma transición: también bloquea la segunda
// decisión.
func TestApprovalCreate_MismaTransicion(t *testing.T) {
	app, fx := buildBudgetApp()
	created := createRequest(t, app)

	resp := postJSON(t, app, "/api/approvals",
		`{"request_id":"`+created.ID+`","decision":"REJECTED","approver_name":"Ana Torres","remark":"sin presupuesto"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, entity.BudgetStatusRejected, fx.requests[created.ID].Status)

	resp = postJSON(t, app, "/api/approvals",
		`{"request_id":"`+created.ID+`","decision":"APPROVED","approver_name":"Carlos Ruiz"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

// El PDF responde con el content-type correcto.
func TestBudgetGetPDF(t *testing.T) {
	app, _ := buildBudgetApp()
	created := createRequest(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/budget-requests/"+created.ID+"/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

// Solicitud inexistente: 404 tanto en GET como en el PDF.
func TestBudgetGetByID_NoEncontrada(t *testing.T) {
	app, _ := buildBudgetApp()

	req := httptest.NewRequest(http.MethodGet, "/api/budget-requests/no-existe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

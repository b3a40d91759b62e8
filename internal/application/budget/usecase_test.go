package budget

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-analyzer-api/internal/application/dto"
	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional
// ──────────────────────────────────────────────────────────────────────────────

type budgetStore struct {
	mu        sync.Mutex
	requests  map[string]*entity.BudgetRequest
	approvals map[string]*entity.Approval // clave: request_id (UNIQUE)
	counters  map[int]int64
}

func newBudgetStore() *budgetStore {
	return &budgetStore{
		requests:  make(map[string]*entity.BudgetRequest),
		approvals: make(map[string]*entity.Approval),
		counters:  make(map[int]int64),
	}
}

// fakeBudgetTxRunner ejecuta fn sobre una copia del estado y solo la publica
// si fn termina sin error, como Commit/Rollback.
type fakeBudgetTxRunner struct {
	store *budgetStore
}

func (r *fakeBudgetTxRunner) RunBudget(_ context.Context, fn func(
	requestRepo repository.BudgetRequestRepository,
	approvalRepo repository.ApprovalRepository,
	counterRepo repository.RequestCounterRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := newBudgetStore()
	for id, req := range r.store.requests {
		clone := *req
		snapshot.requests[id] = &clone
	}
	for id, a := range r.store.approvals {
		clone := *a
		snapshot.approvals[id] = &clone
	}
	for year, seq := range r.store.counters {
		snapshot.counters[year] = seq
	}

	err := fn(
		&fakeRequestRepo{store: snapshot},
		&fakeApprovalRepo{store: snapshot},
		&fakeCounterRepo{store: snapshot},
	)
	if err != nil {
		return err
	}

	r.store.requests = snapshot.requests
	r.store.approvals = snapshot.approvals
	r.store.counters = snapshot.counters
	return nil
}

type fakeRequestRepo struct {
	store *budgetStore
}

func (f *fakeRequestRepo) Create(req *entity.BudgetRequest) error {
	for _, existing := range f.store.requests {
		if existing.RequestNo == req.RequestNo {
			return domain.ErrDuplicate
		}
	}
	f.store.requests[req.ID] = req
	return nil
}
func (f *fakeRequestRepo) GetByID(id string) (*entity.BudgetRequest, error) {
	return f.store.requests[id], nil
}
func (f *fakeRequestRepo) GetForUpdate(id string) (*entity.BudgetRequest, error) {
	return f.store.requests[id], nil
}
func (f *fakeRequestRepo) List(int, int) ([]*entity.BudgetRequest, error) { return nil, nil }
func (f *fakeRequestRepo) UpdateStatus(id, status string) error {
	req, ok := f.store.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status = status
	return nil
}

type fakeApprovalRepo struct {
	store *budgetStore
}

func (f *fakeApprovalRepo) Create(a *entity.Approval) error {
	if _, exists := f.store.approvals[a.RequestID]; exists {
		return domain.ErrAlreadyDecided
	}
	f.store.approvals[a.RequestID] = a
	return nil
}
func (f *fakeApprovalRepo) GetByRequestID(requestID string) (*entity.Approval, error) {
	return f.store.approvals[requestID], nil
}
func (f *fakeApprovalRepo) List(int, int) ([]*entity.Approval, error) { return nil, nil }

type fakeCounterRepo struct {
	store *budgetStore
}

func (f *fakeCounterRepo) Next(year int) (int64, error) {
	f.store.counters[year]++
	return f.store.counters[year], nil
}

type fakeAccountCodeRepo struct{}

func (f *fakeAccountCodeRepo) List() ([]*entity.AccountCode, error) { return nil, nil }
func (f *fakeAccountCodeRepo) GetByCode(code string) (*entity.AccountCode, error) {
	if code == "61010" {
		return &entity.AccountCode{ID: "ac-1", Code: "61010", Name: "Materiales de oficina"}, nil
	}
	return nil, nil
}

func newTestUseCase(t *testing.T, at time.Time) (*UseCase, *budgetStore) {
	t.Helper()
	store := newBudgetStore()
	runner := &fakeBudgetTxRunner{store: store}
	uc := NewUseCase(runner, &fakeRequestRepo{store: store}, &fakeApprovalRepo{store: store}, &fakeAccountCodeRepo{})
	uc.now = func() time.Time { return at }
	return uc, store
}

func validCreateInput() dto.CreateBudgetRequestRequest {
	return dto.CreateBudgetRequestRequest{
		Requester:   "Laura Méndez",
		AccountCode: "61010",
		Amount:      decimal.NewFromInt(250000),
		MaterialList: []entity.MaterialItem{
			{Item: "Resmas de papel", Quantity: "10"},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de creación y numeración
// ──────────────────────────────────────────────────────────────────────────────

// La numeración es secuencial dentro del año y el nombre de la cuenta se
// resuelve del catálogo.
func TestCreateRequest_NumeracionSecuencial(t *testing.T) {
	uc, _ := newTestUseCase(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := uc.CreateRequest(ctx, validCreateInput())
	require.NoError(t, err)
	second, err := uc.CreateRequest(ctx, validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "BR-2025-001", first.RequestNo)
	assert.Equal(t, "BR-2025-002", second.RequestNo)
	assert.Equal(t, entity.BudgetStatusPending, first.Status)
	assert.Equal(t, "Materiales de oficina", first.AccountName)
}

// Al cambiar el año la secuencia reinicia en 001 sin perder la del año
// anterior.
func TestCreateRequest_SecuenciaReiniciaPorAno(t *testing.T) {
	uc, _ := newTestUseCase(t, time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := uc.CreateRequest(ctx, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "BR-2025-001", first.RequestNo)

	uc.now = func() time.Time { return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC) }
	second, err := uc.CreateRequest(ctx, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "BR-2026-001", second.RequestNo)

	uc.now = func() time.Time { return time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC) }
	third, err := uc.CreateRequest(ctx, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "BR-2026-002", third.RequestNo)
}

// Creaciones concurrentes nunca comparten número.
func TestCreateRequest_NumerosUnicosBajoConcurrencia(t *testing.T) {
	uc, _ := newTestUseCase(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	const workers = 20
	results := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, err := uc.CreateRequest(ctx, validCreateInput())
			assert.NoError(t, err)
			results <- req.RequestNo
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for no := range results {
		assert.False(t, seen[no], "número repetido: %s", no)
		seen[no] = true
	}
	assert.Len(t, seen, workers)
}

// Entradas malformadas se rechazan sin consumir secuencia.
func TestCreateRequest_Validacion(t *testing.T) {
	uc, store := newTestUseCase(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*dto.CreateBudgetRequestRequest)
	}{
		{"sin solicitante", func(in *dto.CreateBudgetRequestRequest) { in.Requester = "" }},
		{"sin cuenta", func(in *dto.CreateBudgetRequestRequest) { in.AccountCode = "" }},
		{"monto cero", func(in *dto.CreateBudgetRequestRequest) { in.Amount = decimal.Zero }},
		{"monto negativo", func(in *dto.CreateBudgetRequestRequest) { in.Amount = decimal.NewFromInt(-1) }},
		{"material sin nombre", func(in *dto.CreateBudgetRequestRequest) {
			in.MaterialList = []entity.MaterialItem{{Item: "", Quantity: "2"}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			_, err := uc.CreateRequest(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Zero(t, store.counters[2025], "ninguna secuencia debe consumirse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

// PENDING → APPROVED: queda el Approval y el nuevo estado.
func TestDecide_ApruebaSolicitudPendiente(t *testing.T) {
	uc, store := newTestUseCase(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	req, err := uc.CreateRequest(ctx, validCreateInput())
	require.NoError(t, err)

	decided, approval, err := uc.Decide(ctx, req.ID, entity.DecisionApproved, "Carlos Ruiz", "procede")
	require.NoError(t, err)

	assert.Equal(t, entity.BudgetStatusApproved, decided.Status)
	assert.Equal(t, entity.BudgetStatusApproved, store.requests[req.ID].Status)
	assert.Equal(t, "Carlos Ruiz", approval.ApproverName)
	assert.Equal(t, "procede", approval.Remark)
	require.NotNil(t, store.approvals[req.ID])
	assert.Equal(t, entity.DecisionApproved, store.approvals[req.ID].Decision)
}

// PENDING → REJECTED también es terminal.
func TestDecide_RechazaSolicitudPendiente(t *testing.T) {
	uc, store := newTestUseCase(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	req, err := uc.CreateRequest(ctx, validCreateInput())
	require.NoError(t, err)

	_, _, err = uc.Decide(ctx, req.ID, entity.DecisionRejected, "Carlos Ruiz", "sin presupuesto")
	require.NoError(t, err)
	assert.Equal(t, entity.BudgetStatusRejected, store.requests[req.ID].Status)
}

// Una solicitud ya decidida no admite una segunda decisión: la original queda
// intacta.
func TestDecide_SegundaDecisionRechazada(t *testing.T) {
	uc, store := newTestUseCase(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	req, err := uc.CreateRequest(ctx, validCreateInput())
	require.NoError(t, err)

	_, _, err = uc.Decide(ctx, req.ID, entity.DecisionApproved, "Carlos Ruiz", "")
	require.NoError(t, err)

	_, _, err = uc.Decide(ctx, req.ID, entity.DecisionRejected, "Ana Torres", "reintento")
	require.ErrorIs(t, err, domain.ErrAlreadyDecided)

	assert.Equal(t, entity.BudgetStatusApproved, store.requests[req.ID].Status)
	assert.Equal(t, "Carlos Ruiz", store.approvals[req.ID].ApproverName)
}

// Dos decisiones concurrentes sobre la misma solicitud: exactamente una gana.
func TestDecide_ConcurrenciaUnaSolaGana(t *testing.T) {
	uc, store := newTestUseCase(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	req, err := uc.CreateRequest(ctx, validCreateInput())
	require.NoError(t, err)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, decision := range []string{entity.DecisionApproved, entity.DecisionRejected} {
		wg.Add(1)
		go func(d string) {
			defer wg.Done()
			_, _, err := uc.Decide(ctx, req.ID, d, "Carlos Ruiz", "")
			errs <- err
		}(decision)
	}
	wg.Wait()
	close(errs)

	var ok, decidedErr int
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
			decidedErr++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, decidedErr)
	assert.NotEqual(t, entity.BudgetStatusPending, store.requests[req.ID].Status)
}

// La decisión exige identidad del aprobador y un valor terminal válido.
func TestDecide_Validacion(t *testing.T) {
	uc, _ := newTestUseCase(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	req, err := uc.CreateRequest(ctx, validCreateInput())
	require.NoError(t, err)

	_, _, err = uc.Decide(ctx, req.ID, entity.DecisionApproved, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "approver_name es obligatorio")

	_, _, err = uc.Decide(ctx, req.ID, "PENDING", "Carlos Ruiz", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "PENDING no es una decisión")

	_, _, err = uc.Decide(ctx, req.ID, "CANCELLED", "Carlos Ruiz", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Solicitud inexistente: ErrNotFound.
func TestDecide_SolicitudInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	_, _, err := uc.Decide(context.Background(), "no-existe", entity.DecisionApproved, "Carlos Ruiz", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

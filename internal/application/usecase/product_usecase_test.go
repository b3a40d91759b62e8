package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-analyzer-api/internal/application/dto"
	"github.com/jhoicas/stock-analyzer-api/internal/application/inventory"
	"github.com/jhoicas/stock-analyzer-api/internal/application/usecase"
	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products  map[string]*entity.Product
	movements []*entity.Movement
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) AdjustStock(id string, delta int64) error {
	p, ok := f.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock += delta
	return nil
}
func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Update(p *entity.Product) error           { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) Delete(id string) error {
	delete(f.products, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error { f.categories[c.ID] = c; return nil }
func (f *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return f.categories[id], nil
}
func (f *fakeCategoryRepo) List() ([]*entity.Category, error) { return nil, nil }
func (f *fakeCategoryRepo) Update(*entity.Category) error     { return nil }
func (f *fakeCategoryRepo) Delete(string) error               { return nil }

// fakeTxRunner sin aislamiento: suficiente para verificar la orquestación del
// caso de uso de productos.
type fakeTxRunner struct {
	products *fakeProductRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&fakeMovementRepo{products: r.products}, r.products)
}

type fakeMovementRepo struct {
	products *fakeProductRepo
}

func (f *fakeMovementRepo) Create(m *entity.Movement) error {
	f.products.movements = append(f.products.movements, m)
	return nil
}
func (f *fakeMovementRepo) GetByID(string) (*entity.Movement, error)  { return nil, nil }
func (f *fakeMovementRepo) List(int, int) ([]*entity.Movement, error) { return nil, nil }
func (f *fakeMovementRepo) ListByProduct(string, int, int) ([]*entity.Movement, error) {
	return nil, nil
}
func (f *fakeMovementRepo) NetQuantity(string) (int64, error) { return 0, nil }

const (
	catGeneralID  = "00000000-0000-0000-0000-0000000000a1"
	catMedicineID = "00000000-0000-0000-0000-0000000000a2"
)

func newTestProductUseCase() (*usecase.ProductUseCase, *fakeProductRepo) {
	products := newFakeProductRepo()
	categories := &fakeCategoryRepo{categories: map[string]*entity.Category{
		catGeneralID:  {ID: catGeneralID, Name: "General"},
		catMedicineID: {ID: catMedicineID, Name: "Medicamentos", IsMedicine: true},
	}}
	poster := inventory.NewPostMovementUseCase(&fakeTxRunner{products: products})
	return usecase.NewProductUseCase(products, categories, poster), products
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// El saldo inicial entra como movimiento de apertura: el producto nace con 0
// y el libro respalda el saldo resultante.
func TestProductCreate_SaldoInicialViaMovimiento(t *testing.T) {
	uc, repo := newTestProductUseCase()

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Guantes de nitrilo",
		SKU:          "SKU-001",
		CategoryID:   catGeneralID,
		UnitPrice:    decimal.NewFromInt(1200),
		CurrentStock: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), out.CurrentStock)
	require.Len(t, repo.movements, 1)
	assert.Equal(t, entity.MovementTypeIn, repo.movements[0].Type)
	assert.Equal(t, int64(50), repo.movements[0].Quantity)
	assert.Equal(t, "Saldo inicial", repo.movements[0].Reason)
}

// Sin saldo inicial no hay movimiento de apertura.
func TestProductCreate_SinSaldoInicial(t *testing.T) {
	uc, repo := newTestProductUseCase()

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Guantes de nitrilo",
		SKU:  "SKU-001",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.CurrentStock)
	assert.Empty(t, repo.movements)
}

// SKU repetido se rechaza con ErrDuplicate.
func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc, _ := newTestProductUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "A", SKU: "SKU-001"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "B", SKU: "SKU-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Categoría medicinal sin fecha de vencimiento: rechazo.
func TestProductCreate_MedicamentoExigeVencimiento(t *testing.T) {
	uc, _ := newTestProductUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{
		Name:       "Amoxicilina 500mg",
		SKU:        "MED-001",
		CategoryID: catMedicineID,
	})
	assert.ErrorIs(t, err, domain.ErrExpiryRequired)

	expiry := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = uc.Create(ctx, dto.CreateProductRequest{
		Name:       "Amoxicilina 500mg",
		SKU:        "MED-001",
		CategoryID: catMedicineID,
		ExpiryDate: &expiry,
	})
	assert.NoError(t, err)
}

// Update parcial: los campos no enviados se conservan y el saldo no es
// editable por esta vía.
func TestProductUpdate_Parcial(t *testing.T) {
	uc, repo := newTestProductUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Name:         "Guantes",
		SKU:          "SKU-001",
		CurrentStock: 30,
		MinStock:     5,
	})
	require.NoError(t, err)

	newName := "Guantes de nitrilo talla M"
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, newName, out.Name)
	assert.Equal(t, "SKU-001", out.SKU)
	assert.Equal(t, int64(5), out.MinStock)
	assert.Equal(t, int64(30), repo.products[created.ID].CurrentStock)
}

// Update de un producto inexistente devuelve nil, nil (el handler lo mapea a 404).
func TestProductUpdate_NoEncontrado(t *testing.T) {
	uc, _ := newTestProductUseCase()

	name := "X"
	out, err := uc.Update("no-existe", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, out)
}

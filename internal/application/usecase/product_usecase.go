package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-analyzer-api/internal/application/dto"
	"github.com/jhoicas/stock-analyzer-api/internal/application/inventory"
	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

// openingStockReason es la razón del movimiento que registra el saldo inicial
// de un producto nuevo.
const openingStockReason = "Saldo inicial"

// ProductUseCase casos de uso CRUD para productos. El saldo no se edita
// directamente: el saldo inicial entra como un movimiento de apertura y los
// cambios posteriores pasan por el registro de movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	postMovement *inventory.PostMovementUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	postMovement *inventory.PostMovementUseCase,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, postMovement: postMovement}
}

// Create crea un producto con saldo 0 y, si se pidió saldo inicial, registra
// un movimiento de apertura por esa cantidad. Así todo saldo existente tiene
// respaldo en el libro de movimientos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.validateExpiry(in.CategoryID, in.ExpiryDate); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		SupplierID:   in.SupplierID,
		UnitPrice:    in.UnitPrice,
		CurrentStock: 0,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		Unit:         in.Unit,
		Location:     in.Location,
		Barcode:      in.Barcode,
		ExpiryDate:   in.ExpiryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}

	if in.CurrentStock > 0 {
		mov, err := uc.postMovement.PostMovement(ctx, dto.PostMovementRequest{
			ProductID: product.ID,
			Type:      entity.MovementTypeIn,
			Quantity:  in.CurrentStock,
			Reason:    openingStockReason,
		})
		if err != nil {
			return nil, err
		}
		product.CurrentStock = mov.Quantity
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un producto. No permite modificar current_stock: el saldo
// se maneja vía movimientos.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		existing, err := uc.repo.GetBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		product.MaxStock = in.MaxStock
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.ExpiryDate != nil {
		product.ExpiryDate = in.ExpiryDate
	}
	if err := uc.validateExpiry(product.CategoryID, product.ExpiryDate); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// validateExpiry exige fecha de vencimiento si la categoría es medicamento.
func (uc *ProductUseCase) validateExpiry(categoryID string, expiry *time.Time) error {
	if categoryID == "" {
		return nil
	}
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if category.IsMedicine && expiry == nil {
		return domain.ErrExpiryRequired
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		CategoryName: p.CategoryName,
		SupplierName: p.SupplierName,
		UnitPrice:    p.UnitPrice,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		Unit:         p.Unit,
		Location:     p.Location,
		Barcode:      p.Barcode,
		ExpiryDate:   p.ExpiryDate,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

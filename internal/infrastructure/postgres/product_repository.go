package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, category_id, supplier_id, unit_price,
		current_stock, min_stock, max_stock, unit, location, barcode, expiry_date, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, category_id, supplier_id, unit_price,
			current_stock, min_stock, max_stock, unit, location, barcode, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description,
		nullIfEmpty(product.CategoryID), nullIfEmpty(product.SupplierID),
		product.UnitPrice, product.CurrentStock, product.MinStock, product.MaxStock,
		product.Unit, product.Location, product.Barcode, product.ExpiryDate,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get product by sku")
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Serializa a los registradores de movimientos concurrentes sobre el mismo
// producto; debe llamarse dentro de una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// AdjustStock suma delta (positivo o negativo) al saldo del producto.
func (r *ProductRepo) AdjustStock(id string, delta int64) error {
	query := `UPDATE products SET current_stock = current_stock + $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con nombres de categoría y proveedor (JOIN), ordenados
// por nombre.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.description, p.category_id, p.supplier_id, p.unit_price,
			p.current_stock, p.min_stock, p.max_stock, p.unit, p.location, p.barcode, p.expiry_date,
			p.created_at, p.updated_at, c.name, s.name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN suppliers s ON p.supplier_id = s.id
		ORDER BY p.name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var categoryID, supplierID, categoryName, supplierName *string
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &categoryID, &supplierID, &p.UnitPrice,
			&p.CurrentStock, &p.MinStock, &p.MaxStock, &p.Unit, &p.Location, &p.Barcode,
			&p.ExpiryDate, &p.CreatedAt, &p.UpdatedAt, &categoryName, &supplierName,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.CategoryID = deref(categoryID)
		p.SupplierID = deref(supplierID)
		p.CategoryName = deref(categoryName)
		p.SupplierName = deref(supplierName)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente. No toca current_stock: el saldo se
// maneja vía movimientos (AdjustStock dentro de la transacción del registro).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, category_id = $5, supplier_id = $6,
			unit_price = $7, min_stock = $8, max_stock = $9, unit = $10, location = $11, barcode = $12,
			expiry_date = $13, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description,
		nullIfEmpty(product.CategoryID), nullIfEmpty(product.SupplierID),
		product.UnitPrice, product.MinStock, product.MaxStock,
		product.Unit, product.Location, product.Barcode, product.ExpiryDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	var categoryID, supplierID *string
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &categoryID, &supplierID, &p.UnitPrice,
		&p.CurrentStock, &p.MinStock, &p.MaxStock, &p.Unit, &p.Location, &p.Barcode,
		&p.ExpiryDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.CategoryID = deref(categoryID)
	p.SupplierID = deref(supplierID)
	return &p, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const itemColumns = `id, warehouse_id, sku, name, description, quantity, buy_price, sell_price, category, min_stock_level, created_at, updated_at`

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste un nuevo artículo. Devuelve ErrDuplicate si el SKU ya existe.
func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.WarehouseID, item.SKU, item.Name, item.Description,
		item.Quantity, item.BuyPrice, item.SellPrice, item.Category,
		item.MinStockLevel, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySKU obtiene un artículo por SKU (único global).
func (r *InventoryRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE sku = $1`
	return r.scanOne(query, sku)
}

// GetForUpdate obtiene el artículo y bloquea su fila (SELECT FOR UPDATE).
// Llamarlo solo dentro de una transacción: el lock serializa ventas concurrentes
// sobre el mismo artículo.
func (r *InventoryRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *InventoryRepo) scanOne(query string, arg any) (*entity.InventoryItem, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// ExistsBySKU verifica si un SKU ya está registrado (unicidad global).
func (r *InventoryRepo) ExistsBySKU(sku string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM inventory_items WHERE sku = $1)`, sku).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists sku: %w", err)
	}
	return exists, nil
}

// Update actualiza un artículo existente. WarehouseID no se toca: la pertenencia
// a la bodega es inmutable después de la creación.
func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET sku = $2, name = $3, description = $4, quantity = $5, buy_price = $6,
		    sell_price = $7, category = $8, min_stock_level = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Name, item.Description, item.Quantity,
		item.BuyPrice, item.SellPrice, item.Category, item.MinStockLevel, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// AdjustQuantity aplica quantity += delta solo si el resultado es no negativo.
// La condición va en el WHERE: aunque dos escritores lleguen a la vez, la fila
// nunca queda en negativo. Devuelve la cantidad resultante.
func (r *InventoryRepo) AdjustQuantity(id string, delta int) (int, error) {
	query := `
		UPDATE inventory_items
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING quantity`
	var newQty int
	err := r.q.QueryRow(context.Background(), query, id, delta).Scan(&newQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Fila inexistente o ajuste que dejaría stock negativo
			item, getErr := r.GetByID(id)
			if getErr != nil {
				return 0, getErr
			}
			if item == nil {
				return 0, domain.ErrNotFound
			}
			return 0, &domain.InsufficientStockError{Available: item.Quantity, Requested: -delta}
		}
		return 0, fmt.Errorf("adjust quantity: %w", err)
	}
	return newQty, nil
}

// Delete elimina un artículo por ID.
func (r *InventoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

// List lista artículos con filtros opcionales y paginación.
func (r *InventoryRepo) List(filter repository.ItemFilter, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE 1=1`
	args := []any{}
	query, args = applyItemFilter(query, args, filter)
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return r.scanMany(query, args...)
}

// ListByWarehouse lista artículos de una bodega con filtros y paginación.
func (r *InventoryRepo) ListByWarehouse(warehouseID string, filter repository.ItemFilter, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE warehouse_id = $1`
	args := []any{warehouseID}
	query, args = applyItemFilter(query, args, filter)
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return r.scanMany(query, args...)
}

// Search busca artículos por nombre o descripción (substring, case-insensitive).
func (r *InventoryRepo) Search(term string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + ` FROM inventory_items
		WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, term, limit, offset)
}

// ListByCategory lista artículos de una categoría.
func (r *InventoryRepo) ListByCategory(category string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + ` FROM inventory_items
		WHERE category = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, category, limit, offset)
}

// Stats agrega los indicadores de inventario en una sola sentencia, de modo que
// el snapshot es consistente frente a ventas concurrentes (ningún agregado
// refleja un estado intermedio que otro no refleje).
func (r *InventoryRepo) Stats(warehouseID string) (*repository.InventoryStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE quantity < min_stock_level),
			COUNT(DISTINCT category) FILTER (WHERE category <> ''),
			COUNT(DISTINCT warehouse_id),
			COALESCE(SUM(quantity * buy_price), 0)
		FROM inventory_items`
	args := []any{}
	if warehouseID != "" {
		query += ` WHERE warehouse_id = $1`
		args = append(args, warehouseID)
	}
	var s repository.InventoryStats
	var totalValue decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.TotalItems, &s.LowStockItems, &s.TotalCategories, &s.TotalWarehouses, &totalValue,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory stats: %w", err)
	}
	s.TotalValue = totalValue
	if warehouseID != "" {
		s.TotalWarehouses = 1
	}
	return &s, nil
}

func applyItemFilter(query string, args []any, filter repository.ItemFilter) (string, []any) {
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.MinStock != nil {
		args = append(args, *filter.MinStock)
		query += fmt.Sprintf(` AND quantity >= $%d`, len(args))
	}
	return query, args
}

func (r *InventoryRepo) scanMany(query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(
		&i.ID, &i.WarehouseID, &i.SKU, &i.Name, &i.Description,
		&i.Quantity, &i.BuyPrice, &i.SellPrice, &i.Category,
		&i.MinStockLevel, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

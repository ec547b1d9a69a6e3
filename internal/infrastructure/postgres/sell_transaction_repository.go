package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.SellTransactionRepository = (*SellTransactionRepo)(nil)

const sellColumns = `id, warehouse_id, inventory_item_id, user_id, quantity, unit_price, total_price, description, created_at`

// SellTransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: las ventas son registros financieros inmutables.
type SellTransactionRepo struct {
	q Querier
}

// NewSellTransactionRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSellTransactionRepository(q Querier) *SellTransactionRepo {
	return &SellTransactionRepo{q: q}
}

// Create persiste una venta.
func (r *SellTransactionRepo) Create(trx *entity.SellTransaction) error {
	query := `
		INSERT INTO sell_transactions (` + sellColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		trx.ID, trx.WarehouseID, trx.InventoryItemID, trx.UserID,
		trx.Quantity, trx.UnitPrice, trx.TotalPrice, trx.Description, trx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sell transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SellTransactionRepo) GetByID(id string) (*entity.SellTransaction, error) {
	query := `SELECT ` + sellColumns + ` FROM sell_transactions WHERE id = $1`
	var t entity.SellTransaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.WarehouseID, &t.InventoryItemID, &t.UserID,
		&t.Quantity, &t.UnitPrice, &t.TotalPrice, &t.Description, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sell transaction: %w", err)
	}
	return &t, nil
}

// List lista ventas con paginación, más recientes primero.
func (r *SellTransactionRepo) List(limit, offset int) ([]*entity.SellTransaction, error) {
	query := `SELECT ` + sellColumns + ` FROM sell_transactions ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// ListByWarehouse lista ventas de una bodega.
func (r *SellTransactionRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.SellTransaction, error) {
	query := `
		SELECT ` + sellColumns + ` FROM sell_transactions
		WHERE warehouse_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, warehouseID, limit, offset)
}

// ListByItem lista ventas de un artículo de inventario.
func (r *SellTransactionRepo) ListByItem(inventoryItemID string, limit, offset int) ([]*entity.SellTransaction, error) {
	query := `
		SELECT ` + sellColumns + ` FROM sell_transactions
		WHERE inventory_item_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, inventoryItemID, limit, offset)
}

func (r *SellTransactionRepo) scanMany(query string, args ...any) ([]*entity.SellTransaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sell transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.SellTransaction
	for rows.Next() {
		var t entity.SellTransaction
		if err := rows.Scan(
			&t.ID, &t.WarehouseID, &t.InventoryItemID, &t.UserID,
			&t.Quantity, &t.UnitPrice, &t.TotalPrice, &t.Description, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sell transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

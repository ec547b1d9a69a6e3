package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/bodega-api/internal/application/sale"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// Ensure TxRunner implements usecase.TxRunner and sale.TxRunner.
var _ usecase.TxRunner = (*TxRunner)(nil)
var _ sale.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Es la unidad atómica de los CRUD con auditoría: si el insert de actividad
// falla, la mutación entera se revierte.
func (r *TxRunner) Run(ctx context.Context, fn func(
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.InventoryRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	warehouseRepo := NewWarehouseRepository(tx)
	itemRepo := NewInventoryRepository(tx)
	userRepo := NewUserRepository(tx)
	activityRepo := NewActivityRepository(tx)

	if err := fn(warehouseRepo, itemRepo, userRepo, activityRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia una transacción con los repos que necesita el procesador de
// ventas. Los cuatro efectos de una venta (insert de la transacción, decremento
// de stock y dos registros de auditoría) viajan en esta misma tx.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	itemRepo repository.InventoryRepository,
	sellRepo repository.SellTransactionRepository,
	activityRepo repository.ActivityRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewInventoryRepository(tx)
	sellRepo := NewSellTransactionRepository(tx)
	activityRepo := NewActivityRepository(tx)

	if err := fn(itemRepo, sellRepo, activityRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

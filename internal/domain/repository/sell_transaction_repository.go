package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// SellTransactionRepository define el puerto de persistencia para SellTransaction.
// No hay Update ni Delete: una venta registrada es inmutable.
type SellTransactionRepository interface {
	Create(trx *entity.SellTransaction) error
	GetByID(id string) (*entity.SellTransaction, error)
	List(limit, offset int) ([]*entity.SellTransaction, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.SellTransaction, error)
	ListByItem(inventoryItemID string, limit, offset int) ([]*entity.SellTransaction, error)
}

package repository

import (
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemFilter filtros opcionales para listados de inventario.
type ItemFilter struct {
	Category string // vacío = sin filtro
	MinStock *int   // nil = sin filtro; filtra quantity >= *MinStock
}

// InventoryStats agregado de inventario calculado en un solo snapshot consistente.
type InventoryStats struct {
	TotalItems      int
	LowStockItems   int
	TotalCategories int
	TotalWarehouses int
	TotalValue      decimal.Decimal
}

// InventoryRepository define el puerto de persistencia para InventoryItem (DIP).
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetBySKU(sku string) (*entity.InventoryItem, error)
	ExistsBySKU(sku string) (bool, error)
	// GetForUpdate obtiene el artículo bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	// AdjustQuantity aplica quantity += delta de forma condicional: la fila solo
	// se modifica si el resultado es no negativo. Devuelve la cantidad resultante
	// y ErrInsufficientStock (vía el adaptador) cuando la condición falla.
	AdjustQuantity(id string, delta int) (int, error)
	Delete(id string) error
	List(filter ItemFilter, limit, offset int) ([]*entity.InventoryItem, error)
	ListByWarehouse(warehouseID string, filter ItemFilter, limit, offset int) ([]*entity.InventoryItem, error)
	Search(term string, limit, offset int) ([]*entity.InventoryItem, error)
	ListByCategory(category string, limit, offset int) ([]*entity.InventoryItem, error)
	// Stats agrega los indicadores de inventario; warehouseID vacío = global.
	Stats(warehouseID string) (*InventoryStats, error)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un artículo de inventario dentro de una bodega.
// Invariantes: Quantity >= 0, SellPrice > BuyPrice, SKU único global y
// WarehouseID inmutable después de la creación.
type InventoryItem struct {
	ID            string
	WarehouseID   string
	SKU           string
	Name          string
	Description   string
	Quantity      int
	BuyPrice      decimal.Decimal
	SellPrice     decimal.Decimal
	Category      string
	MinStockLevel int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el artículo está por debajo de su nivel mínimo de stock.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity < i.MinStockLevel
}

// TotalValue calcula el valor total del artículo (stock × precio de compra).
func (i *InventoryItem) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(int64(i.Quantity)).Mul(i.BuyPrice)
}

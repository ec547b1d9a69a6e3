package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellTransaction registra una venta como snapshot financiero inmutable.
// UnitPrice y TotalPrice se capturan al momento de la venta y nunca se
// recalculan; cambios posteriores de precio del artículo no la afectan.
// UserID es opcional y sobrevive a la eliminación del usuario (SET NULL).
type SellTransaction struct {
	ID              string
	WarehouseID     string
	InventoryItemID string
	UserID          *string
	Quantity        int
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal
	Description     string
	CreatedAt       time.Time
}

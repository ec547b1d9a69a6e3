package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSellTransactionRequest datos para registrar una venta. unit_price no es
// parte del request: siempre se toma del sell_price vigente del artículo.
type CreateSellTransactionRequest struct {
	WarehouseID     string `json:"warehouse_id"`
	InventoryItemID string `json:"inventory_item_id"`
	Quantity        int    `json:"quantity"`
	Description     string `json:"description"`
}

// SellTransactionResponse representación de una venta en respuestas.
type SellTransactionResponse struct {
	ID              string          `json:"id"`
	WarehouseID     string          `json:"warehouse_id"`
	InventoryItemID string          `json:"inventory_item_id"`
	UserID          *string         `json:"user_id,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SellTransactionListResponse página de ventas.
type SellTransactionListResponse struct {
	Items []SellTransactionResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest datos para crear un artículo de inventario.
type CreateInventoryItemRequest struct {
	WarehouseID   string          `json:"warehouse_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	BuyPrice      decimal.Decimal `json:"buy_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	Category      string          `json:"category"`
	MinStockLevel int             `json:"min_stock_level"`
}

// UpdateInventoryItemRequest actualización parcial. warehouse_id no aparece:
// la pertenencia a la bodega es inmutable.
type UpdateInventoryItemRequest struct {
	SKU           *string          `json:"sku"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Quantity      *int             `json:"quantity"`
	BuyPrice      *decimal.Decimal `json:"buy_price"`
	SellPrice     *decimal.Decimal `json:"sell_price"`
	Category      *string          `json:"category"`
	MinStockLevel *int             `json:"min_stock_level"`
}

// AdjustQuantityRequest delta para ajustar stock (positivo o negativo).
type AdjustQuantityRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// InventoryItemResponse representación de un artículo en respuestas, con los
// campos derivados is_low_stock y total_value ya calculados.
type InventoryItemResponse struct {
	ID            string          `json:"id"`
	WarehouseID   string          `json:"warehouse_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Quantity      int             `json:"quantity"`
	BuyPrice      decimal.Decimal `json:"buy_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	Category      string          `json:"category,omitempty"`
	MinStockLevel int             `json:"min_stock_level"`
	IsLowStock    bool            `json:"is_low_stock"`
	TotalValue    decimal.Decimal `json:"total_value"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InventoryItemListResponse página de artículos.
type InventoryItemListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// InventoryStatsResponse snapshot de indicadores de inventario.
type InventoryStatsResponse struct {
	TotalItems      int             `json:"total_items"`
	LowStockItems   int             `json:"low_stock_items"`
	TotalCategories int             `json:"total_categories"`
	TotalWarehouses int             `json:"total_warehouses"`
	TotalValue      decimal.Decimal `json:"total_value"`
}

package entity

import "time"

// ActivityType taxonomía cerrada de actividades auditables.
type ActivityType string

const (
	// Inventario
	ActivityInventoryCreated       ActivityType = "inventory_created"
	ActivityInventoryUpdated       ActivityType = "inventory_updated"
	ActivityInventoryDeleted       ActivityType = "inventory_deleted"
	ActivityInventoryStockAdjusted ActivityType = "inventory_stock_adjusted"

	// Bodegas
	ActivityWarehouseCreated ActivityType = "warehouse_created"
	ActivityWarehouseUpdated ActivityType = "warehouse_updated"
	ActivityWarehouseDeleted ActivityType = "warehouse_deleted"

	// Ventas
	ActivitySellTransaction ActivityType = "sell_transaction"

	// Usuarios
	ActivityUserLogin   ActivityType = "user_login"
	ActivityUserCreated ActivityType = "user_created"
	ActivityUserUpdated ActivityType = "user_updated"
	ActivityUserDeleted ActivityType = "user_deleted"
)

// Valid verifica que el tipo pertenezca a la taxonomía cerrada.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityInventoryCreated, ActivityInventoryUpdated, ActivityInventoryDeleted,
		ActivityInventoryStockAdjusted,
		ActivityWarehouseCreated, ActivityWarehouseUpdated, ActivityWarehouseDeleted,
		ActivitySellTransaction,
		ActivityUserLogin, ActivityUserCreated, ActivityUserUpdated, ActivityUserDeleted:
		return true
	}
	return false
}

// Categorías de entidad afectada (entity_type).
const (
	EntityTypeInventory       = "inventory"
	EntityTypeWarehouse       = "warehouse"
	EntityTypeSellTransaction = "sell_transaction"
	EntityTypeUser            = "user"
)

// Activity es un registro de auditoría append-only: nunca se actualiza ni se
// elimina. UserID es nulo para acciones del sistema; EntityID es una clave de
// consulta, no una relación de pertenencia, por lo que el registro sigue siendo
// consultable después de que la entidad referenciada desaparezca.
type Activity struct {
	ID          string
	UserID      *string
	Type        ActivityType
	EntityType  string
	EntityID    *string
	Description string
	Metadata    map[string]any
	CreatedAt   time.Time
}

package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

func TestInventoryItem_IsLowStock(t *testing.T) {
	item := entity.InventoryItem{Quantity: 6, MinStockLevel: 5}
	assert.False(t, item.IsLowStock(), "en el umbral exacto o por encima no hay stock bajo")

	item.Quantity = 5
	assert.False(t, item.IsLowStock())

	item.Quantity = 4
	assert.True(t, item.IsLowStock(), "por debajo del umbral sí")
}

func TestInventoryItem_TotalValue_UsaPrecioDeCompra(t *testing.T) {
	item := entity.InventoryItem{
		Quantity:  6,
		BuyPrice:  decimal.NewFromInt(50),
		SellPrice: decimal.NewFromInt(100),
	}
	assert.True(t, item.TotalValue().Equal(decimal.NewFromInt(300)),
		"el inventario se valora a costo de adquisición, no a precio de venta")
}

func TestHasCapability(t *testing.T) {
	assert.True(t, entity.HasCapability(entity.RoleSuperAdmin, entity.CapabilitySell))
	assert.True(t, entity.HasCapability(entity.RoleSuperAdmin, entity.CapabilityManageUsers))
	assert.True(t, entity.HasCapability(entity.RoleWarehouse, entity.CapabilityManageStock))

	assert.False(t, entity.HasCapability(entity.RoleWarehouse, entity.CapabilitySell))
	assert.False(t, entity.HasCapability(entity.RoleWarehouse, entity.CapabilityManageUsers))
	assert.False(t, entity.HasCapability("desconocido", entity.CapabilityManageStock))
	assert.False(t, entity.HasCapability("", entity.CapabilitySell))
}

func TestActivityType_Valid(t *testing.T) {
	validos := []entity.ActivityType{
		entity.ActivityInventoryCreated,
		entity.ActivityInventoryStockAdjusted,
		entity.ActivityWarehouseDeleted,
		entity.ActivitySellTransaction,
		entity.ActivityUserLogin,
	}
	for _, tipo := range validos {
		assert.True(t, tipo.Valid(), "tipo %s pertenece a la taxonomía", tipo)
	}

	assert.False(t, entity.ActivityType("inventory_renamed").Valid())
	assert.False(t, entity.ActivityType("").Valid())
}

package usecase

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda mutación de bodegas, inventario o
// usuarios escribe su registro de auditoría dentro de la misma transacción:
// si la auditoría falla, la mutación se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		warehouseRepo repository.WarehouseRepository,
		itemRepo repository.InventoryRepository,
		userRepo repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error) error
}

// actorRef convierte un ID de actor en la referencia opcional que guarda la
// auditoría (nil = acción del sistema).
func actorRef(actorID string) *string {
	if actorID == "" {
		return nil
	}
	return &actorID
}

// entityRef referencia opcional a la entidad afectada.
func entityRef(entityID string) *string {
	if entityID == "" {
		return nil
	}
	return &entityID
}

package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// ActivityRepository define el puerto de persistencia para el log de actividad.
// Es append-only por diseño: la ausencia de Update/Delete es intencional.
// Todos los listados ordenan por created_at descendente.
type ActivityRepository interface {
	Create(activity *entity.Activity) error
	List(limit, offset int) ([]*entity.Activity, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Activity, error)
	ListByEntity(entityType, entityID string, limit, offset int) ([]*entity.Activity, error)
	ListByType(activityType entity.ActivityType, limit, offset int) ([]*entity.Activity, error)
	ListByEntityType(entityType string, limit, offset int) ([]*entity.Activity, error)
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

const activityColumns = `id, user_id, activity_type, entity_type, entity_id, description, metadata, created_at`

// ActivityRepo implementación append-only sobre PostgreSQL (usable con pool o tx).
// No existen Update ni Delete: el log de auditoría es inmutable.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador del log de actividad. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create persiste un registro de actividad. Un fallo aquí debe abortar la
// operación que lo envuelve: la auditoría completa es propiedad de corrección,
// no best-effort.
func (r *ActivityRepo) Create(activity *entity.Activity) error {
	var metadata []byte
	if activity.Metadata != nil {
		var err error
		metadata, err = json.Marshal(activity.Metadata)
		if err != nil {
			return fmt.Errorf("marshal activity metadata: %w", err)
		}
	}
	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		activity.ID, activity.UserID, string(activity.Type), activity.EntityType,
		activity.EntityID, activity.Description, metadata, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List lista actividades con paginación, más recientes primero.
func (r *ActivityRepo) List(limit, offset int) ([]*entity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// ListByUser lista actividades de un usuario.
func (r *ActivityRepo) ListByUser(userID string, limit, offset int) ([]*entity.Activity, error) {
	query := `
		SELECT ` + activityColumns + ` FROM activities
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, userID, limit, offset)
}

// ListByEntity lista actividades de una entidad concreta (tipo + id).
func (r *ActivityRepo) ListByEntity(entityType, entityID string, limit, offset int) ([]*entity.Activity, error) {
	query := `
		SELECT ` + activityColumns + ` FROM activities
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	return r.scanMany(query, entityType, entityID, limit, offset)
}

// ListByType lista actividades de un tipo de la taxonomía.
func (r *ActivityRepo) ListByType(activityType entity.ActivityType, limit, offset int) ([]*entity.Activity, error) {
	query := `
		SELECT ` + activityColumns + ` FROM activities
		WHERE activity_type = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, string(activityType), limit, offset)
}

// ListByEntityType lista actividades por categoría de entidad.
func (r *ActivityRepo) ListByEntityType(entityType string, limit, offset int) ([]*entity.Activity, error) {
	query := `
		SELECT ` + activityColumns + ` FROM activities
		WHERE entity_type = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, entityType, limit, offset)
}

func (r *ActivityRepo) scanMany(query string, args ...any) ([]*entity.Activity, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		var activityType string
		var metadata []byte
		if err := rows.Scan(
			&a.ID, &a.UserID, &activityType, &a.EntityType,
			&a.EntityID, &a.Description, &metadata, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Type = entity.ActivityType(activityType)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal activity metadata: %w", err)
			}
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

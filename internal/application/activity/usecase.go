package activity

import (
	"fmt"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// UseCase consultas de solo lectura sobre el log de auditoría. La escritura
// ocurre dentro de las transacciones de cada mutación, no por este camino.
type UseCase struct {
	repo repository.ActivityRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ActivityRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List feed global de actividad, de la más reciente a la más antigua.
func (uc *UseCase) List(limit, offset int) (*dto.ActivityListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// ListByUser actividades registradas por un usuario.
func (uc *UseCase) ListByUser(userID string, limit, offset int) (*dto.ActivityListResponse, error) {
	list, err := uc.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// ListByEntity historial de una entidad concreta (p. ej. un artículo).
func (uc *UseCase) ListByEntity(entityType, entityID string, limit, offset int) (*dto.ActivityListResponse, error) {
	list, err := uc.repo.ListByEntity(entityType, entityID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// ListByType filtra por tipo de actividad. Un tipo fuera de la taxonomía es
// un error de entrada, no una lista vacía.
func (uc *UseCase) ListByType(activityType string, limit, offset int) (*dto.ActivityListResponse, error) {
	t := entity.ActivityType(activityType)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tipo de actividad desconocido %q", domain.ErrInvalidInput, activityType)
	}
	list, err := uc.repo.ListByType(t, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// ListByEntityType filtra por categoría de entidad afectada.
func (uc *UseCase) ListByEntityType(entityType string, limit, offset int) (*dto.ActivityListResponse, error) {
	list, err := uc.repo.ListByEntityType(entityType, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

func toResponse(a *entity.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        string(a.Type),
		EntityType:  a.EntityType,
		EntityID:    a.EntityID,
		Description: a.Description,
		Metadata:    a.Metadata,
		CreatedAt:   a.CreatedAt,
	}
}

func toListResponse(list []*entity.Activity, limit, offset int) *dto.ActivityListResponse {
	items := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toResponse(a))
	}
	return &dto.ActivityListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: offset, Limit: limit},
	}
}

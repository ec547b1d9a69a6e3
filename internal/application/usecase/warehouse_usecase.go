package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas. Cada mutación deja su
// registro de auditoría en la misma transacción.
type WarehouseUseCase struct {
	txRunner TxRunner
	repo     repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(txRunner TxRunner, repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{txRunner: txRunner, repo: repo}
}

// Create crea una nueva bodega. El nombre es único global.
func (uc *WarehouseUseCase) Create(ctx context.Context, actorID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" || in.Location == "" {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.repo.ExistsByName(in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		_ repository.InventoryRepository,
		_ repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error {
		if err := warehouseRepo.Create(warehouse); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(actorID),
			Type:        entity.ActivityWarehouseCreated,
			EntityType:  entity.EntityTypeWarehouse,
			EntityID:    entityRef(warehouse.ID),
			Description: fmt.Sprintf("Warehouse %s created at %s", warehouse.Name, warehouse.Location),
			Metadata: map[string]any{
				"name":     warehouse.Name,
				"location": warehouse.Location,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: offset, Limit: limit},
	}, nil
}

// Update actualiza una bodega. Verifica unicidad del nombre si cambia.
func (uc *WarehouseUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != warehouse.Name {
		existing, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		warehouse.Name = *in.Name
	}
	if in.Location != nil {
		warehouse.Location = *in.Location
	}
	if in.Description != nil {
		warehouse.Description = *in.Description
	}
	now := time.Now()
	warehouse.UpdatedAt = now

	err = uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		_ repository.InventoryRepository,
		_ repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error {
		if err := warehouseRepo.Update(warehouse); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(actorID),
			Type:        entity.ActivityWarehouseUpdated,
			EntityType:  entity.EntityTypeWarehouse,
			EntityID:    entityRef(warehouse.ID),
			Description: fmt.Sprintf("Warehouse %s updated", warehouse.Name),
			Metadata: map[string]any{
				"name":     warehouse.Name,
				"location": warehouse.Location,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Delete elimina una bodega; sus artículos caen en cascada. El registro de
// auditoría conserva nombre y ubicación, que dejan de existir con la fila.
func (uc *WarehouseUseCase) Delete(ctx context.Context, actorID, id string) error {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		_ repository.InventoryRepository,
		_ repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error {
		if err := warehouseRepo.Delete(id); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(actorID),
			Type:        entity.ActivityWarehouseDeleted,
			EntityType:  entity.EntityTypeWarehouse,
			EntityID:    entityRef(id),
			Description: fmt.Sprintf("Warehouse %s deleted", warehouse.Name),
			Metadata: map[string]any{
				"name":     warehouse.Name,
				"location": warehouse.Location,
			},
			CreatedAt: now,
		})
	})
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:          w.ID,
		Name:        w.Name,
		Location:    w.Location,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

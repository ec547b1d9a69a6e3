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
	"github.com/shopspring/decimal"
)

// InventoryUseCase dueño de los invariantes de InventoryItem: SKU único
// global, sell_price > buy_price en creación y actualización, cantidad nunca
// negativa y eliminación solo con stock cero.
type InventoryUseCase struct {
	txRunner      TxRunner
	repo          repository.InventoryRepository
	warehouseRepo repository.WarehouseRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(txRunner TxRunner, repo repository.InventoryRepository, warehouseRepo repository.WarehouseRepository) *InventoryUseCase {
	return &InventoryUseCase{txRunner: txRunner, repo: repo, warehouseRepo: warehouseRepo}
}

// validatePricing exige precios no negativos y sell > buy.
func validatePricing(buyPrice, sellPrice decimal.Decimal) error {
	if buyPrice.IsNegative() || sellPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	if !sellPrice.GreaterThan(buyPrice) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create crea un artículo. La referencia a bodega es obligatoria y debe existir.
func (uc *InventoryUseCase) Create(ctx context.Context, actorID string, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if in.WarehouseID == "" || in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validatePricing(in.BuyPrice, in.SellPrice); err != nil {
		return nil, err
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.repo.ExistsBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:            uuid.New().String(),
		WarehouseID:   in.WarehouseID,
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Quantity:      in.Quantity,
		BuyPrice:      in.BuyPrice,
		SellPrice:     in.SellPrice,
		Category:      in.Category,
		MinStockLevel: in.MinStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.WarehouseRepository,
		itemRepo repository.InventoryRepository,
		_ repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(actorID),
			Type:        entity.ActivityInventoryCreated,
			EntityType:  entity.EntityTypeInventory,
			EntityID:    entityRef(item.ID),
			Description: fmt.Sprintf("Inventory item %s (SKU %s) created in %s", item.Name, item.SKU, warehouse.Name),
			Metadata: map[string]any{
				"warehouse_id":   item.WarehouseID,
				"warehouse_name": warehouse.Name,
				"sku":            item.SKU,
				"quantity":       item.Quantity,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *InventoryUseCase) GetByID(id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// List lista artículos con filtros opcionales.
func (uc *InventoryUseCase) List(filter repository.ItemFilter, limit, offset int) (*dto.InventoryItemListResponse, error) {
	list, err := uc.repo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return toItemListResponse(list, limit, offset), nil
}

// ListByWarehouse lista artículos de una bodega.
func (uc *InventoryUseCase) ListByWarehouse(warehouseID string, filter repository.ItemFilter, limit, offset int) (*dto.InventoryItemListResponse, error) {
	list, err := uc.repo.ListByWarehouse(warehouseID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return toItemListResponse(list, limit, offset), nil
}

// Search busca artículos por nombre o descripción.
func (uc *InventoryUseCase) Search(term string, limit, offset int) (*dto.InventoryItemListResponse, error) {
	if term == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.Search(term, limit, offset)
	if err != nil {
		return nil, err
	}
	return toItemListResponse(list, limit, offset), nil
}

// ListByCategory lista artículos de una categoría.
func (uc *InventoryUseCase) ListByCategory(category string, limit, offset int) (*dto.InventoryItemListResponse, error) {
	list, err := uc.repo.ListByCategory(category, limit, offset)
	if err != nil {
		return nil, err
	}
	return toItemListResponse(list, limit, offset), nil
}

// Update actualiza un artículo. La bodega no cambia nunca; el invariante de
// precios se valida sobre los valores resultantes de la mezcla.
func (uc *InventoryUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil && *in.SKU != item.SKU {
		exists, err := uc.repo.ExistsBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
		item.SKU = *in.SKU
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.Quantity = *in.Quantity
	}
	if in.BuyPrice != nil {
		item.BuyPrice = *in.BuyPrice
	}
	if in.SellPrice != nil {
		item.SellPrice = *in.SellPrice
	}
	if in.BuyPrice != nil || in.SellPrice != nil {
		if err := validatePricing(item.BuyPrice, item.SellPrice); err != nil {
			return nil, err
		}
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinStockLevel = *in.MinStockLevel
	}
	now := time.Now()
	item.UpdatedAt = now

	err = uc.txRunner.Run(ctx, func(
		_ repository.WarehouseRepository,
		itemRepo repository.InventoryRepository,
		_ repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error {
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(actorID),
			Type:        entity.ActivityInventoryUpdated,
			EntityType:  entity.EntityTypeInventory,
			EntityID:    entityRef(item.ID),
			Description: fmt.Sprintf("Inventory item %s (SKU %s) updated", item.Name, item.SKU),
			Metadata: map[string]any{
				"warehouse_id": item.WarehouseID,
				"sku":          item.SKU,
				"quantity":     item.Quantity,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// AdjustQuantity aplica un delta de stock por la vía sancionada del ledger:
// el artículo se bloquea, el decremento es condicional y el registro de
// auditoría viaja en la misma transacción con previous/new stock capturados.
func (uc *InventoryUseCase) AdjustQuantity(ctx context.Context, actorID, id string, in dto.AdjustQuantityRequest) (*dto.InventoryItemResponse, error) {
	if in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.InventoryItem
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		_ repository.WarehouseRepository,
		itemRepo repository.InventoryRepository,
		_ repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error {
		item, err := itemRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		previousStock := item.Quantity
		newStock, err := itemRepo.AdjustQuantity(id, in.Delta)
		if err != nil {
			return err
		}
		item.Quantity = newStock
		item.UpdatedAt = now
		result = item
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(actorID),
			Type:        entity.ActivityInventoryStockAdjusted,
			EntityType:  entity.EntityTypeInventory,
			EntityID:    entityRef(item.ID),
			Description: fmt.Sprintf("Stock of %s adjusted by %d. New stock: %d", item.Name, in.Delta, newStock),
			Metadata: map[string]any{
				"warehouse_id":    item.WarehouseID,
				"quantity_change": in.Delta,
				"previous_stock":  previousStock,
				"new_stock":       newStock,
				"reason":          in.Reason,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(result), nil
}

// Delete elimina un artículo. Con stock pendiente es un error de lógica
// (ErrConflict), no una preocupación de transporte: se rechaza aquí sin
// importar quién llame.
func (uc *InventoryUseCase) Delete(ctx context.Context, actorID, id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.Quantity != 0 {
		return domain.ErrConflict
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		_ repository.WarehouseRepository,
		itemRepo repository.InventoryRepository,
		_ repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error {
		if err := itemRepo.Delete(id); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(actorID),
			Type:        entity.ActivityInventoryDeleted,
			EntityType:  entity.EntityTypeInventory,
			EntityID:    entityRef(id),
			Description: fmt.Sprintf("Inventory item %s (SKU %s) deleted", item.Name, item.SKU),
			Metadata: map[string]any{
				"warehouse_id": item.WarehouseID,
				"sku":          item.SKU,
			},
			CreatedAt: now,
		})
	})
}

// Stats devuelve el snapshot de indicadores; warehouseID vacío agrega todas las bodegas.
func (uc *InventoryUseCase) Stats(warehouseID string) (*dto.InventoryStatsResponse, error) {
	if warehouseID != "" {
		warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, domain.ErrNotFound
		}
	}
	stats, err := uc.repo.Stats(warehouseID)
	if err != nil {
		return nil, err
	}
	return &dto.InventoryStatsResponse{
		TotalItems:      stats.TotalItems,
		LowStockItems:   stats.LowStockItems,
		TotalCategories: stats.TotalCategories,
		TotalWarehouses: stats.TotalWarehouses,
		TotalValue:      stats.TotalValue,
	}, nil
}

func toItemResponse(i *entity.InventoryItem) *dto.InventoryItemResponse {
	if i == nil {
		return nil
	}
	return &dto.InventoryItemResponse{
		ID:            i.ID,
		WarehouseID:   i.WarehouseID,
		SKU:           i.SKU,
		Name:          i.Name,
		Description:   i.Description,
		Quantity:      i.Quantity,
		BuyPrice:      i.BuyPrice,
		SellPrice:     i.SellPrice,
		Category:      i.Category,
		MinStockLevel: i.MinStockLevel,
		IsLowStock:    i.IsLowStock(),
		TotalValue:    i.TotalValue(),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toItemListResponse(list []*entity.InventoryItem, limit, offset int) *dto.InventoryItemListResponse {
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toItemResponse(i))
	}
	return &dto.InventoryItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: offset, Limit: limit},
	}
}

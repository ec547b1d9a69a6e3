package sale

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

// CreateInput datos para registrar una venta, incluyendo el actor autenticado.
type CreateInput struct {
	WarehouseID     string
	InventoryItemID string
	Quantity        int
	Description     string
	ActorID         string
	ActorRole       string
}

// UseCase procesa ventas: valida precondiciones, descuenta stock bajo bloqueo
// de fila y deja el rastro de auditoría en la misma transacción.
type UseCase struct {
	txRunner      TxRunner
	sellRepo      repository.SellTransactionRepository
	itemRepo      repository.InventoryRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el procesador de ventas.
func NewUseCase(
	txRunner TxRunner,
	sellRepo repository.SellTransactionRepository,
	itemRepo repository.InventoryRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		sellRepo:      sellRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create registra una venta. Las precondiciones se verifican en orden fijo:
// cantidad, permiso del actor, bodega, artículo, pertenencia y stock. Las
// lecturas previas son fail-fast; la verificación autoritativa de stock ocurre
// sobre la fila bloqueada dentro de la transacción.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*dto.SellTransactionResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !entity.HasCapability(in.ActorRole, entity.CapabilitySell) {
		return nil, domain.ErrForbidden
	}

	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseID)
	}

	item, err := uc.itemRepo.GetByID(in.InventoryItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, in.InventoryItemID)
	}
	if item.WarehouseID != in.WarehouseID {
		return nil, fmt.Errorf("%w: el artículo no pertenece a la bodega indicada", domain.ErrConflict)
	}
	if item.Quantity < in.Quantity {
		return nil, &domain.InsufficientStockError{
			Available: item.Quantity,
			Requested: in.Quantity,
		}
	}

	var trx *entity.SellTransaction
	err = uc.txRunner.RunSale(ctx, func(
		itemRepo repository.InventoryRepository,
		sellRepo repository.SellTransactionRepository,
		activityRepo repository.ActivityRepository,
	) error {
		locked, err := itemRepo.GetForUpdate(in.InventoryItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, in.InventoryItemID)
		}
		if locked.WarehouseID != in.WarehouseID {
			return fmt.Errorf("%w: el artículo no pertenece a la bodega indicada", domain.ErrConflict)
		}
		if locked.Quantity < in.Quantity {
			return &domain.InsufficientStockError{
				Available: locked.Quantity,
				Requested: in.Quantity,
			}
		}

		previousStock := locked.Quantity
		newStock := previousStock - in.Quantity
		unitPrice := locked.SellPrice
		totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		now := time.Now()

		trx = &entity.SellTransaction{
			ID:              uuid.New().String(),
			WarehouseID:     in.WarehouseID,
			InventoryItemID: in.InventoryItemID,
			UserID:          actorRef(in.ActorID),
			Quantity:        in.Quantity,
			UnitPrice:       unitPrice,
			TotalPrice:      totalPrice,
			Description:     in.Description,
			CreatedAt:       now,
		}
		if err := sellRepo.Create(trx); err != nil {
			return err
		}
		if _, err := itemRepo.AdjustQuantity(in.InventoryItemID, -in.Quantity); err != nil {
			return err
		}

		if err := activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(in.ActorID),
			Type:        entity.ActivitySellTransaction,
			EntityType:  entity.EntityTypeSellTransaction,
			EntityID:    &trx.ID,
			Description: fmt.Sprintf("Sold %d x %s from %s", in.Quantity, locked.Name, warehouse.Name),
			Metadata: map[string]any{
				"warehouse_id":        in.WarehouseID,
				"warehouse_name":      warehouse.Name,
				"inventory_item_id":   in.InventoryItemID,
				"inventory_item_name": locked.Name,
				"quantity":            in.Quantity,
				"unit_price":          unitPrice.String(),
				"total_price":         totalPrice.String(),
				"previous_stock":      previousStock,
				"new_stock":           newStock,
			},
			CreatedAt: now,
		}); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(in.ActorID),
			Type:        entity.ActivityInventoryStockAdjusted,
			EntityType:  entity.EntityTypeInventory,
			EntityID:    &locked.ID,
			Description: fmt.Sprintf("Stock of %s adjusted by %d (sale)", locked.Name, -in.Quantity),
			Metadata: map[string]any{
				"quantity_change": -in.Quantity,
				"previous_stock":  previousStock,
				"new_stock":       newStock,
				"transaction_id":  trx.ID,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toResponse(trx), nil
}

// GetByID obtiene una venta por ID.
func (uc *UseCase) GetByID(id string) (*dto.SellTransactionResponse, error) {
	trx, err := uc.sellRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if trx == nil {
		return nil, nil
	}
	return toResponse(trx), nil
}

// List lista ventas con paginación, de la más reciente a la más antigua.
func (uc *UseCase) List(limit, offset int) (*dto.SellTransactionListResponse, error) {
	list, err := uc.sellRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// ListByWarehouse lista las ventas de una bodega.
func (uc *UseCase) ListByWarehouse(warehouseID string, limit, offset int) (*dto.SellTransactionListResponse, error) {
	list, err := uc.sellRepo.ListByWarehouse(warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// ListByItem lista las ventas de un artículo.
func (uc *UseCase) ListByItem(inventoryItemID string, limit, offset int) (*dto.SellTransactionListResponse, error) {
	list, err := uc.sellRepo.ListByItem(inventoryItemID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

func actorRef(actorID string) *string {
	if actorID == "" {
		return nil
	}
	return &actorID
}

func toResponse(trx *entity.SellTransaction) *dto.SellTransactionResponse {
	return &dto.SellTransactionResponse{
		ID:              trx.ID,
		WarehouseID:     trx.WarehouseID,
		InventoryItemID: trx.InventoryItemID,
		UserID:          trx.UserID,
		Quantity:        trx.Quantity,
		UnitPrice:       trx.UnitPrice,
		TotalPrice:      trx.TotalPrice,
		Description:     trx.Description,
		CreatedAt:       trx.CreatedAt,
	}
}

func toListResponse(list []*entity.SellTransaction, limit, offset int) *dto.SellTransactionListResponse {
	items := make([]dto.SellTransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toResponse(t))
	}
	return &dto.SellTransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: offset, Limit: limit},
	}
}

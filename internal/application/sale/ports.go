package sale

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta la unidad atómica de una venta: bloqueo de fila,
// decremento de stock, inserción de la venta y sus dos registros de
// auditoría viven en la misma transacción o no viven.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		itemRepo repository.InventoryRepository,
		sellRepo repository.SellTransactionRepository,
		activityRepo repository.ActivityRepository,
	) error) error
}

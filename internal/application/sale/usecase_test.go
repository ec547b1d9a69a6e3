package sale_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/sale"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Los embeds de la interfaz hacen panic en métodos no usados,
// lo que delata cualquier acceso inesperado del caso de uso.
// ──────────────────────────────────────────────────────────────────────────────

type fakeWarehouseRepo struct {
	repository.WarehouseRepository
	warehouses map[string]*entity.Warehouse
}

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return f.warehouses[id], nil
}

type fakeInventoryRepo struct {
	repository.InventoryRepository
	items map[string]*entity.InventoryItem
}

func (f *fakeInventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return f.items[id], nil
}

func (f *fakeInventoryRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return f.items[id], nil
}

func (f *fakeInventoryRepo) AdjustQuantity(id string, delta int) (int, error) {
	item, ok := f.items[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if item.Quantity+delta < 0 {
		return 0, &domain.InsufficientStockError{Available: item.Quantity, Requested: -delta}
	}
	item.Quantity += delta
	item.UpdatedAt = time.Now()
	return item.Quantity, nil
}

func (f *fakeInventoryRepo) snapshot() map[string]entity.InventoryItem {
	snap := make(map[string]entity.InventoryItem, len(f.items))
	for id, item := range f.items {
		snap[id] = *item
	}
	return snap
}

func (f *fakeInventoryRepo) restore(snap map[string]entity.InventoryItem) {
	for id, item := range snap {
		copia := item
		f.items[id] = &copia
	}
}

type fakeSellRepo struct {
	repository.SellTransactionRepository
	created []*entity.SellTransaction
}

func (f *fakeSellRepo) Create(trx *entity.SellTransaction) error {
	f.created = append(f.created, trx)
	return nil
}

type fakeActivityRepo struct {
	repository.ActivityRepository
	created []*entity.Activity
}

func (f *fakeActivityRepo) Create(a *entity.Activity) error {
	f.created = append(f.created, a)
	return nil
}

// fakeTxRunner emula la semántica transaccional: si fn falla, el estado de los
// repos vuelve al punto de partida.
type fakeTxRunner struct {
	items *fakeInventoryRepo
	sells *fakeSellRepo
	acts  *fakeActivityRepo
}

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	repository.InventoryRepository,
	repository.SellTransactionRepository,
	repository.ActivityRepository,
) error) error {
	itemsSnap := r.items.snapshot()
	sellsSnap := len(r.sells.created)
	actsSnap := len(r.acts.created)
	if err := fn(r.items, r.sells, r.acts); err != nil {
		r.items.restore(itemsSnap)
		r.sells.created = r.sells.created[:sellsSnap]
		r.acts.created = r.acts.created[:actsSnap]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: una bodega con un artículo de 10 unidades, compra a 50 y vende a
// 100, con umbral de stock bajo en 5.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testWarehouseID = "11111111-1111-1111-1111-111111111111"
	testItemID      = "22222222-2222-2222-2222-222222222222"
	testActorID     = "33333333-3333-3333-3333-333333333333"
)

type fixture struct {
	uc    *sale.UseCase
	items *fakeInventoryRepo
	sells *fakeSellRepo
	acts  *fakeActivityRepo
}

func newFixture() *fixture {
	warehouses := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		testWarehouseID: {ID: testWarehouseID, Name: "Bodega Central", Location: "Bogotá"},
	}}
	items := &fakeInventoryRepo{items: map[string]*entity.InventoryItem{
		testItemID: {
			ID:            testItemID,
			WarehouseID:   testWarehouseID,
			SKU:           "SKU-001",
			Name:          "Tornillo 3mm",
			Quantity:      10,
			BuyPrice:      decimal.NewFromInt(50),
			SellPrice:     decimal.NewFromInt(100),
			MinStockLevel: 5,
		},
	}}
	sells := &fakeSellRepo{}
	acts := &fakeActivityRepo{}
	runner := &fakeTxRunner{items: items, sells: sells, acts: acts}
	return &fixture{
		uc:    sale.NewUseCase(runner, sells, items, warehouses),
		items: items,
		sells: sells,
		acts:  acts,
	}
}

func sellInput(qty int) sale.CreateInput {
	return sale.CreateInput{
		WarehouseID:     testWarehouseID,
		InventoryItemID: testItemID,
		Quantity:        qty,
		ActorID:         testActorID,
		ActorRole:       entity.RoleSuperAdmin,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta exitosa
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_VentaExitosa_DescuentaStockYAudita(t *testing.T) {
	f := newFixture()

	out, err := f.uc.Create(context.Background(), sellInput(4))
	require.NoError(t, err, "vender 4 de 10 unidades debe ser posible")
	require.NotNil(t, out)

	assert.Equal(t, 4, out.Quantity)
	assert.True(t, out.UnitPrice.Equal(decimal.NewFromInt(100)),
		"el precio unitario debe salir del sell_price vigente del artículo")
	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(400)),
		"total = 100 x 4")
	require.NotNil(t, out.UserID)
	assert.Equal(t, testActorID, *out.UserID)

	item := f.items.items[testItemID]
	assert.Equal(t, 6, item.Quantity, "el stock debe quedar en 6")
	assert.False(t, item.IsLowStock(), "6 unidades con umbral 5 no es stock bajo")

	require.Len(t, f.sells.created, 1)
	require.Len(t, f.acts.created, 2,
		"una venta deja exactamente dos registros de auditoría")

	venta := f.acts.created[0]
	assert.Equal(t, entity.ActivitySellTransaction, venta.Type)
	assert.Equal(t, entity.EntityTypeSellTransaction, venta.EntityType)
	require.NotNil(t, venta.EntityID)
	assert.Equal(t, out.ID, *venta.EntityID)
	assert.Equal(t, 10, venta.Metadata["previous_stock"])
	assert.Equal(t, 6, venta.Metadata["new_stock"])
	assert.Equal(t, "Bodega Central", venta.Metadata["warehouse_name"])

	ajuste := f.acts.created[1]
	assert.Equal(t, entity.ActivityInventoryStockAdjusted, ajuste.Type)
	assert.Equal(t, entity.EntityTypeInventory, ajuste.EntityType)
	require.NotNil(t, ajuste.EntityID)
	assert.Equal(t, testItemID, *ajuste.EntityID)
	assert.Equal(t, -4, ajuste.Metadata["quantity_change"])
	assert.Equal(t, 10, ajuste.Metadata["previous_stock"])
	assert.Equal(t, 6, ajuste.Metadata["new_stock"])
	assert.Equal(t, out.ID, ajuste.Metadata["transaction_id"],
		"el ajuste debe correlacionarse con la venta que lo causó")
}

func TestCreate_VentaDejaStockEnCero(t *testing.T) {
	f := newFixture()

	out, err := f.uc.Create(context.Background(), sellInput(10))
	require.NoError(t, err, "vender exactamente el stock disponible debe ser posible")
	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 0, f.items.items[testItemID].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock insuficiente: la venta se rechaza completa, sin efectos parciales.
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_StockInsuficiente_NoDejaEfectos(t *testing.T) {
	f := newFixture()

	// Primera venta deja el stock en 6.
	_, err := f.uc.Create(context.Background(), sellInput(4))
	require.NoError(t, err)
	ventasAntes := len(f.sells.created)
	auditsAntes := len(f.acts.created)

	// Pedir 7 con 6 disponibles debe fallar con los números exactos.
	_, err = f.uc.Create(context.Background(), sellInput(7))
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Available)
	assert.Equal(t, 7, stockErr.Requested)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"el error tipado debe responder al sentinela")

	assert.Equal(t, 6, f.items.items[testItemID].Quantity,
		"el stock no debe cambiar tras una venta rechazada")
	assert.Len(t, f.sells.created, ventasAntes,
		"no debe registrarse la venta rechazada")
	assert.Len(t, f.acts.created, auditsAntes,
		"una venta rechazada no deja auditoría")
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CantidadInvalida(t *testing.T) {
	f := newFixture()
	for _, qty := range []int{0, -3} {
		_, err := f.uc.Create(context.Background(), sellInput(qty))
		assert.ErrorIs(t, err, domain.ErrInvalidInput,
			"cantidad %d debe rechazarse como entrada inválida", qty)
	}
	assert.Equal(t, 10, f.items.items[testItemID].Quantity)
}

func TestCreate_RolSinPermisoDeVenta(t *testing.T) {
	f := newFixture()
	in := sellInput(1)
	in.ActorRole = entity.RoleWarehouse

	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"el rol warehouse no tiene capacidad de venta")
	assert.Empty(t, f.acts.created, "un intento sin permiso no deja auditoría")
}

func TestCreate_BodegaInexistente(t *testing.T) {
	f := newFixture()
	in := sellInput(1)
	in.WarehouseID = "99999999-9999-9999-9999-999999999999"

	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ArticuloInexistente(t *testing.T) {
	f := newFixture()
	in := sellInput(1)
	in.InventoryItemID = "99999999-9999-9999-9999-999999999999"

	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ArticuloDeOtraBodega(t *testing.T) {
	f := newFixture()
	// El artículo existe pero pertenece a otra bodega.
	f.items.items[testItemID].WarehouseID = "44444444-4444-4444-4444-444444444444"

	_, err := f.uc.Create(context.Background(), sellInput(1))
	assert.ErrorIs(t, err, domain.ErrConflict,
		"vender un artículo apuntando a la bodega equivocada es un conflicto")
}

// Las precondiciones se evalúan en orden fijo: el permiso se verifica antes
// que la existencia de la bodega, y la pertenencia antes que el stock.
func TestCreate_OrdenDePrecondiciones(t *testing.T) {
	f := newFixture()

	in := sellInput(1)
	in.ActorRole = entity.RoleWarehouse
	in.WarehouseID = "99999999-9999-9999-9999-999999999999"
	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"sin permiso, no importa que la bodega tampoco exista")

	in = sellInput(100)
	f.items.items[testItemID].WarehouseID = "44444444-4444-4444-4444-444444444444"
	_, err = f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"la pertenencia se verifica antes que el stock")
}

// El error tipado conserva los números incluso si la carrera la pierde la
// verificación autoritativa dentro de la transacción.
func TestCreate_StockCambiaDentroDeLaTransaccion(t *testing.T) {
	f := newFixture()

	// Simular un decremento concurrente entre la lectura fail-fast y el lock:
	// el runner recorta el stock justo antes de ejecutar fn.
	runner := &raceTxRunner{inner: &fakeTxRunner{items: f.items, sells: f.sells, acts: f.acts}, items: f.items}
	uc := sale.NewUseCase(runner, f.sells, f.items, &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		testWarehouseID: {ID: testWarehouseID, Name: "Bodega Central"},
	}})

	_, err := uc.Create(context.Background(), sellInput(8))
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available, "los números deben reflejar el estado tras la carrera")
	assert.Equal(t, 8, stockErr.Requested)
	assert.Equal(t, 5, f.items.items[testItemID].Quantity)
	assert.Empty(t, f.acts.created)
}

type raceTxRunner struct {
	inner *fakeTxRunner
	items *fakeInventoryRepo
}

func (r *raceTxRunner) RunSale(ctx context.Context, fn func(
	repository.InventoryRepository,
	repository.SellTransactionRepository,
	repository.ActivityRepository,
) error) error {
	r.items.items[testItemID].Quantity = 5
	return r.inner.RunSale(ctx, fn)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_NoEncontrada(t *testing.T) {
	sells := &sellRepoWithReads{}
	uc := sale.NewUseCase(nil, sells, nil, nil)

	out, err := uc.GetByID("no-existe")
	require.NoError(t, err)
	assert.Nil(t, out, "una venta inexistente es nil, no error")
}

func TestList_PaginaVacia(t *testing.T) {
	sells := &sellRepoWithReads{}
	uc := sale.NewUseCase(nil, sells, nil, nil)

	out, err := uc.List(20, 0)
	require.NoError(t, err)
	assert.NotNil(t, out.Items, "la página vacía serializa como lista, no como null")
	assert.Empty(t, out.Items)
	assert.Equal(t, 20, out.Page.Limit)
}

type sellRepoWithReads struct {
	repository.SellTransactionRepository
}

func (s *sellRepoWithReads) GetByID(id string) (*entity.SellTransaction, error) {
	return nil, nil
}

func (s *sellRepoWithReads) List(limit, offset int) ([]*entity.SellTransaction, error) {
	return nil, nil
}

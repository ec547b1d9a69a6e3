package activity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/activity"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

type fakeActivityRepo struct {
	repository.ActivityRepository
	list []*entity.Activity
}

func (f *fakeActivityRepo) List(limit, offset int) ([]*entity.Activity, error) {
	return f.list, nil
}

func (f *fakeActivityRepo) ListByType(t entity.ActivityType, limit, offset int) ([]*entity.Activity, error) {
	var out []*entity.Activity
	for _, a := range f.list {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out, nil
}

func TestList_DevuelvePaginaConMetadatos(t *testing.T) {
	repo := &fakeActivityRepo{list: []*entity.Activity{
		{ID: "a1", Type: entity.ActivitySellTransaction, EntityType: entity.EntityTypeSellTransaction, CreatedAt: time.Now()},
		{ID: "a2", Type: entity.ActivityInventoryCreated, EntityType: entity.EntityTypeInventory, CreatedAt: time.Now()},
	}}
	uc := activity.NewUseCase(repo)

	out, err := uc.List(20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "sell_transaction", out.Items[0].Type)
	assert.Equal(t, 20, out.Page.Limit)
	assert.Equal(t, 0, out.Page.Skip)
}

func TestListByType_TipoDesconocidoEsInvalido(t *testing.T) {
	uc := activity.NewUseCase(&fakeActivityRepo{})

	_, err := uc.ListByType("algo_inventado", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un tipo fuera de la taxonomía es un error, no una lista vacía")
}

func TestListByType_TipoValidoFiltra(t *testing.T) {
	repo := &fakeActivityRepo{list: []*entity.Activity{
		{ID: "a1", Type: entity.ActivitySellTransaction},
		{ID: "a2", Type: entity.ActivityUserLogin},
	}}
	uc := activity.NewUseCase(repo)

	out, err := uc.ListByType("user_login", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "a2", out.Items[0].ID)
}

func TestList_PaginaVaciaSerializaComoLista(t *testing.T) {
	uc := activity.NewUseCase(&fakeActivityRepo{})

	out, err := uc.List(20, 0)
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}

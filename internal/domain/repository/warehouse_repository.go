package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	GetByName(name string) (*entity.Warehouse, error)
	ExistsByName(name string) (bool, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	// Delete elimina la bodega; la FK con ON DELETE CASCADE arrastra sus items.
	Delete(id string) error
}

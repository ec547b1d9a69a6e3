package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
// El nombre es único a nivel global; los items le pertenecen en exclusiva y se
// eliminan en cascada con ella.
type Warehouse struct {
	ID          string
	Name        string
	Location    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

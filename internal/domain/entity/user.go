package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin = "super_admin"
	RoleWarehouse  = "warehouse"
)

// Capability capacidad concreta que un rol puede ejercer. El procesador de
// ventas y los handlers consultan capacidades, no comparan strings de rol, para
// poder crecer en roles sin tocar esa lógica.
type Capability string

const (
	CapabilitySell        Capability = "sell"
	CapabilityManageUsers Capability = "manage_users"
	CapabilityManageStock Capability = "manage_stock"
)

var roleCapabilities = map[string][]Capability{
	RoleSuperAdmin: {CapabilitySell, CapabilityManageUsers, CapabilityManageStock},
	RoleWarehouse:  {CapabilityManageStock},
}

// HasCapability indica si el rol tiene la capacidad dada.
func HasCapability(role string, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // super_admin, warehouse
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Can indica si el usuario tiene la capacidad dada según su rol.
func (u *User) Can(cap Capability) bool {
	return HasCapability(u.Role, cap)
}

package domain

import "time"

// Role is the closed set of roles known to the system. Raw strings from
// requests must go through ParseRole so a typo can never grant or deny
// access silently.
type Role string

const (
	RoleSuperAdmin    Role = "SUPER_ADMIN"
	RoleBusinessOwner Role = "BUSINESS_OWNER"
	RoleShopManager   Role = "SHOP_MANAGER"
	RoleCashier       Role = "CASHIER"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleBusinessOwner, RoleShopManager, RoleCashier:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// Permission is the closed set of fine-grained capabilities.
type Permission string

const (
	PermViewReports         Permission = "VIEW_REPORTS"
	PermManageShops         Permission = "MANAGE_SHOPS"
	PermManageProducts      Permission = "MANAGE_PRODUCTS"
	PermManageStock         Permission = "MANAGE_STOCK"
	PermProcessSales        Permission = "PROCESS_SALES"
	PermManageUsers         Permission = "MANAGE_USERS"
	PermManageSubscriptions Permission = "MANAGE_SUBSCRIPTIONS"
)

// rolePermissions maps each role to its default capability set.
var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermViewReports, PermManageShops, PermManageProducts, PermManageStock,
		PermProcessSales, PermManageUsers, PermManageSubscriptions,
	},
	RoleBusinessOwner: {
		PermViewReports, PermManageShops, PermManageProducts, PermManageStock,
		PermProcessSales, PermManageUsers,
	},
	RoleShopManager: {
		PermViewReports, PermManageProducts, PermManageStock, PermProcessSales,
	},
	RoleCashier: {
		PermProcessSales,
	},
}

// Permissions returns the default permission set for the role.
func (r Role) Permissions() []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ShopID       string    `json:"shop_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

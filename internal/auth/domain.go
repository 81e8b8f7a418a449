package auth

import (
	"errors"
	"time"
)

// Role is the closed set of operator roles. The legacy schema stored the
// role as free text; unrecognized values are now rejected at the boundary.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleCashier     Role = "cashier"
	RoleProcurement Role = "procurement"
	RoleAnalyst     Role = "analyst"
)

// ErrUnknownRole indicates a role outside the enumerated set.
var ErrUnknownRole = errors.New("auth: unknown role")

// Roles lists every accepted role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleCashier, RoleProcurement, RoleAnalyst}
}

// ParseRole validates a raw role value against the enumerated set.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	for _, known := range Roles() {
		if role == known {
			return role, nil
		}
	}
	return "", ErrUnknownRole
}

// Credential identifies one operator. Digest and salt never leave the
// repository layer; a Credential carries only what callers may see.
type Credential struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

package rbac

import "slices"

// Module is a functional area of the inventory that permissions are scoped to
type Module string

// Action is an operation within a module
type Action string

const (
	ModuleUsers           Module = "users"
	ModuleSupplies        Module = "supplies"
	ModuleSupplyHistories Module = "supply_histories"
	ModuleReports         Module = "reports"
)

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"

	// adminUsername bypasses authorization regardless of the stored role
	adminUsername = "admin"
)

// AllModules lists every module known to the resolver
var AllModules = []Module{ModuleUsers, ModuleSupplies, ModuleSupplyHistories, ModuleReports}

// AllActions lists every action known to the resolver
var AllActions = []Action{ActionView, ActionCreate, ActionEdit}

// Valid reports whether m is one of AllModules
func (m Module) Valid() bool {
	return slices.Contains(AllModules, m)
}

// Valid reports whether a is one of AllActions
func (a Action) Valid() bool {
	return slices.Contains(AllActions, a)
}

// PermissionMap maps a module to the actions allowed on it
type PermissionMap map[Module][]Action

// Allows reports whether action is listed for module
func (p PermissionMap) Allows(module Module, action Action) bool {
	actions, ok := p[module]
	if !ok {
		return false
	}
	return slices.Contains(actions, action)
}

// Clone returns a deep copy of the map
func (p PermissionMap) Clone() PermissionMap {
	if p == nil {
		return nil
	}
	out := make(PermissionMap, len(p))
	for m, actions := range p {
		out[m] = slices.Clone(actions)
	}
	return out
}

// User is the principal an authorization decision is made for
type User struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	Role        string        `json:"role"`
	Permissions PermissionMap `json:"permissions,omitempty"`
}

// IsAdmin reports whether the user bypasses every check
func (u *User) IsAdmin() bool {
	return u != nil && (u.Role == RoleAdmin || u.Username == adminUsername)
}

// usesStaffDefaults reports whether the staff default set replaces the user's own map
func (u *User) usesStaffDefaults() bool {
	return u.Role == RoleStaff && len(u.Permissions) == 0
}

// RouteRequirement is the single permission a route needs
type RouteRequirement struct {
	Module Module `json:"module" yaml:"module"`
	Action Action `json:"action" yaml:"action"`
}

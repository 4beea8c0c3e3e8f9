package presets

import "supply-service/internal/rbac"

// Dashboard routes that carry a permission requirement
const (
	RouteViewUsers     = "/users/view-users"
	RouteAddUser       = "/users/add-user"
	RouteViewItems     = "/inventory/view-items"
	RouteAddItem       = "/inventory/add-item"
	RouteItemHistory   = "/item-history"
	RouteLowStock      = "/reports/low-stock"
	RouteStockMovement = "/reports/stock-movement"
)

// OfficeSupplies returns the policy for the office-supplies dashboard.
// Each call returns a fresh copy.
func OfficeSupplies() rbac.Policy {
	return rbac.Policy{
		StaffDefaults: rbac.PermissionMap{
			rbac.ModuleSupplies:        {rbac.ActionView, rbac.ActionCreate, rbac.ActionEdit},
			rbac.ModuleSupplyHistories: {rbac.ActionView, rbac.ActionCreate},
			rbac.ModuleReports:         {rbac.ActionView},
		},
		Routes: map[string]rbac.RouteRequirement{
			RouteViewUsers:     {Module: rbac.ModuleUsers, Action: rbac.ActionView},
			RouteAddUser:       {Module: rbac.ModuleUsers, Action: rbac.ActionCreate},
			RouteViewItems:     {Module: rbac.ModuleSupplies, Action: rbac.ActionView},
			RouteAddItem:       {Module: rbac.ModuleSupplies, Action: rbac.ActionCreate},
			RouteItemHistory:   {Module: rbac.ModuleSupplyHistories, Action: rbac.ActionView},
			RouteLowStock:      {Module: rbac.ModuleReports, Action: rbac.ActionView},
			RouteStockMovement: {Module: rbac.ModuleReports, Action: rbac.ActionView},
		},
	}
}

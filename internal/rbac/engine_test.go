package rbac_test

import (
	"errors"
	"sync"
	"testing"

	"supply-service/internal/rbac"
	"supply-service/internal/rbac/presets"
)

func newResolver(t *testing.T) *rbac.Resolver {
	t.Helper()
	r, err := rbac.New(presets.OfficeSupplies())
	if err != nil {
		t.Fatalf("failed to create resolver: %v", err)
	}
	return r
}

// ============================================================================
// Admin override
// ============================================================================

func TestHasPermission_AdminBypass(t *testing.T) {
	r := newResolver(t)

	admins := []*rbac.User{
		{ID: "1", Username: "alice", Role: rbac.RoleAdmin},
		{ID: "2", Username: "admin", Role: "staff"},
		{ID: "3", Username: "admin", Role: "viewer", Permissions: rbac.PermissionMap{}},
		{ID: "4", Username: "bob", Role: rbac.RoleAdmin, Permissions: rbac.PermissionMap{rbac.ModuleSupplies: {rbac.ActionView}}},
	}
	modules := append([]rbac.Module{"warehouse", ""}, rbac.AllModules...)
	actions := append([]rbac.Action{"delete", "approve", ""}, rbac.AllActions...)

	for _, u := range admins {
		for _, m := range modules {
			for _, a := range actions {
				if !r.HasPermission(u, m, a) {
					t.Errorf("HasPermission(%+v, %q, %q) = false, expected true", u, m, a)
				}
			}
		}
	}
}

func TestHasPermission_NilUser(t *testing.T) {
	r := newResolver(t)

	for _, m := range append([]rbac.Module{"unknown"}, rbac.AllModules...) {
		for _, a := range append([]rbac.Action{"unknown"}, rbac.AllActions...) {
			if r.HasPermission(nil, m, a) {
				t.Errorf("HasPermission(nil, %q, %q) = true, expected false", m, a)
			}
		}
	}

	err := r.Authorize(nil, rbac.ModuleSupplies, rbac.ActionView)
	if !errors.Is(err, rbac.ErrDenied) || !errors.Is(err, rbac.ErrNilUser) {
		t.Errorf("Authorize(nil) error should wrap ErrDenied and ErrNilUser, got: %v", err)
	}
}

// ============================================================================
// Staff defaults
// ============================================================================

func TestHasPermission_StaffDefaults(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		name     string
		perms    rbac.PermissionMap
		module   rbac.Module
		action   rbac.Action
		expected bool
	}{
		{"supplies view", nil, rbac.ModuleSupplies, rbac.ActionView, true},
		{"supplies create", nil, rbac.ModuleSupplies, rbac.ActionCreate, true},
		{"supplies edit", nil, rbac.ModuleSupplies, rbac.ActionEdit, true},
		{"history view", nil, rbac.ModuleSupplyHistories, rbac.ActionView, true},
		{"history create", nil, rbac.ModuleSupplyHistories, rbac.ActionCreate, true},
		{"history edit", nil, rbac.ModuleSupplyHistories, rbac.ActionEdit, false},
		{"reports view", nil, rbac.ModuleReports, rbac.ActionView, true},
		{"reports create", nil, rbac.ModuleReports, rbac.ActionCreate, false},
		{"users view", nil, rbac.ModuleUsers, rbac.ActionView, false},
		{"users create with empty map", rbac.PermissionMap{}, rbac.ModuleUsers, rbac.ActionCreate, false},
		{"supplies create with empty map", rbac.PermissionMap{}, rbac.ModuleSupplies, rbac.ActionCreate, true},
		{"own map replaces defaults", rbac.PermissionMap{rbac.ModuleReports: {rbac.ActionView}}, rbac.ModuleSupplies, rbac.ActionView, false},
		{"own map grants users", rbac.PermissionMap{rbac.ModuleUsers: {rbac.ActionView}}, rbac.ModuleUsers, rbac.ActionView, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &rbac.User{ID: "7", Username: "sam", Role: rbac.RoleStaff, Permissions: tt.perms}
			result := r.HasPermission(u, tt.module, tt.action)
			if result != tt.expected {
				t.Errorf("HasPermission(staff, %s, %s) = %v, expected %v", tt.module, tt.action, result, tt.expected)
			}
		})
	}
}

// ============================================================================
// General case
// ============================================================================

func TestHasPermission_OwnPermissionMap(t *testing.T) {
	r := newResolver(t)

	viewer := &rbac.User{ID: "9", Username: "val", Role: "viewer", Permissions: rbac.PermissionMap{
		rbac.ModuleSupplies: {rbac.ActionView},
	}}

	tests := []struct {
		name     string
		user     *rbac.User
		module   rbac.Module
		action   rbac.Action
		expected bool
	}{
		{"listed action", viewer, rbac.ModuleSupplies, rbac.ActionView, true},
		{"unlisted action", viewer, rbac.ModuleSupplies, rbac.ActionEdit, false},
		{"unlisted module", viewer, rbac.ModuleReports, rbac.ActionView, false},
		{"unknown module", viewer, "warehouse", rbac.ActionView, false},
		{"unknown action", viewer, rbac.ModuleSupplies, "delete", false},
		{"no permission map", &rbac.User{Username: "x", Role: "viewer"}, rbac.ModuleSupplies, rbac.ActionView, false},
		{"empty permission map", &rbac.User{Username: "x", Role: "viewer", Permissions: rbac.PermissionMap{}}, rbac.ModuleSupplies, rbac.ActionView, false},
		{"empty role", &rbac.User{Username: "x", Permissions: rbac.PermissionMap{rbac.ModuleReports: {rbac.ActionView}}}, rbac.ModuleReports, rbac.ActionView, true},
		{"role match is case sensitive", &rbac.User{Username: "x", Role: "Admin"}, rbac.ModuleUsers, rbac.ActionView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.HasPermission(tt.user, tt.module, tt.action)
			if result != tt.expected {
				t.Errorf("HasPermission(%s, %s) = %v, expected %v", tt.module, tt.action, result, tt.expected)
			}
		})
	}
}

func TestPermissionMap_Allows(t *testing.T) {
	perms := rbac.PermissionMap{
		rbac.ModuleSupplies: {rbac.ActionView, rbac.ActionCreate},
		rbac.ModuleReports:  {},
	}

	if !perms.Allows(rbac.ModuleSupplies, rbac.ActionCreate) {
		t.Error("expected supplies/create to be allowed")
	}
	if perms.Allows(rbac.ModuleSupplies, rbac.ActionEdit) {
		t.Error("expected supplies/edit to be denied")
	}
	if perms.Allows(rbac.ModuleReports, rbac.ActionView) {
		t.Error("expected a module with no actions to deny")
	}
	if perms.Allows(rbac.ModuleUsers, rbac.ActionView) {
		t.Error("expected an absent module to deny")
	}
	if rbac.PermissionMap(nil).Allows(rbac.ModuleSupplies, rbac.ActionView) {
		t.Error("expected a nil map to deny")
	}
}

func TestAuthorize_ErrorsWrapDenied(t *testing.T) {
	r := newResolver(t)
	u := &rbac.User{Username: "val", Role: "viewer", Permissions: rbac.PermissionMap{rbac.ModuleSupplies: {rbac.ActionView}}}

	tests := []struct {
		name   string
		module rbac.Module
		action rbac.Action
		target error
	}{
		{"unknown module", "warehouse", rbac.ActionView, rbac.ErrUnknownModule},
		{"unknown action", rbac.ModuleSupplies, "purge", rbac.ErrUnknownAction},
		{"not granted", rbac.ModuleReports, rbac.ActionView, rbac.ErrDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Authorize(u, tt.module, tt.action)
			if !errors.Is(err, rbac.ErrDenied) {
				t.Fatalf("Authorize error should wrap ErrDenied, got: %v", err)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("Authorize error should wrap %v, got: %v", tt.target, err)
			}
		})
	}
}

// ============================================================================
// Routes
// ============================================================================

func TestCanAccessRoute(t *testing.T) {
	r := newResolver(t)

	staff := &rbac.User{Username: "sam", Role: rbac.RoleStaff}
	viewer := &rbac.User{Username: "val", Role: "viewer", Permissions: rbac.PermissionMap{rbac.ModuleSupplies: {rbac.ActionView}}}
	admin := &rbac.User{Username: "root", Role: rbac.RoleAdmin}

	tests := []struct {
		name     string
		user     *rbac.User
		route    string
		expected bool
	}{
		{"unknown route nil user", nil, "/unknown-route", true},
		{"unknown route viewer", viewer, "/unknown-route", true},
		{"dashboard has no requirement", nil, "/dashboard", true},
		{"staff add item", staff, presets.RouteAddItem, true},
		{"staff low stock", staff, presets.RouteLowStock, true},
		{"staff view users", staff, presets.RouteViewUsers, false},
		{"viewer view items", viewer, presets.RouteViewItems, true},
		{"viewer add item", viewer, presets.RouteAddItem, false},
		{"viewer item history", viewer, presets.RouteItemHistory, false},
		{"nil user guarded route", nil, presets.RouteViewItems, false},
		{"admin add user", admin, presets.RouteAddUser, true},
		{"route match is exact", viewer, presets.RouteViewItems + "/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.CanAccessRoute(tt.user, tt.route)
			if result != tt.expected {
				t.Errorf("CanAccessRoute(%s) = %v, expected %v", tt.route, result, tt.expected)
			}
		})
	}
}

func TestRoutes_Sorted(t *testing.T) {
	r := newResolver(t)
	routes := r.Routes()

	if len(routes) != 7 {
		t.Fatalf("Routes() returned %d routes, expected 7", len(routes))
	}
	for i := 1; i < len(routes); i++ {
		if routes[i-1] > routes[i] {
			t.Errorf("Routes() not sorted at %d: %s > %s", i, routes[i-1], routes[i])
		}
	}

	req, ok := r.Requirement(presets.RouteItemHistory)
	if !ok || req.Module != rbac.ModuleSupplyHistories || req.Action != rbac.ActionView {
		t.Errorf("Requirement(%s) = %+v, %v", presets.RouteItemHistory, req, ok)
	}
}

func TestEffectivePermissions(t *testing.T) {
	r := newResolver(t)

	staff := r.EffectivePermissions(&rbac.User{Username: "sam", Role: rbac.RoleStaff})
	if len(staff) != 3 {
		t.Errorf("staff effective modules = %d, expected 3: %v", len(staff), staff)
	}
	if !staff.Allows(rbac.ModuleSupplies, rbac.ActionEdit) || staff.Allows(rbac.ModuleUsers, rbac.ActionView) {
		t.Errorf("unexpected staff effective permissions: %v", staff)
	}

	admin := r.EffectivePermissions(&rbac.User{Username: "admin"})
	for _, m := range rbac.AllModules {
		if len(admin[m]) != len(rbac.AllActions) {
			t.Errorf("admin effective actions on %s = %v", m, admin[m])
		}
	}

	if got := r.EffectivePermissions(nil); len(got) != 0 {
		t.Errorf("nil user effective permissions = %v, expected none", got)
	}
}

func TestResolver_ConcurrentUse(t *testing.T) {
	r := newResolver(t)
	staff := &rbac.User{Username: "sam", Role: rbac.RoleStaff}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if !r.HasPermission(staff, rbac.ModuleSupplies, rbac.ActionCreate) {
					t.Error("staff lost supplies/create under concurrency")
					return
				}
				_ = r.CanAccessRoute(staff, presets.RouteViewUsers)
			}
		}()
	}
	wg.Wait()
}

func TestPresetIsFreshCopy(t *testing.T) {
	p := presets.OfficeSupplies()
	p.StaffDefaults[rbac.ModuleUsers] = []rbac.Action{rbac.ActionView}

	r := newResolver(t)
	if r.HasPermission(&rbac.User{Role: rbac.RoleStaff}, rbac.ModuleUsers, rbac.ActionView) {
		t.Error("mutating one preset copy leaked into another")
	}
}

package rbac

import (
	"fmt"
	"sort"
)

// Resolver decides whether a user may perform an action on a module.
// All state is read-only after New, so a Resolver is safe for concurrent use.
type Resolver struct {
	staffDefaults map[Module]map[Action]bool
	routes        map[string]RouteRequirement
}

// New creates a Resolver from a validated Policy
func New(p Policy) (*Resolver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r := &Resolver{
		staffDefaults: make(map[Module]map[Action]bool, len(p.StaffDefaults)),
		routes:        make(map[string]RouteRequirement, len(p.Routes)),
	}
	for module, actions := range p.StaffDefaults {
		r.staffDefaults[module] = make(map[Action]bool, len(actions))
		for _, act := range actions {
			r.staffDefaults[module][act] = true
		}
	}
	for route, req := range p.Routes {
		r.routes[route] = req
	}
	return r, nil
}

// MustNew creates a Resolver and panics on an invalid policy
func MustNew(p Policy) *Resolver {
	r, err := New(p)
	if err != nil {
		panic(fmt.Sprintf(errMustNewPanicFmt, err))
	}
	return r
}

// Authorize returns nil when user may perform action on module, or an
// error wrapping ErrDenied that explains the refusal.
func (r *Resolver) Authorize(user *User, module Module, action Action) error {
	if user == nil {
		return fmt.Errorf("%w: %w", ErrDenied, ErrNilUser)
	}

	if user.IsAdmin() {
		return nil
	}

	if !module.Valid() {
		return fmt.Errorf(errDeniedUnknownModuleOrActionFmt, ErrDenied, ErrUnknownModule, module, action)
	}
	if !action.Valid() {
		return fmt.Errorf(errDeniedUnknownModuleOrActionFmt, ErrDenied, ErrUnknownAction, module, action)
	}

	if user.usesStaffDefaults() {
		actions, ok := r.staffDefaults[module]
		if !ok {
			return fmt.Errorf("%w: "+errDeniedStaffModuleFmt, ErrDenied, module)
		}
		if !actions[action] {
			return fmt.Errorf("%w: "+errDeniedStaffActionFmt, ErrDenied, action, module)
		}
		return nil
	}

	if user.Permissions == nil {
		return fmt.Errorf("%w: %s", ErrDenied, errDeniedNoPermissions)
	}

	if _, ok := user.Permissions[module]; !ok {
		return fmt.Errorf("%w: "+errDeniedModuleNotGrantedFmt, ErrDenied, module)
	}
	if !user.Permissions.Allows(module, action) {
		return fmt.Errorf("%w: "+errDeniedActionNotGrantedFmt, ErrDenied, action, module)
	}
	return nil
}

// HasPermission is the boolean form of Authorize
func (r *Resolver) HasPermission(user *User, module Module, action Action) bool {
	return r.Authorize(user, module, action) == nil
}

// Requirement returns the permission a route needs, if any
func (r *Resolver) Requirement(route string) (RouteRequirement, bool) {
	req, ok := r.routes[route]
	return req, ok
}

// AuthorizeRoute checks a route against the route table. Routes without
// a requirement are open to everyone, including anonymous callers.
func (r *Resolver) AuthorizeRoute(user *User, route string) error {
	req, ok := r.routes[route]
	if !ok {
		return nil
	}
	return r.Authorize(user, req.Module, req.Action)
}

// CanAccessRoute is the boolean form of AuthorizeRoute
func (r *Resolver) CanAccessRoute(user *User, route string) bool {
	return r.AuthorizeRoute(user, route) == nil
}

// Routes returns every route with a requirement, sorted
func (r *Resolver) Routes() []string {
	routes := make([]string, 0, len(r.routes))
	for route := range r.routes {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

// EffectivePermissions returns the known module/action pairs the user is
// granted, which is what a UI needs to hide controls up front.
func (r *Resolver) EffectivePermissions(user *User) PermissionMap {
	out := PermissionMap{}
	for _, module := range AllModules {
		for _, action := range AllActions {
			if r.HasPermission(user, module, action) {
				out[module] = append(out[module], action)
			}
		}
	}
	return out
}

package rbac

import (
	"fmt"
	"strings"
)

// Policy holds the static tables the resolver consults
type Policy struct {
	// StaffDefaults applies to staff users whose own map is absent or empty
	StaffDefaults PermissionMap `yaml:"staff_defaults"`
	// Routes maps a dashboard route to the permission it requires
	Routes map[string]RouteRequirement `yaml:"routes"`
}

// Validate checks internal consistency of the Policy
func (p *Policy) Validate() error {
	if len(p.StaffDefaults) == 0 {
		return policyError(errPolicyStaffDefaultsEmpty)
	}
	if len(p.Routes) == 0 {
		return policyError(errPolicyRoutesEmpty)
	}

	for module, actions := range p.StaffDefaults {
		if !module.Valid() {
			return policyError(errPolicyStaffModuleFmt, module)
		}
		if len(actions) == 0 {
			return policyError(errPolicyStaffNoActionsFmt, module)
		}
		for _, act := range actions {
			if !act.Valid() {
				return policyError(errPolicyStaffActionFmt, module, act)
			}
		}
	}

	for route, req := range p.Routes {
		if route == "" {
			return policyError(errPolicyRouteEmpty)
		}
		if !strings.HasPrefix(route, "/") {
			return policyError(errPolicyRouteNoSlashFmt, route)
		}
		if !req.Module.Valid() {
			return policyError(errPolicyRouteModuleFmt, route, req.Module)
		}
		if !req.Action.Valid() {
			return policyError(errPolicyRouteActionFmt, route, req.Action)
		}
	}

	return nil
}

func policyError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPolicy, fmt.Sprintf(format, args...))
}

// ParseModule converts an external module name, rejecting unknown ones
func ParseModule(s string) (Module, error) {
	m := Module(strings.TrimSpace(s))
	if !m.Valid() {
		return "", fmt.Errorf(errParseUnknownModuleFmt, ErrUnknownModule, s)
	}
	return m, nil
}

// ParseAction converts an external action name, rejecting unknown ones
func ParseAction(s string) (Action, error) {
	a := Action(strings.TrimSpace(s))
	if !a.Valid() {
		return "", fmt.Errorf(errParseUnknownActionFmt, ErrUnknownAction, s)
	}
	return a, nil
}

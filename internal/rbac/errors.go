package rbac

import "errors"

var (
	ErrDenied        = errors.New("authorization denied")
	ErrNilUser       = errors.New("user is nil")
	ErrUnknownModule = errors.New("unknown module")
	ErrUnknownAction = errors.New("unknown action")
	ErrInvalidPolicy = errors.New("invalid rbac policy")
)

const (
	errPolicyStaffDefaultsEmpty       = "staff defaults must not be empty"
	errPolicyRoutesEmpty              = "routes must not be empty"
	errPolicyStaffModuleFmt           = "staff defaults reference unknown module: %s"
	errPolicyStaffActionFmt           = "staff defaults for module %s reference unknown action: %s"
	errPolicyStaffNoActionsFmt        = "staff defaults for module %s list no actions"
	errPolicyRouteEmpty               = "route must not be empty"
	errPolicyRouteNoSlashFmt          = "route must start with '/': %s"
	errPolicyRouteModuleFmt           = "route %s references unknown module: %s"
	errPolicyRouteActionFmt           = "route %s references unknown action: %s"
	errPolicyDecodeFmt                = "decode policy: %w"
	errPolicyOpenFmt                  = "open policy file: %w"
	errMustNewPanicFmt                = "rbac.MustNew: %v"
	errDeniedStaffModuleFmt           = "staff defaults do not cover module '%s'"
	errDeniedStaffActionFmt           = "staff defaults do not allow action '%s' on module '%s'"
	errDeniedNoPermissions            = "user has no permissions"
	errDeniedModuleNotGrantedFmt      = "user has no permissions on module '%s'"
	errDeniedActionNotGrantedFmt      = "user cannot perform action '%s' on module '%s'"
	errParseUnknownModuleFmt          = "%w: %q"
	errParseUnknownActionFmt          = "%w: %q"
	errDeniedUnknownModuleOrActionFmt = "%w: %w: module '%s' action '%s'"
)

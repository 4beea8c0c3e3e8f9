package middleware

import (
	"github.com/labstack/echo/v4"
)

// The service only returns JSON and spreadsheets, so nothing may be
// framed, scripted or embedded.
const (
	headerContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'"
	headerHSTS                  = "max-age=31536000; includeSubDomains"
	headerPermissionsPolicy     = "geolocation=(), microphone=(), camera=(), payment=(), usb=()"
	headerReferrerPolicy        = "no-referrer"
	headerCacheControlNoStore   = "no-store"
)

// SecurityHeaders adds security headers to all responses
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderContentSecurityPolicy, headerContentSecurityPolicy)
			h.Set(echo.HeaderStrictTransportSecurity, headerHSTS)
			h.Set(echo.HeaderXContentTypeOptions, "nosniff")
			h.Set(echo.HeaderXFrameOptions, "DENY")
			h.Set(echo.HeaderReferrerPolicy, headerReferrerPolicy)
			h.Set("Permissions-Policy", headerPermissionsPolicy)

			// authorization answers depend on the caller and must not be cached
			h.Set(echo.HeaderCacheControl, headerCacheControlNoStore)

			h.Del(echo.HeaderServer)
			h.Del("X-Powered-By")

			return next(c)
		}
	}
}

package echo

import (
	"github.com/labstack/echo/v4"

	"supply-service/internal/auth"
	"supply-service/internal/rbac"
)

// bindRequest binds path, query and body values into dst and validates it
func bindRequest(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

// requestUser returns the session user, nil when anonymous
func requestUser(c echo.Context) *rbac.User {
	return auth.GetUser(c)
}

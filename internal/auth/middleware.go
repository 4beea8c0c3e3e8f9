package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"supply-service/internal/rbac"
)

type Middleware struct {
	sessions *SessionService
}

func NewMiddleware(sessions *SessionService) *Middleware {
	return &Middleware{sessions: sessions}
}

// RequireSession rejects requests without a valid bearer session. A session
// already attached by OptionalSession is reused.
func (m *Middleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetSession(c) != nil {
				return next(c)
			}

			token := extractBearerToken(c)
			if token == "" {
				return respondError(c, http.StatusUnauthorized, msgMissingAuthorization)
			}

			session, err := m.sessions.Verify(token)
			if err != nil {
				c.Logger().Debugf("session rejected: %v", err)
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

// OptionalSession attaches a session when one is presented. Anonymous
// requests pass through with no user, so every guarded check denies them;
// a token that is presented but invalid is still rejected.
func (m *Middleware) OptionalSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return next(c)
			}

			session, err := m.sessions.Verify(token)
			if err != nil {
				c.Logger().Debugf("session rejected: %v", err)
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

// GetSession returns the verified session, or nil for anonymous requests
func GetSession(c echo.Context) *Session {
	if s, ok := c.Get(ContextKeySession).(*Session); ok {
		return s
	}
	return nil
}

// GetUser returns the session user, or nil for anonymous requests
func GetUser(c echo.Context) *rbac.User {
	if s := GetSession(c); s != nil {
		return s.User
	}
	return nil
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

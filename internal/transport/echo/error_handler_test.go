package echo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"supply-service/internal/auth"
	"supply-service/internal/rbac"
	apperrors "supply-service/pkg/errors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"echo http error", echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "short and stout"},
		{"invalid session", fmt.Errorf("%w: bad signature", auth.ErrInvalidSession), http.StatusUnauthorized, "Invalid or expired session"},
		{"denied", fmt.Errorf("%w: module users", rbac.ErrDenied), http.StatusForbidden, "Forbidden"},
		{"unknown module", fmt.Errorf("%w: %q", rbac.ErrUnknownModule, "x"), http.StatusBadRequest, `unknown module: "x"`},
		{"not found app error", apperrors.NotFound("unknown category"), http.StatusNotFound, "unknown category"},
		{"bad request app error", apperrors.BadRequest("format must be json or xlsx"), http.StatusBadRequest, "format must be json or xlsx"},
		{"internal hides detail", apperrors.InternalServer("render report", errors.New("disk full")), http.StatusInternalServerError, msgInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, msgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := mapError(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestHTTPErrorHandlerLogsServerErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := newHTTPErrorHandler(zap.New(core))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler(errors.New("token=abc leaked into an error"), c)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, msgInternalServerError, out.Error)
	assert.Equal(t, unknownRequestID, out.RequestID)

	entries := logs.FilterMessage("internal_server_error").All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap()["error"], "abc")
}

func TestHTTPErrorHandlerSkipsCommitted(t *testing.T) {
	handler := newHTTPErrorHandler(zap.NewNop())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	handler(errors.New("late"), c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

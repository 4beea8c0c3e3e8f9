package echo

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supply-service/internal/auth"
	"supply-service/internal/http/middleware"
	"supply-service/internal/rbac"
	apperrors "supply-service/pkg/errors"
	"supply-service/pkg/logger"
	"supply-service/pkg/validator"
)

const (
	msgInternalServerError = "Internal server error"
	unknownRequestID       = "unknown"
)

// newHTTPErrorHandler maps sentinel errors to status codes, hides 5xx
// details from clients and logs every error with its request id.
func newHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := mapError(err)

		var fields []validator.FieldError
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			fields = verr.Fields
		}

		requestID := middleware.GetRequestID(c)
		if requestID == "" {
			requestID = unknownRequestID
		}

		logFields := []zap.Field{
			zap.String("request_id", requestID),
			zap.Int("status", code),
			logger.Redacted("error", err.Error()),
		}
		if code >= http.StatusInternalServerError {
			log.Error("internal_server_error", logFields...)
			message = msgInternalServerError
		} else {
			log.Debug("client_error", logFields...)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, ErrorResponse{
				Error:     message,
				RequestID: requestID,
				Fields:    fields,
			})
		}
		if writeErr != nil {
			log.Error("write error response", zap.Error(writeErr))
		}
	}
}

func mapError(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, fmt.Sprintf("%v", httpErr.Message)
	}

	code := http.StatusInternalServerError
	message := msgInternalServerError

	switch {
	case errors.Is(err, auth.ErrInvalidSession):
		code, message = http.StatusUnauthorized, "Invalid or expired session"
	case errors.Is(err, apperrors.ErrUnauthorized):
		code, message = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, rbac.ErrDenied):
		code, message = http.StatusForbidden, "Forbidden"
	case errors.Is(err, apperrors.ErrForbidden):
		code, message = http.StatusForbidden, "Forbidden"
	case errors.Is(err, rbac.ErrUnknownModule), errors.Is(err, rbac.ErrUnknownAction):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrValidation):
		code, message = http.StatusBadRequest, "Validation error"
	case errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrInvalidInput):
		code, message = http.StatusBadRequest, "Bad request"
	case errors.Is(err, apperrors.ErrNotFound):
		code, message = http.StatusNotFound, "Resource not found"
	case errors.Is(err, apperrors.ErrRateLimited):
		code, message = http.StatusTooManyRequests, "Rate limit exceeded"
	}

	// client errors carry their own message
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && code < http.StatusInternalServerError {
		message = appErr.Message
	}

	return code, message
}

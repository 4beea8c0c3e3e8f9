package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"supply-service/internal/http/middleware"
	"supply-service/pkg/validator"
)

const statusSuccess = "Success"

type SuccessResponse struct {
	Status       string `json:"status"`
	ResponseCode int    `json:"response_code"`
	Data         any    `json:"data"`
}

type ErrorResponse struct {
	Error     string                 `json:"error"`
	RequestID string                 `json:"request_id"`
	Fields    []validator.FieldError `json:"fields,omitempty"`
}

func respondSuccess(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, SuccessResponse{
		Status:       statusSuccess,
		ResponseCode: http.StatusOK,
		Data:         data,
	})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{
		Error:     message,
		RequestID: middleware.GetRequestID(c),
	})
}

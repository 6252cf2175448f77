package clinicfolio

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Response is the envelope every API endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK writes a 200 success envelope with data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// OKMessage writes a 200 success envelope with data and a message.
func OKMessage(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data, Message: message})
}

// Fail writes an error envelope with the given status and client-facing
// error string.
func Fail(c echo.Context, status int, errMsg string) error {
	return c.JSON(status, Response{Success: false, Error: errMsg})
}

// FailInternal logs the underlying error server-side and returns a generic
// 500 envelope; the original error never reaches the client.
func FailInternal(c echo.Context, err error) error {
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
	return Fail(c, http.StatusInternalServerError, "Internal server error")
}

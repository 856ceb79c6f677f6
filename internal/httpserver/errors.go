package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/logging"
)

type errorBody struct {
	Detail []string `json:"detail"`
}

// ErrorHandler renders every error as {"detail": [message]}. Errors outside
// the apperr taxonomy become a bare 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status int
		msg    string
		he     *echo.HTTPError
	)
	if errors.As(err, &he) {
		status = he.Code
		msg = fmt.Sprint(he.Message)
		if status >= http.StatusInternalServerError {
			msg = http.StatusText(status)
		}
	} else {
		status, msg = apperr.Status(err)
	}
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", status, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, errorBody{Detail: []string{msg}})
}

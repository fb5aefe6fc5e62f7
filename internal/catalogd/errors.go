package catalogd

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func fail(c echo.Context, status int, code, details string) error {
	return c.JSON(status, jsonError{Error: code, Details: details})
}

// errorHandler renders echo's own errors (unknown route, bad method, panics
// caught by Recover) in the same shape as handler failures.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		details := ""
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				details = msg
			}
		} else {
			log.Error("unhandled error", zap.Error(err))
		}
		code := strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
		if details == http.StatusText(status) {
			details = ""
		}
		if err := fail(c, status, code, details); err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}

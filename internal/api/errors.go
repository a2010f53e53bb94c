package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/hbennett/revisio/internal/report"
	"github.com/hbennett/revisio/internal/store"
)

// newHTTPErrorHandler funnels every handler error through one place:
// domain not-found → 404, validation → 400 with per-field messages,
// explicit HTTP errors pass through, everything else → 500 and a report.
func newHTTPErrorHandler(log report.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var code int
		var message interface{}

		var httpErr *echo.HTTPError
		var valErrs validator.ValidationErrors

		switch {
		case errors.As(err, &httpErr):
			code = httpErr.Code
			message = httpErr.Message

		case errors.As(err, &valErrs):
			fields := make(map[string]string, len(valErrs))
			for _, vErr := range valErrs {
				fields[vErr.Field()] = "failed on " + vErr.Tag()
			}
			code = http.StatusBadRequest
			message = fields

		case errors.Is(err, store.ErrNotFound):
			code = http.StatusNotFound
			message = "not found"

		default:
			code = http.StatusInternalServerError
			message = http.StatusText(code)
			log.Error("request failed", err)
		}

		if c.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, message)
			}
			if err != nil {
				log.Error("write error response", err)
			}
		}
	}
}

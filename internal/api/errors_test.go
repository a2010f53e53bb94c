package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbennett/revisio/internal/report"
	"github.com/hbennett/revisio/internal/store"
)

func handleError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	newHTTPErrorHandler(report.NewConsoleLogger(false))(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestErrorHandlerNotFound(t *testing.T) {
	code, body := handleError(t, fmt.Errorf("load class: %w", store.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not found", body["error"])
}

func TestErrorHandlerValidation(t *testing.T) {
	type payload struct {
		StudentID string `validate:"required"`
		Score     string `validate:"oneof=green amber red"`
	}
	err := validator.New().Struct(payload{Score: "blue"})
	require.Error(t, err)

	code, body := handleError(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "failed on required", body["StudentID"])
	assert.Equal(t, "failed on oneof", body["Score"])
}

func TestErrorHandlerHTTPErrorPassthrough(t *testing.T) {
	code, body := handleError(t, echo.NewHTTPError(http.StatusConflict, "item is no longer current"))
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "item is no longer current", body["error"])
}

func TestErrorHandlerInternal(t *testing.T) {
	code, body := handleError(t, errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), body["error"])
	assert.NotContains(t, fmt.Sprint(body), "disk on fire")
}

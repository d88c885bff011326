package httpmw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullToEmptyArray_RewritesNullBodyOn2xxJSON(t *testing.T) {
	e := echo.New()
	e.Use(NullToEmptyArray())
	e.GET("/items", func(c echo.Context) error {
		return c.JSON(http.StatusOK, nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestNullToEmptyArray_LeavesNonNullBodyUntouched(t *testing.T) {
	e := echo.New()
	e.Use(NullToEmptyArray())
	e.GET("/items", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"a": "b"})
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.JSONEq(t, `{"a":"b"}`, rec.Body.String())
}

func TestNullToEmptyArray_LeavesErrorStatusUntouched(t *testing.T) {
	e := echo.New()
	e.Use(NullToEmptyArray())
	e.GET("/items", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())
}

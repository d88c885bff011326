package handler

// NOTE: route handlers close over *service.Service concretely and are
// exercised end to end in integration tests against a live stack. The
// helpers below are pure and covered here directly.

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/catalogerr"
)

func newTestContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteError_MapsCatalogKindsToStatusCodes(t *testing.T) {
	cases := []struct {
		kind   catalogerr.Kind
		status int
	}{
		{catalogerr.KindValidation, http.StatusBadRequest},
		{catalogerr.KindAlreadyExists, http.StatusBadRequest},
		{catalogerr.KindReferenceNotFound, http.StatusBadRequest},
		{catalogerr.KindInUse, http.StatusBadRequest},
		{catalogerr.KindFileFormat, http.StatusBadRequest},
		{catalogerr.KindFileTooLarge, http.StatusBadRequest},
		{catalogerr.KindNotFound, http.StatusNotFound},
		{catalogerr.KindStorageUnavailable, http.StatusServiceUnavailable},
		{catalogerr.KindTransientStorage, http.StatusInternalServerError},
		{catalogerr.KindBrokerUnavailable, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		c, rec := newTestContext(http.MethodGet, "/")
		err := writeError(c, zap.NewNop(), catalogerr.New(tc.kind, "detail"))
		require.NoError(t, err)
		assert.Equal(t, tc.status, rec.Code, "kind=%s", tc.kind)
	}
}

func TestWriteError_UnrecognizedErrorIsInternal(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")
	err := writeError(c, zap.NewNop(), errors.New("boom"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestQueryInt_FallsBackOnMissingOrNonNumeric(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/?page_size=20&bad=abc")
	assert.Equal(t, 20, queryInt(c, "page_size", 0))
	assert.Equal(t, 0, queryInt(c, "missing", 0))
	assert.Equal(t, 7, queryInt(c, "bad", 7))
}

func TestPageParams_Defaults(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/")
	pageNumber, pageSize := pageParams(c)
	assert.Equal(t, 0, pageNumber)
	assert.Equal(t, 20, pageSize)
}

func TestParseGUID_RejectsMalformedParam(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/brands/not-a-guid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("guid")
	c.SetParamValues("not-a-guid")

	_, err := parseGUID(c, "guid")
	require.Error(t, err)
}

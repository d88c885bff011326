package catalogerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopery/catalog-bridge/internal/catalog/catalogerr"
)

func TestNew_ErrorString(t *testing.T) {
	err := catalogerr.New(catalogerr.KindValidation, "sku")
	assert.Equal(t, "validation: sku", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestWrap_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := catalogerr.Wrap(catalogerr.KindTransientStorage, "insert product", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAlreadyExists(t *testing.T) {
	err := catalogerr.AlreadyExists("sku")
	assert.Equal(t, catalogerr.KindAlreadyExists, err.Kind)
	assert.Contains(t, err.Detail, "sku")
}

func TestReferenceNotFound_WithAndWithoutID(t *testing.T) {
	withID := catalogerr.ReferenceNotFound("category", "abc-123")
	assert.Contains(t, withID.Detail, "abc-123")

	withoutID := catalogerr.ReferenceNotFound("tags", nil)
	assert.NotContains(t, withoutID.Detail, "<nil>")
}

func TestNotFound(t *testing.T) {
	err := catalogerr.NotFound("product", "guid-1")
	assert.Equal(t, catalogerr.KindNotFound, err.Kind)
}

func TestInUse(t *testing.T) {
	err := catalogerr.InUse("brand")
	assert.Equal(t, catalogerr.KindInUse, err.Kind)
	assert.Contains(t, err.Detail, "brand")
}

func TestAs(t *testing.T) {
	var err error = catalogerr.New(catalogerr.KindInUse, "tag")
	ce, ok := catalogerr.As(err)
	assert.True(t, ok)
	assert.Equal(t, catalogerr.KindInUse, ce.Kind)

	_, ok = catalogerr.As(errors.New("plain"))
	assert.False(t, ok)
}

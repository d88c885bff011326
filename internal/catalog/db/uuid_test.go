package db_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopery/catalog-bridge/internal/catalog/db"
)

func TestPgUUID_RoundTrip(t *testing.T) {
	id := uuid.New()
	pg := db.ToPgUUID(id)
	assert.True(t, pg.Valid)
	assert.Equal(t, id, db.FromPgUUID(pg))
}

func TestNewGUID_IsValidV7(t *testing.T) {
	pg := db.NewGUID()
	require.True(t, pg.Valid)

	id := db.FromPgUUID(pg)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestParsePgUUID(t *testing.T) {
	id := uuid.New()
	pg, err := db.ParsePgUUID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, db.FromPgUUID(pg))

	_, err = db.ParsePgUUID("not-a-uuid")
	assert.Error(t, err)
}

package service

// NOTE: the uniqueness check and insert/remove in AddTag/RemoveTag run
// inside db.WithinTx against a real *pgxpool.Pool and are covered by
// integration tests. The inline validation here short-circuits before the
// transaction opens, so it is reachable with a nil pool.

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopery/catalog-bridge/internal/catalog/catalogerr"
	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/dto"
)

func TestAddTag_ValidationRejectsBlankOrOversizedLabels(t *testing.T) {
	s := &Service{}

	_, err := s.AddTag(context.Background(), dto.NewTag{EN: "", PL: "Warzywa"})
	require.Error(t, err)
	ce, ok := catalogerr.As(err)
	require.True(t, ok)
	assert.Equal(t, catalogerr.KindValidation, ce.Kind)

	_, err = s.AddTag(context.Background(), dto.NewTag{EN: "Vegetables", PL: ""})
	require.Error(t, err)

	_, err = s.AddTag(context.Background(), dto.NewTag{EN: strings.Repeat("x", 17), PL: "Warzywa"})
	require.Error(t, err)

	_, err = s.AddTag(context.Background(), dto.NewTag{EN: "Vegetables", PL: strings.Repeat("x", 17)})
	require.Error(t, err)
}

type mockTagQuerier struct {
	db.Querier
	getLiveTag func(context.Context, pgtype.UUID) (db.Tag, error)
	countTags  func(context.Context) (int64, error)
	listTags   func(context.Context, db.ListParams) ([]db.Tag, error)
}

func (m *mockTagQuerier) GetLiveTag(ctx context.Context, guid pgtype.UUID) (db.Tag, error) {
	return m.getLiveTag(ctx, guid)
}
func (m *mockTagQuerier) CountTags(ctx context.Context) (int64, error) { return m.countTags(ctx) }
func (m *mockTagQuerier) ListTags(ctx context.Context, arg db.ListParams) ([]db.Tag, error) {
	return m.listTags(ctx, arg)
}

func TestGetTag_NotFound(t *testing.T) {
	q := &mockTagQuerier{getLiveTag: func(context.Context, pgtype.UUID) (db.Tag, error) {
		return db.Tag{}, pgx.ErrNoRows
	}}
	s := &Service{queries: q}

	_, err := s.GetTag(context.Background(), db.NewGUID())

	require.Error(t, err)
	ce, ok := catalogerr.As(err)
	require.True(t, ok)
	assert.Equal(t, catalogerr.KindNotFound, ce.Kind)
}

func TestGetTag_Success(t *testing.T) {
	guid := db.NewGUID()
	q := &mockTagQuerier{getLiveTag: func(context.Context, pgtype.UUID) (db.Tag, error) {
		return db.Tag{GUID: guid, EN: "Vegetables", PL: "Warzywa"}, nil
	}}
	s := &Service{queries: q}

	out, err := s.GetTag(context.Background(), guid)

	require.NoError(t, err)
	assert.Equal(t, "Vegetables", out.EN)
}

func TestListTags_PaginationEnvelope(t *testing.T) {
	q := &mockTagQuerier{
		countTags: func(context.Context) (int64, error) { return 25, nil },
		listTags: func(context.Context, db.ListParams) ([]db.Tag, error) {
			return []db.Tag{{EN: "Vegetables"}}, nil
		},
	}
	s := &Service{queries: q}

	page, err := s.ListTags(context.Background(), 0, 10)

	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.PagesCount)
	assert.Len(t, page.Items, 1)
}

package service

// NOTE: AddCategory/UpdateCategory/RemoveCategory require a real
// *pgxpool.Pool for transaction management (db.WithinTx opens a live
// transaction). Those are covered by integration tests; here we cover the
// validation helper and the non-transactional reads that delegate straight
// to the Querier.

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopery/catalog-bridge/internal/catalog/catalogerr"
	"github.com/shopery/catalog-bridge/internal/catalog/db"
)

func TestValidateCategoryNames(t *testing.T) {
	assert.NoError(t, validateCategoryNames("Vegetables", "Warzywa"))
	assert.Error(t, validateCategoryNames("", "Warzywa"))
	assert.Error(t, validateCategoryNames("Vegetables", ""))

	oversized := make([]byte, 65)
	assert.Error(t, validateCategoryNames(string(oversized), "Warzywa"))
}

type mockCategoryQuerier struct {
	db.Querier
	getLiveCategory func(context.Context, pgtype.UUID) (db.Category, error)
	countCategories func(context.Context) (int64, error)
	listCategories  func(context.Context, db.ListParams) ([]db.Category, error)
}

func (m *mockCategoryQuerier) GetLiveCategory(ctx context.Context, guid pgtype.UUID) (db.Category, error) {
	return m.getLiveCategory(ctx, guid)
}
func (m *mockCategoryQuerier) CountCategories(ctx context.Context) (int64, error) {
	return m.countCategories(ctx)
}
func (m *mockCategoryQuerier) ListCategories(ctx context.Context, arg db.ListParams) ([]db.Category, error) {
	return m.listCategories(ctx, arg)
}

func TestGetCategory_NotFound(t *testing.T) {
	q := &mockCategoryQuerier{getLiveCategory: func(context.Context, pgtype.UUID) (db.Category, error) {
		return db.Category{}, pgx.ErrNoRows
	}}
	s := &Service{queries: q}

	_, err := s.GetCategory(context.Background(), db.NewGUID())

	require.Error(t, err)
	ce, ok := catalogerr.As(err)
	require.True(t, ok)
	assert.Equal(t, catalogerr.KindNotFound, ce.Kind)
}

func TestGetCategory_Success(t *testing.T) {
	guid := db.NewGUID()
	q := &mockCategoryQuerier{getLiveCategory: func(context.Context, pgtype.UUID) (db.Category, error) {
		return db.Category{GUID: guid, NameEN: "Vegetables", NamePL: "Warzywa"}, nil
	}}
	s := &Service{queries: q}

	out, err := s.GetCategory(context.Background(), guid)

	require.NoError(t, err)
	assert.Equal(t, "Vegetables", out.NameEN)
}

func TestListCategories_PaginationEnvelope(t *testing.T) {
	q := &mockCategoryQuerier{
		countCategories: func(context.Context) (int64, error) { return 2, nil },
		listCategories: func(context.Context, db.ListParams) ([]db.Category, error) {
			return []db.Category{{NameEN: "Vegetables"}, {NameEN: "Fruits"}}, nil
		},
	}
	s := &Service{queries: q}

	page, err := s.ListCategories(context.Background(), 0, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.PagesCount)
	assert.Len(t, page.Items, 2)
}

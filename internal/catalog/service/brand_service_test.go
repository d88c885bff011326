package service

// NOTE: the uniqueness check and insert/update/remove in
// AddBrand/UpdateBrand/RemoveBrand run inside db.WithinTx against a real
// *pgxpool.Pool and are covered by integration tests. The inline
// validation here short-circuits before the transaction opens.

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

func TestAddBrand_ValidationRejectsBlankOrOversizedName(t *testing.T) {
	s := &Service{}

	_, err := s.AddBrand(context.Background(), dto.BrandWrite{Name: ""})
	require.Error(t, err)
	ce, ok := catalogerr.As(err)
	require.True(t, ok)
	assert.Equal(t, catalogerr.KindValidation, ce.Kind)

	_, err = s.AddBrand(context.Background(), dto.BrandWrite{Name: strings.Repeat("x", 65)})
	require.Error(t, err)
}

func TestUpdateBrand_ValidationRejectsBlankName(t *testing.T) {
	s := &Service{}

	_, err := s.UpdateBrand(context.Background(), db.NewGUID(), dto.BrandWrite{Name: "   "})

	require.Error(t, err)
	ce, ok := catalogerr.As(err)
	require.True(t, ok)
	assert.Equal(t, catalogerr.KindValidation, ce.Kind)
}

type mockBrandQuerier struct {
	db.Querier
	getLiveBrand func(context.Context, pgtype.UUID) (db.Brand, error)
	countBrands  func(context.Context) (int64, error)
	listBrands   func(context.Context, db.ListParams) ([]db.Brand, error)
}

func (m *mockBrandQuerier) GetLiveBrand(ctx context.Context, guid pgtype.UUID) (db.Brand, error) {
	return m.getLiveBrand(ctx, guid)
}
func (m *mockBrandQuerier) CountBrands(ctx context.Context) (int64, error) {
	return m.countBrands(ctx)
}
func (m *mockBrandQuerier) ListBrands(ctx context.Context, arg db.ListParams) ([]db.Brand, error) {
	return m.listBrands(ctx, arg)
}

func TestGetBrand_NotFound(t *testing.T) {
	q := &mockBrandQuerier{getLiveBrand: func(context.Context, pgtype.UUID) (db.Brand, error) {
		return db.Brand{}, pgx.ErrNoRows
	}}
	s := &Service{queries: q}

	_, err := s.GetBrand(context.Background(), db.NewGUID())

	require.Error(t, err)
	ce, ok := catalogerr.As(err)
	require.True(t, ok)
	assert.Equal(t, catalogerr.KindNotFound, ce.Kind)
}

func TestGetBrand_Success_WithOptionalLogoURL(t *testing.T) {
	guid := db.NewGUID()
	q := &mockBrandQuerier{getLiveBrand: func(context.Context, pgtype.UUID) (db.Brand, error) {
		return db.Brand{GUID: guid, Name: "Farmary", LogoURL: pgtype.Text{String: "https://cdn/logo.png", Valid: true}}, nil
	}}
	s := &Service{queries: q}

	out, err := s.GetBrand(context.Background(), guid)

	require.NoError(t, err)
	assert.Equal(t, "Farmary", out.Name)
	require.NotNil(t, out.LogoURL)
	assert.Equal(t, "https://cdn/logo.png", *out.LogoURL)
}

func TestGetBrand_Success_WithoutLogoURL(t *testing.T) {
	guid := db.NewGUID()
	q := &mockBrandQuerier{getLiveBrand: func(context.Context, pgtype.UUID) (db.Brand, error) {
		return db.Brand{GUID: guid, Name: "Farmary"}, nil
	}}
	s := &Service{queries: q}

	out, err := s.GetBrand(context.Background(), guid)

	require.NoError(t, err)
	assert.Nil(t, out.LogoURL)
}

func TestListBrands_PaginationEnvelope(t *testing.T) {
	q := &mockBrandQuerier{
		countBrands: func(context.Context) (int64, error) { return 0, nil },
		listBrands: func(context.Context, db.ListParams) ([]db.Brand, error) {
			return nil, nil
		},
	}
	s := &Service{queries: q}

	page, err := s.ListBrands(context.Background(), 0, 10)

	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.PagesCount)
	assert.Empty(t, page.Items)
}
